package audio

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"voice-assistant/internal/application"
)

// encodeWAV wraps PCM samples in a WAV container. The encoder needs to seek
// back to patch the header sizes, so it writes to an in-memory file.
func encodeWAV(samples []int16, format application.AudioFormat) ([]byte, error) {
	fs := afero.NewMemMapFs()

	f, err := fs.Create("command.wav")
	if err != nil {
		return nil, fmt.Errorf("creating wav buffer: %w", err)
	}

	enc := wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: format.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return nil, fmt.Errorf("finalizing wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing wav buffer: %w", err)
	}

	return afero.ReadFile(fs, "command.wav")
}

// isSilent reports whether every sample stays within threshold.
func isSilent(samples []int16, threshold int16) bool {
	for _, s := range samples {
		if s > threshold || s < -threshold {
			return false
		}
	}
	return true
}
