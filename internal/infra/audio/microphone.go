//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"voice-assistant/internal/application"
)

const (
	framesPerBuffer  = 1024
	silenceThreshold = int16(500)
)

// MicrophoneSource treats the first loud frame as the activation and
// records until a second of silence or ten seconds in total.
type MicrophoneSource struct {
	stream *portaudio.Stream
	frame  []int16
	format application.AudioFormat
	logger *slog.Logger
}

func NewMicrophoneSource(format application.AudioFormat, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		format: format,
		logger: logger,
		frame:  make([]int16, framesPerBuffer),
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(
		m.format.Channels,
		0,
		float64(m.format.SampleRate),
		framesPerBuffer,
		m.frame,
	)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}

	m.stream = stream

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	m.logger.Info("microphone started", "sampleRate", m.format.SampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
	}
	portaudio.Terminate()
	return nil
}

func (m *MicrophoneSource) NextCommand(ctx context.Context) ([]byte, error) {
	if m.stream == nil {
		return nil, application.ErrSourceClosed
	}

	m.logger.Debug("waiting for voice activity")

	rate := m.format.SampleRate
	samples := make([]int16, 0, rate*5)
	silence := 0
	activated := false

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		quiet := isSilent(m.frame, silenceThreshold)
		if !activated {
			if quiet {
				continue
			}
			activated = true
			m.logger.Info("voice activity detected, recording")
		}

		samples = append(samples, m.frame...)

		if quiet {
			silence += len(m.frame)
		} else {
			silence = 0
		}

		if silence > rate && len(samples) > rate {
			break
		}
		if len(samples) > rate*10 {
			break
		}
	}

	return encodeWAV(samples, m.format)
}
