package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"voice-assistant/internal/application"
)

// Espeak drives the espeak-ng command line synthesizer.
type Espeak struct {
	binary string
	logger *slog.Logger
}

func NewEspeak(binary string, logger *slog.Logger) *Espeak {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &Espeak{binary: binary, logger: logger}
}

func (e *Espeak) Voices(ctx context.Context) ([]application.Voice, error) {
	out, err := exec.CommandContext(ctx, e.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("running %s --voices: %w", e.binary, err)
	}
	return parseVoices(out), nil
}

// Speak starts playback and returns without waiting for it to finish.
func (e *Espeak) Speak(_ context.Context, voice application.Voice, text string) error {
	args := []string{}
	if voice.ID != "" {
		args = append(args, "-v", voice.ID)
	}
	args = append(args, "--", text)

	// Playback outlives the dispatch cycle, so it is not bound to its context.
	cmd := exec.Command(e.binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", e.binary, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			e.logger.Warn("speech playback failed", "voice", voice.Name, "error", err)
		}
	}()

	return nil
}

// parseVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 3)
func parseVoices(out []byte) []application.Voice {
	var voices []application.Voice

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, application.Voice{
			ID:       fields[4],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
		})
	}

	return voices
}
