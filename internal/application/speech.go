package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// NoopSTT is used when only text activations are expected.
// Any audio payload becomes a recognition failure.
type NoopSTT struct{}

func (n *NoopSTT) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", fmt.Errorf("speech-to-text not configured: set openai.api_key to enable audio transcription")
}

type Voice struct {
	ID       string
	Name     string
	Language string
}

// Synthesizer is the speech output collaborator. Speak returns as soon as
// playback has started.
type Synthesizer interface {
	Voices(ctx context.Context) ([]Voice, error)
	Speak(ctx context.Context, voice Voice, text string) error
}

// SelectVoice picks the first voice whose name contains one of the preferred
// substrings (case-insensitive), falling back to the first available voice.
func SelectVoice(voices []Voice, preferred []string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	for _, v := range voices {
		name := strings.ToLower(v.Name)
		for _, p := range preferred {
			if p != "" && strings.Contains(name, strings.ToLower(p)) {
				return v, true
			}
		}
	}

	return voices[0], true
}

// SpeechSink speaks every published message.
type SpeechSink struct {
	synth     Synthesizer
	preferred []string
	logger    *slog.Logger
}

func NewSpeechSink(synth Synthesizer, preferred []string, logger *slog.Logger) *SpeechSink {
	return &SpeechSink{
		synth:     synth,
		preferred: preferred,
		logger:    logger,
	}
}

func (s *SpeechSink) Publish(ctx context.Context, text string) error {
	voices, err := s.synth.Voices(ctx)
	if err != nil {
		return fmt.Errorf("listing voices: %w", err)
	}

	voice, ok := SelectVoice(voices, s.preferred)
	if !ok {
		return fmt.Errorf("no voices available")
	}

	s.logger.Debug("speaking", "voice", voice.Name, "chars", len(text))

	if err := s.synth.Speak(ctx, voice, text); err != nil {
		return fmt.Errorf("speaking with %s: %w", voice.Name, err)
	}

	return nil
}
