package application

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by NextCommand once a source has been stopped.
var ErrSourceClosed = errors.New("audio source closed")

// AudioSource is the capture collaborator. Each NextCommand call blocks until
// one activation has produced a payload: raw audio, or a transcript prefixed
// with domain.TextCommandPrefix.
type AudioSource interface {
	Start(ctx context.Context) error
	Stop() error
	NextCommand(ctx context.Context) ([]byte, error)
	Name() string
}

type AudioFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}
}
