package application

import (
	"context"
	"errors"
)

// OutputSink receives formatted responses. A sink holds at most the last
// published message; publishing overwrites it.
type OutputSink interface {
	Publish(ctx context.Context, text string) error
}

type NoopSink struct{}

func (n *NoopSink) Publish(_ context.Context, _ string) error {
	return nil
}

// MultiSink fans a message out to every sink, returning the joined errors.
type MultiSink []OutputSink

func (m MultiSink) Publish(ctx context.Context, text string) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Outputs are the two publication targets of a dispatch cycle. Speech is
// nil when the assistant runs without voice output.
type Outputs struct {
	Display OutputSink
	Speech  OutputSink
}
