package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"voice-assistant/internal/application"
)

func TestMultiSink_Publish(t *testing.T) {
	first := &captureSink{err: errUpstream}
	second := &captureSink{}

	err := application.MultiSink{first, second, &application.NoopSink{}}.Publish(context.Background(), "hi")

	assert.ErrorIs(t, err, errUpstream)
	assert.Equal(t, []string{"hi"}, first.Messages())
	assert.Equal(t, []string{"hi"}, second.Messages(), "a failing sink must not block the others")
}

func TestCycleID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, application.CycleID(ctx))

	ctx = application.WithCycleID(ctx, "abc")
	assert.Equal(t, "abc", application.CycleID(ctx))
}
