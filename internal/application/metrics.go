package application

import (
	"time"

	"voice-assistant/internal/domain"
)

type Metrics interface {
	DispatchCompleted(intent domain.Intent, ok bool, elapsed time.Duration)
	RecognitionFailed()
}

type NoopMetrics struct{}

func (NoopMetrics) DispatchCompleted(domain.Intent, bool, time.Duration) {}
func (NoopMetrics) RecognitionFailed()                                   {}
