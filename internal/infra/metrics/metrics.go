package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voice-assistant/internal/domain"
)

type Metrics struct {
	dispatches          *prometheus.CounterVec
	actionDuration      *prometheus.HistogramVec
	recognitionFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_dispatches_total",
				Help: "Dispatch cycles by intent and whether a response was produced",
			},
			[]string{"intent", "ok"},
		),
		actionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_action_duration_seconds",
				Help:    "Duration of intent actions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"intent", "remote"},
		),
		recognitionFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_recognition_failures_total",
				Help: "Captures that could not be turned into a transcript",
			},
		),
	}
}

func (m *Metrics) DispatchCompleted(intent domain.Intent, ok bool, elapsed time.Duration) {
	m.dispatches.WithLabelValues(string(intent), strconv.FormatBool(ok)).Inc()
	m.actionDuration.WithLabelValues(string(intent), strconv.FormatBool(intent.IsRemote())).Observe(elapsed.Seconds())
}

func (m *Metrics) RecognitionFailed() {
	m.recognitionFailures.Inc()
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
