package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"voice-assistant/internal/domain"
)

type IntentMatcher interface {
	Match(transcript string) domain.Intent
}

type ResponseDispatcher interface {
	Dispatch(ctx context.Context, intent domain.Intent) domain.Response
}

// Assistant runs dispatch cycles one at a time. Activations that arrive while
// a cycle is running wait in the audio source's queue.
type Assistant struct {
	audio      AudioSource
	stt        SpeechToText
	matcher    IntentMatcher
	dispatcher ResponseDispatcher
	out        Outputs
	metrics    Metrics
	logger     *slog.Logger

	mu    sync.RWMutex
	state domain.ListenState
}

func NewAssistant(
	audio AudioSource,
	stt SpeechToText,
	matcher IntentMatcher,
	dispatcher ResponseDispatcher,
	out Outputs,
	metrics Metrics,
	logger *slog.Logger,
) *Assistant {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Assistant{
		audio:      audio,
		stt:        stt,
		matcher:    matcher,
		dispatcher: dispatcher,
		out:        out,
		metrics:    metrics,
		logger:     logger,
		state:      domain.StateIdle,
	}
}

func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("starting audio source", "source", a.audio.Name())
	if err := a.audio.Start(ctx); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer a.audio.Stop()

	a.logger.Info("assistant ready, listening for commands")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := a.processOneCommand(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrSourceClosed) {
				return err
			}
			a.logger.Error("processing command", "error", err)
		}
	}
}

// State reports whether a capture is currently being recognized.
func (a *Assistant) State() domain.ListenState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Assistant) setState(s domain.ListenState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Assistant) processOneCommand(ctx context.Context) error {
	data, err := a.audio.NextCommand(ctx)
	if err != nil {
		return fmt.Errorf("getting audio: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	ctx = WithCycleID(ctx, uuid.NewString())

	a.setState(domain.StateListening)
	text, err := a.recognize(ctx, data)
	a.setState(domain.StateIdle)

	if err != nil {
		a.HandleRecognitionError(ctx, err)
		return nil
	}

	a.HandleTranscript(ctx, text)
	return nil
}

func (a *Assistant) recognize(ctx context.Context, data []byte) (string, error) {
	if text, ok := isTextCommand(data); ok {
		a.logger.Info("received text command directly", "cycle", CycleID(ctx), "text", text)
		return text, nil
	}

	a.logger.Info("received audio", "cycle", CycleID(ctx), "bytes", len(data))

	text, err := a.stt.Transcribe(ctx, data)
	if err != nil {
		return "", fmt.Errorf("transcribing: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("transcribing: empty transcript")
	}

	a.logger.Info("transcribed", "cycle", CycleID(ctx), "text", text)
	return text, nil
}

// HandleTranscript runs one dispatch cycle for an already recognized phrase.
func (a *Assistant) HandleTranscript(ctx context.Context, text string) domain.Response {
	if CycleID(ctx) == "" {
		ctx = WithCycleID(ctx, uuid.NewString())
	}

	transcript := NormalizeTranscript(text)

	if a.out.Display != nil {
		if err := a.out.Display.Publish(ctx, "You said: "+transcript); err != nil {
			a.logger.Warn("echoing transcript", "cycle", CycleID(ctx), "error", err)
		}
	}

	intent := a.matcher.Match(transcript)
	a.logger.Info("matched intent", "cycle", CycleID(ctx), "intent", intent, "transcript", transcript)

	return a.dispatcher.Dispatch(ctx, intent)
}

// HandleRecognitionError apologizes on every output, speech included.
func (a *Assistant) HandleRecognitionError(ctx context.Context, err error) {
	a.metrics.RecognitionFailed()
	a.logger.Warn("recognition failed", "cycle", CycleID(ctx), "error", err)
	Publish(ctx, a.out, domain.MessageRecognitionError, a.logger)
}

func isTextCommand(data []byte) (string, bool) {
	if len(data) > len(domain.TextCommandPrefix) && string(data[:len(domain.TextCommandPrefix)]) == domain.TextCommandPrefix {
		return string(data[len(domain.TextCommandPrefix):]), true
	}
	return "", false
}
