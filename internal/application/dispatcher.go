package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"voice-assistant/internal/domain"
)

// Dispatcher runs the action bound to an intent and publishes its result.
// Remote failures are logged and never published.
type Dispatcher struct {
	actions Actions
	params  ActionParams
	out     Outputs
	metrics Metrics
	now     func() time.Time
	logger  *slog.Logger
}

type DispatcherOption func(*Dispatcher)

// WithClock replaces the wall clock used by the time and date intents.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func WithMetrics(m Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func NewDispatcher(
	actions Actions,
	params ActionParams,
	out Outputs,
	logger *slog.Logger,
	opts ...DispatcherOption,
) *Dispatcher {
	d := &Dispatcher{
		actions: actions,
		params:  params,
		out:     out,
		metrics: NoopMetrics{},
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent) domain.Response {
	start := time.Now()
	text, err := d.respond(ctx, intent)
	elapsed := time.Since(start)

	if err != nil {
		d.metrics.DispatchCompleted(intent, false, elapsed)
		d.logger.Error("action failed",
			"cycle", CycleID(ctx),
			"intent", intent,
			"elapsed", elapsed,
			"error", err,
		)
		return domain.Response{Intent: intent}
	}

	ok := intent != domain.IntentUnrecognized
	d.metrics.DispatchCompleted(intent, ok, elapsed)
	d.logger.Info("responding", "cycle", CycleID(ctx), "intent", intent, "text", text)

	Publish(ctx, d.out, text, d.logger)

	return domain.Response{Intent: intent, Text: text, OK: ok}
}

func (d *Dispatcher) respond(ctx context.Context, intent domain.Intent) (string, error) {
	switch intent {
	case domain.IntentWeather:
		return d.weather(ctx)
	case domain.IntentNews:
		return d.news(ctx)
	case domain.IntentTime:
		now := d.now()
		return fmt.Sprintf("The current time is %d:%d", now.Hour(), now.Minute()), nil
	case domain.IntentDate:
		return "Today's date is " + d.now().Format("Mon Jan 02 2006"), nil
	case domain.IntentConvertCurrency:
		return d.convertCurrency(ctx)
	case domain.IntentMath:
		return d.solveMath(ctx)
	case domain.IntentJoke:
		return d.joke(ctx)
	case domain.IntentQuote:
		return d.quote(ctx)
	case domain.IntentMovie:
		return d.movie(ctx)
	case domain.IntentMusic:
		return domain.MessageMusic, nil
	default:
		return domain.MessageUnrecognized, nil
	}
}

func (d *Dispatcher) weather(ctx context.Context) (string, error) {
	if d.actions.Weather == nil {
		return "", errNotConfigured(domain.IntentWeather)
	}
	w, err := d.actions.Weather.CurrentWeather(ctx, d.params.City)
	if err != nil {
		return "", fmt.Errorf("fetching weather: %w", err)
	}
	return fmt.Sprintf("The weather in %s is %s, with a temperature of %s°C.",
		d.params.City, w.Description, formatNumber(w.Temperature)), nil
}

func (d *Dispatcher) news(ctx context.Context) (string, error) {
	if d.actions.News == nil {
		return "", errNotConfigured(domain.IntentNews)
	}
	h, err := d.actions.News.TopHeadline(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching news: %w", err)
	}
	return "Latest news: " + h.Title, nil
}

func (d *Dispatcher) convertCurrency(ctx context.Context) (string, error) {
	if d.actions.Currency == nil {
		return "", errNotConfigured(domain.IntentConvertCurrency)
	}
	p := d.params
	rates, err := d.actions.Currency.Rates(ctx, p.CurrencyFrom)
	if err != nil {
		return "", fmt.Errorf("fetching %s rates: %w", p.CurrencyFrom, err)
	}
	rate, ok := rates.Rates[p.CurrencyTo]
	if !ok {
		return "", fmt.Errorf("no %s rate for %s", p.CurrencyTo, p.CurrencyFrom)
	}
	return fmt.Sprintf("%s %s is equal to %s %s",
		formatNumber(p.CurrencyAmount), p.CurrencyFrom, formatCents(p.CurrencyAmount*rate), p.CurrencyTo), nil
}

func (d *Dispatcher) solveMath(ctx context.Context) (string, error) {
	if d.actions.Math == nil {
		return "", errNotConfigured(domain.IntentMath)
	}
	result, err := d.actions.Math.Evaluate(ctx, d.params.MathExpression)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", d.params.MathExpression, err)
	}
	return fmt.Sprintf("The result of %s is %s", d.params.MathExpression, result), nil
}

func (d *Dispatcher) joke(ctx context.Context) (string, error) {
	if d.actions.Jokes == nil {
		return "", errNotConfigured(domain.IntentJoke)
	}
	j, err := d.actions.Jokes.RandomJoke(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching joke: %w", err)
	}
	return j.Setup + " - " + j.Punchline, nil
}

func (d *Dispatcher) quote(ctx context.Context) (string, error) {
	if d.actions.Quotes == nil {
		return "", errNotConfigured(domain.IntentQuote)
	}
	q, err := d.actions.Quotes.RandomQuote(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching quote: %w", err)
	}
	return `"` + q.Text + `" - ` + q.Author, nil
}

func (d *Dispatcher) movie(ctx context.Context) (string, error) {
	if d.actions.Movies == nil {
		return "", errNotConfigured(domain.IntentMovie)
	}
	m, err := d.actions.Movies.PopularMovie(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching movies: %w", err)
	}
	return "Movie recommendation: " + m.Title, nil
}

// Publish sends text to the display and, when configured, to speech.
// Sink errors are logged; they never fail the cycle.
func Publish(ctx context.Context, out Outputs, text string, logger *slog.Logger) {
	if out.Display != nil {
		if err := out.Display.Publish(ctx, text); err != nil {
			logger.Warn("publishing to display", "cycle", CycleID(ctx), "error", err)
		}
	}
	if out.Speech != nil {
		if err := out.Speech.Publish(ctx, text); err != nil {
			logger.Warn("publishing to speech", "cycle", CycleID(ctx), "error", err)
		}
	}
}

func errNotConfigured(intent domain.Intent) error {
	return fmt.Errorf("%s provider not configured", intent)
}

// formatNumber renders 21 as "21" and 21.5 as "21.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatCents renders v with two decimals, rounding halves away from zero.
func formatCents(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
