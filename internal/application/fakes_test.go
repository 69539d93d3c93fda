package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"voice-assistant/internal/application"
	"voice-assistant/internal/domain"
)

var errUpstream = errors.New("upstream unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureSink records every published message.
type captureSink struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (c *captureSink) Publish(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, text)
	return c.err
}

func (c *captureSink) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// callCounter counts outbound calls across all fake providers.
type callCounter struct {
	mu    sync.Mutex
	calls int
}

func (c *callCounter) hit() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *callCounter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeWeather struct {
	*callCounter
	weather *domain.Weather
	err     error
	city    string
}

func (f *fakeWeather) CurrentWeather(_ context.Context, city string) (*domain.Weather, error) {
	f.hit()
	f.city = city
	return f.weather, f.err
}

type fakeNews struct {
	*callCounter
	headline *domain.Headline
	err      error
}

func (f *fakeNews) TopHeadline(_ context.Context) (*domain.Headline, error) {
	f.hit()
	return f.headline, f.err
}

type fakeRates struct {
	*callCounter
	rates *domain.ExchangeRates
	err   error
	base  string
}

func (f *fakeRates) Rates(_ context.Context, base string) (*domain.ExchangeRates, error) {
	f.hit()
	f.base = base
	return f.rates, f.err
}

type fakeMath struct {
	*callCounter
	result string
	err    error
	expr   string
}

func (f *fakeMath) Evaluate(_ context.Context, expr string) (string, error) {
	f.hit()
	f.expr = expr
	return f.result, f.err
}

type fakeJokes struct {
	*callCounter
	joke *domain.Joke
	err  error
}

func (f *fakeJokes) RandomJoke(_ context.Context) (*domain.Joke, error) {
	f.hit()
	return f.joke, f.err
}

type fakeQuotes struct {
	*callCounter
	quote *domain.Quote
	err   error
}

func (f *fakeQuotes) RandomQuote(_ context.Context) (*domain.Quote, error) {
	f.hit()
	return f.quote, f.err
}

type fakeMovies struct {
	*callCounter
	movie *domain.Movie
	err   error
}

func (f *fakeMovies) PopularMovie(_ context.Context) (*domain.Movie, error) {
	f.hit()
	return f.movie, f.err
}

// fakeActions wires every provider to one shared call counter.
type fakeActions struct {
	counter *callCounter
	weather *fakeWeather
	news    *fakeNews
	rates   *fakeRates
	math    *fakeMath
	jokes   *fakeJokes
	quotes  *fakeQuotes
	movies  *fakeMovies
}

func newFakeActions() *fakeActions {
	c := &callCounter{}
	return &fakeActions{
		counter: c,
		weather: &fakeWeather{callCounter: c, weather: &domain.Weather{City: "New York", Description: "clear sky", Temperature: 21}},
		news:    &fakeNews{callCounter: c, headline: &domain.Headline{Title: "Markets rally"}},
		rates:   &fakeRates{callCounter: c, rates: &domain.ExchangeRates{Base: "USD", Rates: map[string]float64{"INR": 83.1234}}},
		math:    &fakeMath{callCounter: c, result: "4"},
		jokes:   &fakeJokes{callCounter: c, joke: &domain.Joke{Setup: "Why...", Punchline: "Because..."}},
		quotes:  &fakeQuotes{callCounter: c, quote: &domain.Quote{Text: "Stay hungry", Author: "Steve Jobs"}},
		movies:  &fakeMovies{callCounter: c, movie: &domain.Movie{Title: "Dune"}},
	}
}

func (f *fakeActions) Actions() application.Actions {
	return application.Actions{
		Weather:  f.weather,
		News:     f.news,
		Currency: f.rates,
		Math:     f.math,
		Jokes:    f.jokes,
		Quotes:   f.quotes,
		Movies:   f.movies,
	}
}

// failAll makes every remote provider return errUpstream.
func (f *fakeActions) failAll() {
	f.weather.err = errUpstream
	f.news.err = errUpstream
	f.rates.err = errUpstream
	f.math.err = errUpstream
	f.jokes.err = errUpstream
	f.quotes.err = errUpstream
	f.movies.err = errUpstream
}

type recordedDispatch struct {
	intent domain.Intent
	ok     bool
}

type fakeMetrics struct {
	mu                  sync.Mutex
	dispatches          []recordedDispatch
	recognitionFailures int
}

func (f *fakeMetrics) DispatchCompleted(intent domain.Intent, ok bool, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatches = append(f.dispatches, recordedDispatch{intent: intent, ok: ok})
}

func (f *fakeMetrics) RecognitionFailed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recognitionFailures++
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
