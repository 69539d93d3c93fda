package application

import (
	"context"

	"voice-assistant/internal/domain"
)

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*domain.Weather, error)
}

type NewsProvider interface {
	TopHeadline(ctx context.Context) (*domain.Headline, error)
}

type ExchangeRateProvider interface {
	Rates(ctx context.Context, base string) (*domain.ExchangeRates, error)
}

type MathEvaluator interface {
	Evaluate(ctx context.Context, expression string) (string, error)
}

type JokeProvider interface {
	RandomJoke(ctx context.Context) (*domain.Joke, error)
}

type QuoteProvider interface {
	RandomQuote(ctx context.Context) (*domain.Quote, error)
}

type MovieProvider interface {
	PopularMovie(ctx context.Context) (*domain.Movie, error)
}

// Actions holds the remote collaborators. A nil provider makes its intent
// fail like any other remote error.
type Actions struct {
	Weather  WeatherProvider
	News     NewsProvider
	Currency ExchangeRateProvider
	Math     MathEvaluator
	Jokes    JokeProvider
	Quotes   QuoteProvider
	Movies   MovieProvider
}

// ActionParams are the fixed arguments of the remote actions.
type ActionParams struct {
	City           string
	CurrencyFrom   string
	CurrencyTo     string
	CurrencyAmount float64
	MathExpression string
}

func DefaultActionParams() ActionParams {
	return ActionParams{
		City:           "New York",
		CurrencyFrom:   "USD",
		CurrencyTo:     "INR",
		CurrencyAmount: 100,
		MathExpression: "2+2",
	}
}
