package domain

import "fmt"

type Intent string

const (
	IntentWeather         Intent = "weather"
	IntentNews            Intent = "news"
	IntentTime            Intent = "time"
	IntentDate            Intent = "date"
	IntentConvertCurrency Intent = "convertCurrency"
	IntentMath            Intent = "math"
	IntentJoke            Intent = "joke"
	IntentQuote           Intent = "quote"
	IntentMovie           Intent = "movie"
	IntentMusic           Intent = "music"
	IntentUnrecognized    Intent = "unrecognized"
)

// evaluationOrder is the order in which intents are tried against a
// transcript. When phrases of several intents match, the earliest wins.
var evaluationOrder = [...]Intent{
	IntentWeather,
	IntentNews,
	IntentTime,
	IntentDate,
	IntentConvertCurrency,
	IntentMath,
	IntentJoke,
	IntentQuote,
	IntentMovie,
	IntentMusic,
}

// EvaluationOrder returns the matchable intents in match priority order.
// IntentUnrecognized is not part of it.
func EvaluationOrder() []Intent {
	order := evaluationOrder
	return order[:]
}

// ParseIntent resolves a configuration name such as "convertCurrency".
func ParseIntent(name string) (Intent, error) {
	for _, intent := range evaluationOrder {
		if string(intent) == name {
			return intent, nil
		}
	}
	return "", fmt.Errorf("unknown intent: %q", name)
}

// IsRemote reports whether answering the intent requires an outbound call.
func (i Intent) IsRemote() bool {
	switch i {
	case IntentWeather, IntentNews, IntentConvertCurrency, IntentMath,
		IntentJoke, IntentQuote, IntentMovie:
		return true
	default:
		return false
	}
}
