package domain

import (
	"fmt"
	"strings"
)

// KeywordTable maps every matchable intent to its trigger phrases. It is
// built once at startup and never mutated afterwards.
type KeywordTable struct {
	phrases map[Intent][]string
}

// DefaultKeywords returns a fresh copy of the built-in trigger phrases.
func DefaultKeywords() map[Intent][]string {
	return map[Intent][]string{
		IntentWeather:         {"weather", "what's the weather", "temperature"},
		IntentNews:            {"news", "latest headlines"},
		IntentTime:            {"time", "what time is it"},
		IntentDate:            {"date", "what's today's date"},
		IntentConvertCurrency: {"convert", "currency"},
		IntentMath:            {"calculate", "math"},
		IntentJoke:            {"joke", "make me laugh"},
		IntentQuote:           {"quote", "inspire me"},
		IntentMovie:           {"movie", "recommend a movie"},
		IntentMusic:           {"play music", "play song"},
	}
}

// NewKeywordTable builds a table from the defaults, replacing the phrase list
// of every intent present in overrides. Phrases are lowercased because
// transcripts are lowercased before matching.
func NewKeywordTable(overrides map[Intent][]string) (*KeywordTable, error) {
	phrases := DefaultKeywords()

	for intent, list := range overrides {
		if _, ok := phrases[intent]; !ok {
			return nil, fmt.Errorf("keywords for %q: intent cannot be matched", intent)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("keywords for %q: at least one phrase required", intent)
		}

		normalized := make([]string, 0, len(list))
		for _, phrase := range list {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase == "" {
				return nil, fmt.Errorf("keywords for %q: empty phrase", intent)
			}
			normalized = append(normalized, phrase)
		}
		phrases[intent] = normalized
	}

	return &KeywordTable{phrases: phrases}, nil
}

// DefaultKeywordTable returns a table holding only the built-in phrases.
func DefaultKeywordTable() *KeywordTable {
	return &KeywordTable{phrases: DefaultKeywords()}
}

// Matches reports whether any phrase of intent is a substring of transcript.
func (t *KeywordTable) Matches(intent Intent, transcript string) bool {
	for _, phrase := range t.phrases[intent] {
		if strings.Contains(transcript, phrase) {
			return true
		}
	}
	return false
}

// Phrases returns a copy of the trigger phrases of intent.
func (t *KeywordTable) Phrases(intent Intent) []string {
	return append([]string(nil), t.phrases[intent]...)
}
