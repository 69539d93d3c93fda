package application

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"voice-assistant/internal/domain"
)

// Matcher resolves transcripts to intents with a greedy first-match policy:
// intents are tried in domain.EvaluationOrder and the first one with a phrase
// contained in the transcript wins.
type Matcher struct {
	table *domain.KeywordTable
}

func NewMatcher(table *domain.KeywordTable) *Matcher {
	return &Matcher{table: table}
}

func (m *Matcher) Match(transcript string) domain.Intent {
	for _, intent := range domain.EvaluationOrder() {
		if m.table.Matches(intent, transcript) {
			return intent
		}
	}
	return domain.IntentUnrecognized
}

// NormalizeTranscript lowercases recognizer output so it can be matched
// against the keyword table.
func NormalizeTranscript(text string) string {
	return cases.Lower(language.English).String(strings.TrimSpace(text))
}
