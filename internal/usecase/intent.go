package usecase

import (
	"fmt"
	"regexp"

	"github.com/yourusername/ferdie-assistant/pkg/textnorm"
)

// DefaultFollowUpPatterns price / deixis phrases that refer back to the
// product already under discussion ("quanto custa?", "e o valor desse?").
// Patterns run against normalized text: lower case, no diacritics.
var DefaultFollowUpPatterns = []string{
	`\bprecos?\b`,
	`\bvalor(es)?\b`,
	`\bquanto\b`,
	`\bquanto custa\b`,
	`\bcusta\b`,
	`\b(esse|essa|este|desse|dessa|deste|aquele|aquela|daquele|daquela)\b`,
	`\bprice\b`,
	`\bhow much\b`,
}

// IntentMatcher data-driven intent predicate: true when any pattern matches
type IntentMatcher struct {
	patterns []*regexp.Regexp
}

// NewIntentMatcher compiles the patterns case-insensitively
func NewIntentMatcher(patterns ...string) (*IntentMatcher, error) {
	m := &IntentMatcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("intent pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// MustIntentMatcher NewIntentMatcher that panics on a bad pattern
func MustIntentMatcher(patterns ...string) *IntentMatcher {
	m, err := NewIntentMatcher(patterns...)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether text carries the intent
func (m *IntentMatcher) Match(text string) bool {
	if m == nil {
		return false
	}
	norm := textnorm.Normalize(text)
	if norm == "" {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(norm) {
			return true
		}
	}
	return false
}
