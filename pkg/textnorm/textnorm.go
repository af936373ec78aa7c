// Package textnorm folds free text for accent- and case-insensitive comparison.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength default minimum token length used by Tokenize
const MinTokenLength = 3

// Normalize lower-cases s and removes combining diacritical marks (NFD + strip).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	// transformers keep state, so a fresh chain is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize splits the normalized query on whitespace runs and drops tokens
// shorter than MinTokenLength runes.
func Tokenize(s string) []string {
	return TokenizeMin(s, MinTokenLength)
}

// TokenizeMin Tokenize with an explicit minimum length
func TokenizeMin(s string, minLen int) []string {
	fields := strings.Fields(Normalize(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minLen {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
