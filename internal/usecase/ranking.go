package usecase

import (
	"sort"
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/pkg/textnorm"
)

// Score field-weighted substring relevance of one entry against a token set.
// Every token is checked against title, category and tags; a token may add
// to several fields of the same entry.
func Score(entry entity.CatalogEntry, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	title := entry.NormalizedTitle()
	category := entry.NormalizedCategory()
	tags := entry.NormalizedTags()

	score := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(title, tok) {
			score += constants.TitleWeight
		}
		if category != "" && strings.Contains(category, tok) {
			score += constants.CategoryWeight
		}
		if tags != "" && strings.Contains(tags, tok) {
			score += constants.TagsWeight
		}
	}
	return score
}

// Rank returns at most maxResults entries ordered by relevance to query.
// Ties keep catalog order. When the query is empty or nothing scores, the
// catalog prefix is returned so a non-empty catalog never yields no candidates.
func Rank(query string, catalog *entity.Catalog, maxResults int) []entity.CatalogEntry {
	if catalog.Len() == 0 || maxResults <= 0 {
		return []entity.CatalogEntry{}
	}
	if strings.TrimSpace(textnorm.Normalize(query)) == "" {
		return catalog.Head(maxResults)
	}

	tokens := textnorm.Tokenize(query)

	type scoredEntry struct {
		entry entity.CatalogEntry
		score int
	}
	var matches []scoredEntry
	for i := 0; i < catalog.Len(); i++ {
		e := catalog.At(i)
		if s := Score(e, tokens); s > 0 {
			matches = append(matches, scoredEntry{entry: e, score: s})
		}
	}
	if len(matches) == 0 {
		return catalog.Head(maxResults)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	results := make([]entity.CatalogEntry, len(matches))
	for i, m := range matches {
		results[i] = m.entry
	}
	return results
}
