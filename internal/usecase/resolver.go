package usecase

import (
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

// Resolver picks the catalog entry a turn is about.
//
// It behaves as a two-state machine driven by the follow-up signal: once a
// product was attached to an assistant turn ("topic established"), a generic
// question such as "quanto custa?" that names no product stays on it;
// otherwise the topic is open and the message itself (or the best ranked
// candidate) decides.
type Resolver struct {
	followUp *IntentMatcher
}

// NewResolver uses DefaultFollowUpPatterns when followUp is nil
func NewResolver(followUp *IntentMatcher) *Resolver {
	if followUp == nil {
		followUp = MustIntentMatcher(DefaultFollowUpPatterns...)
	}
	return &Resolver{followUp: followUp}
}

// IsGenericFollowUp reports whether the message asks about "it" / "the price"
func (r *Resolver) IsGenericFollowUp(userMessage string) bool {
	return r.followUp.Match(userMessage)
}

// LastEntity most recent history entry carrying a product id, looked up in
// catalog. An id missing from the catalog resolves to nil.
func (r *Resolver) LastEntity(history []entity.HistoryEntry, catalog *entity.Catalog) *entity.CatalogEntry {
	for i := len(history) - 1; i >= 0; i-- {
		pid := history[i].ProductID
		if pid == nil || strings.TrimSpace(*pid) == "" {
			continue
		}
		// only the most recent id counts, even when it no longer exists
		e, err := catalog.GetByID(strings.TrimSpace(*pid))
		if err != nil {
			return nil
		}
		return e
	}
	return nil
}

// NamedEntity first ranked candidate whose title appears in the message
func (r *Resolver) NamedEntity(userMessage string, ranked []entity.CatalogEntry) *entity.CatalogEntry {
	lowerMsg := strings.ToLower(userMessage)
	for i := range ranked {
		title := strings.ToLower(strings.TrimSpace(ranked[i].Title))
		if title != "" && strings.Contains(lowerMsg, title) {
			e := ranked[i]
			return &e
		}
	}
	return nil
}

// Resolve returns the subject of the turn or nil. A product named in the
// message wins over the topic carried by history.
func (r *Resolver) Resolve(userMessage string, history []entity.HistoryEntry, ranked []entity.CatalogEntry, catalog *entity.Catalog) *entity.CatalogEntry {
	if named := r.NamedEntity(userMessage, ranked); named != nil {
		return named
	}

	if r.IsGenericFollowUp(userMessage) {
		if last := r.LastEntity(history, catalog); last != nil {
			return last
		}
	}

	if len(ranked) == 0 {
		return nil
	}
	e := ranked[0]
	return &e
}
