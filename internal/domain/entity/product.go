package entity

import (
	"strings"

	"github.com/yourusername/ferdie-assistant/pkg/textnorm"
)

// CatalogEntry one sellable item of the store catalog
type CatalogEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Price    *string  `json:"price"`    // literal source value, never recomputed
	Image    *string  `json:"image"`    // first segment of the source image field
	Category *string  `json:"category"` // "curso" in the store's export
	Tags     []string `json:"tags"`

	titleNorm    string
	categoryNorm string
	tagsNorm     string
	indexed      bool
}

// index precomputes the normalized search fields
func (e *CatalogEntry) index() {
	e.titleNorm = textnorm.Normalize(e.Title)
	e.categoryNorm = textnorm.Normalize(e.CategoryName())
	e.tagsNorm = textnorm.Normalize(strings.Join(e.Tags, " "))
	e.indexed = true
}

// NormalizedTitle returns the title folded for substring matching
func (e CatalogEntry) NormalizedTitle() string {
	if e.indexed {
		return e.titleNorm
	}
	return textnorm.Normalize(e.Title)
}

// NormalizedCategory returns the category folded for substring matching
func (e CatalogEntry) NormalizedCategory() string {
	if e.indexed {
		return e.categoryNorm
	}
	return textnorm.Normalize(e.CategoryName())
}

// NormalizedTags returns all tags joined into one folded string
func (e CatalogEntry) NormalizedTags() string {
	if e.indexed {
		return e.tagsNorm
	}
	return textnorm.Normalize(strings.Join(e.Tags, " "))
}

// CategoryName returns the category or "" when absent
func (e CatalogEntry) CategoryName() string {
	if e.Category == nil {
		return ""
	}
	return *e.Category
}

// PriceText returns the literal price or "" when absent
func (e CatalogEntry) PriceText() string {
	if e.Price == nil {
		return ""
	}
	return strings.TrimSpace(*e.Price)
}
