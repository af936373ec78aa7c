package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	price := "350"
	c := NewCatalog([]CatalogEntry{
		{ID: "A42", Title: "Anel Lua", Price: &price},
		{ID: "B7", Title: "Colar Coração"},
	})

	e, err := c.GetByID("A42")
	require.NoError(t, err)
	assert.Equal(t, "350", e.PriceText())

	_, err = c.GetByID("nope")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Equal(t, "colar coracao", c.At(1).NormalizedTitle())
	assert.Equal(t, []string{}, c.At(1).Tags)
	assert.Len(t, c.Head(1), 1)
	assert.Len(t, c.Head(10), 2)
}

func TestCatalogEntriesIsCopy(t *testing.T) {
	c := NewCatalog([]CatalogEntry{{ID: "1", Title: "Anel"}})
	entries := c.Entries()
	entries[0].Title = "mudado"
	assert.Equal(t, "Anel", c.At(0).Title)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Entries())
	_, err := c.GetByID("x")
	assert.Error(t, err)
}

func TestKnowledgeText(t *testing.T) {
	k := Knowledge{Pages: []KnowledgePage{
		{Source: "https://a", Content: "A"},
		{Source: "https://b", Content: "B"},
	}}
	assert.Equal(t, "📄 Página: https://a\nA\n\n📄 Página: https://b\nB", k.Text())
	assert.Equal(t, 2, k.SourceCount())
	assert.Zero(t, Knowledge{}.SourceCount())
}
