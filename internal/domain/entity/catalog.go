package entity

import "time"

// Catalog immutable, ordered product list with an id index.
// It is shared read-only between concurrent requests.
type Catalog struct {
	entries []CatalogEntry
	byID    map[string]int
}

// NewCatalog builds the index. Entries keep their source order.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{
		entries: make([]CatalogEntry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Tags == nil {
			e.Tags = []string{}
		}
		e.index()
		c.entries[i] = e
		c.byID[e.ID] = i
	}
	return c
}

// Len number of entries
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns the i-th entry in catalog order
func (c *Catalog) At(i int) CatalogEntry {
	return c.entries[i]
}

// Entries returns a copy of all entries in catalog order
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return []CatalogEntry{}
	}
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Head returns the first n entries in catalog order
func (c *Catalog) Head(n int) []CatalogEntry {
	if c == nil || n <= 0 {
		return []CatalogEntry{}
	}
	if n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]CatalogEntry, n)
	copy(out, c.entries[:n])
	return out
}

// GetByID looks an entry up by id
func (c *Catalog) GetByID(id string) (*CatalogEntry, error) {
	if c == nil {
		return nil, ErrProductNotFound
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	e := c.entries[i]
	return &e, nil
}

// Snapshot everything a request reads from disk-backed state.
// A snapshot is never mutated after it is published; reloads publish a new one.
type Snapshot struct {
	Catalog   *Catalog
	Knowledge Knowledge
	Prompt    string
	LoadedAt  time.Time
}

// EmptySnapshot used before anything was loaded
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Catalog:  NewCatalog(nil),
		LoadedAt: time.Now(),
	}
}
