package usecase

import (
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/pkg/textnorm"
)

// CatalogUseCase read-only catalog queries
type CatalogUseCase interface {
	List() []entity.CatalogEntry
	Search(query string) []entity.CatalogEntry
}

type catalogUseCase struct {
	catalogs repository.CatalogRepository
}

// NewCatalogUseCase constructor
func NewCatalogUseCase(catalogs repository.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{catalogs: catalogs}
}

// List full catalog in source order
func (u *catalogUseCase) List() []entity.CatalogEntry {
	return u.catalogs.Snapshot().Catalog.Entries()
}

// Search entries whose normalized title contains the normalized query
func (u *catalogUseCase) Search(query string) []entity.CatalogEntry {
	q := textnorm.Normalize(strings.TrimSpace(query))
	catalog := u.catalogs.Snapshot().Catalog
	results := []entity.CatalogEntry{}
	for i := 0; i < catalog.Len(); i++ {
		e := catalog.At(i)
		if strings.Contains(e.NormalizedTitle(), q) {
			results = append(results, e)
		}
	}
	return results
}
