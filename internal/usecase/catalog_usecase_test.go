package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

func TestCatalogUseCase(t *testing.T) {
	uc := NewCatalogUseCase(&stubCatalogs{snap: &entity.Snapshot{Catalog: testCatalog()}})

	assert.Len(t, uc.List(), 4)
	assert.Equal(t, []string{"A42", "D3"}, ids(uc.Search("LUA")))
	assert.Equal(t, []string{"C1"}, ids(uc.Search("brinco estrela")))
	assert.Empty(t, uc.Search("relógio"))
	assert.NotNil(t, uc.Search("relógio"))
	assert.Len(t, uc.Search(""), 4)
}

func TestCatalogUseCaseEmptySnapshot(t *testing.T) {
	uc := NewCatalogUseCase(&stubCatalogs{snap: entity.EmptySnapshot()})
	assert.Empty(t, uc.List())
	assert.Empty(t, uc.Search("anel"))
}
