package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

// Paths files that make up a snapshot
type Paths struct {
	Prompt    string
	Catalog   string
	Knowledge string
}

// CatalogStore publishes immutable snapshots through an atomic pointer.
// Readers never lock; Reload builds a complete new snapshot and swaps it in.
type CatalogStore struct {
	paths    Paths
	current  atomic.Pointer[entity.Snapshot]
	reloadMu sync.Mutex
}

var _ repository.CatalogRepository = (*CatalogStore)(nil)

// NewCatalogStore starts with an empty snapshot; call Reload to load files
func NewCatalogStore(paths Paths) *CatalogStore {
	s := &CatalogStore{paths: paths}
	s.current.Store(entity.EmptySnapshot())
	return s
}

// Snapshot currently published snapshot
func (s *CatalogStore) Snapshot() *entity.Snapshot {
	return s.current.Load()
}

// Paths watched files
func (s *CatalogStore) Paths() Paths {
	return s.paths
}

// Publish swaps in a prepared snapshot
func (s *CatalogStore) Publish(snap *entity.Snapshot) {
	if snap == nil {
		return
	}
	if snap.Catalog == nil {
		snap.Catalog = entity.NewCatalog(nil)
	}
	s.current.Store(snap)
}

// Reload re-reads all three files. A part that fails keeps its previous value
// (empty at startup) and the failure is returned; a snapshot is published
// either way so the service keeps serving.
func (s *CatalogStore) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	prev := s.Snapshot()
	next := &entity.Snapshot{
		Catalog:   prev.Catalog,
		Knowledge: prev.Knowledge,
		Prompt:    prev.Prompt,
		LoadedAt:  time.Now(),
	}

	var errs []error

	if prompt, err := LoadPrompt(s.paths.Prompt); err != nil {
		logger.Warn("⚠️ prompt not loaded, keeping previous", "path", s.paths.Prompt, "error", err)
		errs = append(errs, err)
	} else {
		next.Prompt = prompt
	}

	if entries, err := LoadCatalog(s.paths.Catalog); err != nil {
		logger.Warn("⚠️ catalog not loaded, keeping previous", "path", s.paths.Catalog, "error", err)
		errs = append(errs, err)
	} else {
		next.Catalog = entity.NewCatalog(entries)
	}

	if knowledge, err := LoadKnowledge(s.paths.Knowledge); err != nil {
		logger.Warn("⚠️ knowledge not loaded, keeping previous", "path", s.paths.Knowledge, "error", err)
		errs = append(errs, err)
	} else {
		next.Knowledge = knowledge
	}

	s.Publish(next)
	logger.Info("✅ snapshot published",
		"products", next.Catalog.Len(),
		"knowledge_sources", next.Knowledge.SourceCount(),
		"prompt_chars", len(next.Prompt),
	)
	return errors.Join(errs...)
}
