package repository

import (
	"context"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

// CatalogRepository read side of the disk-backed state
type CatalogRepository interface {
	// Snapshot returns the currently published snapshot. Never nil.
	Snapshot() *entity.Snapshot
}

// ResponseCache key/value store for completion output
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
