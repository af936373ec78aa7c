package repository

import (
	"context"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

// CompletionRepository external text-generation provider
type CompletionRepository interface {
	// Complete sends the ordered role-tagged messages and returns one generated text block
	Complete(ctx context.Context, messages []entity.ChatMessage, params entity.CompletionParams) (string, error)
}
