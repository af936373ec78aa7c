package usecase

import (
	"context"
	"sync"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func testCatalog() *entity.Catalog {
	return entity.NewCatalog([]entity.CatalogEntry{
		{ID: "A42", Title: "Anel Lua", Price: strPtr("199"), Image: strPtr("lua.jpg"), Category: strPtr("Anéis")},
		{ID: "B7", Title: "Colar Sol", Price: strPtr("R$ 420,00"), Category: strPtr("Colares"), Tags: []string{"ouro", "dourado"}},
		{ID: "C1", Title: "Brinco Estrela", Category: strPtr("Brincos"), Tags: []string{"prata"}},
		{ID: "D3", Title: "Pulseira Lua Cheia", Price: strPtr("150")},
	})
}

type stubCatalogs struct {
	snap *entity.Snapshot
}

func (s *stubCatalogs) Snapshot() *entity.Snapshot { return s.snap }

type stubCompletion struct {
	mu       sync.Mutex
	text     string
	err      error
	calls    int
	messages []entity.ChatMessage
	params   entity.CompletionParams
	ctxErr   error
}

func (s *stubCompletion) Complete(ctx context.Context, messages []entity.ChatMessage, params entity.CompletionParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.messages = messages
	s.params = params
	s.ctxErr = ctx.Err()
	return s.text, s.err
}
