package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/usecase"
)

type stubCatalogs struct {
	snap *entity.Snapshot
}

func (s *stubCatalogs) Snapshot() *entity.Snapshot { return s.snap }

type stubCompletion struct {
	text     string
	err      error
	calls    int
	messages []entity.ChatMessage
}

func (s *stubCompletion) Complete(_ context.Context, messages []entity.ChatMessage, _ entity.CompletionParams) (string, error) {
	s.calls++
	s.messages = messages
	return s.text, s.err
}

func strPtr(s string) *string { return &s }

func testSnapshot() *entity.Snapshot {
	catalog := entity.NewCatalog([]entity.CatalogEntry{
		{ID: "A42", Title: "Anel Lua", Price: strPtr("350"), Image: strPtr("lua.jpg"), Category: strPtr("Anéis")},
		{ID: "B7", Title: "Colar Sol", Price: strPtr("R$ 420,00"), Category: strPtr("Colares"), Tags: []string{"ouro"}},
		{ID: "C1", Title: "Brinco Estrela"},
	})
	return &entity.Snapshot{
		Catalog:   catalog,
		Knowledge: entity.Knowledge{Raw: "Loja Ferdie, joias em prata."},
		Prompt:    "Você é a assistente da Ferdie.",
	}
}

func newTestRouter(completion *stubCompletion) *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalogs := &stubCatalogs{snap: testSnapshot()}
	chat := usecase.NewChatUseCase(completion, catalogs, usecase.ChatOptions{
		Params:   entity.CompletionParams{Model: "test-model"},
		Sanitize: true,
	})
	h := NewHandler(chat, usecase.NewCatalogUseCase(catalogs))
	return NewRouter(RouterConfig{Handler: h, AllowedOrigins: []string{"*"}})
}

func do(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubCompletion{})
	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestAssistantEmptyMessage(t *testing.T) {
	completion := &stubCompletion{text: "nunca"}
	r := newTestRouter(completion)

	for _, body := range []any{
		map[string]any{"message": ""},
		map[string]any{"message": "   "},
		map[string]any{},
		map[string]any{"message": 42},
	} {
		w := do(r, http.MethodPost, "/assistente", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, constants.EmptyMessageText, decode(t, w)["error"])
	}
	assert.Zero(t, completion.calls)
}

func TestAssistantSuccess(t *testing.T) {
	completion := &stubCompletion{text: "**Olá!** O Anel Lua é lindo. Veja [aqui](http://x.com)."}
	r := newTestRouter(completion)

	w := do(r, http.MethodPost, "/assistente", map[string]any{"message": "vocês têm o anel lua?"})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, "Olá! O Anel Lua é lindo. Veja aqui.", out["reply"])
	assert.Equal(t, "A42", out["productId"])
	assert.Equal(t, "lua.jpg", out["image"])
	meta := out["meta"].(map[string]any)
	assert.Equal(t, "test-model", meta["model"])
	assert.Equal(t, 1, completion.calls)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAssistantPriceFollowUp(t *testing.T) {
	completion := &stubCompletion{text: "O preço é R$ 999."}
	r := newTestRouter(completion)

	w := do(r, http.MethodPost, "/assistente", map[string]any{
		"message": "quanto custa?",
		"history": []map[string]any{
			{"role": "user", "content": "me fala do anel lua"},
			{"role": "assistant", "content": "É lindo!", "productId": "A42"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Contains(t, out["reply"], "Anel Lua")
	assert.Contains(t, out["reply"], "350")
	assert.NotContains(t, out["reply"], "999")
	assert.Equal(t, "A42", out["productId"])
}

func TestAssistantUpstreamFailure(t *testing.T) {
	r := newTestRouter(&stubCompletion{err: errors.New("timeout")})

	w := do(r, http.MethodPost, "/assistente", map[string]any{"message": "oi"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	out := decode(t, w)
	assert.Equal(t, constants.FallbackReply, out["reply"])
	assert.NotContains(t, w.Body.String(), "timeout")
}

func TestProducts(t *testing.T) {
	r := newTestRouter(&stubCompletion{})

	w := do(r, http.MethodGet, "/produtos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []entity.CatalogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 3)
	assert.Equal(t, "A42", all[0].ID)
	assert.Equal(t, []string{}, all[2].Tags)

	w = do(r, http.MethodGet, "/produtos/buscar?q=COLAR", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []entity.CatalogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "B7", found[0].ID)

	w = do(r, http.MethodGet, "/produtos/buscar?q=xyz", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(&stubCompletion{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(&stubCompletion{})
	req := httptest.NewRequest(http.MethodOptions, "/assistente", nil)
	req.Header.Set("Origin", "https://ferdie.com.br")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	cfg := corsConfig([]string{"https://ferdie.com.br"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://ferdie.com.br"}, cfg.AllowOrigins)
}
