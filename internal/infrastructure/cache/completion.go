package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

type cachedCompletion struct {
	next  repository.CompletionRepository
	cache repository.ResponseCache
}

// NewCachedCompletion wraps next so identical requests reuse a previous
// successful answer. Failures and empty answers are never stored.
func NewCachedCompletion(next repository.CompletionRepository, cache repository.ResponseCache) repository.CompletionRepository {
	return &cachedCompletion{next: next, cache: cache}
}

func (c *cachedCompletion) Complete(ctx context.Context, messages []entity.ChatMessage, params entity.CompletionParams) (string, error) {
	key := Key(messages, params)

	if text, ok, err := c.cache.Get(ctx, key); err != nil {
		logger.Warn("⚠️ cache read failed", "error", err)
	} else if ok {
		logger.Debug("cache hit", "key", key)
		return text, nil
	}

	text, err := c.next.Complete(ctx, messages, params)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		if err := c.cache.Set(ctx, key, text); err != nil {
			logger.Warn("⚠️ cache write failed", "error", err)
		}
	}
	return text, nil
}

// Key fixed-length hash of the full request
func Key(messages []entity.ChatMessage, params entity.CompletionParams) string {
	payload, _ := json.Marshal(struct {
		M []entity.ChatMessage
		P entity.CompletionParams
	}{messages, params})
	return fmt.Sprintf("%x", md5.Sum(payload))
}
