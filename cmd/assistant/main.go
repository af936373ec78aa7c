package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/ferdie-assistant/config"
	"github.com/yourusername/ferdie-assistant/internal/delivery/rest"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/internal/infrastructure/cache"
	"github.com/yourusername/ferdie-assistant/internal/infrastructure/gemini"
	"github.com/yourusername/ferdie-assistant/internal/infrastructure/openai"
	"github.com/yourusername/ferdie-assistant/internal/infrastructure/storage"
	"github.com/yourusername/ferdie-assistant/internal/usecase"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init("development", "info")
		logger.Error("❌ configuration not loaded", "error", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogMode, cfg.LogLevel); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("🚀 starting assistant", "provider", cfg.Provider, "model", cfg.Model)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Catalog, knowledge and prompt snapshot
	store := storage.NewCatalogStore(storage.Paths{
		Prompt:    cfg.PromptPath,
		Catalog:   cfg.CatalogPath,
		Knowledge: cfg.KnowledgePath,
	})
	if err := store.Reload(); err != nil {
		logger.Warn("⚠️ starting with incomplete data", "error", err)
	}
	if cfg.WatchFiles {
		go func() {
			if err := store.Watch(ctx, storage.DefaultReloadDebounce); err != nil {
				logger.Error("❌ file watcher stopped", "error", err)
			}
		}()
	}

	// 2. Completion backend
	completion, err := newCompletion(ctx, cfg)
	if err != nil {
		logger.Error("❌ completion client not created", "error", err)
		os.Exit(1)
	}
	if closer, ok := completion.(io.Closer); ok {
		defer closer.Close()
	}
	completion = withCache(ctx, cfg, completion)

	// 3. Use cases
	chatUseCase := usecase.NewChatUseCase(completion, store, usecase.ChatOptions{
		Params: entity.CompletionParams{
			Model:            cfg.Model,
			Temperature:      cfg.Temperature,
			TopP:             cfg.TopP,
			PresencePenalty:  cfg.PresencePenalty,
			FrequencyPenalty: cfg.FrequencyPenalty,
			MaxTokens:        cfg.MaxTokens,
		},
		MaxCandidates: cfg.MaxCandidates,
		Timeout:       cfg.Timeout,
		StyleHints:    cfg.StyleHints,
		Sanitize:      cfg.SanitizeOutput,
	})
	catalogUseCase := usecase.NewCatalogUseCase(store)
	logger.Info("✅ use cases ready")

	// 4. HTTP
	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := rest.NewRouter(rest.RouterConfig{
		Handler:        rest.NewHandler(chatUseCase, catalogUseCase),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🤖 listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ server error", "error", err)
			cancel()
		}
	}()

	// Wait for a signal
	<-ctx.Done()
	logger.Info("⏳ shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ graceful shutdown failed", "error", err)
	}
	logger.Info("✅ stopped")
}

func newCompletion(ctx context.Context, cfg *config.Config) (repository.CompletionRepository, error) {
	if cfg.APIKey() == "" {
		logger.Warn("⚠️ no API key configured, completion calls will fail", "provider", cfg.Provider)
		return unavailableCompletion{provider: cfg.Provider}, nil
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return openai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	}
}

// withCache wraps completion when CACHE_TTL is set; redis when reachable, memory otherwise
func withCache(ctx context.Context, cfg *config.Config, completion repository.CompletionRepository) repository.CompletionRepository {
	if cfg.CacheTTL <= 0 {
		return completion
	}
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		rdb, err := cache.DialRedis(pingCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			logger.Info("✅ response cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
			return cache.NewCachedCompletion(completion, cache.NewRedisCache(rdb, cfg.CacheTTL))
		}
		logger.Warn("⚠️ redis unavailable, using in-memory cache", "error", err)
	}
	mc := cache.NewMemoryCache(cfg.CacheTTL, cache.DefaultMaxSize)
	go mc.Cleanup(ctx)
	logger.Info("✅ response cache: memory", "ttl", cfg.CacheTTL)
	return cache.NewCachedCompletion(completion, mc)
}

// unavailableCompletion stands in for a backend without credentials
type unavailableCompletion struct {
	provider string
}

func (u unavailableCompletion) Complete(context.Context, []entity.ChatMessage, entity.CompletionParams) (string, error) {
	return "", fmt.Errorf("%s: %w", u.provider, entity.ErrMissingConfiguration)
}
