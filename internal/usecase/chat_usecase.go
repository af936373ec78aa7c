package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/internal/domain/repository"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
)

// ChatUseCase per-turn pipeline: rank, resolve, assemble, complete, post-process
type ChatUseCase interface {
	ProcessMessage(ctx context.Context, req entity.ChatRequest) (*entity.Reply, error)
}

// ChatOptions tunables of the chat pipeline
type ChatOptions struct {
	Params        entity.CompletionParams
	MaxCandidates int
	Timeout       time.Duration
	StyleHints    bool
	Sanitize      bool
	// Rand source for style hints; seeded from the clock when nil
	Rand *rand.Rand
	// Resolver defaults to NewResolver(nil)
	Resolver *Resolver
}

type chatUseCase struct {
	completion repository.CompletionRepository
	catalogs   repository.CatalogRepository
	resolver   *Resolver
	post       PostProcessor

	params        entity.CompletionParams
	maxCandidates int
	timeout       time.Duration
	styleHints    bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewChatUseCase wires the pipeline; zero options fall back to constants
func NewChatUseCase(
	completion repository.CompletionRepository,
	catalogs repository.CatalogRepository,
	opts ChatOptions,
) ChatUseCase {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = constants.DefaultMaxCandidates
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.AITimeout
	}
	if opts.Resolver == nil {
		opts.Resolver = NewResolver(nil)
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &chatUseCase{
		completion:    completion,
		catalogs:      catalogs,
		resolver:      opts.Resolver,
		post:          NewPostProcessor(opts.Sanitize),
		params:        opts.Params,
		maxCandidates: opts.MaxCandidates,
		timeout:       opts.Timeout,
		styleHints:    opts.StyleHints,
		rng:           opts.Rand,
	}
}

// ProcessMessage runs one turn. On completion failure the returned reply
// carries the fallback apology and the error wraps entity.ErrUpstream.
func (u *chatUseCase) ProcessMessage(ctx context.Context, req entity.ChatRequest) (*entity.Reply, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, entity.ErrEmptyMessage
	}

	snap := u.catalogs.Snapshot()
	turn := u.buildTurn(text, req.History, snap.Catalog)

	reply := &entity.Reply{
		Meta: entity.ReplyMeta{
			Model:        u.params.Model,
			SourcesTotal: snap.Knowledge.SourceCount(),
			Candidates:   len(turn.RankedCandidates),
		},
	}
	if e := turn.ResolvedEntity; e != nil {
		id := e.ID
		reply.ProductID = &id
		reply.Image = e.Image
	}

	// the price override discards model output, so the call is skipped
	if turn.GenericFollowUp && turn.ResolvedEntity != nil {
		logger.Debug("price follow-up answered from catalog", "product_id", turn.ResolvedEntity.ID)
		reply.Text = u.post.Process("", turn.ResolvedEntity, true)
		return reply, nil
	}

	var opts []AssembleOption
	if u.styleHints {
		opts = append(opts, WithStyleHint(u.chooseStyle()))
	}
	messages := AssembleContext(snap.Prompt, snap.Knowledge.Text(), turn.RankedCandidates, turn.History, turn.UserMessage, opts...)

	callCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	started := time.Now()
	raw, err := u.completion.Complete(callCtx, messages, u.params)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		logger.Error("❌ completion failed", "error", err, "elapsed", time.Since(started))
		reply.Text = constants.FallbackReply
		reply.ProductID = nil
		reply.Image = nil
		return reply, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}
	logger.Debug("completion ok", "elapsed", time.Since(started), "messages", len(messages))

	reply.Text = u.post.Process(raw, turn.ResolvedEntity, turn.GenericFollowUp)
	return reply, nil
}

// buildTurn everything up to the completion call; pure in its inputs
func (u *chatUseCase) buildTurn(text string, history []entity.HistoryEntry, catalog *entity.Catalog) entity.TurnContext {
	turn := entity.TurnContext{
		UserMessage: text,
		History:     WindowHistory(history, constants.HistoryWindow),
	}
	turn.RankedCandidates = Rank(text, catalog, u.maxCandidates)
	turn.GenericFollowUp = u.resolver.IsGenericFollowUp(text)
	turn.ResolvedEntity = u.resolver.Resolve(text, turn.History, turn.RankedCandidates, catalog)
	return turn
}

func (u *chatUseCase) chooseStyle() string {
	u.rngMu.Lock()
	defer u.rngMu.Unlock()
	return ChooseStyle(u.rng)
}
