package match

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/faqmatch/ai"
	"github.com/poiesic/faqmatch/core"
	"github.com/poiesic/faqmatch/kb"
)

// Default thresholds per strategy. A candidate must score strictly above the
// threshold to match; equal-to-threshold scores fall through to the fallback
// response. The lexical threshold of 0 means any shared term is enough.
var defaultThresholds = map[string]float32{
	StrategySemantic: 0.70,
	StrategyLexical:  0,
	StrategyHybrid:   0.70,
}

// snapshot is the immutable view an Engine serves queries from. Swapping in
// a new snapshot atomically replaces the store and both strategies at once,
// so readers never observe a store paired with stale strategies.
type snapshot struct {
	store    *kb.Store
	strategy Strategy
	fallback Strategy
}

// Engine matches queries against a knowledge base using a primary scoring
// strategy, optionally retrying with a fallback strategy when the primary
// fails on embedder errors. Safe for concurrent use; Swap replaces the
// knowledge base and strategies without blocking in-flight queries.
type Engine struct {
	snap       atomic.Pointer[snapshot]
	thresholds map[string]float32
	logger     *slog.Logger

	// fallback holds the initial fallback strategy between option
	// application and the first snapshot store in NewEngine. After
	// construction the snapshot owns it; Swap replaces it.
	fallback Strategy
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithThreshold overrides the match threshold for a strategy name.
func WithThreshold(strategyName string, threshold float32) Option {
	return func(e *Engine) error {
		e.thresholds[strategyName] = threshold
		return nil
	}
}

// WithFallback installs a strategy retried when the primary fails with an
// embedder error. It must be built over the same entries as the primary.
func WithFallback(fallback Strategy) Option {
	return func(e *Engine) error {
		e.fallback = fallback
		return nil
	}
}

// NewEngine builds an engine over the store and primary strategy. Both may
// be nil together, producing an engine that answers every query with a
// no-match result; a non-empty store without a strategy is an error.
func NewEngine(store *kb.Store, strategy Strategy, opts ...Option) (*Engine, error) {
	if store.Len() > 0 && strategy == nil {
		return nil, ErrStrategyRequired
	}

	e := &Engine{
		thresholds: make(map[string]float32, len(defaultThresholds)),
		logger:     slog.Default(),
	}
	for name, threshold := range defaultThresholds {
		e.thresholds[name] = threshold
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.snap.Store(&snapshot{store: store, strategy: strategy, fallback: e.fallback})
	return e, nil
}

// Threshold returns the effective threshold for a strategy name.
func (e *Engine) Threshold(strategyName string) float32 {
	return e.thresholds[strategyName]
}

// Store returns the knowledge base the engine currently serves from.
func (e *Engine) Store() *kb.Store {
	return e.snap.Load().store
}

// Swap atomically replaces the knowledge base and strategies. In-flight
// queries finish against the snapshot they started with.
func (e *Engine) Swap(store *kb.Store, strategy, fallback Strategy) error {
	if store.Len() > 0 && strategy == nil {
		return ErrStrategyRequired
	}
	e.snap.Store(&snapshot{store: store, strategy: strategy, fallback: fallback})
	return nil
}

// Match scores the query against every entry and decides whether the best
// candidate clears the threshold. Returns a no-match result, never an error,
// when the knowledge base is empty; embedder failures are retried with the
// fallback strategy before surfacing.
func (e *Engine) Match(ctx context.Context, query string) (core.MatchResult, error) {
	result, _, err := e.MatchEntry(ctx, query)
	return result, err
}

// MatchEntry matches like Match and also resolves the winning entry against
// the same snapshot the decision was made on, so a concurrent Swap can never
// pair a matched ID with a different knowledge base. The entry is zero when
// the result is not a match.
func (e *Engine) MatchEntry(ctx context.Context, query string) (core.MatchResult, core.Entry, error) {
	snap := e.snap.Load()

	if snap.store.Len() == 0 || snap.strategy == nil {
		e.logger.Info("match decision",
			"query", normalizeText(query),
			"strategy", "none",
			"question", "none",
			"decision", "fallback")
		return core.NewNoMatchUnscored(), core.Entry{}, nil
	}

	strategy := snap.strategy
	candidates, err := strategy.ScoreAll(ctx, query)
	if err != nil {
		if snap.fallback == nil || !errors.Is(err, ai.ErrEmbeddingUnavailable) {
			return core.MatchResult{}, core.Entry{}, err
		}
		e.logger.Warn("primary strategy failed, retrying with fallback",
			"primary", strategy.Name(),
			"fallback", snap.fallback.Name(),
			"err", err)
		strategy = snap.fallback
		candidates, err = strategy.ScoreAll(ctx, query)
		if err != nil {
			return core.MatchResult{}, core.Entry{}, err
		}
	}

	if len(candidates) == 0 {
		return core.NewNoMatchUnscored(), core.Entry{}, nil
	}

	// Strict > keeps the first of equal scores, so ties break toward the
	// lowest entry ID.
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	threshold := e.Threshold(strategy.Name())
	normalized := strategy.NormalizeQuery(query)

	if best.Score > threshold {
		entry, ok := snap.store.Entry(best.EntryID)
		if !ok {
			return core.MatchResult{}, core.Entry{}, ErrEntryOutOfRange
		}
		e.logger.Info("match decision",
			"query", normalized,
			"strategy", strategy.Name(),
			"question", entry.Question,
			"score", best.Score,
			"threshold", threshold,
			"decision", "matched")
		return core.NewMatched(best.EntryID, best.Score), entry, nil
	}

	e.logger.Info("match decision",
		"query", normalized,
		"strategy", strategy.Name(),
		"question", "none",
		"score", best.Score,
		"threshold", threshold,
		"decision", "fallback")
	return core.NewNoMatch(best.Score), core.Entry{}, nil
}
