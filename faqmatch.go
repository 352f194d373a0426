// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package faqmatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/faqmatch/ai"
	"github.com/poiesic/faqmatch/ai/openai"
	"github.com/poiesic/faqmatch/core"
	"github.com/poiesic/faqmatch/kb"
	"github.com/poiesic/faqmatch/match"
	"github.com/poiesic/faqmatch/respond"
	"github.com/poiesic/faqmatch/storage"
	"github.com/poiesic/faqmatch/storage/badger"
)

// ErrUnknownStrategy is returned when the configured strategy name is not
// one of semantic, lexical, or hybrid.
var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// Assistant is the top-level facade: it loads the knowledge base, builds the
// scoring strategies over it, and answers queries with composed response
// bundles. Safe for concurrent use.
type Assistant struct {
	kbPath   string
	engine   *match.Engine
	selector *respond.Selector
	embedder ai.Embedder
	cache    storage.VectorCache
	pool     *ants.Pool
	options  *assistantOptions
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig        *ai.Config
	cachePath       string
	strategy        string
	alpha           float32
	hasAlpha        bool
	thresholds      map[string]float32
	embedder        ai.Embedder
	selectorOpts    []respond.SelectorOption
	poolSize        int
	lexicalFallback bool
	logger          *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithCachePath enables the on-disk embedding cache at the given directory.
func WithCachePath(path string) AssistantOption {
	return func(o *assistantOptions) {
		o.cachePath = path
	}
}

// WithStrategy selects the scoring strategy by name: match.StrategySemantic,
// match.StrategyLexical, or match.StrategyHybrid. Default is semantic.
func WithStrategy(name string) AssistantOption {
	return func(o *assistantOptions) {
		o.strategy = name
	}
}

// WithAlpha sets the hybrid strategy's semantic weight.
func WithAlpha(alpha float32) AssistantOption {
	return func(o *assistantOptions) {
		o.alpha = alpha
		o.hasAlpha = true
	}
}

// WithThreshold overrides the match threshold for a strategy name.
func WithThreshold(strategyName string, threshold float32) AssistantOption {
	return func(o *assistantOptions) {
		o.thresholds[strategyName] = threshold
	}
}

// WithEmbedder injects an embedder, bypassing the OpenAI-compatible client.
// Used in tests with the mock embedder.
func WithEmbedder(embedder ai.Embedder) AssistantOption {
	return func(o *assistantOptions) {
		o.embedder = embedder
	}
}

// WithSelectorOptions forwards options to the response selector.
func WithSelectorOptions(opts ...respond.SelectorOption) AssistantOption {
	return func(o *assistantOptions) {
		o.selectorOpts = append(o.selectorOpts, opts...)
	}
}

// WithPoolSize enables parallel scoring on a worker pool of the given size.
func WithPoolSize(size int) AssistantOption {
	return func(o *assistantOptions) {
		o.poolSize = size
	}
}

// WithoutLexicalFallback disables the lexical retry used when the semantic
// strategy fails on embedder errors.
func WithoutLexicalFallback() AssistantOption {
	return func(o *assistantOptions) {
		o.lexicalFallback = false
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

func newOptions(opts ...AssistantOption) *assistantOptions {
	options := &assistantOptions{
		aiConfig:        ai.DefaultConfig(),
		strategy:        match.StrategySemantic,
		thresholds:      make(map[string]float32),
		lexicalFallback: true,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// New builds an assistant over the knowledge base document at kbPath.
// Loading and validating the document, embedding its questions, and opening
// the cache all happen here; a schema error in the document fails the whole
// construction. Callers that want to keep serving fallback responses when
// the knowledge base is unusable should fall back to NewFallbackOnly.
func New(ctx context.Context, kbPath string, opts ...AssistantOption) (*Assistant, error) {
	options := newOptions(opts...)

	store, err := kb.LoadFile(kbPath)
	if err != nil {
		return nil, err
	}

	a := &Assistant{
		kbPath:  kbPath,
		options: options,
		logger:  options.logger,
	}

	selectorOpts := append([]respond.SelectorOption{respond.WithLogger(options.logger)}, options.selectorOpts...)
	selector, err := respond.NewSelector(selectorOpts...)
	if err != nil {
		return nil, err
	}
	a.selector = selector

	if options.poolSize > 0 {
		pool, err := ants.NewPool(options.poolSize)
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}

	if options.cachePath != "" {
		backend, err := badger.OpenBackend(options.cachePath, false)
		if err != nil {
			a.release()
			return nil, err
		}
		a.cache = badger.NewVectorCache(backend)
	}

	if options.strategy != match.StrategyLexical {
		a.embedder = options.embedder
		if a.embedder == nil {
			embedder, err := openai.NewEmbedder(options.aiConfig)
			if err != nil {
				a.release()
				return nil, err
			}
			a.embedder = embedder
		}
	}

	primary, fallback, err := a.buildStrategies(ctx, store.Entries())
	if err != nil {
		a.release()
		return nil, err
	}

	engineOpts := []match.Option{
		match.WithLogger(a.logger),
		match.WithFallback(fallback),
	}
	for name, threshold := range options.thresholds {
		engineOpts = append(engineOpts, match.WithThreshold(name, threshold))
	}
	engine, err := match.NewEngine(store, primary, engineOpts...)
	if err != nil {
		a.release()
		return nil, err
	}
	a.engine = engine

	a.logger.Info("assistant ready",
		"entries", store.Len(),
		"strategy", options.strategy,
		"cache", options.cachePath != "")
	return a, nil
}

// NewFallbackOnly builds an assistant with no knowledge base. Every query
// gets a fallback response; greetings and follow-ups work as usual. This is
// the degradation path for a missing or malformed knowledge base document.
func NewFallbackOnly(opts ...AssistantOption) (*Assistant, error) {
	options := newOptions(opts...)

	selectorOpts := append([]respond.SelectorOption{respond.WithLogger(options.logger)}, options.selectorOpts...)
	selector, err := respond.NewSelector(selectorOpts...)
	if err != nil {
		return nil, err
	}

	engine, err := match.NewEngine(nil, nil, match.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	options.logger.Warn("running without a knowledge base, all queries get fallback responses")
	return &Assistant{
		engine:   engine,
		selector: selector,
		options:  options,
		logger:   options.logger,
	}, nil
}

// buildStrategies constructs the configured primary strategy and, for the
// semantic strategy, the optional lexical retry strategy over the same
// entries.
func (a *Assistant) buildStrategies(ctx context.Context, entries []core.Entry) (match.Strategy, match.Strategy, error) {
	lexical, err := match.NewLexicalStrategy(entries, match.WithLexicalPool(a.pool))
	if err != nil {
		return nil, nil, err
	}

	if a.options.strategy == match.StrategyLexical {
		return lexical, nil, nil
	}

	semanticOpts := []match.SemanticOption{
		match.WithSemanticPool(a.pool),
		match.WithSemanticLogger(a.logger),
	}
	if a.cache != nil {
		semanticOpts = append(semanticOpts, match.WithSemanticCache(a.cache, a.options.aiConfig.EmbeddingModel))
	}
	semantic, err := match.NewSemanticStrategy(ctx, a.embedder, entries, semanticOpts...)
	if err != nil {
		return nil, nil, err
	}

	switch a.options.strategy {
	case match.StrategySemantic:
		if a.options.lexicalFallback {
			return semantic, lexical, nil
		}
		return semantic, nil, nil
	case match.StrategyHybrid:
		hybridOpts := []match.HybridOption{match.WithHybridLogger(a.logger)}
		if a.options.hasAlpha {
			hybridOpts = append(hybridOpts, match.WithHybridAlpha(a.options.alpha))
		}
		hybrid, err := match.NewHybridStrategy(semantic, lexical, hybridOpts...)
		if err != nil {
			return nil, nil, err
		}
		return hybrid, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, a.options.strategy)
	}
}

// Ask answers one query. The returned bundle is always usable as user-facing
// text: when matching fails outright (for example the embedder is down and
// no lexical retry is configured) the bundle carries a fallback line and the
// error is returned alongside for the caller to report.
func (a *Assistant) Ask(ctx context.Context, query string) (core.ResponseBundle, error) {
	// MatchEntry resolves the answer against the snapshot the decision was
	// made on; reading the store again here could observe a concurrent
	// reload and pair the matched ID with the wrong knowledge base.
	result, entry, err := a.engine.MatchEntry(ctx, query)
	if err != nil {
		a.logger.Error("match failed", "err", err)
		return a.selector.Compose(core.NewNoMatchUnscored(), ""), err
	}
	return a.selector.Compose(result, entry.Answer), nil
}

// Greeting returns a session-opening line.
func (a *Assistant) Greeting() string {
	return a.selector.Greeting()
}

// Store returns the knowledge base currently being served.
func (a *Assistant) Store() *kb.Store {
	return a.engine.Store()
}

// Reload re-reads the knowledge base document, rebuilds the strategies over
// it, and swaps the engine atomically. In-flight queries finish against the
// old knowledge base; a reload error leaves the old state serving.
func (a *Assistant) Reload(ctx context.Context) error {
	if a.kbPath == "" {
		return fmt.Errorf("%w: no knowledge base path configured", kb.ErrSchema)
	}

	store, err := kb.LoadFile(a.kbPath)
	if err != nil {
		return err
	}

	primary, fallback, err := a.buildStrategies(ctx, store.Entries())
	if err != nil {
		return err
	}

	if err := a.engine.Swap(store, primary, fallback); err != nil {
		return err
	}

	a.logger.Info("knowledge base reloaded", "entries", store.Len())
	return nil
}

// Close releases the worker pool and the embedding cache.
func (a *Assistant) Close() error {
	return a.release()
}

func (a *Assistant) release() error {
	if a.pool != nil {
		a.pool.Release()
		a.pool = nil
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("error closing embedding cache", "err", err)
			return err
		}
		a.cache = nil
	}
	return nil
}
