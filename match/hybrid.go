package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/faqmatch/ai"
	"github.com/poiesic/faqmatch/core"
)

// defaultHybridAlpha weights semantic similarity against lexical overlap.
const defaultHybridAlpha = 0.7

// HybridStrategy blends semantic similarity with lexical overlap:
//
//	score = alpha*semantic + (1-alpha)*(overlap/queryTerms)
//
// The lexical component is normalized to [0, 1] by the query's own term
// count, so both components live on comparable scales. When the embedder is
// unavailable the strategy degrades to the lexical fraction alone rather
// than failing the query.
type HybridStrategy struct {
	semantic *SemanticStrategy
	lexical  *LexicalStrategy
	alpha    float32
	logger   *slog.Logger
}

var _ Strategy = (*HybridStrategy)(nil)

// HybridOption configures a HybridStrategy.
type HybridOption func(*HybridStrategy) error

// WithHybridAlpha sets the semantic weight. Must be in [0, 1].
func WithHybridAlpha(alpha float32) HybridOption {
	return func(s *HybridStrategy) error {
		if alpha < 0 || alpha > 1 {
			return fmt.Errorf("%w: %v", ErrAlphaOutOfRange, alpha)
		}
		s.alpha = alpha
		return nil
	}
}

// WithHybridLogger sets a custom logger.
// Default is slog.Default().
func WithHybridLogger(logger *slog.Logger) HybridOption {
	return func(s *HybridStrategy) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewHybridStrategy combines the two component strategies. Both must be
// built over the same entry slice so their candidates stay index-aligned.
func NewHybridStrategy(semantic *SemanticStrategy, lexical *LexicalStrategy, opts ...HybridOption) (*HybridStrategy, error) {
	if semantic == nil || lexical == nil {
		return nil, ErrStrategyRequired
	}

	s := &HybridStrategy{
		semantic: semantic,
		lexical:  lexical,
		alpha:    defaultHybridAlpha,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Name implements Strategy.
func (s *HybridStrategy) Name() string {
	return StrategyHybrid
}

// NormalizeQuery lowercases and trims the query.
func (s *HybridStrategy) NormalizeQuery(query string) string {
	return normalizeText(query)
}

// Score returns the blended score for one entry.
func (s *HybridStrategy) Score(ctx context.Context, query string, entryID int) (float32, error) {
	lexScore, err := s.lexical.Score(ctx, query, entryID)
	if err != nil {
		return 0, err
	}
	lexFraction := s.lexicalFraction(lexScore, s.lexical.queryTermCount(query))

	semScore, err := s.semantic.Score(ctx, query, entryID)
	if err != nil {
		if errors.Is(err, ai.ErrEmbeddingUnavailable) {
			s.logger.Warn("embedder unavailable, scoring lexically", "err", err)
			return lexFraction, nil
		}
		return 0, err
	}

	return s.alpha*semScore + (1-s.alpha)*lexFraction, nil
}

// ScoreAll blends the two component rankings. Both components return
// index-aligned candidates, so the blend is a positional merge.
func (s *HybridStrategy) ScoreAll(ctx context.Context, query string) ([]core.ScoredCandidate, error) {
	lexCandidates, err := s.lexical.ScoreAll(ctx, query)
	if err != nil {
		return nil, err
	}
	queryTerms := s.lexical.queryTermCount(query)

	semCandidates, err := s.semantic.ScoreAll(ctx, query)
	if err != nil {
		if errors.Is(err, ai.ErrEmbeddingUnavailable) {
			s.logger.Warn("embedder unavailable, scoring lexically", "err", err)
			for i := range lexCandidates {
				lexCandidates[i].Score = s.lexicalFraction(lexCandidates[i].Score, queryTerms)
			}
			return lexCandidates, nil
		}
		return nil, err
	}

	out := make([]core.ScoredCandidate, len(lexCandidates))
	for i := range lexCandidates {
		lexFraction := s.lexicalFraction(lexCandidates[i].Score, queryTerms)
		out[i] = core.ScoredCandidate{
			EntryID: lexCandidates[i].EntryID,
			Score:   s.alpha*semCandidates[i].Score + (1-s.alpha)*lexFraction,
		}
	}
	return out, nil
}

// lexicalFraction scales a raw overlap count into [0, 1] by the number of
// scorable terms in the query. A term-free query contributes 0.
func (s *HybridStrategy) lexicalFraction(overlap float32, queryTerms int) float32 {
	if queryTerms == 0 {
		return 0
	}
	return overlap / float32(queryTerms)
}
