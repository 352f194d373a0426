package match

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/faqmatch/core"
)

// LexicalStrategy scores queries by the number of stemmed, stop-word-filtered
// terms shared with each stored question. Scores are non-negative whole
// numbers; a query with no terms in common with any question scores 0
// everywhere. Unlike SemanticStrategy it needs no embedder, which makes it a
// natural fallback when embeddings are unavailable.
type LexicalStrategy struct {
	entries []core.Entry
	sets    []map[string]bool // stemmed term sets, index-aligned with entries
	pool    *ants.Pool
}

var _ Strategy = (*LexicalStrategy)(nil)

// LexicalOption configures a LexicalStrategy.
type LexicalOption func(*LexicalStrategy) error

// WithLexicalPool fans batch scoring out across the pool.
func WithLexicalPool(pool *ants.Pool) LexicalOption {
	return func(s *LexicalStrategy) error {
		s.pool = pool
		return nil
	}
}

// NewLexicalStrategy builds the strategy over the given entries, precomputing
// each question's term set once.
func NewLexicalStrategy(entries []core.Entry, opts ...LexicalOption) (*LexicalStrategy, error) {
	s := &LexicalStrategy{
		entries: entries,
		sets:    make([]map[string]bool, len(entries)),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	for i, entry := range entries {
		s.sets[i] = termSet(entry.Question)
	}

	return s, nil
}

// Name implements Strategy.
func (s *LexicalStrategy) Name() string {
	return StrategyLexical
}

// NormalizeQuery lowercases and trims the query. Tokenization, stop-word
// filtering, and stemming happen during scoring.
func (s *LexicalStrategy) NormalizeQuery(query string) string {
	return normalizeText(query)
}

// Score returns the term overlap between the query and one entry.
func (s *LexicalStrategy) Score(_ context.Context, query string, entryID int) (float32, error) {
	if entryID < 0 || entryID >= len(s.entries) {
		return 0, fmt.Errorf("%w: %d", ErrEntryOutOfRange, entryID)
	}
	return float32(overlapCount(termSet(query), s.sets[entryID])), nil
}

// ScoreAll tokenizes the query once and counts its overlap with every entry.
func (s *LexicalStrategy) ScoreAll(_ context.Context, query string) ([]core.ScoredCandidate, error) {
	queryTerms := termSet(query)

	return scoreCandidates(s.pool, len(s.entries), func(i int) float32 {
		return float32(overlapCount(queryTerms, s.sets[i]))
	}), nil
}

// queryTermCount reports how many scorable terms the query carries, used by
// HybridStrategy to turn raw overlap into a fraction.
func (s *LexicalStrategy) queryTermCount(query string) int {
	return len(termSet(query))
}
