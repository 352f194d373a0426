package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/faqmatch/ai"
	"github.com/poiesic/faqmatch/core"
	"github.com/poiesic/faqmatch/storage"
)

// SemanticStrategy scores queries by cosine similarity between the query
// embedding and precomputed question embeddings. Scores range over [-1, 1];
// typical natural-language matches land in [0, 1].
type SemanticStrategy struct {
	embedder ai.Embedder
	entries  []core.Entry
	vectors  [][]float32 // unit question vectors, index-aligned with entries
	cache    storage.VectorCache
	model    string
	pool     *ants.Pool
	logger   *slog.Logger
}

var _ Strategy = (*SemanticStrategy)(nil)

// SemanticOption configures a SemanticStrategy.
type SemanticOption func(*SemanticStrategy) error

// WithSemanticCache reuses cached question embeddings keyed by model name and
// question text, so unchanged questions are not re-embedded across restarts.
func WithSemanticCache(cache storage.VectorCache, model string) SemanticOption {
	return func(s *SemanticStrategy) error {
		s.cache = cache
		s.model = model
		return nil
	}
}

// WithSemanticPool fans batch scoring out across the pool.
func WithSemanticPool(pool *ants.Pool) SemanticOption {
	return func(s *SemanticStrategy) error {
		s.pool = pool
		return nil
	}
}

// WithSemanticLogger sets a custom logger.
// Default is slog.Default().
func WithSemanticLogger(logger *slog.Logger) SemanticOption {
	return func(s *SemanticStrategy) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSemanticStrategy builds the strategy over the given entries, embedding
// every question up front (one batch call, cache permitting). Construction
// fails with an error wrapping ai.ErrEmbeddingUnavailable when the embedder
// cannot supply the question vectors.
func NewSemanticStrategy(ctx context.Context, embedder ai.Embedder, entries []core.Entry, opts ...SemanticOption) (*SemanticStrategy, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &SemanticStrategy{
		embedder: embedder,
		entries:  entries,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.buildVectors(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// buildVectors fills s.vectors with unit question embeddings, consulting the
// cache first and embedding only the misses in a single batch.
func (s *SemanticStrategy) buildVectors(ctx context.Context) error {
	s.vectors = make([][]float32, len(s.entries))

	missing := make([]int, 0, len(s.entries))
	for i, entry := range s.entries {
		if s.cache == nil {
			missing = append(missing, i)
			continue
		}
		record, err := s.cache.Get(ctx, s.vectorID(entry.Question))
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("embedding cache read failed", "entry", entry.ID, "err", err)
			}
			missing = append(missing, i)
			continue
		}
		s.vectors[i] = normalizeVector(record.Vector)
	}

	if len(missing) == 0 {
		return nil
	}

	texts := make([]string, len(missing))
	for j, i := range missing {
		texts[j] = normalizeText(s.entries[i].Question)
	}

	embedded, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding %d questions: %w", ai.ErrEmbeddingUnavailable, len(texts), err)
	}
	if len(embedded) != len(missing) {
		return fmt.Errorf("%w: got %d vectors for %d questions", ai.ErrEmbeddingUnavailable, len(embedded), len(missing))
	}

	for j, i := range missing {
		vector := embedded[j]
		if len(vector) == 0 {
			return fmt.Errorf("%w: empty vector for entry %d", ai.ErrEmbeddingUnavailable, s.entries[i].ID)
		}
		s.vectors[i] = normalizeVector(vector)

		if s.cache != nil {
			record := &core.VectorRecord{
				Id:       s.vectorID(s.entries[i].Question),
				Model:    s.model,
				Vector:   vector,
				CachedAt: time.Now().UTC(),
			}
			if err := s.cache.Put(ctx, record); err != nil {
				s.logger.Warn("embedding cache write failed", "entry", s.entries[i].ID, "err", err)
			}
		}
	}

	return nil
}

// vectorID derives the cache key for a question under the configured model.
func (s *SemanticStrategy) vectorID(question string) core.ID {
	return core.IDFromContent(s.model + "\x00" + normalizeText(question))
}

// Name implements Strategy.
func (s *SemanticStrategy) Name() string {
	return StrategySemantic
}

// NormalizeQuery lowercases and trims the query, matching the normalization
// applied to the stored questions.
func (s *SemanticStrategy) NormalizeQuery(query string) string {
	return normalizeText(query)
}

// Score returns the cosine similarity between the query and one entry.
func (s *SemanticStrategy) Score(ctx context.Context, query string, entryID int) (float32, error) {
	if entryID < 0 || entryID >= len(s.entries) {
		return 0, fmt.Errorf("%w: %d", ErrEntryOutOfRange, entryID)
	}

	queryVector, err := s.embedQuery(ctx, query)
	if err != nil {
		return 0, err
	}
	return dotProduct(queryVector, s.vectors[entryID]), nil
}

// ScoreAll embeds the query once and scores it against every entry.
func (s *SemanticStrategy) ScoreAll(ctx context.Context, query string) ([]core.ScoredCandidate, error) {
	queryVector, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	return scoreCandidates(s.pool, len(s.entries), func(i int) float32 {
		return dotProduct(queryVector, s.vectors[i])
	}), nil
}

// embedQuery returns the unit embedding of the normalized query.
// A zero-norm embedding stays a zero vector and scores 0 everywhere.
func (s *SemanticStrategy) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := s.embedder.EmbedText(ctx, s.NormalizeQuery(query))
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", ai.ErrEmbeddingUnavailable, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", ai.ErrEmbeddingUnavailable)
	}
	return normalizeVector(vector), nil
}
