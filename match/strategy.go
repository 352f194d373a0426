package match

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/faqmatch/core"
)

// Strategy names, used to select per-strategy thresholds.
const (
	StrategySemantic = "semantic"
	StrategyLexical  = "lexical"
	StrategyHybrid   = "hybrid"
)

// Strategy scores a query against the knowledge base entries it was built
// over. Implementations are stateless with respect to a given query: repeated
// calls with identical inputs return identical scores. Per-entry features
// (question embeddings, term sets) are precomputed once at construction and
// shared across queries, so a Strategy is safe for concurrent use.
type Strategy interface {
	// Name identifies the strategy for threshold selection and logging.
	Name() string

	// NormalizeQuery applies the strategy's query normalization rules.
	NormalizeQuery(query string) string

	// Score returns the similarity between the query and a single entry.
	Score(ctx context.Context, query string, entryID int) (float32, error)

	// ScoreAll returns one candidate per entry, index-aligned with the
	// entries the strategy was built over.
	ScoreAll(ctx context.Context, query string) ([]core.ScoredCandidate, error)
}

// Entries below this count are scored inline; the pool submission overhead
// is not worth it for a handful of dot products.
const parallelMinEntries = 64

// scoreCandidates evaluates score(i) for every entry, fanning out across the
// pool when one is configured. Each goroutine writes a disjoint slice index,
// so no locking is needed, and the reduce over the result is deterministic
// regardless of completion order.
func scoreCandidates(pool *ants.Pool, n int, score func(i int) float32) []core.ScoredCandidate {
	out := make([]core.ScoredCandidate, n)

	if pool == nil || n < parallelMinEntries {
		for i := 0; i < n; i++ {
			out[i] = core.ScoredCandidate{EntryID: i, Score: score(i)}
		}
		return out
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			out[i] = core.ScoredCandidate{EntryID: i, Score: score(i)}
		}
		if err := pool.Submit(task); err != nil {
			// Pool rejected the task (released or overloaded); score inline.
			task()
		}
	}
	wg.Wait()
	return out
}
