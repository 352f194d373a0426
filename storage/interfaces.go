package storage

import (
	"context"

	"github.com/poiesic/faqmatch/core"
)

// VectorCache stores precomputed question embeddings between process runs.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// Get retrieves a cached vector record by content ID.
	// Returns ErrNotFound if no record exists for the ID.
	Get(ctx context.Context, id core.ID) (*core.VectorRecord, error)

	// Put stores a vector record, overwriting any existing record with the
	// same ID.
	Put(ctx context.Context, record *core.VectorRecord) error

	// Close closes the cache and releases resources.
	Close() error
}
