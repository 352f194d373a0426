package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/faqmatch/core"
	"github.com/poiesic/faqmatch/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a new VectorCache on the given backend.
func NewVectorCache(backend *Backend) *VectorCache {
	return &VectorCache{backend: backend}
}

// Get retrieves a cached vector record by content ID.
func (c *VectorCache) Get(ctx context.Context, id core.ID) (*core.VectorRecord, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.VectorRecord
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalVectorRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Put stores a vector record, overwriting any existing record with the same ID.
func (c *VectorCache) Put(ctx context.Context, record *core.VectorRecord) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		value := storage.MarshalVectorRecord(record)
		if err := tx.Set(makeVectorKey(record.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (c *VectorCache) Close() error {
	return c.backend.Close()
}
