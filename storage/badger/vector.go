package badger

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// VectorIndex implements storage.VectorIndex for BadgerDB. Each view lives
// under its own key prefix, so the two collections are fully independent.
type VectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a vector index backed by the given backend.
//
// Returns storage.VectorIndex interface to enforce abstraction.
func NewVectorIndex(backend *Backend) storage.VectorIndex {
	return &VectorIndex{
		backend: backend,
		logger:  slog.Default().With("component", "vector-index"),
	}
}

// Upsert inserts or replaces the entry stored for (entry.View,
// entry.Identity). The write is a single Set on one key: concurrent upserts
// to distinct identities never interfere, and two upserts of the same
// identity resolve last-write-wins.
func (v *VectorIndex) Upsert(ctx context.Context, entry *core.VectorEntry) error {
	if err := core.ValidateView(entry.View); err != nil {
		return err
	}
	if len(entry.Vector) == 0 {
		return storage.ErrInvalidQuery
	}
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	entry.UpdatedAt = time.Now().UTC()
	key := makeVectorKey(entry.View, core.IDFromIdentity(entry.Identity))

	return v.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(key, storage.MarshalVectorEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// FindNearest returns up to limit candidates from one view, ordered by
// cosine similarity descending. Vectors are assumed L2-normalized by the
// embedder, so the dot product is the cosine. Equal scores are broken by
// identity ascending, which keeps query results reproducible.
func (v *VectorIndex) FindNearest(ctx context.Context, view core.View, vector []float32, limit int) ([]core.Candidate, error) {
	if err := core.ValidateView(view); err != nil {
		return nil, err
	}
	if v.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if limit <= 0 {
		return []core.Candidate{}, nil
	}

	var candidates []core.Candidate
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeViewPrefix(view)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var entry *core.VectorEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			candidates = append(candidates, core.Candidate{
				Identity: entry.Identity,
				Score:    dotProduct(vector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Best score first, identity ascending on ties.
	slices.SortFunc(candidates, func(a, b core.Candidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(string(a.Identity), string(b.Identity))
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Count returns the number of distinct identities stored in a view.
func (v *VectorIndex) Count(ctx context.Context, view core.View) (int, error) {
	if err := core.ValidateView(view); err != nil {
		return 0, err
	}
	if v.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeViewPrefix(view)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll removes every entry of a view via a prefix drop. Badger applies
// the drop without exposing intermediate state to readers; should it fail
// midway, the view can always be rebuilt from the profile repository.
func (v *VectorIndex) DeleteAll(ctx context.Context, view core.View) error {
	if err := core.ValidateView(view); err != nil {
		return err
	}
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	v.logger.Info("clearing view", "view", string(view))
	return v.backend.DropPrefix(makeViewPrefix(view))
}

// Close is a no-op; the shared backend owns the database handle.
func (v *VectorIndex) Close() error {
	return nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
