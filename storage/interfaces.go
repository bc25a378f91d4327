package storage

import (
	"context"

	"github.com/poiesic/sift/core"
)

// ProfileRepository provides durable storage of profiles keyed by identity.
// Implementations must be thread-safe and support concurrent access.
type ProfileRepository interface {
	// PutProfile inserts or replaces the profile stored for its identity.
	// Sets InsertedAt on first write and UpdatedAt on every write.
	// Returns the stored profile with timestamps populated.
	PutProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error)

	// GetProfile retrieves a profile by identity.
	// Returns ErrNotFound if no profile is stored for the identity.
	GetProfile(ctx context.Context, identity core.Identity) (*core.Profile, error)

	// DeleteProfile removes a profile by identity.
	// Returns ErrNotFound if no profile is stored for the identity.
	DeleteProfile(ctx context.Context, identity core.Identity) error

	// AllProfiles enumerates every stored profile, in identity key order.
	AllProfiles(ctx context.Context) ([]*core.Profile, error)

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}

// VectorIndex stores one embedding per (view, identity) pair and answers
// nearest-neighbor queries against a single view.
// Implementations must be thread-safe: upserts to distinct identities are
// independent, upserting the same identity twice leaves exactly one stored
// entry (last write wins), and a query never observes a partially written
// entry. DeleteAll must not run concurrently with upserts to the same view.
type VectorIndex interface {
	// Upsert inserts or replaces the entry stored for (entry.View,
	// entry.Identity).
	Upsert(ctx context.Context, entry *core.VectorEntry) error

	// FindNearest returns up to limit candidates from one view, ordered by
	// similarity score descending. Equal scores are ordered by identity
	// ascending so that results are reproducible.
	FindNearest(ctx context.Context, view core.View, vector []float32, limit int) ([]core.Candidate, error)

	// Count returns the number of distinct identities stored in a view.
	Count(ctx context.Context, view core.View) (int, error)

	// DeleteAll removes every entry of a view. The operation is atomic from
	// the caller's perspective; on failure, rebuilding the view from the
	// profile repository is always a safe recovery.
	DeleteAll(ctx context.Context, view core.View) error

	// Close releases resources held by the index.
	Close() error
}
