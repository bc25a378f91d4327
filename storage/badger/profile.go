package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// ProfileStore implements storage.ProfileRepository for BadgerDB.
type ProfileStore struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileStore)(nil)

// NewProfileStore creates a profile repository backed by the given backend.
//
// Returns storage.ProfileRepository interface to enforce abstraction.
func NewProfileStore(backend *Backend) storage.ProfileRepository {
	return &ProfileStore{backend: backend}
}

// PutProfile inserts or replaces the profile stored for its identity.
func (s *ProfileStore) PutProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error) {
	if err := core.ValidateProfile(profile); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	key := makeProfileKey(core.IDFromIdentity(profile.Identity()))
	now := time.Now().UTC()

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		old, err := s.readProfile(tx, key)
		if err != nil {
			return err
		}

		if old != nil {
			profile.InsertedAt = old.InsertedAt
		} else {
			profile.InsertedAt = now
		}
		profile.UpdatedAt = now

		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile retrieves a profile by identity.
func (s *ProfileStore) GetProfile(ctx context.Context, identity core.Identity) (*core.Profile, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var profile *core.Profile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		profile, err = s.readProfile(tx, makeProfileKey(core.IDFromIdentity(identity)))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, storage.ErrNotFound
	}
	return profile, nil
}

// DeleteProfile removes a profile by identity.
func (s *ProfileStore) DeleteProfile(ctx context.Context, identity core.Identity) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	key := makeProfileKey(core.IDFromIdentity(identity))
	return s.backend.WithTx(func(tx *badger.Txn) error {
		old, err := s.readProfile(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AllProfiles enumerates every stored profile.
func (s *ProfileStore) AllProfiles(ctx context.Context) ([]*core.Profile, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var profiles []*core.Profile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// CountProfiles returns the number of stored profiles.
func (s *ProfileStore) CountProfiles(ctx context.Context) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
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

// Close is a no-op; the shared backend owns the database handle.
func (s *ProfileStore) Close() error {
	return nil
}

// readProfile reads and unmarshals a profile inside a transaction.
// Returns nil without error when the key does not exist.
func (s *ProfileStore) readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
