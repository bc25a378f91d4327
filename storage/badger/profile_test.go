package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_PutAndGet(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	profile := &core.Profile{
		Name:      "John Smith",
		Expertise: "hotel operations",
		Business:  "hospitality consulting",
		Hobbies:   []string{"sailing"},
		Contacts:  []string{"smithconsulting.com"},
		Source:    "badge_photo_17.jpg",
	}

	stored, err := profiles.PutProfile(ctx, profile)
	require.NoError(t, err)
	assert.False(t, stored.InsertedAt.IsZero())
	assert.False(t, stored.UpdatedAt.IsZero())

	loaded, err := profiles.GetProfile(ctx, core.Identity("John_Smith"))
	require.NoError(t, err)
	assert.Equal(t, "John Smith", loaded.Name)
	assert.Equal(t, "hospitality consulting", loaded.Business)
	assert.Equal(t, []string{"sailing"}, loaded.Hobbies)
	assert.Equal(t, "badge_photo_17.jpg", loaded.Source)
}

func TestProfileStore_UpsertByIdentity(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	first, err := profiles.PutProfile(ctx, &core.Profile{Name: "John Smith", Business: "hotels"})
	require.NoError(t, err)

	// A differently punctuated name normalizes to the same identity and
	// replaces the first record.
	_, err = profiles.PutProfile(ctx, &core.Profile{Name: "John  Smith!", Business: "restaurants"})
	require.NoError(t, err)

	count, err := profiles.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	loaded, err := profiles.GetProfile(ctx, core.Identity("John_Smith"))
	require.NoError(t, err)
	assert.Equal(t, "restaurants", loaded.Business)
	// Timestamps round-trip at microsecond precision.
	assert.WithinDuration(t, first.InsertedAt, loaded.InsertedAt, time.Millisecond)
	assert.False(t, loaded.UpdatedAt.Before(first.UpdatedAt.Truncate(time.Microsecond)))
}

func TestProfileStore_GetMissing(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = profiles.GetProfile(context.Background(), core.Identity("Nobody"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileStore_Delete(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = profiles.PutProfile(ctx, &core.Profile{Name: "John Smith"})
	require.NoError(t, err)

	require.NoError(t, profiles.DeleteProfile(ctx, core.Identity("John_Smith")))

	_, err = profiles.GetProfile(ctx, core.Identity("John_Smith"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = profiles.DeleteProfile(ctx, core.Identity("John_Smith"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileStore_AllProfiles(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	all, err := profiles.AllProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	names := []string{"Alice Cooper", "Bob Marley", "Carol King"}
	for _, name := range names {
		_, err := profiles.PutProfile(ctx, &core.Profile{Name: name})
		require.NoError(t, err)
	}

	all, err = profiles.AllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	seen := make(map[string]bool)
	for _, p := range all {
		seen[p.Name] = true
	}
	for _, name := range names {
		assert.True(t, seen[name], "missing profile %q", name)
	}
}

func TestProfileStore_InvalidProfile(t *testing.T) {
	profiles, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = profiles.PutProfile(context.Background(), &core.Profile{})
	assert.ErrorIs(t, err, core.ErrInvalidProfile)
}
