package indexing

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/sift/ai/mock"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T) (*Indexer, *badger.Backend) {
	t.Helper()

	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)

	indexer, err := NewIndexer(profiles, vectors, mock.NewMockProvider())
	require.NoError(t, err)

	t.Cleanup(func() {
		indexer.Release()
		backend.Close()
	})

	return indexer, backend
}

func TestNewIndexerValidation(t *testing.T) {
	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider()

	_, err = NewIndexer(nil, vectors, provider)
	assert.ErrorIs(t, err, ErrProfileRepositoryRequired)

	_, err = NewIndexer(profiles, nil, provider)
	assert.ErrorIs(t, err, ErrVectorIndexRequired)

	_, err = NewIndexer(profiles, vectors, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestIndexStoresProfileAndVectors(t *testing.T) {
	indexer, _ := newTestIndexer(t)
	ctx := context.Background()

	profile := &core.Profile{
		Name:      "Alice Chen",
		Expertise: "hotel consulting",
		Hobbies:   []string{"sailing"},
	}
	require.NoError(t, indexer.Index(ctx, profile))

	stored, err := indexer.profileRepository.GetProfile(ctx, profile.Identity())
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", stored.Name)

	for _, view := range core.Views() {
		count, err := indexer.vectorIndex.Count(ctx, view)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "view %q should hold one entry", view)
	}
}

func TestIndexUpsertsByIdentity(t *testing.T) {
	indexer, _ := newTestIndexer(t)
	ctx := context.Background()

	first := &core.Profile{Name: "John Smith", Expertise: "plumbing"}
	require.NoError(t, indexer.Index(ctx, first))

	// Same normalized name, different punctuation. Must replace, not add.
	second := &core.Profile{Name: "John  Smith!", Expertise: "carpentry"}
	require.NoError(t, indexer.Index(ctx, second))

	count, err := indexer.profileRepository.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for _, view := range core.Views() {
		vcount, err := indexer.vectorIndex.Count(ctx, view)
		require.NoError(t, err)
		assert.Equal(t, 1, vcount)
	}
}

func TestIndexRejectsInvalidProfile(t *testing.T) {
	indexer, _ := newTestIndexer(t)
	ctx := context.Background()

	err := indexer.Index(ctx, nil)
	assert.ErrorIs(t, err, core.ErrInvalidProfile)

	err = indexer.Index(ctx, &core.Profile{})
	assert.ErrorIs(t, err, core.ErrEmptyName)
}

func TestIndexPropagatesEmbedderFailure(t *testing.T) {
	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedder offline")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockJudge())

	indexer, err := NewIndexer(profiles, vectors, provider)
	require.NoError(t, err)
	defer indexer.Release()

	err = indexer.Index(context.Background(), &core.Profile{Name: "Bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedder offline")
}

func TestIndexAllIsolatesFailures(t *testing.T) {
	indexer, _ := newTestIndexer(t)
	ctx := context.Background()

	batch := []*core.Profile{
		{Name: "Alice", Expertise: "law"},
		{Name: ""},
		{Name: "Bob", Expertise: "medicine"},
	}

	indexed, failures := indexer.IndexAll(ctx, batch)
	assert.Equal(t, 2, indexed)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], core.ErrEmptyName)

	count, err := indexer.profileRepository.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndexAllEmptyBatch(t *testing.T) {
	indexer, _ := newTestIndexer(t)

	indexed, failures := indexer.IndexAll(context.Background(), nil)
	assert.Equal(t, 0, indexed)
	assert.Empty(t, failures)
}
