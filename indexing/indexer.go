package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// Indexer writes profiles to the repository and maintains the per-view
// vector collections. Each indexed profile produces one vector entry per
// view, embedded from that view's projection text.
type Indexer struct {
	profileRepository storage.ProfileRepository
	vectorIndex       storage.VectorIndex
	embedder          ai.Embedder
	pool              *ants.Pool
	logger            *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent batch indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}

		if ix.pool != nil {
			ix.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new profile indexer.
func NewIndexer(
	profileRepository storage.ProfileRepository,
	vectorIndex storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Indexer, error) {
	if profileRepository == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vectorIndex == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		profileRepository: profileRepository,
		vectorIndex:       vectorIndex,
		embedder:          provider.Embedder(),
		pool:              pool,
		logger:            slog.Default().With("component", "indexer"),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	return ix, nil
}

// Index stores a profile and upserts its vector entries for every view.
// A profile whose normalized name matches an existing one replaces it.
func (ix *Indexer) Index(ctx context.Context, profile *core.Profile) error {
	if err := core.ValidateProfile(profile); err != nil {
		return err
	}

	identity := profile.Identity()

	if _, err := ix.profileRepository.PutProfile(ctx, profile); err != nil {
		return err
	}

	views := core.Views()
	texts := make([]string, len(views))
	for i, view := range views {
		texts[i] = view.ProjectionText(profile)
	}

	ix.logger.Debug("generating embeddings for profile", "identity", identity, "views", len(views))
	embeddings, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ix.logger.Error("error generating embeddings", "identity", identity, "err", err)
		return err
	}

	if len(embeddings) != len(views) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(views), len(embeddings))
	}

	for i, view := range views {
		entry := &core.VectorEntry{
			Identity: identity,
			View:     view,
			Name:     profile.Name,
			Source:   profile.Source,
			Vector:   embeddings[i],
		}
		if err := ix.vectorIndex.Upsert(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

// IndexAll indexes a batch of profiles concurrently. Each profile is
// processed independently so failures do not abort the batch. It returns
// the number of profiles indexed successfully and the per-record errors.
func (ix *Indexer) IndexAll(ctx context.Context, profiles []*core.Profile) (int, []*IndexError) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		indexed  int
		failures []*IndexError
	)

	for _, profile := range profiles {
		profile := profile
		wg.Add(1)
		submitErr := ix.pool.Submit(func() {
			defer wg.Done()

			if err := ix.Index(ctx, profile); err != nil {
				identity := core.Identity("")
				if profile != nil {
					identity = profile.Identity()
				}
				mu.Lock()
				failures = append(failures, &IndexError{Identity: identity, Err: err})
				mu.Unlock()
				return
			}

			mu.Lock()
			indexed++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			identity := core.Identity("")
			if profile != nil {
				identity = profile.Identity()
			}
			mu.Lock()
			failures = append(failures, &IndexError{Identity: identity, Err: submitErr})
			mu.Unlock()
		}
	}

	wg.Wait()

	if len(failures) > 0 {
		ix.logger.Warn("batch indexing completed with failures", "indexed", indexed, "failed", len(failures))
	} else {
		ix.logger.Info("batch indexing completed", "indexed", indexed)
	}

	return indexed, failures
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
