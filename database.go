// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sift

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/ai/openai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/indexing"
	"github.com/poiesic/sift/rank"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
)

// Database is the top-level entry point. It owns the badger backend, the
// profile and vector stores, and the AI provider, and exposes the core
// operations: Index, Rank, ClearView, Count.
type Database struct {
	backend     *badger.Backend
	profileRepo storage.ProfileRepository
	vectorIndex storage.VectorIndex
	provider    ai.Provider
	indexer     *indexing.Indexer
	ranker      *rank.Ranker
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider instead of constructing
// the OpenAI-compatible one. Intended for tests and embedders that need
// custom wiring.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the backend in memory, without persistence.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	profileRepo := badger.NewProfileStore(backend)
	vectorIndex := badger.NewVectorIndex(backend)

	// Create AI provider with configured settings unless one was injected
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	indexer, err := indexing.NewIndexer(profileRepo, vectorIndex, provider)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	ranker, err := rank.NewRanker(profileRepo, vectorIndex, provider)
	if err != nil {
		indexer.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		profileRepo: profileRepo,
		vectorIndex: vectorIndex,
		provider:    provider,
		indexer:     indexer,
		ranker:      ranker,
		logger:      slog.Default(),
	}, nil
}

// Index stores a profile and upserts its vector entries for every view.
// Idempotent: indexing the same profile repeatedly leaves one entry per view.
func (db *Database) Index(ctx context.Context, profile *core.Profile) error {
	return db.indexer.Index(ctx, profile)
}

// IndexAll indexes a batch of profiles concurrently with per-record
// failure isolation.
func (db *Database) IndexAll(ctx context.Context, profiles []*core.Profile) (int, []*indexing.IndexError) {
	return db.indexer.IndexAll(ctx, profiles)
}

// Rank returns the complete ranking of every identity in the view, with
// the first k candidates judged against the criteria.
func (db *Database) Rank(ctx context.Context, view core.View, criteria string, k int) ([]*core.RankedResult, error) {
	return db.ranker.Rank(ctx, view, criteria, k)
}

// ClearView removes all vectors for a view. Destructive; do not index
// into the same view concurrently.
func (db *Database) ClearView(ctx context.Context, view core.View) error {
	if err := core.ValidateView(view); err != nil {
		return err
	}
	return db.vectorIndex.DeleteAll(ctx, view)
}

// Count returns the number of distinct identities stored in a view.
func (db *Database) Count(ctx context.Context, view core.View) (int, error) {
	if err := core.ValidateView(view); err != nil {
		return 0, err
	}
	return db.vectorIndex.Count(ctx, view)
}

func (db *Database) ProfileRepository() storage.ProfileRepository {
	return db.profileRepo
}

func (db *Database) VectorIndex() storage.VectorIndex {
	return db.vectorIndex
}

// NewIndexer creates an indexer with custom options, sharing the
// database's stores and provider.
func (db *Database) NewIndexer(opts ...indexing.Option) (*indexing.Indexer, error) {
	return indexing.NewIndexer(db.profileRepo, db.vectorIndex, db.provider, opts...)
}

// NewRanker creates a ranker with custom options, sharing the database's
// stores and provider.
func (db *Database) NewRanker(opts ...rank.Option) (*rank.Ranker, error) {
	return rank.NewRanker(db.profileRepo, db.vectorIndex, db.provider, opts...)
}

// NewRebuilder creates a rebuilder for regenerating vector collections
// after an embedding model change.
func (db *Database) NewRebuilder(config *indexing.RebuildConfig, progress io.Writer) *indexing.Rebuilder {
	return indexing.NewRebuilder(db.profileRepo, db.vectorIndex, db.provider.Embedder(), config, progress)
}

func (db *Database) Close() error {
	db.ranker.Release()
	db.indexer.Release()

	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.profileRepo.Close(); err != nil {
		db.logger.Error("error closing profile repository", "err", err)
		return err
	}
	if err := db.vectorIndex.Close(); err != nil {
		db.logger.Error("error closing vector index", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
