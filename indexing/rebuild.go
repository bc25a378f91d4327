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


package indexing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// RebuildConfig holds configuration for the rebuild operation.
type RebuildConfig struct {
	// ReportInterval is how often to report progress (number of profiles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed embeddings
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultRebuildConfig returns a RebuildConfig with sensible defaults.
func DefaultRebuildConfig() *RebuildConfig {
	return &RebuildConfig{
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rebuilder regenerates vector collections from stored profiles. It is
// used after switching embedding models, when the stored vectors no
// longer match the embedder's output space.
type Rebuilder struct {
	profileRepository storage.ProfileRepository
	vectorIndex       storage.VectorIndex
	embedder          ai.Embedder
	config            *RebuildConfig
	progress          io.Writer
}

// NewRebuilder creates a new rebuilder.
// progress: where to write progress output (typically os.Stderr)
func NewRebuilder(
	profileRepository storage.ProfileRepository,
	vectorIndex storage.VectorIndex,
	embedder ai.Embedder,
	config *RebuildConfig,
	progress io.Writer,
) *Rebuilder {
	if config == nil {
		config = DefaultRebuildConfig()
	}

	return &Rebuilder{
		profileRepository: profileRepository,
		vectorIndex:       vectorIndex,
		embedder:          embedder,
		config:            config,
		progress:          progress,
	}
}

// Rebuild clears one view's collection and re-embeds every stored profile
// into it. Progress is reported to the configured writer.
func (r *Rebuilder) Rebuild(ctx context.Context, view core.View) error {
	if err := core.ValidateView(view); err != nil {
		return err
	}

	profiles, err := r.profileRepository.AllProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to query profiles: %w", err)
	}

	if err := r.vectorIndex.DeleteAll(ctx, view); err != nil {
		return fmt.Errorf("failed to clear view %q: %w", view, err)
	}

	total := len(profiles)
	if total == 0 {
		fmt.Fprintf(r.progress, "No profiles found in database (0 profiles)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Rebuilding view %q from %d profiles\n", view, total)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	for _, profile := range profiles {
		if err := r.rebuildOne(ctx, view, profile); err != nil {
			return err
		}

		processed++
		tracker.Update(processed)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Rebuild complete. Processed %d profiles in %v (%.1f profiles/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// RebuildAll rebuilds every view's collection in turn.
func (r *Rebuilder) RebuildAll(ctx context.Context) error {
	for _, view := range core.Views() {
		if err := r.Rebuild(ctx, view); err != nil {
			return err
		}
	}
	return nil
}

// rebuildOne re-embeds a single profile into the given view, retrying
// transient embedder failures with exponential backoff.
func (r *Rebuilder) rebuildOne(ctx context.Context, view core.View, profile *core.Profile) error {
	text := view.ProjectionText(profile)

	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		embedded, embedErr := r.embedder.EmbedText(ctx, text)
		if embedErr != nil {
			return embedErr
		}
		vector = embedded
		return nil
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to embed profile %q: %w", profile.Identity(), err)
	}

	entry := &core.VectorEntry{
		Identity: profile.Identity(),
		View:     view,
		Name:     profile.Name,
		Source:   profile.Source,
		Vector:   vector,
	}
	if err := r.vectorIndex.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to upsert vector for %q: %w", profile.Identity(), err)
	}

	return nil
}
