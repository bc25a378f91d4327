package rank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// retriever produces the complete candidate list for one view. The
// nearest-neighbor query is sized from count(view) so every identity in
// the view appears in the output exactly once.
type retriever struct {
	vectorIndex storage.VectorIndex
	embedder    ai.Embedder
	logger      *slog.Logger
}

func newRetriever(vectorIndex storage.VectorIndex, embedder ai.Embedder, logger *slog.Logger) *retriever {
	return &retriever{
		vectorIndex: vectorIndex,
		embedder:    embedder,
		logger:      logger,
	}
}

// retrieve embeds the criteria, queries the view and deduplicates hits
// by identity, keeping the first-seen score. The store returns hits
// best-score-first, so first-seen equals best-seen within the requested
// window; dedup still runs so the guarantee does not rest on that.
func (r *retriever) retrieve(ctx context.Context, view core.View, criteria string) ([]core.Candidate, error) {
	count, err := r.vectorIndex.Count(ctx, view)
	if err != nil {
		r.logger.Error("error counting view entries", "view", view, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if count == 0 {
		return []core.Candidate{}, nil
	}

	vector, err := r.embedder.EmbedText(ctx, criteria)
	if err != nil {
		r.logger.Error("error generating embedding for criteria", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	candidates, err := r.query(ctx, view, vector, count)
	if err != nil {
		return nil, err
	}

	// The count used to size the query may be stale against a concurrent
	// writer. Re-check against the live index and widen once if the
	// result set appears truncated.
	fresh, err := r.vectorIndex.Count(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if len(candidates) < fresh {
		r.logger.Debug("retrieval truncated against live index, widening",
			"view", view, "returned", len(candidates), "indexed", fresh)
		candidates, err = r.query(ctx, view, vector, fresh)
		if err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

// query runs one nearest-neighbor pass and deduplicates by identity.
func (r *retriever) query(ctx context.Context, view core.View, vector []float32, limit int) ([]core.Candidate, error) {
	hits, err := r.vectorIndex.FindNearest(ctx, view, vector, limit)
	if err != nil {
		r.logger.Error("error querying vector index", "view", view, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	seen := make(map[core.Identity]bool, len(hits))
	candidates := make([]core.Candidate, 0, len(hits))
	for _, hit := range hits {
		if seen[hit.Identity] {
			continue
		}
		seen[hit.Identity] = true
		candidates = append(candidates, hit)
	}

	return candidates, nil
}
