package rank

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

const defaultJudgeTimeout = 30 * time.Second

// Ranker answers ranked-relevance queries with a two-stage strategy:
// nearest-neighbor retrieval narrows the view to a complete candidate
// list, then the external judge classifies a bounded top slice of it.
type Ranker struct {
	retriever  *retriever
	classifier *classifier
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Ranker.
type Option func(*rankerConfig)

type rankerConfig struct {
	logger           *slog.Logger
	judgeConcurrency int
	judgeTimeout     time.Duration
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *rankerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithJudgeConcurrency bounds the number of concurrent judge calls.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithJudgeConcurrency(size int) Option {
	return func(c *rankerConfig) {
		if size >= 1 {
			c.judgeConcurrency = size
		}
	}
}

// WithJudgeTimeout sets the per-call timeout for judge invocations.
// A timed-out call is treated as a classification failure for that
// candidate only. Default is 30 seconds.
func WithJudgeTimeout(timeout time.Duration) Option {
	return func(c *rankerConfig) {
		if timeout > 0 {
			c.judgeTimeout = timeout
		}
	}
}

// NewRanker creates a new ranker.
func NewRanker(
	profileRepository storage.ProfileRepository,
	vectorIndex storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Ranker, error) {
	if profileRepository == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vectorIndex == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	concurrency := runtime.NumCPU() / 2
	if concurrency < 1 {
		concurrency = 1
	}

	config := &rankerConfig{
		logger:           slog.Default().With("component", "ranker"),
		judgeConcurrency: concurrency,
		judgeTimeout:     defaultJudgeTimeout,
	}
	for _, opt := range opts {
		opt(config)
	}

	pool, err := ants.NewPool(config.judgeConcurrency)
	if err != nil {
		return nil, err
	}

	return &Ranker{
		retriever:  newRetriever(vectorIndex, provider.Embedder(), config.logger),
		classifier: newClassifier(profileRepository, provider.Judge(), pool, config.judgeTimeout, config.logger),
		pool:       pool,
		logger:     config.logger,
	}, nil
}

// Rank returns the complete ranking of every identity in the view
// against the criteria. The first k candidates (by retrieval order) are
// judged; k = 0 skips classification entirely and k beyond the candidate
// count is clamped. The result is either complete or an error; a partial
// ranking is never returned.
func (r *Ranker) Rank(ctx context.Context, view core.View, criteria string, k int) ([]*core.RankedResult, error) {
	return r.RankWithMonitor(ctx, view, criteria, k, nil)
}

// RankWithMonitor ranks with monitoring. The monitor receives callbacks
// at each stage of the ranking process.
func (r *Ranker) RankWithMonitor(ctx context.Context, view core.View, criteria string, k int, monitor Monitor) ([]*core.RankedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateView(view); err != nil {
		return nil, err
	}

	monitor.Start(view, criteria)

	candidates, err := r.retriever.retrieve(ctx, view, criteria)
	if err != nil {
		return nil, err
	}
	monitor.AfterRetrieval(candidates)

	if len(candidates) == 0 {
		results := []*core.RankedResult{}
		monitor.Finish(results)
		return results, nil
	}

	outcomes := r.classifier.classify(ctx, view, criteria, candidates, k, monitor)
	monitor.AfterClassification(outcomes)

	results := Assemble(candidates, outcomes)
	monitor.Finish(results)

	r.logger.Debug("ranking completed",
		"view", view, "candidates", len(candidates), "judged", len(outcomes))

	return results, nil
}

// Release releases the judge worker pool.
// The ranker should not be used after calling Release.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
