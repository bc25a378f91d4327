package rank

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// classifier invokes the external judge on the first K candidates.
// Calls run on a bounded worker pool with a per-call timeout. A failed
// call yields a no-match outcome with an explanatory rationale; it is
// never fatal to the remaining candidates.
type classifier struct {
	profileRepository storage.ProfileRepository
	judge             ai.Judge
	pool              *ants.Pool
	timeout           time.Duration
	logger            *slog.Logger
}

func newClassifier(
	profileRepository storage.ProfileRepository,
	judge ai.Judge,
	pool *ants.Pool,
	timeout time.Duration,
	logger *slog.Logger,
) *classifier {
	return &classifier{
		profileRepository: profileRepository,
		judge:             judge,
		pool:              pool,
		timeout:           timeout,
		logger:            logger,
	}
}

// classify judges the first k candidates against the criteria. The view
// selects which facets of each profile the judge sees. k is clamped to
// [0, len(candidates)]; k = 0 returns no outcomes.
//
// The returned slice preserves candidate order regardless of which judge
// call finishes first.
func (c *classifier) classify(
	ctx context.Context,
	view core.View,
	criteria string,
	candidates []core.Candidate,
	k int,
	monitor Monitor,
) []core.ClassificationOutcome {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return []core.ClassificationOutcome{}
	}

	outcomes := make([]core.ClassificationOutcome, k)

	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		i := i
		candidate := candidates[i]
		wg.Add(1)
		submitErr := c.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = c.classifyOne(ctx, view, criteria, candidate, monitor)
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = failureOutcome(candidate, submitErr)
			monitor.ClassificationFailed(candidate.Identity, submitErr)
		}
	}
	wg.Wait()

	return outcomes
}

// classifyOne judges a single candidate. Every failure path is folded
// into the outcome; this function never aborts the batch.
func (c *classifier) classifyOne(
	ctx context.Context,
	view core.View,
	criteria string,
	candidate core.Candidate,
	monitor Monitor,
) core.ClassificationOutcome {
	profile, err := c.profileRepository.GetProfile(ctx, candidate.Identity)
	if err != nil {
		c.logger.Warn("profile lookup failed during classification",
			"identity", candidate.Identity, "err", err)
		monitor.ClassificationFailed(candidate.Identity, err)
		return failureOutcome(candidate, err)
	}

	text := view.ProjectionText(profile)

	judgeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	verdict, err := c.judge.JudgeProfile(judgeCtx, criteria, text)
	if err != nil {
		c.logger.Warn("judge call failed",
			"identity", candidate.Identity, "err", err)
		monitor.ClassificationFailed(candidate.Identity, err)
		return failureOutcome(candidate, err)
	}

	return core.ClassificationOutcome{
		Identity:  candidate.Identity,
		Matches:   verdict.Matches,
		Rationale: verdict.Rationale,
		Score:     candidate.Score,
	}
}

// failureOutcome converts a per-candidate error into a no-match outcome.
func failureOutcome(candidate core.Candidate, err error) core.ClassificationOutcome {
	return core.ClassificationOutcome{
		Identity:  candidate.Identity,
		Matches:   false,
		Rationale: fmt.Sprintf("classification failed: %v", err),
		Score:     candidate.Score,
	}
}
