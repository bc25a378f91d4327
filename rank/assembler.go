package rank

import (
	"slices"
	"strings"

	"github.com/poiesic/sift/core"
)

// Assemble merges classification outcomes with the remaining unclassified
// candidates into the final ranking. It is pure and deterministic.
//
// Ordering contract:
//  1. Every candidate identity appears exactly once.
//  2. All matched entries precede all unmatched entries.
//  3. Within each group, entries sort by similarity score descending.
//  4. Equal scores break ties by identity in lexical order.
//
// Unclassified candidates carry matches = false and an empty rationale
// but keep their true similarity score.
func Assemble(candidates []core.Candidate, outcomes []core.ClassificationOutcome) []*core.RankedResult {
	judged := make(map[core.Identity]core.ClassificationOutcome, len(outcomes))
	for _, outcome := range outcomes {
		judged[outcome.Identity] = outcome
	}

	results := make([]*core.RankedResult, 0, len(candidates))
	for _, candidate := range candidates {
		result := &core.RankedResult{
			Identity: candidate.Identity,
			Score:    candidate.Score,
		}
		if outcome, ok := judged[candidate.Identity]; ok {
			result.Matches = outcome.Matches
			result.Rationale = outcome.Rationale
		}
		results = append(results, result)
	}

	slices.SortFunc(results, func(a, b *core.RankedResult) int {
		if a.Matches != b.Matches {
			if a.Matches {
				return -1
			}
			return 1
		}
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return strings.Compare(string(a.Identity), string(b.Identity))
	})

	return results
}
