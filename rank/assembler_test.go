package rank

import (
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmptyInputs(t *testing.T) {
	results := Assemble(nil, nil)
	assert.Empty(t, results)

	results = Assemble([]core.Candidate{}, []core.ClassificationOutcome{})
	assert.Empty(t, results)
}

func TestAssembleGroupsMatchesFirst(t *testing.T) {
	candidates := []core.Candidate{
		{Identity: "alice", Score: 0.9},
		{Identity: "bob", Score: 0.8},
		{Identity: "carol", Score: 0.7},
	}
	outcomes := []core.ClassificationOutcome{
		{Identity: "alice", Matches: false, Rationale: "wrong field", Score: 0.9},
		{Identity: "carol", Matches: true, Rationale: "strong fit", Score: 0.7},
	}

	results := Assemble(candidates, outcomes)
	require.Len(t, results, 3)

	// carol matched, so she leads despite the lowest score.
	assert.Equal(t, core.Identity("carol"), results[0].Identity)
	assert.True(t, results[0].Matches)
	assert.Equal(t, "strong fit", results[0].Rationale)

	// Unmatched group sorts by score descending.
	assert.Equal(t, core.Identity("alice"), results[1].Identity)
	assert.Equal(t, core.Identity("bob"), results[2].Identity)
}

func TestAssembleUnclassifiedKeepScoreEmptyRationale(t *testing.T) {
	candidates := []core.Candidate{
		{Identity: "alice", Score: 0.9},
		{Identity: "bob", Score: 0.4},
	}

	results := Assemble(candidates, nil)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.False(t, result.Matches)
		assert.Empty(t, result.Rationale)
	}
	assert.InDelta(t, 0.9, results[0].Score, 1e-6)
	assert.InDelta(t, 0.4, results[1].Score, 1e-6)
}

func TestAssembleTieBreaksByIdentity(t *testing.T) {
	candidates := []core.Candidate{
		{Identity: "zed", Score: 0.5},
		{Identity: "amy", Score: 0.5},
		{Identity: "mel", Score: 0.5},
	}

	results := Assemble(candidates, nil)
	require.Len(t, results, 3)
	assert.Equal(t, core.Identity("amy"), results[0].Identity)
	assert.Equal(t, core.Identity("mel"), results[1].Identity)
	assert.Equal(t, core.Identity("zed"), results[2].Identity)
}

func TestAssembleIsDeterministic(t *testing.T) {
	candidates := []core.Candidate{
		{Identity: "alice", Score: 0.9},
		{Identity: "bob", Score: 0.9},
		{Identity: "carol", Score: 0.2},
	}
	outcomes := []core.ClassificationOutcome{
		{Identity: "bob", Matches: true, Rationale: "fits", Score: 0.9},
	}

	first := Assemble(candidates, outcomes)
	second := Assemble(candidates, outcomes)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Identity, second[i].Identity)
		assert.Equal(t, first[i].Matches, second[i].Matches)
	}
}
