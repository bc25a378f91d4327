package rank

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/ai/mock"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/indexing"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// occupationVector maps projection or criteria text to a fixed vector so
// similarity ordering in tests is fully controlled.
func occupationVector(text string) []float32 {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hotel") || strings.Contains(lower, "hospitality"):
		return []float32{1, 0, 0}
	case strings.Contains(lower, "software"):
		return []float32{0.2, 0.9, 0}
	case strings.Contains(lower, "chef"):
		return []float32{0.1, 0, 0.9}
	default:
		return []float32{0, 0, 1}
	}
}

func newTestEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return occupationVector(text), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = occupationVector(text)
		}
		return vectors, nil
	}
	return embedder
}

func newHospitalityJudge() *mock.MockJudge {
	judge := mock.NewMockJudge()
	judge.JudgeProfileFunc = func(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
		if strings.Contains(strings.ToLower(profileText), "hotel") {
			return ai.Verdict{Matches: true, Rationale: "works in hospitality"}, nil
		}
		return ai.Verdict{Matches: false, Rationale: "not a hospitality profile"}, nil
	}
	return judge
}

// newTestRanker seeds three occupations and returns a ranker wired to
// controllable mocks.
func newTestRanker(t *testing.T, judge *mock.MockJudge) (*Ranker, storage.VectorIndex) {
	t.Helper()

	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)

	provider := mock.NewMockProviderWithServices(newTestEmbedder(), judge)

	indexer, err := indexing.NewIndexer(profiles, vectors, provider)
	require.NoError(t, err)

	ctx := context.Background()
	seed := []*core.Profile{
		{Name: "Alice", Expertise: "hotel consultant"},
		{Name: "Bob", Expertise: "software engineer"},
		{Name: "Carol", Expertise: "chef"},
	}
	for _, p := range seed {
		require.NoError(t, indexer.Index(ctx, p))
	}

	ranker, err := NewRanker(profiles, vectors, provider)
	require.NoError(t, err)

	t.Cleanup(func() {
		ranker.Release()
		indexer.Release()
		backend.Close()
	})

	return ranker, vectors
}

func TestNewRankerValidation(t *testing.T) {
	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider()

	_, err = NewRanker(nil, vectors, provider)
	assert.ErrorIs(t, err, ErrProfileRepositoryRequired)

	_, err = NewRanker(profiles, nil, provider)
	assert.ErrorIs(t, err, ErrVectorIndexRequired)

	_, err = NewRanker(profiles, vectors, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestRankHospitalityScenario(t *testing.T) {
	ranker, _ := newTestRanker(t, newHospitalityJudge())
	ctx := context.Background()

	results, err := ranker.Rank(ctx, core.ViewProfessional, "hospitality and hotels", 1)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Alice is judged and matches, so she leads.
	assert.Equal(t, core.Identity("Alice"), results[0].Identity)
	assert.True(t, results[0].Matches)
	assert.NotEmpty(t, results[0].Rationale)

	// Bob and Carol were outside the judged slice: unmatched, unjudged,
	// ordered by their true similarity scores.
	assert.Equal(t, core.Identity("Bob"), results[1].Identity)
	assert.Equal(t, core.Identity("Carol"), results[2].Identity)
	for _, r := range results[1:] {
		assert.False(t, r.Matches)
		assert.Empty(t, r.Rationale)
		assert.Less(t, r.Score, results[0].Score)
	}
}

func TestRankCompletenessForAllK(t *testing.T) {
	ranker, _ := newTestRanker(t, newHospitalityJudge())
	ctx := context.Background()

	// K beyond the candidate count clamps; every K returns all three.
	for _, k := range []int{0, 1, 2, 3, 10} {
		results, err := ranker.Rank(ctx, core.ViewProfessional, "hospitality and hotels", k)
		require.NoError(t, err, "k=%d", k)
		require.Len(t, results, 3, "k=%d", k)

		seen := make(map[core.Identity]bool)
		for _, r := range results {
			assert.False(t, seen[r.Identity], "k=%d duplicate %q", k, r.Identity)
			seen[r.Identity] = true
		}
	}
}

func TestRankZeroKIsRankingOnly(t *testing.T) {
	judge := newHospitalityJudge()
	ranker, _ := newTestRanker(t, judge)

	results, err := ranker.Rank(context.Background(), core.ViewProfessional, "hospitality and hotels", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.False(t, r.Matches)
		assert.Empty(t, r.Rationale)
	}

	// Scores still reflect similarity ordering.
	assert.Equal(t, core.Identity("Alice"), results[0].Identity)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[1].Score, results[2].Score)

	assert.Equal(t, 0, judge.CallCount())
}

func TestRankBoundedClassification(t *testing.T) {
	judge := newHospitalityJudge()
	ranker, _ := newTestRanker(t, judge)

	results, err := ranker.Rank(context.Background(), core.ViewProfessional, "hospitality and hotels", 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, judge.CallCount())

	judged := 0
	for _, r := range results {
		if r.Rationale != "" {
			judged++
		}
	}
	assert.Equal(t, 2, judged)
}

func TestRankIsolatesJudgeFailures(t *testing.T) {
	judge := mock.NewMockJudge()
	judge.JudgeProfileFunc = func(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
		if strings.Contains(strings.ToLower(profileText), "software") {
			return ai.Verdict{}, errors.New("judge exploded")
		}
		if strings.Contains(strings.ToLower(profileText), "hotel") {
			return ai.Verdict{Matches: true, Rationale: "works in hospitality"}, nil
		}
		return ai.Verdict{Matches: false, Rationale: "not a hospitality profile"}, nil
	}

	ranker, _ := newTestRanker(t, judge)

	results, err := ranker.Rank(context.Background(), core.ViewProfessional, "hospitality and hotels", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byIdentity := make(map[core.Identity]*core.RankedResult)
	for _, r := range results {
		byIdentity[r.Identity] = r
	}

	assert.True(t, byIdentity["Alice"].Matches)

	// The failed candidate is emitted with a failure rationale, never dropped.
	bob := byIdentity["Bob"]
	require.NotNil(t, bob)
	assert.False(t, bob.Matches)
	assert.Contains(t, bob.Rationale, "classification failed")
	assert.Contains(t, bob.Rationale, "judge exploded")

	assert.Equal(t, "not a hospitality profile", byIdentity["Carol"].Rationale)
}

func TestRankJudgeTimeoutIsAFailure(t *testing.T) {
	judge := mock.NewMockJudge()
	judge.JudgeProfileFunc = func(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
		<-ctx.Done()
		return ai.Verdict{}, ctx.Err()
	}

	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProviderWithServices(newTestEmbedder(), judge)

	indexer, err := indexing.NewIndexer(profiles, vectors, provider)
	require.NoError(t, err)
	defer indexer.Release()
	require.NoError(t, indexer.Index(context.Background(), &core.Profile{Name: "Alice", Expertise: "hotel consultant"}))

	ranker, err := NewRanker(profiles, vectors, provider, WithJudgeTimeout(10*time.Millisecond))
	require.NoError(t, err)
	defer ranker.Release()

	results, err := ranker.Rank(context.Background(), core.ViewProfessional, "hospitality", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Matches)
	assert.Contains(t, results[0].Rationale, "classification failed")
}

func TestRankEmptyViewReturnsEmptyList(t *testing.T) {
	ranker, vectors := newTestRanker(t, newHospitalityJudge())
	ctx := context.Background()

	require.NoError(t, vectors.DeleteAll(ctx, core.ViewProfessional))

	results, err := ranker.Rank(ctx, core.ViewProfessional, "hospitality and hotels", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankRejectsUnknownView(t *testing.T) {
	ranker, _ := newTestRanker(t, newHospitalityJudge())

	_, err := ranker.Rank(context.Background(), core.View("astral"), "anything", 1)
	assert.ErrorIs(t, err, core.ErrUnknownView)
}

func TestRankJudgeSeesOnlyViewFacets(t *testing.T) {
	var judged []string
	judge := mock.NewMockJudge()
	judge.JudgeProfileFunc = func(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
		judged = append(judged, profileText)
		return ai.Verdict{Matches: true, Rationale: "ok"}, nil
	}

	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProviderWithServices(newTestEmbedder(), judge)

	indexer, err := indexing.NewIndexer(profiles, vectors, provider)
	require.NoError(t, err)
	defer indexer.Release()
	require.NoError(t, indexer.Index(context.Background(), &core.Profile{
		Name:         "Alice",
		Expertise:    "hotel consultant",
		Hobbies:      []string{"sailing"},
		FamilyStatus: "married",
	}))

	ranker, err := NewRanker(profiles, vectors, provider)
	require.NoError(t, err)
	defer ranker.Release()

	_, err = ranker.Rank(context.Background(), core.ViewProfessional, "hospitality", 1)
	require.NoError(t, err)

	require.Len(t, judged, 1)
	assert.Contains(t, judged[0], "hotel consultant")
	assert.NotContains(t, judged[0], "sailing")
	assert.NotContains(t, judged[0], "married")
}

func TestRankFailsOutrightWhenStoreUnavailable(t *testing.T) {
	profiles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)

	provider := mock.NewMockProviderWithServices(newTestEmbedder(), newHospitalityJudge())

	ranker, err := NewRanker(profiles, vectors, provider)
	require.NoError(t, err)
	defer ranker.Release()

	require.NoError(t, backend.Close())

	_, err = ranker.Rank(context.Background(), core.ViewProfessional, "hospitality", 1)
	assert.ErrorIs(t, err, ErrQueryFailed)
}

// rankCallRecorder records monitor callbacks for assertions.
type rankCallRecorder struct {
	started    bool
	candidates int
	outcomes   int
	finished   bool
}

func (m *rankCallRecorder) Start(_ core.View, _ string)                   { m.started = true }
func (m *rankCallRecorder) AfterRetrieval(c []core.Candidate)             { m.candidates = len(c) }
func (m *rankCallRecorder) ClassificationFailed(_ core.Identity, _ error) {}
func (m *rankCallRecorder) AfterClassification(o []core.ClassificationOutcome) {
	m.outcomes = len(o)
}
func (m *rankCallRecorder) Finish(_ []*core.RankedResult) { m.finished = true }

func TestRankWithMonitor(t *testing.T) {
	ranker, _ := newTestRanker(t, newHospitalityJudge())

	recorder := &rankCallRecorder{}
	results, err := ranker.RankWithMonitor(context.Background(), core.ViewProfessional,
		"hospitality and hotels", 2, recorder)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, recorder.started)
	assert.Equal(t, 3, recorder.candidates)
	assert.Equal(t, 2, recorder.outcomes)
	assert.True(t, recorder.finished)
}
