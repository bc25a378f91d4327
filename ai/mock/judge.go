package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/sift/ai"
)

// MockJudge is a test double for ai.Judge.
// It allows custom behavior injection via function fields.
// Safe for concurrent use; classification fans out over a pool.
type MockJudge struct {
	// JudgeProfileFunc is called by JudgeProfile if set.
	// If nil, uses default keyword-overlap behavior.
	JudgeProfileFunc func(ctx context.Context, criteria, profileText string) (ai.Verdict, error)

	mu        sync.Mutex
	callCount int
}

// NewMockJudge creates a mock judge with default keyword-overlap behavior.
// Note: Returns concrete type to allow test assertions via GetMockJudge().
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// JudgeProfile evaluates a profile against criteria.
// Default behavior: matches when every criteria word appears in the profile text.
func (m *MockJudge) JudgeProfile(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.JudgeProfileFunc != nil {
		return m.JudgeProfileFunc(ctx, criteria, profileText)
	}

	words := strings.Fields(strings.ToLower(criteria))
	haystack := strings.ToLower(profileText)
	for _, word := range words {
		if !strings.Contains(haystack, word) {
			return ai.Verdict{
				Matches:   false,
				Rationale: "profile does not mention " + word,
			}, nil
		}
	}

	return ai.Verdict{
		Matches:   true,
		Rationale: "profile mentions all criteria terms",
	}, nil
}

// CallCount returns the number of times JudgeProfile was called.
func (m *MockJudge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockJudge) Reset() {
	m.mu.Lock()
	m.callCount = 0
	m.mu.Unlock()
	m.JudgeProfileFunc = nil
}
