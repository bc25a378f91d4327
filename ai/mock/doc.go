// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Judge, and
// ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockJudge := mock.NewMockJudge()
//	mockJudge.JudgeProfileFunc = func(ctx context.Context, criteria, profileText string) (ai.Verdict, error) {
//	    return ai.Verdict{Matches: true, Rationale: "forced match"}, nil
//	}
//
//	// Check call counts
//	count := mockJudge.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockJudge: Matches when every criteria word appears in the profile text
//   - MockProvider: Aggregates mock embedder and judge
package mock
