package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Judge decides whether one profile satisfies free-text criteria.
// Implementations must be thread-safe for concurrent use.
type Judge interface {
	// JudgeProfile evaluates profileText against the given criteria and
	// returns a binary verdict with a short rationale.
	// May fail (timeout, malformed model output); callers treat a failure
	// as "no match" for that single profile, never as a batch error.
	JudgeProfile(ctx context.Context, criteria, profileText string) (Verdict, error)
}

// Verdict is the judge's decision for one profile.
type Verdict struct {
	// Matches reports whether the profile satisfies the criteria.
	Matches bool

	// Rationale is the judge's short justification for the decision.
	Rationale string
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Judge instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Judge returns the profile classification service.
	// The returned Judge is safe for concurrent use.
	Judge() Judge

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
