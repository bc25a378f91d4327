package indexing

import (
	"errors"
	"fmt"

	"github.com/poiesic/sift/core"
)

var (
	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

// IndexError records the failure of a single profile during batch indexing.
// Failures are isolated per record so one bad profile does not abort the batch.
type IndexError struct {
	Identity core.Identity
	Err      error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("indexing %q: %v", e.Identity, e.Err)
}

// Unwrap returns the underlying error.
func (e *IndexError) Unwrap() error {
	return e.Err
}
