package tracestore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned when a trace document does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for persisting trace documents by name.
type Store interface {
	// Put writes a document atomically, replacing any existing one.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a document in full.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns all document names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, name string) error
}

// TraceName builds the canonical file name for a profile trace:
// "<precision>_cond<k>_n<size>.json", e.g. "fp64_cond10_n50.json".
func TraceName(precision string, conditionNumber float64, matrixSize int) string {
	return fmt.Sprintf("%s_cond%d_n%d.json", strings.ToLower(precision), int(conditionNumber), matrixSize)
}

// CascadeName builds the canonical file name for a cascade trace.
func CascadeName(conditionNumber float64, matrixSize int) string {
	return fmt.Sprintf("cascade_cond%d_n%d.json", int(conditionNumber), matrixSize)
}
