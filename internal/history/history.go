package history

import (
	"context"

	"github.com/math-master/backend/internal/domain/mocktest"
)

// Store persists the per-student result history. Entries are append-only
// and listed most-recent-first; there is no deduplication and no size cap.
// Callers treat persistence failures as non-fatal: a test can always be
// finished even if its result cannot be recorded.
type Store interface {
	// Save appends a result to the student's history.
	Save(ctx context.Context, username string, result mocktest.Result) error

	// List returns the student's results, most recent first. A student
	// with no history gets an empty list, not an error.
	List(ctx context.Context, username string) ([]mocktest.Result, error)

	Close() error
}
