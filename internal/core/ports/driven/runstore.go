package driven

import (
	"context"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

// RunStore persists extraction runs. Extraction is deterministic per
// input text, so a run found by fingerprint can serve its cached result
// without re-parsing. Implementations: in-memory and SQLite.
type RunStore interface {
	// SaveRun stores an extraction run.
	SaveRun(ctx context.Context, run *domain.ExtractionRun) error

	// FindByFingerprint returns the most recent run for a content
	// fingerprint. Returns domain.ErrNotFound when no run matches.
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.ExtractionRun, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.ExtractionRun, error)

	// Close releases any underlying resources.
	Close() error
}
