package driving

import (
	"context"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

// ExtractionService turns OCR page text into normalized reagent records.
type ExtractionService interface {
	// Extract concatenates the selected pages, dispatches to the
	// parser registered for the analyzer key (or the generic fallback
	// when permitted), and returns the record set plus diagnostics.
	//
	// Returns domain.ErrProfileNotFound when the key is unregistered
	// and fallback was not requested, and domain.ErrInvalidInput when
	// the selected pages contain no text at all.
	Extract(ctx context.Context, analyzerKey string, pages []domain.RawPage, opts domain.ExtractOptions) (*domain.ExtractionResult, error)
}

// ReconciliationService joins extracted records against a minimum-volume
// reference and flags actionable reagents.
type ReconciliationService interface {
	// Reconcile evaluates every record against the minima and the
	// expiry window (days; <=0 means the default). Inputs are not
	// mutated.
	Reconcile(records *domain.RecordSet, minima domain.MinimumVolumeMap, windowDays int) *domain.ReconciliationResult
}
