package services

import (
	"time"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driving"
	"github.com/openlab-tools/reagentcheck/internal/logger"
)

// Ensure ReconcileService implements the interface.
var _ driving.ReconciliationService = (*ReconcileService)(nil)

// ReconcileService joins extracted records against a minimum-volume
// reference. Threshold and expiry are evaluated independently; either
// one flags the reagent. The service never mutates its inputs.
type ReconcileService struct {
	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewReconcileService creates a reconciliation service.
func NewReconcileService() *ReconcileService {
	return &ReconcileService{now: time.Now}
}

// Reconcile evaluates every record in first-seen order. A record whose
// name has no minimum-volume entry goes to the unmatched report instead
// of being flagged. windowDays <= 0 selects the default window.
func (s *ReconcileService) Reconcile(
	records *domain.RecordSet, minima domain.MinimumVolumeMap, windowDays int,
) *domain.ReconciliationResult {
	if windowDays <= 0 {
		windowDays = domain.DefaultExpiryWindowDays
	}

	logger.Section("Reconciliation")
	logger.Debug("Records: %d, minima: %d, window: %d days", records.Len(), len(minima), windowDays)

	result := &domain.ReconciliationResult{WindowDays: windowDays}
	today := s.today()

	for _, name := range records.Names() {
		rec, _ := records.Get(name)

		minimum, known := minima[name]
		if !known {
			result.Unmatched = append(result.Unmatched, name)
			logger.Debug("%s: no minimum-volume entry", name)
			continue
		}

		// Inclusive boundary: a reagent at the floor is not yet
		// replenished.
		below := rec.Quantity != nil && *rec.Quantity <= minimum

		// Inclusive boundary: expiring exactly at the window edge is
		// flagged. Already-expired dates fall within any window.
		expiring := rec.Expiry != nil && daysUntil(today, *rec.Expiry) <= windowDays

		if !below && !expiring {
			continue
		}

		result.Flagged = append(result.Flagged, domain.FlaggedReagent{
			Name:         name,
			Quantity:     rec.Quantity,
			Minimum:      minimum,
			BelowMinimum: below,
			Expiry:       rec.Expiry,
			ExpiringSoon: expiring,
		})
		logger.Debug("%s: below=%t expiring=%t", name, below, expiring)
	}

	logger.Info("Flagged %d reagents, %d unmatched", len(result.Flagged), len(result.Unmatched))
	return result
}

// today returns the current date at UTC midnight, the resolution expiry
// dates are parsed at.
func (s *ReconcileService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysUntil counts whole days from today to the expiry date.
func daysUntil(today, expiry time.Time) int {
	return int(expiry.Sub(today) / (24 * time.Hour))
}
