package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testToday = time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)

func reconcileServiceAt(now time.Time) *ReconcileService {
	s := NewReconcileService()
	s.now = fixedClock(now)
	return s
}

func recordSet(recs ...domain.ParsedRecord) *domain.RecordSet {
	set := domain.NewRecordSet()
	for _, rec := range recs {
		set.Put(rec)
	}
	return set
}

func qty(v int) *int { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReconcileThreshold(t *testing.T) {
	svc := reconcileServiceAt(testToday)
	minima := domain.MinimumVolumeMap{"gluc": 40}

	t.Run("above minimum is not flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(domain.ParsedRecord{Name: "gluc", Quantity: qty(50)}), minima, 0)
		assert.Empty(t, result.Flagged)
		assert.Empty(t, result.Unmatched)
	})

	t.Run("below minimum is flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(domain.ParsedRecord{Name: "gluc", Quantity: qty(50)}),
			domain.MinimumVolumeMap{"gluc": 60}, 0)
		require.Len(t, result.Flagged, 1)
		assert.True(t, result.Flagged[0].BelowMinimum)
		assert.False(t, result.Flagged[0].ExpiringSoon)
		assert.Equal(t, 60, result.Flagged[0].Minimum)
	})

	t.Run("exactly at minimum is flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(domain.ParsedRecord{Name: "gluc", Quantity: qty(40)}), minima, 0)
		require.Len(t, result.Flagged, 1)
		assert.True(t, result.Flagged[0].BelowMinimum)
	})

	t.Run("one unit above minimum is not flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(domain.ParsedRecord{Name: "gluc", Quantity: qty(41)}), minima, 0)
		assert.Empty(t, result.Flagged)
	})

	t.Run("absent quantity cannot trip the threshold", func(t *testing.T) {
		result := svc.Reconcile(recordSet(domain.ParsedRecord{Name: "gluc"}), minima, 0)
		assert.Empty(t, result.Flagged)
	})
}

func TestReconcileExpiryWindow(t *testing.T) {
	svc := reconcileServiceAt(testToday)
	// Generous minimum so only expiry can flag.
	minima := domain.MinimumVolumeMap{"gluc": 10}

	t.Run("exactly at the window edge is flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(
			domain.ParsedRecord{Name: "gluc", Quantity: qty(50), Expiry: date(2025, 9, 8)}), minima, 7)
		require.Len(t, result.Flagged, 1)
		assert.True(t, result.Flagged[0].ExpiringSoon)
		assert.False(t, result.Flagged[0].BelowMinimum)
	})

	t.Run("one day past the window is not flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(
			domain.ParsedRecord{Name: "gluc", Quantity: qty(50), Expiry: date(2025, 9, 9)}), minima, 7)
		assert.Empty(t, result.Flagged)
	})

	t.Run("already expired is flagged", func(t *testing.T) {
		result := svc.Reconcile(recordSet(
			domain.ParsedRecord{Name: "gluc", Quantity: qty(50), Expiry: date(2025, 8, 1)}), minima, 7)
		require.Len(t, result.Flagged, 1)
		assert.True(t, result.Flagged[0].ExpiringSoon)
	})

	t.Run("zero window selects the default", func(t *testing.T) {
		result := svc.Reconcile(recordSet(
			domain.ParsedRecord{Name: "gluc", Quantity: qty(50), Expiry: date(2025, 9, 8)}), minima, 0)
		assert.Equal(t, domain.DefaultExpiryWindowDays, result.WindowDays)
		require.Len(t, result.Flagged, 1)
	})

	t.Run("no expiry date never expires soon", func(t *testing.T) {
		result := svc.Reconcile(recordSet(
			domain.ParsedRecord{Name: "gluc", Quantity: qty(50)}), minima, 7)
		assert.Empty(t, result.Flagged)
	})
}

func TestReconcileIndependentTriggers(t *testing.T) {
	svc := reconcileServiceAt(testToday)

	result := svc.Reconcile(recordSet(
		domain.ParsedRecord{Name: "gluc", Quantity: qty(50), Expiry: date(2025, 9, 3)}),
		domain.MinimumVolumeMap{"gluc": 10}, 7)

	// Above minimum but expiring: flagged for expiry alone.
	require.Len(t, result.Flagged, 1)
	assert.False(t, result.Flagged[0].BelowMinimum)
	assert.True(t, result.Flagged[0].ExpiringSoon)
}

func TestReconcileUnmatched(t *testing.T) {
	svc := reconcileServiceAt(testToday)

	result := svc.Reconcile(recordSet(
		domain.ParsedRecord{Name: "gluc", Quantity: qty(5)},
		domain.ParsedRecord{Name: "mystery", Quantity: qty(1)},
		domain.ParsedRecord{Name: "alt", Quantity: qty(2)},
		domain.ParsedRecord{Name: "unknown", Quantity: qty(1)},
	), domain.MinimumVolumeMap{"gluc": 10, "alt": 10}, 0)

	// Unmatched names are reported, never flagged, in first-seen order.
	assert.Equal(t, []string{"mystery", "unknown"}, result.Unmatched)
	require.Len(t, result.Flagged, 2)
	assert.Equal(t, "gluc", result.Flagged[0].Name)
	assert.Equal(t, "alt", result.Flagged[1].Name)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	svc := reconcileServiceAt(testToday)
	set := recordSet(domain.ParsedRecord{Name: "gluc", Quantity: qty(5)})
	minima := domain.MinimumVolumeMap{"gluc": 10}

	_ = svc.Reconcile(set, minima, 7)

	assert.Equal(t, []string{"gluc"}, set.Names())
	rec, _ := set.Get("gluc")
	assert.Equal(t, 5, *rec.Quantity)
	assert.Equal(t, domain.MinimumVolumeMap{"gluc": 10}, minima)
}
