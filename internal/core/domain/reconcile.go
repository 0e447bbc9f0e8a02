package domain

import "time"

// DefaultExpiryWindowDays is the default expiry window: reagents expiring
// within this many days are flagged regardless of quantity.
const DefaultExpiryWindowDays = 7

// MinimumVolumeMap maps canonical reagent names to the minimum required
// quantity. Supplied by an external collaborator (spreadsheet loading is
// not this engine's concern) and treated as read-only input.
type MinimumVolumeMap map[string]int

// FlaggedReagent is one actionable reconciliation finding. Threshold and
// expiry are independent triggers: a reagent may be flagged for expiry
// alone while comfortably above its minimum.
type FlaggedReagent struct {
	// Name is the canonical reagent name.
	Name string

	// Quantity is the extracted primary quantity, absent when the
	// printout carried no numeric value for the reagent.
	Quantity *int

	// Minimum is the required minimum quantity from the reference.
	Minimum int

	// BelowMinimum reports Quantity <= Minimum. The boundary is
	// inclusive: a reagent at the floor is operationally not yet
	// replenished.
	BelowMinimum bool

	// Expiry is the extracted expiry date, if any.
	Expiry *time.Time

	// ExpiringSoon reports that Expiry falls within the window,
	// boundary inclusive.
	ExpiringSoon bool
}

// ReconciliationResult is the outcome of joining a record set against a
// minimum-volume reference. Flagged entries and unmatched names both
// preserve the first-seen order of the record set. Read-only once
// produced.
type ReconciliationResult struct {
	// Flagged lists reagents needing attention, in record-set order.
	Flagged []FlaggedReagent

	// Unmatched lists reagents present in the printout but absent from
	// the minimum-volume reference. Reported, never flagged.
	Unmatched []string

	// WindowDays is the expiry window the evaluation used.
	WindowDays int
}
