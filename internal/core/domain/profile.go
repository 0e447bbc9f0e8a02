package domain

import "sort"

// FieldRole identifies the semantic meaning of a column in an analyzer
// printout. Profiles map roles to header label fragments; parsers map
// roles to resolved column positions.
type FieldRole string

const (
	// RoleName is the reagent/test identifier column.
	RoleName FieldRole = "name"

	// RolePrimaryQuantity is the quantity compared against minimum volumes.
	RolePrimaryQuantity FieldRole = "primary-quantity"

	// RoleSecondaryQuantity is an auxiliary count (e.g. available tests).
	RoleSecondaryQuantity FieldRole = "secondary-quantity"

	// RoleExpiryDate is the reagent expiry date column.
	RoleExpiryDate FieldRole = "expiry-date"

	// RoleLot is the lot identifier column.
	RoleLot FieldRole = "lot"

	// RolePosition is the physical position/slot column.
	RolePosition FieldRole = "position"
)

// AggregationPolicy selects how data rows become records.
type AggregationPolicy string

const (
	// AggregationSingleRow treats every data row as one record,
	// merged per name according to the profile's MergePolicy.
	AggregationSingleRow AggregationPolicy = "single-row"

	// AggregationPairedMinSum aggregates same-name rows as split reagent
	// packs: rows are ordered by quantity, each pair contributes the
	// lesser count, an unpaired trailing row contributes its own.
	AggregationPairedMinSum AggregationPolicy = "paired-min-sum"
)

// MergePolicy decides what happens when the single-row policy sees the
// same canonical name twice. Analyzer printouts are inconsistent here, so
// this is per-profile rather than a universal rule.
type MergePolicy string

const (
	// MergeOverwrite keeps the last occurrence.
	MergeOverwrite MergePolicy = "overwrite"

	// MergeKeepMinimum keeps the smallest primary quantity seen.
	MergeKeepMinimum MergePolicy = "keep-minimum"
)

// AnalyzerProfile is the set of rules governing how one analyzer's printed
// layout is parsed. Profiles are immutable and compiled into the program;
// supporting a new instrument means registering a new profile and parser
// strategy, never branching inside shared parsing code.
type AnalyzerProfile struct {
	// Key is the analyzer identifier, e.g. the instrument model.
	Key string

	// Headers is the ordered sequence of expected header labels as
	// printed by the instrument.
	Headers []string

	// HeaderMatchCount is how many of the leading Headers must appear on
	// a line for it to qualify as the table header. OCR recovers the
	// leftmost columns most reliably, so only the leading labels are
	// required. Zero means DefaultHeaderMatchCount.
	HeaderMatchCount int

	// RoleLabels maps each field role to the label fragment used to
	// resolve its column position, matched case-insensitively against
	// header tokens. A role with no matching token stays unresolved;
	// parsers treat some roles as optional.
	RoleLabels map[FieldRole]string

	// Terminators are keywords that mark the end of the data region.
	// OCR captures trailing boilerplate (totals, waste counters) that
	// must not be ingested as data.
	Terminators []string

	// Aggregation selects the row-to-record strategy.
	Aggregation AggregationPolicy

	// Merge applies to the single-row aggregation path only.
	Merge MergePolicy

	// StripChannelSuffix folds position-dependent numeric suffixes
	// ("FT3-3", "TSH 2") into the base test name. The minimum-volume
	// reference is keyed by base name only, so this is a deliberate
	// many-to-one fold.
	StripChannelSuffix bool
}

// DefaultHeaderMatchCount is the number of leading header labels that must
// be present for a line to qualify as the table header.
const DefaultHeaderMatchCount = 3

// RequiredHeaders returns the leading labels a header line must carry.
func (p AnalyzerProfile) RequiredHeaders() []string {
	n := p.HeaderMatchCount
	if n <= 0 {
		n = DefaultHeaderMatchCount
	}
	if n > len(p.Headers) {
		n = len(p.Headers)
	}
	return p.Headers[:n]
}

// Supported analyzer keys.
const (
	ProfileRocheE801     = "Roche e801"
	ProfileBeckmanAU5800 = "Beckman AU5800"
)

// builtinProfiles is the compiled-in schema catalog, one profile per
// supported instrument.
var builtinProfiles = map[string]AnalyzerProfile{
	ProfileRocheE801: {
		Key: ProfileRocheE801,
		Headers: []string{
			"Test", "Reason", "Available Tests", "Type",
			"Pos.", "Remaining", "Lot ID", "Expiry Date",
		},
		RoleLabels: map[FieldRole]string{
			RoleName:              "test",
			RolePrimaryQuantity:   "remaining",
			RoleSecondaryQuantity: "available",
			RoleExpiryDate:        "expiry",
			RoleLot:               "lot",
			RolePosition:          "pos",
		},
		Terminators: []string{"total", "summary", "magazine", "waste"},
		Aggregation: AggregationSingleRow,
		Merge:       MergeOverwrite,
	},
	ProfileBeckmanAU5800: {
		Key: ProfileBeckmanAU5800,
		Headers: []string{
			"Pos.", "Test Name", "R1/R2 Shots", "Onboard Remaining",
			"RB Stability Remaining", "Cal Stability Remaining",
			"Expiration", "Lot No.", "BTL No", "Seq.", "Comment",
		},
		RoleLabels: map[FieldRole]string{
			RoleName:              "test name",
			RolePrimaryQuantity:   "shots",
			RoleSecondaryQuantity: "onboard",
			RoleExpiryDate:        "expiration",
			RoleLot:               "lot",
			RolePosition:          "pos",
		},
		Terminators:        []string{"total", "summary", "magazine", "waste"},
		Aggregation:        AggregationPairedMinSum,
		StripChannelSuffix: true,
	},
}

// ProfileFor looks up the compiled-in profile for an analyzer key.
// Returns ErrProfileNotFound for unregistered keys.
func ProfileFor(key string) (AnalyzerProfile, error) {
	p, ok := builtinProfiles[key]
	if !ok {
		return AnalyzerProfile{}, ErrProfileNotFound
	}
	return p, nil
}

// ProfileKeys returns the registered analyzer keys in sorted order.
func ProfileKeys() []string {
	keys := make([]string, 0, len(builtinProfiles))
	for k := range builtinProfiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
