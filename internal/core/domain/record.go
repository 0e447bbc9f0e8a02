package domain

import "time"

// RawPage is one page of OCR text produced by the upstream OCR
// collaborator. Pages are 1-indexed in the order they appear in the
// source printout.
type RawPage struct {
	// Index is the 1-based page number.
	Index int

	// Text is the plain OCR text of the page.
	Text string
}

// ParsedRecord is one normalized reagent record extracted from a printout.
// The name is canonical (lower-cased, whitespace-collapsed); optional
// fields use pointers so "absent" is distinguishable from zero.
// Records are immutable once produced.
type ParsedRecord struct {
	// Name is the canonical reagent identifier, the join key against
	// the minimum-volume reference.
	Name string

	// Quantity is the primary count compared against minimum volumes.
	Quantity *int

	// Secondary is an auxiliary count (e.g. available tests onboard).
	Secondary *int

	// Expiry is the reagent expiry date, when the printout carries one.
	Expiry *time.Time

	// ExpiryDays is the onboard-stability day count some layouts print
	// alongside the expiry month, e.g. "2025/09 (12)".
	ExpiryDays *int

	// Lot is the lot identifier column text, if resolved.
	Lot string

	// Position is the physical position/slot column text, if resolved.
	Position string
}

// Diagnostic describes one line the parser skipped and why. Diagnostics
// are a first-class output so callers and tests can assert on exactly
// which lines were dropped.
type Diagnostic struct {
	// Line is the 1-based index within the non-empty lines of the
	// document, or 0 for document-level diagnostics.
	Line int

	// Text is the offending line, trimmed.
	Text string

	// Reason explains why the line was skipped.
	Reason string
}

// Document-level diagnostic reasons.
const (
	// ReasonHeaderNotFound reports that no line qualified as the table
	// header. The extraction still returns an empty record set rather
	// than failing, so callers can fall back to generic parsing.
	ReasonHeaderNotFound = "header not found"

	// ReasonMissingColumn reports a header whose required quantity
	// column could not be resolved to a position.
	ReasonMissingColumn = "required column not resolved"

	// ReasonTooFewColumns reports a row with fewer columns than the
	// resolved positions require.
	ReasonTooFewColumns = "too few columns"

	// ReasonNoName reports a row whose name cell normalized to empty.
	ReasonNoName = "empty reagent name"

	// ReasonNoQuantity reports a row whose quantity column held no
	// digits.
	ReasonNoQuantity = "no numeric quantity"

	// ReasonNoMatch reports a line the generic fallback pattern did not
	// match.
	ReasonNoMatch = "no pattern match"
)

// RecordSet maps canonical reagent names to parsed records while
// preserving first-seen order. Order stability matters downstream: the
// reconciliation report lists reagents in the order the printout did.
type RecordSet struct {
	// Order holds canonical names in first-seen order.
	Order []string

	// Records maps canonical name to its record.
	Records map[string]ParsedRecord
}

// NewRecordSet creates an empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{Records: make(map[string]ParsedRecord)}
}

// Put stores a record under its canonical name, overwriting any previous
// record but keeping the original first-seen position.
func (s *RecordSet) Put(rec ParsedRecord) {
	if _, seen := s.Records[rec.Name]; !seen {
		s.Order = append(s.Order, rec.Name)
	}
	s.Records[rec.Name] = rec
}

// Get returns the record for a canonical name.
func (s *RecordSet) Get(name string) (ParsedRecord, bool) {
	rec, ok := s.Records[name]
	return rec, ok
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	return len(s.Order)
}

// Names returns the canonical names in first-seen order.
func (s *RecordSet) Names() []string {
	out := make([]string, len(s.Order))
	copy(out, s.Order)
	return out
}

// ExtractionResult is the output artifact of one extraction call: the
// parsed records plus the skipped-line diagnostics. An empty record set
// is itself a valid outcome ("nothing parsed"), distinct from an
// input-level failure.
type ExtractionResult struct {
	// AnalyzerKey is the profile the parser ran under, or
	// FallbackAnalyzerKey for the generic fallback.
	AnalyzerKey string

	// Fallback reports whether the generic parser produced the records.
	// Fallback results are lower-confidence.
	Fallback bool

	// Records is the extracted record set.
	Records *RecordSet

	// Skipped lists the lines the parser could not ingest.
	Skipped []Diagnostic
}

// FallbackAnalyzerKey identifies results produced by the generic parser.
const FallbackAnalyzerKey = "generic"

// ExtractOptions controls one extraction call.
type ExtractOptions struct {
	// Pages restricts extraction to the given 1-based page indices.
	// Empty means all pages. Unknown indices are ignored.
	Pages []int

	// AllowFallback permits the permissive generic parser when the
	// analyzer key has no registered profile. Without it, an unknown
	// key is a configuration error.
	AllowFallback bool
}

// WantsPage reports whether the given 1-based page index is selected.
func (o ExtractOptions) WantsPage(index int) bool {
	if len(o.Pages) == 0 {
		return true
	}
	for _, p := range o.Pages {
		if p == index {
			return true
		}
	}
	return false
}

// ExtractionRun records one extraction for caching and history. The
// fingerprint is a content hash of the analyzer key plus the selected
// page text; identical input always yields an identical result, so a
// fingerprint hit can serve the cached record set.
type ExtractionRun struct {
	ID          string
	AnalyzerKey string
	Fingerprint string
	Result      ExtractionResult
	CreatedAt   time.Time
}
