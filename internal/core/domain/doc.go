// Package domain defines the core business entities for reagentcheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AnalyzerProfile: The parsing rules for one analyzer's printed layout
//   - RawPage: One page of OCR text supplied by the upstream collaborator
//   - ParsedRecord: A normalized reagent record extracted from a printout
//   - RecordSet: The ordered collection of parsed records
//   - ReconciliationResult: Flagged reagents plus the unmatched-names report
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
