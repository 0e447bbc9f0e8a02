package driven

import (
	"context"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

// RecordParser extracts normalized reagent records from the OCR text of
// one logical document. Each parser implements the strategy for one
// analyzer profile; a fallback parser handles unprofiled layouts.
//
// Failure semantics: a missing header or unparseable rows never abort
// the document. The parser returns an empty or partial record set with
// diagnostics instead. Parse errors are reserved for invalid invocations,
// not for bad input lines.
type RecordParser interface {
	// ProfileKey returns the analyzer key this parser serves, or
	// domain.FallbackAnalyzerKey for the generic fallback.
	ProfileKey() string

	// Parse walks the document text and produces the record set plus
	// the skipped-line diagnostics.
	Parse(ctx context.Context, text string) (*domain.ExtractionResult, error)
}

// ParserRegistry dispatches analyzer keys to parsing strategies. New
// instruments are supported by registering a new parser, never by
// branching inside shared code.
type ParserRegistry interface {
	// Register adds a parser. A parser with domain.FallbackAnalyzerKey
	// becomes the fallback strategy.
	Register(parser RecordParser)

	// ParserFor returns the parser registered for an analyzer key.
	ParserFor(analyzerKey string) (RecordParser, bool)

	// Fallback returns the generic fallback parser, or nil when none
	// is registered.
	Fallback() RecordParser
}
