// Package generic is the best-effort fallback parser for printouts with
// no registered analyzer profile. It applies one permissive pattern per
// line instead of schema-driven column resolution, so its results are
// lower-confidence and callers must treat them accordingly.
package generic

import (
	"context"
	"regexp"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/logger"
	"github.com/openlab-tools/reagentcheck/internal/parsers/fields"
	"github.com/openlab-tools/reagentcheck/internal/parsers/layout"
)

// Ensure Parser implements the interface.
var _ driven.RecordParser = (*Parser)(nil)

// rowPattern matches a leading name segment (letters, digits, spaces,
// hyphens) separated by a column gap from a terminal number, optionally
// suffixed by a unit hint.
var rowPattern = regexp.MustCompile(`(?i)^([A-Za-z0-9\s\-]+?)\s{2,}.*?(\d+)\s*(?:ML|Tests|units)?$`)

// Parser is the generic fallback strategy.
type Parser struct{}

// New creates the fallback parser.
func New() *Parser {
	return &Parser{}
}

// ProfileKey identifies the fallback strategy.
func (p *Parser) ProfileKey() string {
	return domain.FallbackAnalyzerKey
}

// Parse applies the permissive pattern line by line. The first match per
// canonical name wins; later duplicates are ignored. Lines that do not
// match are reported as diagnostics.
func (p *Parser) Parse(_ context.Context, text string) (*domain.ExtractionResult, error) {
	result := &domain.ExtractionResult{
		AnalyzerKey: domain.FallbackAnalyzerKey,
		Fallback:    true,
		Records:     domain.NewRecordSet(),
	}

	for _, line := range layout.SplitLines(text) {
		m := rowPattern.FindStringSubmatch(line.Text)
		if m == nil {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonNoMatch,
			})
			continue
		}

		name := fields.CanonicalName(m[1], false)
		if name == "" {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonNoName,
			})
			continue
		}
		if _, seen := result.Records.Get(name); seen {
			continue
		}

		qty, ok := fields.Count(m[2])
		if !ok {
			continue
		}
		result.Records.Put(domain.ParsedRecord{Name: name, Quantity: &qty})
	}

	logger.Debug("generic fallback parsed %d records", result.Records.Len())
	return result, nil
}
