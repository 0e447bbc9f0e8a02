// Package singlerow parses analyzer layouts where every data row is one
// reagent record, e.g. the Roche e801 reagent status printout.
package singlerow

import (
	"context"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/logger"
	"github.com/openlab-tools/reagentcheck/internal/parsers/fields"
	"github.com/openlab-tools/reagentcheck/internal/parsers/layout"
)

// Ensure Parser implements the interface.
var _ driven.RecordParser = (*Parser)(nil)

// Parser walks the data region after the header line, one record per
// row, merging duplicate names according to the profile's merge policy.
type Parser struct {
	profile domain.AnalyzerProfile
}

// New creates a single-row parser for a profile.
func New(profile domain.AnalyzerProfile) *Parser {
	return &Parser{profile: profile}
}

// ProfileKey returns the analyzer key this parser serves.
func (p *Parser) ProfileKey() string {
	return p.profile.Key
}

// Parse extracts records from the document text. A missing header or
// unresolvable quantity column yields an empty record set with a
// document-level diagnostic; bad rows are skipped individually.
func (p *Parser) Parse(_ context.Context, text string) (*domain.ExtractionResult, error) {
	result := &domain.ExtractionResult{
		AnalyzerKey: p.profile.Key,
		Records:     domain.NewRecordSet(),
	}

	lines := layout.SplitLines(text)
	header, ok := layout.Locate(lines, p.profile)
	if !ok {
		logger.Warn("%s: header not found", p.profile.Key)
		result.Skipped = append(result.Skipped, domain.Diagnostic{Reason: domain.ReasonHeaderNotFound})
		return result, nil
	}
	logger.Debug("%s: header at line %d", p.profile.Key, header.Line)

	namePos, _ := header.Position(domain.RoleName)
	qtyPos, qtyResolved := header.Position(domain.RolePrimaryQuantity)
	if !qtyResolved {
		result.Skipped = append(result.Skipped, domain.Diagnostic{
			Line:   header.Line,
			Reason: domain.ReasonMissingColumn,
		})
		return result, nil
	}

	minColumns := namePos
	if qtyPos > minColumns {
		minColumns = qtyPos
	}

	for _, line := range lines[header.Line:] {
		if layout.IsTerminator(line.Text, p.profile.Terminators) {
			logger.Debug("%s: data region ends at line %d", p.profile.Key, line.Index)
			break
		}

		cols := layout.Columns(line.Text)
		if len(cols) <= minColumns {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonTooFewColumns,
			})
			continue
		}

		rec := p.buildRecord(cols, header)
		if rec.Name == "" {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonNoName,
			})
			continue
		}

		p.merge(result.Records, rec)
	}

	return result, nil
}

// buildRecord extracts the fields at the header's resolved positions.
// Fields whose cell is missing or unparseable stay absent; only the name
// is mandatory.
func (p *Parser) buildRecord(cols []string, header layout.Header) domain.ParsedRecord {
	namePos, _ := header.Position(domain.RoleName)
	rec := domain.ParsedRecord{
		Name: fields.CanonicalName(cols[namePos], p.profile.StripChannelSuffix),
	}

	if pos, ok := header.Position(domain.RolePrimaryQuantity); ok && pos < len(cols) {
		if n, ok := fields.Count(cols[pos]); ok {
			rec.Quantity = &n
		}
	}
	if pos, ok := header.Position(domain.RoleSecondaryQuantity); ok && pos < len(cols) {
		if n, ok := fields.Count(cols[pos]); ok {
			rec.Secondary = &n
		}
	}
	if pos, ok := header.Position(domain.RoleExpiryDate); ok && pos < len(cols) {
		if d, days, ok := fields.Expiry(cols[pos]); ok {
			rec.Expiry = &d
			rec.ExpiryDays = days
		}
	}
	if pos, ok := header.Position(domain.RoleLot); ok && pos < len(cols) {
		rec.Lot = cols[pos]
	}
	if pos, ok := header.Position(domain.RolePosition); ok && pos < len(cols) {
		rec.Position = cols[pos]
	}
	return rec
}

// merge upserts a record according to the profile's merge policy. The
// default overwrites; keep-minimum replaces an existing record only when
// the new quantity is strictly smaller.
func (p *Parser) merge(set *domain.RecordSet, rec domain.ParsedRecord) {
	if p.profile.Merge != domain.MergeKeepMinimum {
		set.Put(rec)
		return
	}

	existing, seen := set.Get(rec.Name)
	if !seen {
		set.Put(rec)
		return
	}
	if existing.Quantity == nil {
		set.Put(rec)
		return
	}
	if rec.Quantity != nil && *rec.Quantity < *existing.Quantity {
		set.Put(rec)
	}
}
