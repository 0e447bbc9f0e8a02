// Package pairedmin parses analyzer layouts that print split reagent
// packs as independent rows, e.g. the Beckman AU5800. A reagent shipping
// as two physical packs is usable only up to the lesser count of each
// pair, so same-name rows aggregate as the sum of pairwise minimums.
package pairedmin

import (
	"context"
	"sort"
	"time"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/logger"
	"github.com/openlab-tools/reagentcheck/internal/parsers/fields"
	"github.com/openlab-tools/reagentcheck/internal/parsers/layout"
)

// Ensure Parser implements the interface.
var _ driven.RecordParser = (*Parser)(nil)

// Parser collects all data rows per canonical name and aggregates them
// under the paired-min-sum policy.
type Parser struct {
	profile domain.AnalyzerProfile
}

// New creates a paired-min-sum parser for a profile.
func New(profile domain.AnalyzerProfile) *Parser {
	return &Parser{profile: profile}
}

// ProfileKey returns the analyzer key this parser serves.
func (p *Parser) ProfileKey() string {
	return p.profile.Key
}

// entry is one data row belonging to a reagent.
type entry struct {
	quantity   int
	expiry     *time.Time
	expiryDays *int
	secondary  *int
	lot        string
	position   string
}

// Parse extracts and aggregates records. Rows without a numeric quantity
// cannot participate in pairing and are skipped with a diagnostic.
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

	namePos, nameResolved := header.Position(domain.RoleName)
	qtyPos, qtyResolved := header.Position(domain.RolePrimaryQuantity)
	if !nameResolved || !qtyResolved {
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

	// Collect rows per canonical name, preserving first-seen order.
	var order []string
	groups := make(map[string][]entry)

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

		name := fields.CanonicalName(cols[namePos], p.profile.StripChannelSuffix)
		if name == "" {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonNoName,
			})
			continue
		}

		qty, ok := fields.Count(cols[qtyPos])
		if !ok {
			result.Skipped = append(result.Skipped, domain.Diagnostic{
				Line:   line.Index,
				Text:   line.Text,
				Reason: domain.ReasonNoQuantity,
			})
			continue
		}

		e := entry{quantity: qty}
		if pos, ok := header.Position(domain.RoleSecondaryQuantity); ok && pos < len(cols) {
			if n, ok := fields.Count(cols[pos]); ok {
				e.secondary = &n
			}
		}
		if pos, ok := header.Position(domain.RoleExpiryDate); ok && pos < len(cols) {
			if d, days, ok := fields.Expiry(cols[pos]); ok {
				e.expiry = &d
				e.expiryDays = days
			}
		}
		if pos, ok := header.Position(domain.RoleLot); ok && pos < len(cols) {
			e.lot = cols[pos]
		}
		if pos, ok := header.Position(domain.RolePosition); ok && pos < len(cols) {
			e.position = cols[pos]
		}

		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], e)
	}

	for _, name := range order {
		result.Records.Put(aggregate(name, groups[name]))
	}
	return result, nil
}

// aggregate folds a reagent's rows into one record. Rows are ordered by
// quantity descending and walked pairwise; each pair contributes its
// lesser count and an unpaired trailing row contributes its own. The
// reported expiry is the earliest across all rows, the pessimistic and
// therefore safe choice for a replenishment signal. Sorting first makes
// the aggregate independent of row order in the printout.
func aggregate(name string, entries []entry) domain.ParsedRecord {
	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].quantity > sorted[j].quantity
	})

	total := 0
	for i := 0; i+1 < len(sorted); i += 2 {
		// Descending order makes the second of each pair the minimum.
		total += sorted[i+1].quantity
	}
	if len(sorted)%2 == 1 {
		total += sorted[len(sorted)-1].quantity
	}

	rec := domain.ParsedRecord{Name: name, Quantity: &total}
	for _, e := range sorted {
		if e.expiry == nil {
			continue
		}
		if rec.Expiry == nil || e.expiry.Before(*rec.Expiry) {
			rec.Expiry = e.expiry
			rec.ExpiryDays = e.expiryDays
		}
	}
	for _, e := range entries {
		if rec.Secondary == nil && e.secondary != nil {
			rec.Secondary = e.secondary
		}
		if rec.Lot == "" {
			rec.Lot = e.lot
		}
		if rec.Position == "" {
			rec.Position = e.position
		}
	}
	return rec
}
