// Package layout locates tabular structure inside noisy OCR text.
//
// Analyzer printouts are line-oriented with columns separated by runs of
// whitespace. OCR drifts column edges by a character or two, so tokens
// are split on runs of two-or-more whitespace characters and header
// labels are matched by case-insensitive substring rather than equality.
// Column resolution is deliberately binary (found or not found); no
// confidence score is computed.
package layout

import (
	"regexp"
	"strings"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

// columnSplit tokenizes a line on runs of two-or-more whitespace
// characters, tolerating OCR column drift while keeping multi-word cell
// values (e.g. "Total Protein") intact.
var columnSplit = regexp.MustCompile(`\s{2,}`)

// Line is one non-empty, trimmed line of the document.
type Line struct {
	// Index is the 1-based position among the kept lines.
	Index int

	// Text is the trimmed line content.
	Text string
}

// SplitLines breaks document text into non-empty trimmed lines.
// Carriage returns are dropped first; OCR output mixes line endings.
func SplitLines(text string) []Line {
	text = strings.ReplaceAll(text, "\r", "")

	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, Line{Index: len(lines) + 1, Text: trimmed})
	}
	return lines
}

// Columns splits a line into candidate column tokens.
func Columns(line string) []string {
	cols := columnSplit.Split(line, -1)
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// Header is a located table header: the line it sits on and the resolved
// role-to-column positions.
type Header struct {
	// Line is the 1-based line index of the header.
	Line int

	// Positions maps each resolved field role to its column index.
	// Roles absent from the map did not match any token; downstream
	// parsers may treat some of them as optional.
	Positions map[domain.FieldRole]int
}

// Position returns the column index for a role.
func (h Header) Position(role domain.FieldRole) (int, bool) {
	pos, ok := h.Positions[role]
	return pos, ok
}

// Locate scans lines from the top for the profile's table header. A line
// qualifies when each of the profile's required leading labels appears
// case-insensitively inside some column token; the trailing labels are
// not required because OCR recovers the leftmost columns most reliably.
//
// On the first qualifying line, each role's label fragment is resolved to
// the first matching column index. Returns false when no line qualifies.
func Locate(lines []Line, profile domain.AnalyzerProfile) (Header, bool) {
	required := profile.RequiredHeaders()
	if len(required) == 0 {
		return Header{}, false
	}

	for _, line := range lines {
		cols := Columns(line.Text)
		if !containsAllLabels(cols, required) {
			continue
		}

		h := Header{Line: line.Index, Positions: make(map[domain.FieldRole]int)}
		for role, fragment := range profile.RoleLabels {
			if idx, ok := findColumn(cols, fragment); ok {
				h.Positions[role] = idx
			}
		}
		return h, true
	}
	return Header{}, false
}

// IsTerminator reports whether a line marks the end of the data region,
// e.g. a totals or waste-counter row from the printout's trailing
// boilerplate.
func IsTerminator(line string, terminators []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range terminators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func containsAllLabels(cols []string, labels []string) bool {
	for _, label := range labels {
		if _, ok := findColumn(cols, label); !ok {
			return false
		}
	}
	return true
}

func findColumn(cols []string, fragment string) (int, bool) {
	fragment = strings.ToLower(fragment)
	for i, col := range cols {
		if strings.Contains(strings.ToLower(col), fragment) {
			return i, true
		}
	}
	return 0, false
}
