// Package fields parses individual cell values from analyzer printouts:
// integer counts, expiry dates in the layouts the supported instruments
// print, and canonical reagent names.
//
// Extraction failures are absent values, not errors. A cell the OCR
// mangled beyond recognition makes that row skippable, never fatal.
package fields

import (
	"regexp"
	"strconv"
	"time"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

var (
	digitRun = regexp.MustCompile(`\d+`)

	// compactExpiry matches the Roche compact form "YYYY/MM (days)",
	// an expiry month with the onboard-stability day count appended.
	compactExpiry = regexp.MustCompile(`^(\d{4})/(\d{2})\s*\((\d+)\)`)
)

// dateLayouts are the accepted calendar layouts, tried in order.
var dateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
}

// Count extracts the first run of decimal digits from a token.
// Returns false when the token carries no digits.
func Count(token string) (int, bool) {
	m := digitRun.FindString(token)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Digit runs longer than an int; treat as absent.
		return 0, false
	}
	return n, true
}

// Expiry parses an expiry cell. Calendar layouts are tried in order and
// the first successful one wins; the compact "YYYY/MM (days)" form is
// tried last and resolves to the first of the month plus the parsed day
// count. Returns ok=false when nothing matches.
func Expiry(token string) (t time.Time, days *int, ok bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, token); err == nil {
			return parsed, nil, true
		}
	}

	if m := compactExpiry.FindStringSubmatch(token); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return time.Time{}, nil, false
		}
		d, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), &d, true
	}

	return time.Time{}, nil, false
}

// CanonicalName normalizes a name cell into the canonical join key,
// folding the channel suffix when the profile asks for it.
func CanonicalName(token string, stripChannelSuffix bool) string {
	name := domain.NormalizeName(token)
	if stripChannelSuffix {
		name = domain.StripChannelSuffix(name)
	}
	return name
}
