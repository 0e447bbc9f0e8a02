package domain

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	channelSuffix = regexp.MustCompile(`[\s-]+\d+$`)
)

// NormalizeName canonicalizes a reagent identifier: lower-case, outer
// whitespace trimmed, internal whitespace runs collapsed to single
// spaces. The same function is applied to extracted names and to
// minimum-volume keys, which guarantees join compatibility. Matching is
// exact-after-normalization only; near misses surface via the unmatched
// report rather than being auto-corrected.
func NormalizeName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	return whitespaceRun.ReplaceAllString(name, " ")
}

// StripChannelSuffix folds a trailing separator+digits sequence into the
// base test name, so channel instances like "ft3-3" or "tsh 2" collapse
// to "ft3" and "tsh". The minimum-volume reference is keyed by base test
// name only, making this many-to-one fold deliberate. Names that are
// nothing but the suffix are left untouched.
func StripChannelSuffix(name string) string {
	stripped := channelSuffix.ReplaceAllString(name, "")
	if stripped == "" {
		return name
	}
	return stripped
}
