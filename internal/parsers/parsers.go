// Package parsers wires the compiled-in analyzer profiles to their
// parsing strategies. Each strategy lives in its own subpackage and
// implements the driven.RecordParser port; this package only assembles
// the default set registered at startup.
package parsers

import (
	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/parsers/generic"
	"github.com/openlab-tools/reagentcheck/internal/parsers/pairedmin"
	"github.com/openlab-tools/reagentcheck/internal/parsers/singlerow"
)

// Default returns one parser per compiled-in profile, selected by the
// profile's aggregation policy, plus the generic fallback.
func Default() []driven.RecordParser {
	var out []driven.RecordParser
	for _, key := range domain.ProfileKeys() {
		profile, err := domain.ProfileFor(key)
		if err != nil {
			// ProfileKeys only returns registered keys.
			continue
		}
		switch profile.Aggregation {
		case domain.AggregationPairedMinSum:
			out = append(out, pairedmin.New(profile))
		default:
			out = append(out, singlerow.New(profile))
		}
	}
	out = append(out, generic.New())
	return out
}
