package services

import (
	"sync"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
)

// Ensure ParserRegistry implements the interface.
var _ driven.ParserRegistry = (*ParserRegistry)(nil)

// ParserRegistry dispatches analyzer keys to registered parsing
// strategies. Registration happens at startup; lookups afterwards are
// read-only, so the registry is safe to share across concurrent
// document pipelines.
type ParserRegistry struct {
	mu       sync.RWMutex
	parsers  map[string]driven.RecordParser
	fallback driven.RecordParser
}

// NewParserRegistry creates an empty registry.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{parsers: make(map[string]driven.RecordParser)}
}

// Register adds a parser. A parser keyed domain.FallbackAnalyzerKey
// becomes the fallback strategy; a duplicate key replaces the previous
// registration.
func (r *ParserRegistry) Register(parser driven.RecordParser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parser.ProfileKey() == domain.FallbackAnalyzerKey {
		r.fallback = parser
		return
	}
	r.parsers[parser.ProfileKey()] = parser
}

// ParserFor returns the parser registered for an analyzer key.
func (r *ParserRegistry) ParserFor(analyzerKey string) (driven.RecordParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[analyzerKey]
	return p, ok
}

// Fallback returns the generic fallback parser, or nil.
func (r *ParserRegistry) Fallback() driven.RecordParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}
