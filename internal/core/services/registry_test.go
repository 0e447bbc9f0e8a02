package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

// mockParser implements driven.RecordParser for testing.
type mockParser struct {
	key    string
	result *domain.ExtractionResult
	err    error
	calls  int
}

func (m *mockParser) ProfileKey() string { return m.key }

func (m *mockParser) Parse(_ context.Context, _ string) (*domain.ExtractionResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestParserRegistry(t *testing.T) {
	t.Run("dispatches by key", func(t *testing.T) {
		r := NewParserRegistry()
		r.Register(&mockParser{key: "Roche e801"})
		r.Register(&mockParser{key: "Beckman AU5800"})

		p, ok := r.ParserFor("Roche e801")
		require.True(t, ok)
		assert.Equal(t, "Roche e801", p.ProfileKey())

		_, ok = r.ParserFor("unknown")
		assert.False(t, ok)
	})

	t.Run("fallback key registers as fallback", func(t *testing.T) {
		r := NewParserRegistry()
		r.Register(&mockParser{key: domain.FallbackAnalyzerKey})

		_, ok := r.ParserFor(domain.FallbackAnalyzerKey)
		assert.False(t, ok)
		require.NotNil(t, r.Fallback())
		assert.Equal(t, domain.FallbackAnalyzerKey, r.Fallback().ProfileKey())
	})

	t.Run("no fallback registered", func(t *testing.T) {
		r := NewParserRegistry()
		assert.Nil(t, r.Fallback())
	})

	t.Run("duplicate key replaces", func(t *testing.T) {
		r := NewParserRegistry()
		first := &mockParser{key: "Roche e801"}
		second := &mockParser{key: "Roche e801"}
		r.Register(first)
		r.Register(second)

		p, ok := r.ParserFor("Roche e801")
		require.True(t, ok)
		assert.Same(t, second, p)
	})
}
