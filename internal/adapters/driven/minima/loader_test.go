package minima

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

func writeMinima(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minima.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeMinima(t, `
["Roche e801"]
GLUC = 40
"Total  Protein" = 25

["Beckman AU5800"]
bun = 50
`)

	modules, err := Load(path)
	require.NoError(t, err)
	require.Len(t, modules, 2)

	e801 := modules["Roche e801"]
	// Keys are normalized exactly like extracted names.
	assert.Equal(t, domain.MinimumVolumeMap{"gluc": 40, "total protein": 25}, e801)
	assert.Equal(t, domain.MinimumVolumeMap{"bun": 50}, modules["Beckman AU5800"])
}

func TestLoadFlatFile(t *testing.T) {
	path := writeMinima(t, "gluc = 40\nalt = 25\n")

	m, err := LoadModule(path, "")
	require.NoError(t, err)
	assert.Equal(t, domain.MinimumVolumeMap{"gluc": 40, "alt": 25}, m)
}

func TestLoadModule(t *testing.T) {
	path := writeMinima(t, `
["Roche e801"]
gluc = 40

["Beckman AU5800"]
bun = 50
`)

	t.Run("selects the named module", func(t *testing.T) {
		m, err := LoadModule(path, "Beckman AU5800")
		require.NoError(t, err)
		assert.Equal(t, domain.MinimumVolumeMap{"bun": 50}, m)
	})

	t.Run("empty selection is ambiguous with several modules", func(t *testing.T) {
		_, err := LoadModule(path, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown module", func(t *testing.T) {
		_, err := LoadModule(path, "AU1-9")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoadSkipsBadEntries(t *testing.T) {
	path := writeMinima(t, `
["Roche e801"]
gluc = 40
bad = "lots"
negative = -3
whole_float = 25.0
fractional = 12.5
`)

	m, err := LoadModule(path, "Roche e801")
	require.NoError(t, err)
	assert.Equal(t, domain.MinimumVolumeMap{"gluc": 40, "whole_float": 25}, m)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := Load(writeMinima(t, "not = [valid"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeMinima(t, ""))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestModules(t *testing.T) {
	path := writeMinima(t, `
["A"]
x = 1

["B"]
y = 2
`)

	names, err := Modules(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, names)
}
