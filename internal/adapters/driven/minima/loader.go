// Package minima loads minimum-volume reference data from TOML files.
//
// The reference file mirrors the lab's bookkeeping: one table per
// analyzer module, each mapping reagent names to minimum required
// quantities:
//
//	["Roche e801"]
//	gluc = 40
//	alt = 25
//
// A file without tables is treated as a single unnamed module. Keys are
// normalized with the same rules as extracted reagent names, which is
// what guarantees the reconciliation join lines up.
package minima

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/logger"
)

// Load reads every module table from a reference file.
func Load(path string) (map[string]domain.MinimumVolumeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading minima file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing minima file: %w", err)
	}

	modules := make(map[string]domain.MinimumVolumeMap)
	flat := domain.MinimumVolumeMap{}

	for key, value := range raw {
		switch v := value.(type) {
		case map[string]any:
			m := parseModule(key, v)
			if len(m) > 0 {
				modules[key] = m
			}
		default:
			if vol, ok := asVolume(value); ok {
				flat[domain.NormalizeName(key)] = vol
			} else {
				logger.Warn("minima: ignoring non-numeric entry %q", key)
			}
		}
	}

	// Top-level entries form a single unnamed module.
	if len(flat) > 0 {
		modules[""] = flat
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("minima file %s holds no usable entries: %w", path, domain.ErrInvalidInput)
	}
	return modules, nil
}

// LoadModule reads one module's minimum-volume map. An empty module name
// is accepted when the file holds exactly one module.
func LoadModule(path, module string) (domain.MinimumVolumeMap, error) {
	modules, err := Load(path)
	if err != nil {
		return nil, err
	}

	if module == "" {
		if len(modules) == 1 {
			for _, m := range modules {
				return m, nil
			}
		}
		return nil, fmt.Errorf("minima file %s holds %d modules, select one: %w",
			path, len(modules), domain.ErrInvalidInput)
	}

	m, ok := modules[module]
	if !ok {
		return nil, fmt.Errorf("module %q: %w", module, domain.ErrNotFound)
	}
	return m, nil
}

// Modules lists the module names available in a reference file.
func Modules(path string) ([]string, error) {
	modules, err := Load(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	return names, nil
}

func parseModule(module string, entries map[string]any) domain.MinimumVolumeMap {
	m := domain.MinimumVolumeMap{}
	for name, value := range entries {
		vol, ok := asVolume(value)
		if !ok {
			logger.Warn("minima: module %q: ignoring non-numeric entry %q", module, name)
			continue
		}
		m[domain.NormalizeName(name)] = vol
	}
	return m
}

// asVolume accepts non-negative integers, including TOML floats that
// happen to be whole numbers (spreadsheet exports produce those).
func asVolume(value any) (int, bool) {
	switch v := value.(type) {
	case int64:
		if v < 0 {
			return 0, false
		}
		return int(v), true
	case float64:
		if v < 0 || v != float64(int64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
