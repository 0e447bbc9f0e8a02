package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openlab-tools/reagentcheck/internal/adapters/driven/storage/memory"
	"github.com/openlab-tools/reagentcheck/internal/core/services"
	"github.com/openlab-tools/reagentcheck/internal/parsers"
)

// setupTestServices wires real services over in-memory storage and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldExtraction := extractionService
	oldReconcile := reconcileService
	oldRuns := runStore
	oldConfig := configStore

	registry := services.NewParserRegistry()
	for _, p := range parsers.Default() {
		registry.Register(p)
	}

	runs := memory.NewRunStore()
	extractionService = services.NewExtractionService(registry, runs)
	reconcileService = services.NewReconcileService()
	runStore = runs
	configStore = nil

	return func() {
		extractionService = oldExtraction
		reconcileService = oldReconcile
		runStore = oldRuns
		configStore = oldConfig
	}
}

// e801Report is a small report in the Roche e801 layout.
const e801Report = `Reagent Inventory - Module 1
Test   Reason   Available Tests   Type   Pos.   Remaining   Lot ID   Expiry Date
GLUC   ok   210   II   5   434   118832   2025/09 (12)
ALT   calib   180   II   6   12   201553   09/30/2025
TSH   ok   150   II   7   80   201554   2026-01-15
Total   3   526
Magazine waste  81%`

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func writeMinimaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minima.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
