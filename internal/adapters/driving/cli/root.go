// Package cli implements the command line driving adapter. Commands
// register themselves with the root command in their init functions and
// reach the core through package-level service references injected by
// the composition root.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driving"
	"github.com/openlab-tools/reagentcheck/internal/logger"
)

// version is set by the composition root at startup.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	extractionService driving.ExtractionService
	reconcileService  driving.ReconciliationService
	runStore          driven.RunStore
	configStore       driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reagentcheck",
	Short: "Reconcile analyzer reagent inventories against minimum volumes",
	Long: `Reagentcheck reads OCR text from analyzer reagent inventory reports,
extracts the reagent records, and flags everything at or below its
minimum volume or expiring within the configured window.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	Extraction driving.ExtractionService
	Reconcile  driving.ReconciliationService
	Runs       driven.RunStore
	Config     driven.ConfigStore
}

// SetServices injects the core services. Must be called before Execute.
func SetServices(s Services) {
	extractionService = s.Extraction
	reconcileService = s.Reconcile
	runStore = s.Runs
	configStore = s.Config
}

// SetVersion records the build version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
