// Command reagentcheck is the composition root: it wires the storage
// adapters and core services together and hands control to the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/openlab-tools/reagentcheck/internal/adapters/driven/config/file"
	"github.com/openlab-tools/reagentcheck/internal/adapters/driven/storage/sqlite"
	"github.com/openlab-tools/reagentcheck/internal/adapters/driving/cli"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/core/services"
	"github.com/openlab-tools/reagentcheck/internal/logger"
	"github.com/openlab-tools/reagentcheck/internal/parsers"
)

// version is overridden at build time with -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initializing config store: %w", err)
	}

	// Extraction still works without run history, so a broken local
	// database only disables caching.
	var runStore driven.RunStore
	if store, err := sqlite.NewStore(""); err != nil {
		logger.Warn("Run store unavailable, caching disabled: %v", err)
	} else {
		defer store.Close()
		runStore = store
	}

	registry := services.NewParserRegistry()
	for _, p := range parsers.Default() {
		registry.Register(p)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Extraction: services.NewExtractionService(registry, runStore),
		Reconcile:  services.NewReconcileService(),
		Runs:       runStore,
		Config:     configStore,
	})

	return cli.Execute()
}
