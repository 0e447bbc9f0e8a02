package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/openlab-tools/reagentcheck/internal/logger"
)

var (
	watchMinima   string
	watchModule   string
	watchWindow   int
	watchFallback bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [analyzer] [dir]",
	Short: "Watch a directory and check report files as they arrive",
	Long: `Watches a drop directory for new .txt report files and runs the full
check pipeline on each one. Useful when a scanner or OCR job writes
its output into a shared folder. Stop with Ctrl-C.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMinima, "minima", "m", "", "minimum-volume reference file (TOML)")
	watchCmd.Flags().StringVar(&watchModule, "module", "", "module table in the reference file (default: analyzer key)")
	watchCmd.Flags().IntVarP(&watchWindow, "window", "w", 0, "expiry window in days (default from config, then 7)")
	watchCmd.Flags().BoolVar(&watchFallback, "fallback", false, "use the generic parser for unknown analyzers")
	_ = watchCmd.MarkFlagRequired("minima") //nolint:errcheck // flag exists
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	analyzer, dir, err := resolveAnalyzer(args)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for report files. Ctrl-C to stop.\n", dir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".txt") {
				continue
			}

			cmd.Println()
			cmd.Println(styles.Header.Render(filepath.Base(event.Name)))
			extraction, report, err := checkFile(ctx, analyzer, event.Name, checkOptions{
				MinimaPath: watchMinima,
				Module:     watchModule,
				Window:     watchWindow,
				Fallback:   watchFallback,
			})
			if err != nil {
				// One bad file must not stop the watch loop.
				logger.Warn("%s: %v", event.Name, err)
				continue
			}
			if err := outputCheckTable(cmd, extraction, report); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
