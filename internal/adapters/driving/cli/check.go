package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlab-tools/reagentcheck/internal/adapters/driven/minima"
	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
)

var (
	checkMinima   string
	checkModule   string
	checkWindow   int
	checkPages    []int
	checkFallback bool
	checkJSON     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [analyzer] [file]",
	Short: "Extract records and flag reagents needing attention",
	Long: `Runs the full pipeline: extracts reagent records from the report and
reconciles them against the minimum-volume reference. A reagent is
flagged when its quantity is at or below its minimum, or when it
expires within the window.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkMinima, "minima", "m", "", "minimum-volume reference file (TOML)")
	checkCmd.Flags().StringVar(&checkModule, "module", "", "module table in the reference file (default: analyzer key)")
	checkCmd.Flags().IntVarP(&checkWindow, "window", "w", 0, "expiry window in days (default from config, then 7)")
	checkCmd.Flags().IntSliceVarP(&checkPages, "pages", "p", nil, "page numbers to parse (default all)")
	checkCmd.Flags().BoolVar(&checkFallback, "fallback", false, "use the generic parser for unknown analyzers")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the report as JSON")
	_ = checkCmd.MarkFlagRequired("minima") //nolint:errcheck // flag exists
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	analyzer, file, err := resolveAnalyzer(args)
	if err != nil {
		return err
	}

	extraction, report, err := checkFile(context.Background(), analyzer, file, checkOptions{
		MinimaPath: checkMinima,
		Module:     checkModule,
		Window:     checkWindow,
		Pages:      checkPages,
		Fallback:   checkFallback,
	})
	if err != nil {
		return err
	}

	if checkJSON {
		return outputCheckJSON(cmd, extraction, report)
	}
	return outputCheckTable(cmd, extraction, report)
}

// checkOptions collects the knobs of one pipeline run.
type checkOptions struct {
	MinimaPath string
	Module     string
	Window     int
	Pages      []int
	Fallback   bool
}

// checkFile runs extraction and reconciliation for one report file.
// Shared between the check and watch commands.
func checkFile(
	ctx context.Context, analyzer, file string, opts checkOptions,
) (*domain.ExtractionResult, *domain.ReconciliationResult, error) {
	if extractionService == nil || reconcileService == nil {
		return nil, nil, errors.New("services not configured")
	}

	pages, err := readPages(file)
	if err != nil {
		return nil, nil, err
	}

	extraction, err := extractionService.Extract(ctx, analyzer, pages, domain.ExtractOptions{
		Pages:         opts.Pages,
		AllowFallback: allowFallback(opts.Fallback),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extraction failed: %w", err)
	}

	volumes, err := loadMinima(opts.MinimaPath, opts.Module, analyzer)
	if err != nil {
		return nil, nil, err
	}

	window := opts.Window
	if window <= 0 && configStore != nil {
		window = configStore.GetInt(driven.ConfigKeyExpiryWindowDays)
	}

	report := reconcileService.Reconcile(extraction.Records, volumes, window)
	return extraction, report, nil
}

// loadMinima resolves the module table: the explicit flag wins, then the
// analyzer key, then a single-module file.
func loadMinima(path, module, analyzer string) (domain.MinimumVolumeMap, error) {
	if module != "" {
		return minima.LoadModule(path, module)
	}

	volumes, err := minima.LoadModule(path, analyzer)
	if err == nil {
		return volumes, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return minima.LoadModule(path, "")
	}
	return nil, err
}

// checkReport is the JSON shape of a full pipeline run.
type checkReport struct {
	AnalyzerKey string                       `json:"analyzer_key"`
	Fallback    bool                         `json:"fallback,omitempty"`
	Flagged     []domain.FlaggedReagent      `json:"flagged"`
	Unmatched   []string                     `json:"unmatched,omitempty"`
	WindowDays  int                          `json:"window_days"`
	Skipped     []domain.Diagnostic          `json:"skipped,omitempty"`
	Records     map[string]domain.ParsedRecord `json:"records"`
}

func outputCheckJSON(cmd *cobra.Command, extraction *domain.ExtractionResult, report *domain.ReconciliationResult) error {
	out := checkReport{
		AnalyzerKey: extraction.AnalyzerKey,
		Fallback:    extraction.Fallback,
		Flagged:     report.Flagged,
		Unmatched:   report.Unmatched,
		WindowDays:  report.WindowDays,
		Skipped:     extraction.Skipped,
		Records:     extraction.Records.Records,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCheckTable(cmd *cobra.Command, extraction *domain.ExtractionResult, report *domain.ReconciliationResult) error {
	title := fmt.Sprintf("Reagent check (%s, %d day window)", extraction.AnalyzerKey, report.WindowDays)
	cmd.Println(styles.Title.Render(title))
	cmd.Println()

	if len(report.Flagged) == 0 {
		cmd.Println(styles.Success.Render("All matched reagents are stocked and within date."))
	}

	for _, f := range report.Flagged {
		var reasons string
		if f.BelowMinimum {
			qty := "n/a"
			if f.Quantity != nil {
				qty = fmt.Sprintf("%d", *f.Quantity)
			}
			reasons = styles.Error.Render(fmt.Sprintf("quantity %s <= minimum %d", qty, f.Minimum))
		}
		if f.ExpiringSoon {
			if reasons != "" {
				reasons += ", "
			}
			reasons += styles.Warning.Render("expires " + f.Expiry.Format("2006-01-02"))
		}
		cmd.Printf("  %s  %s\n", styles.Header.Render(f.Name), reasons)
	}

	if len(report.Unmatched) > 0 {
		cmd.Println()
		cmd.Println(styles.Muted.Render(fmt.Sprintf("No minimum on file for %d reagent(s):", len(report.Unmatched))))
		for _, name := range report.Unmatched {
			cmd.Println(styles.Muted.Render("  " + name))
		}
	}

	if len(extraction.Skipped) > 0 {
		cmd.Println()
		cmd.Println(styles.Muted.Render(fmt.Sprintf("Skipped %d unparseable line(s), run with --verbose for details.", len(extraction.Skipped))))
	}
	return nil
}
