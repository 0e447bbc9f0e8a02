package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

var (
	extractPages    []int
	extractFallback bool
	extractJSON     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [analyzer] [file]",
	Short: "Extract reagent records from a report text file",
	Long: `Parses OCR text from an analyzer reagent inventory report and prints
the extracted records. The analyzer selects the parsing profile; when
omitted, the configured default analyzer is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntSliceVarP(&extractPages, "pages", "p", nil, "page numbers to parse (default all)")
	extractCmd.Flags().BoolVar(&extractFallback, "fallback", false, "use the generic parser for unknown analyzers")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	analyzer, file, err := resolveAnalyzer(args)
	if err != nil {
		return err
	}

	pages, err := readPages(file)
	if err != nil {
		return err
	}

	opts := domain.ExtractOptions{
		Pages:         extractPages,
		AllowFallback: allowFallback(extractFallback),
	}

	result, err := extractionService.Extract(context.Background(), analyzer, pages, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractJSON {
		return outputExtractionJSON(cmd, result)
	}
	return outputExtractionTable(cmd, result)
}

func outputExtractionJSON(cmd *cobra.Command, result *domain.ExtractionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputExtractionTable(cmd *cobra.Command, result *domain.ExtractionResult) error {
	title := fmt.Sprintf("Records (%s)", result.AnalyzerKey)
	if result.Fallback {
		title += " [generic fallback]"
	}
	cmd.Println(styles.Title.Render(title))
	cmd.Println()

	if result.Records.Len() == 0 {
		cmd.Println(styles.Muted.Render("No records extracted."))
	}

	for _, name := range result.Records.Names() {
		rec, _ := result.Records.Get(name)
		cmd.Printf("  %s  %s\n", styles.Header.Render(name), styles.Normal.Render(describeRecord(rec)))
	}

	if len(result.Skipped) > 0 {
		cmd.Println()
		cmd.Println(styles.Muted.Render(fmt.Sprintf("Skipped %d line(s):", len(result.Skipped))))
		for _, d := range result.Skipped {
			cmd.Println(styles.Muted.Render(fmt.Sprintf("  line %d: %s (%s)", d.Line, d.Text, d.Reason)))
		}
	}
	return nil
}

// describeRecord renders the optional fields that are present.
func describeRecord(rec domain.ParsedRecord) string {
	out := "qty n/a"
	if rec.Quantity != nil {
		out = fmt.Sprintf("qty %d", *rec.Quantity)
	}
	if rec.Secondary != nil {
		out += fmt.Sprintf(" (%d)", *rec.Secondary)
	}
	if rec.Expiry != nil {
		out += ", expires " + rec.Expiry.Format("2006-01-02")
		if rec.ExpiryDays != nil {
			out += fmt.Sprintf(" (%dd)", *rec.ExpiryDays)
		}
	}
	if rec.Lot != "" {
		out += ", lot " + rec.Lot
	}
	if rec.Position != "" {
		out += ", pos " + rec.Position
	}
	return out
}
