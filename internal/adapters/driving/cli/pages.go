package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
)

// readPages loads a report text file. OCR exports separate pages with
// form feeds; a file without any yields a single page 1.
func readPages(path string) ([]domain.RawPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}

	parts := strings.Split(string(data), "\f")
	pages := make([]domain.RawPage, 0, len(parts))
	for i, part := range parts {
		pages = append(pages, domain.RawPage{Index: i + 1, Text: part})
	}
	return pages, nil
}

// resolveAnalyzer picks the analyzer key from the arguments or falls
// back to the configured default. Commands accept either
// "[analyzer] [file]" or just "[file]".
func resolveAnalyzer(args []string) (analyzer, file string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	file = args[0]
	if configStore != nil {
		analyzer = configStore.GetString(driven.ConfigKeyDefaultAnalyzer)
	}
	if analyzer == "" {
		return "", "", fmt.Errorf("no analyzer given and no default configured")
	}
	return analyzer, file, nil
}

// allowFallback merges the flag with the configured default.
func allowFallback(flag bool) bool {
	if flag {
		return true
	}
	return configStore != nil && configStore.GetBool(driven.ConfigKeyAllowFallback)
}
