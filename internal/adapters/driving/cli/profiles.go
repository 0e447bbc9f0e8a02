package cli

import (
	"github.com/spf13/cobra"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in analyzer profiles",
	Run:   runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) {
	for _, key := range domain.ProfileKeys() {
		profile, err := domain.ProfileFor(key)
		if err != nil {
			continue
		}

		cmd.Println(styles.Title.Render(profile.Key))
		cmd.Printf("  aggregation: %s, duplicates: %s\n", profile.Aggregation, profile.Merge)
		cmd.Printf("  headers: %v\n", profile.Headers)
		if len(profile.Terminators) > 0 {
			cmd.Printf("  terminators: %v\n", profile.Terminators)
		}
		if profile.StripChannelSuffix {
			cmd.Println(styles.Muted.Render("  channel suffixes stripped from names"))
		}
		cmd.Println()
	}
	cmd.Printf("Unknown analyzers can use the %q fallback with --fallback.\n", domain.FallbackAnalyzerKey)
}
