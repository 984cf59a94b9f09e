package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/internal/retention"
)

var flagCleanupDryRun bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete archived audio past the retention window",
	Long: `Cleanup removes audio artifacts in the vault's attachments folder
older than privacy.retention_days. Notes are never touched, and a
retention of 0 keeps everything forever.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cleaner, err := retention.New(attachmentsDir(cfg), cfg.Privacy.RetentionDays)
		if err != nil {
			return err
		}

		report, err := cleaner.Clean(cmd.Context(), flagCleanupDryRun)
		if err != nil {
			return err
		}

		verb := "deleted"
		if flagCleanupDryRun {
			verb = "would delete"
		}
		fmt.Println(titleStyle.Render("Cleanup"))
		fmt.Printf("  %s %d of %d artifacts (%.1f MiB)\n",
			verb, len(report.Deleted), report.Scanned,
			float64(report.FreedBytes)/(1024*1024))
		for _, name := range report.Deleted {
			fmt.Println(labelStyle.Render("  - " + name))
		}
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&flagCleanupDryRun, "dry-run", false, "report what would be deleted without deleting")
}
