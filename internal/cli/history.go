package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/internal/vault/catalog"
)

var (
	flagHistoryCount int
	flagHistoryStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent journal entries from the catalog",
	Long: `History reads the vault's catalog index and lists recent entries.
The catalog records one row per note creation; it is rebuilt naturally
as new entries are journaled and is not required for the vault itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := filepath.Join(cfg.Vault.Path, catalog.DefaultRelPath)
		cat, err := catalog.Open(path)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer cat.Close()

		ctx := cmd.Context()

		if flagHistoryStats {
			stats, err := cat.TotalStats(ctx)
			if err != nil {
				return err
			}
			fmt.Println(titleStyle.Render("Journal stats"))
			fmt.Println(labelStyle.Render("  entries: ") + fmt.Sprint(stats.Entries))
			fmt.Println(labelStyle.Render("  words:   ") + fmt.Sprint(stats.TotalWords))
			for _, mood := range []string{"Positive", "Neutral", "Negative"} {
				if n := stats.Moods[mood]; n > 0 {
					fmt.Printf("  %s: %d\n", renderMood(mood), n)
				}
			}
			return nil
		}

		entries, err := cat.Recent(ctx, flagHistoryCount)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(labelStyle.Render("No journal entries yet."))
			return nil
		}

		fmt.Println(titleStyle.Render("Recent journal entries"))
		for _, e := range entries {
			line := fmt.Sprintf("  %s  %-8s  %4d words",
				e.DateKey, renderMood(e.Mood), e.WordCount)
			if e.Duration > 0 {
				line += labelStyle.Render(fmt.Sprintf("  %s", e.Duration.Round(time.Second)))
			}
			fmt.Println(line)
			if e.Topics != "" {
				fmt.Println(labelStyle.Render("              " + e.Topics))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryCount, "count", "n", 10, "number of entries to list")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "show aggregate stats instead of a listing")
}
