package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/guzus/garage/internal/state"
	"github.com/guzus/garage/internal/store"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show database and UI status",
	GroupID: "garage",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.NewFileStore(cfg.DBPath).Load()
		if err != nil {
			return err
		}

		st, err := state.LoadPath(cfg.StatePath)
		if err != nil {
			return err
		}

		writeStatus(cmd.OutOrStdout(), cfg.DBPath, records, st)
		return nil
	},
}

// categoryCounts counts records per category. Every known category is
// present, so empty ones are reported as zero.
func categoryCounts(records []store.Record) map[string]int {
	counts := make(map[string]int, len(store.Categories))
	for _, c := range store.Categories {
		counts[c] = 0
	}
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}

func writeStatus(out io.Writer, dbPath string, records []store.Record, session *state.Session) {
	fmt.Fprintf(out, "Database:   %s\n", dbPath)
	fmt.Fprintf(out, "Cars:       %d\n", len(records))

	counts := categoryCounts(records)
	names := make([]string, 0, len(counts))
	for c := range counts {
		names = append(names, c)
	}
	sort.Strings(names)
	for _, c := range names {
		fmt.Fprintf(out, "  %-8s  %d\n", c, counts[c])
	}

	if session == nil || session.LastTab == "" {
		fmt.Fprintf(out, "Last tab:   (none)\n")
		return
	}
	fmt.Fprintf(out, "Last tab:   %s\n", session.LastTab)
	if !session.ClosedAt.IsZero() {
		fmt.Fprintf(out, "Closed at:  %s\n", session.ClosedAt.Local().Format("2006-01-02 15:04"))
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
