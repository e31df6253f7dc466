package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yairfalse/merkki/history"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tagging runs",
	Long: `Show the most recent tagging runs from the local history store,
newest first.`,
	Example: `  merkki history             # Last 10 runs
  merkki history --limit 50  # Last 50 runs`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STARTED\tREGION\tPROCESSED\tTAGGED\tERRORS\tDURATION")
	_, _ = fmt.Fprintln(w, "-------\t------\t---------\t------\t------\t--------")

	for _, rec := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			rec.StartTime.Format(time.RFC3339),
			rec.Region,
			rec.Stats.Processed,
			rec.Stats.Tagged,
			rec.Stats.Errors,
			rec.EndTime.Sub(rec.StartTime).Round(time.Millisecond),
		)
	}

	return w.Flush()
}
