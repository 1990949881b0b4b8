package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verihttp/verihttp/packages/history"
)

var historyFlags struct {
	path  string
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent recorded probe outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyFlags.path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), historyFlags.limit)
		if err != nil {
			return err
		}

		for _, e := range entries {
			status := "PASS"
			if !e.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-4s %-6s %s  %d (%dms)\n",
				e.RecordedAt.Format("2006-01-02 15:04:05"), status, e.Method, e.URL, e.StatusCode, e.DurationMs)
			if e.Failure != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", e.Failure)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.path, "db", "verihttp-history.db", "history database path")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum entries to show")
}
