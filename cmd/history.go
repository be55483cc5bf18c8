package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the entries of the current 7-day window by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}
		rows, w, err := tr.ListHistory(cmd.Context(), currentOwner())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Window: %s .. %s\n", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
		if len(rows) == 0 {
			fmt.Fprintln(out, "(no entries in this window)")
			return nil
		}
		current := -1
		for _, r := range rows {
			if r.DayIndex != current {
				current = r.DayIndex
				fmt.Fprintf(out, "Day %d (%s)\n", r.DayIndex, r.Date.Format("2006-01-02"))
			}
			fmt.Fprintf(out, "  %s  %s (%d)\n", r.Time, r.Mood, r.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
