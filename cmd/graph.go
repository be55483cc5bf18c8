package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/excotide/moodify/internal/mood"
	"github.com/spf13/cobra"
)

// graphWidth is the bar length of a perfect score.
const graphWidth = 20

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw the daily averages of the current 7-day window",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}
		slots, w, err := tr.RollingGraph(cmd.Context(), currentOwner())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Window: %s .. %s\n", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
		for _, s := range slots {
			day := w.Start.AddDate(0, 0, s.DayOffset)
			if s.Count == 0 {
				fmt.Fprintf(out, "D%d %s |\n", s.DayOffset+1, day.Format("01-02"))
				continue
			}
			n := int(math.Round(s.Average / mood.MaxScore * graphWidth))
			fmt.Fprintf(out, "D%d %s |%s %.2f\n", s.DayOffset+1, day.Format("01-02"), strings.Repeat("█", n), s.Average)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
