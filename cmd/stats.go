package cmd

import (
	"fmt"
	"io"

	"github.com/excotide/moodify/internal/analysis"
	"github.com/excotide/moodify/internal/recommend"
	"github.com/excotide/moodify/internal/tracker"
	"github.com/spf13/cobra"
)

var statsIncomplete string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the current 7-day window",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}
		policy := cfg.IncompleteWeek
		if statsIncomplete != "" {
			policy = statsIncomplete
		}
		incomplete, err := analysis.ParseIncompletePolicy(policy)
		if err != nil {
			return err
		}
		sum, err := tr.ComputeWeeklyStats(cmd.Context(), currentOwner())
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum, incomplete)
		return nil
	},
}

func printSummary(w io.Writer, sum tracker.Summary, p analysis.IncompletePolicy) {
	s := sum.Stats.View(p)
	fmt.Fprintf(w, "Window: %s .. %s\n", sum.Window.Start.Format("2006-01-02"), sum.Window.End.Format("2006-01-02"))
	if s.DaysWithData == 0 {
		fmt.Fprintln(w, "(no entries in this window)")
	}
	for _, d := range sum.Days {
		fmt.Fprintf(w, "  Day %d (%s): avg %.2f, %s, %d entr%s\n",
			d.DayIndex, d.Day.Format("2006-01-02"), d.AverageScore, d.MajorityMood, d.Count, plural(d.Count, "y", "ies"))
	}
	fmt.Fprintf(w, "Days with data: %d/%d\n", s.DaysWithData, analysis.RequiredDays)
	fmt.Fprintf(w, "Positive days: %d\n", s.PositiveDays)
	fmt.Fprintf(w, "Negative days: %d\n", s.NegativeDays)
	fmt.Fprintf(w, "Average score: %.2f\n", s.AverageScore)
	if s.Gated() {
		fmt.Fprintf(w, "⚠ Dominant mood and ratio need %d days of data (%d so far)\n", analysis.RequiredDays, s.DaysWithData)
	} else if s.DaysWithData > 0 {
		fmt.Fprintf(w, "Average mood: %s\n", s.AverageMoodLabel())
		fmt.Fprintf(w, "Dominant mood: %s\n", s.DominantMood)
		fmt.Fprintf(w, "Positive ratio: %.0f%%\n", s.PositiveRatio()*100)
		fmt.Fprintln(w, "Distribution:")
		for _, c := range analysis.Distribution(sum.Days) {
			fmt.Fprintf(w, "  %s: %d day%s\n", c.Mood, c.Days, plural(c.Days, "", "s"))
		}
	}
	fmt.Fprintf(w, "\n%s:\n", recommend.Heading(sum.Stats.AverageScore))
	for _, r := range recommend.ForAverage(sum.Stats.AverageScore) {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsIncomplete, "incomplete", "", "incomplete-week policy: suppress or report (overrides config)")
}
