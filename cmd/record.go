package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"github.com/spf13/cobra"
)

var recordAt string

var recordCmd = &cobra.Command{
	Use:   "record <mood|score>",
	Short: "Record a mood (Kacau, Buruk, Netral, Bagus, Sangat bagus or 1-5)",
	Example: `  moodify record Bagus
  moodify record "Sangat bagus"
  moodify record 2 --at "2024-06-01 21:30"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")
		var at time.Time
		if recordAt != "" {
			t, err := parser.NormalizeTimestamp(recordAt, time.Local)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			at = t
		}
		tr, err := newTracker()
		if err != nil {
			return err
		}
		if err := tr.RecordObservation(cmd.Context(), input, at); err != nil {
			return saveFailed(err)
		}
		label, _ := mood.Canonical(input)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s (%d)\n", label, mood.ScoreFor(label))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVar(&recordAt, "at", "", "timestamp of the observation (default now)")
}
