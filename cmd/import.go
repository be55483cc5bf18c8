package cmd

import (
	"fmt"
	"time"

	"github.com/excotide/moodify/internal/parser"
	"github.com/excotide/moodify/internal/utils"
	"github.com/spf13/cobra"
)

var importSheet string

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import observations from a CSV or XLSX file",
	Long: `Import reads a table with mood, score and timestamp columns in any order
(headers are matched case-insensitively), or a headerless file in the local
timestamp,mood,score format. Malformed and future-dated rows are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ExpandHome(args[0])
		if err != nil {
			return err
		}
		res, err := parser.ParseFile(path, parser.Options{Location: time.Local, Sheet: importSheet})
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		tr, err := newTracker()
		if err != nil {
			return err
		}
		out, err := tr.Import(cmd.Context(), res.Observations)
		if err != nil {
			return saveFailed(fmt.Errorf("imported %d before failing: %w", out.Added, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d observation%s from %s\n", out.Added, plural(out.Added, "", "s"), path)
		if res.Skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ Skipped %d malformed row%s\n", res.Skipped, plural(res.Skipped, "", "s"))
		}
		if out.Invalid > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ Skipped %d row%s with a comma or line break in the mood\n", out.Invalid, plural(out.Invalid, "", "s"))
		}
		if out.Future > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ Skipped %d future-dated row%s\n", out.Future, plural(out.Future, "", "s"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "worksheet name for XLSX files (default first sheet)")
}
