package cmd

import (
	"fmt"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/utils"
	"github.com/spf13/cobra"
)

var exportOutput string

// exportPayload is the JSON document written by export.
type exportPayload struct {
	UserID       string             `json:"user_id,omitempty"`
	ExportedAt   time.Time          `json:"exported_at"`
	Count        int                `json:"count"`
	Observations []mood.Observation `json:"observations"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every stored observation as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker()
		if err != nil {
			return err
		}
		owner := currentOwner()
		obs, err := tr.Snapshot(cmd.Context(), owner)
		if err != nil {
			return err
		}
		if obs == nil {
			obs = []mood.Observation{}
		}
		b, err := utils.PrettyJSON(exportPayload{
			UserID:       owner,
			ExportedAt:   time.Now(),
			Count:        len(obs),
			Observations: obs,
		})
		if err != nil {
			return err
		}
		if exportOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		path, err := utils.ExpandHome(exportOutput)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(path, append(b, '\n')); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d observation%s to %s\n", len(obs), plural(len(obs), "", "s"), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write JSON to file instead of stdout")
}
