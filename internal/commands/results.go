// internal/commands/results.go
package optibench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optibench/optibench/internal/tui"
)

// resultsCmd prints a styled summary of the recorded benchmark runs.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show a summary of the recorded benchmark runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		index, err := loadResultsIndex(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderResultsSummary(index))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}
