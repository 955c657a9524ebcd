// internal/commands/report.go
package optibench

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/optibench/optibench/internal/report"
)

// reportCmd generates the HTML benchmark report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the HTML benchmark report",
	Long: `Generate a standalone HTML report from the recorded histories and target
values: one data profile chart per problem group, one median-performance
chart per problem, and an index page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		index, err := loadResultsIndex(cfg)
		if err != nil {
			return err
		}
		problemList, err := buildProblems(cfg)
		if err != nil {
			return err
		}
		if err := loadTargetValues(cfg, problemList); err != nil {
			return err
		}
		groups, err := buildGroups(cfg, problemList)
		if err != nil {
			return err
		}

		generator := report.New(cfg.ReportDirPath())
		if err := generator.Generate(groups, index); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n",
			filepath.Join(cfg.ReportDirPath(), "index.html"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
