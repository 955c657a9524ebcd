// internal/commands/targets.go
package optibench

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optibench/optibench/internal/logging"
	"github.com/optibench/optibench/internal/performance"
)

var targetsAlgorithm string

// targetsCmd derives the target values of every problem from the recorded
// histories of a reference algorithm configuration.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Generate target values from recorded reference histories",
	Long: `Generate the target values of every configured problem from the recorded
performance histories of a reference algorithm configuration, and save them
to the targets directory. The reference runs must have been recorded first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		index, err := loadResultsIndex(cfg)
		if err != nil {
			return err
		}
		algorithmName := targetsAlgorithm
		if algorithmName == "" {
			algorithms := index.Algorithms()
			if len(algorithms) != 1 {
				return fmt.Errorf("--algorithm is required when the results index holds several configurations (%d found)", len(algorithms))
			}
			algorithmName = algorithms[0]
		}

		problemList, err := buildProblems(cfg)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.TargetsDirPath(), 0o755); err != nil {
			return fmt.Errorf("error creating targets directory: %w", err)
		}

		options := targetOptions(cfg)
		for _, problem := range problemList {
			paths := index.Paths(algorithmName, problem.Name)
			if len(paths) == 0 {
				return fmt.Errorf("no recorded history for algorithm %q on problem %q", algorithmName, problem.Name)
			}
			var references []*performance.History
			for _, path := range paths {
				history, err := performance.HistoryFromFile(path)
				if err != nil {
					return err
				}
				references = append(references, history)
			}
			if err := problem.ComputeTargetValues(references, options); err != nil {
				return err
			}
			targetValues, err := problem.TargetValues()
			if err != nil {
				return err
			}
			path := targetsPath(cfg, problem.Name)
			if err := targetValues.ToFile(path); err != nil {
				return err
			}
			logging.LogEvent("Targets of %s written to %s (%d targets)", problem.Name, path, targetValues.Len())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Target values of %d problems written to %s\n",
			len(problemList), cfg.TargetsDirPath())
		return nil
	},
}

func init() {
	targetsCmd.Flags().StringVar(&targetsAlgorithm, "algorithm", "", "reference algorithm configuration (defaults to the only one in the index)")
	rootCmd.AddCommand(targetsCmd)
}
