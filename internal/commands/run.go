// internal/commands/run.go
package optibench

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/optibench/optibench/internal/benchmarker"
	"github.com/optibench/optibench/internal/logging"
)

// runCmd executes the benchmark: every algorithm configuration on every
// problem instance, replaying recorded raw runs.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark and record performance histories",
	Long: `Run every configured algorithm configuration on every problem instance,
saving one performance history file per run and updating the results index.
Already-solved runs are skipped unless --overwriteHistories is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		configurations, err := buildConfigurations(cfg)
		if err != nil {
			return err
		}
		problemList, err := buildProblems(cfg)
		if err != nil {
			return err
		}

		bench, err := benchmarker.New(
			benchmarker.ReplaySolver{},
			cfg.HistoriesDirPath(),
			cfg.ResultsFilePath(),
			cfg.WorkerCount(),
		)
		if err != nil {
			return err
		}

		overwrite := viper.GetBool("overwriteHistories")
		index, err := bench.Execute(cmd.Context(), problemList, configurations, overwrite)
		if err != nil {
			return err
		}

		logging.LogEvent("Benchmark complete: %d algorithm configurations on %d problems",
			configurations.Len(), len(problemList))
		fmt.Fprintf(cmd.OutOrStdout(), "Results index written to %s (%d algorithm configurations)\n",
			cfg.ResultsFilePath(), len(index.Algorithms()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
