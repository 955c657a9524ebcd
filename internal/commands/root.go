// internal/commands/root.go
package optibench

import (
	"fmt"
	"os"
	"strconv"

	"github.com/optibench/optibench/internal/appconfig"
	"github.com/optibench/optibench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "optibench",
	Short: "optibench — benchmark harness for iterative optimization algorithms",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range []string{"debug", "overwriteHistories"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		for _, name := range []string{"historiesDir", "resultsFile", "targetsDir", "reportDir", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("workers") {
			_ = cmd.Flags().Set("workers", strconv.Itoa(viper.GetInt("workers")))
		}

		var cfg appconfig.Config
		if _, statErr := os.Stat(cfgFile); statErr == nil {
			loaded, err := appconfig.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		} else if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}

		// Changed flags override the file through their viper bindings.
		cfg.Debug = viper.GetBool("debug")
		cfg.OverwriteHistories = viper.GetBool("overwriteHistories")
		if workers := viper.GetInt("workers"); workers > 0 {
			cfg.Workers = workers
		}
		for key, field := range map[string]*string{
			"historiesDir": &cfg.HistoriesDir,
			"resultsFile":  &cfg.ResultsFile,
			"targetsDir":   &cfg.TargetsDir,
			"reportDir":    &cfg.ReportDir,
			"logFile":      &cfg.LogFile,
		} {
			if value := viper.GetString(key); value != "" {
				*field = value
			}
		}
		if cfg.ConfigPath == "" {
			cfg.ConfigPath = viper.ConfigFileUsed()
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("overwriteHistories", false, "re-run and overwrite already-solved benchmark runs")
	rootCmd.PersistentFlags().Int("workers", 0, "number of concurrent benchmark workers (0 = number of CPUs)")
	rootCmd.PersistentFlags().String("historiesDir", "", "directory performance history files are saved to")
	rootCmd.PersistentFlags().String("resultsFile", "", "path of the results index file")
	rootCmd.PersistentFlags().String("targetsDir", "", "directory target value files are saved to")
	rootCmd.PersistentFlags().String("reportDir", "", "directory the HTML report is written to")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("overwriteHistories", rootCmd.PersistentFlags().Lookup("overwriteHistories"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("historiesDir", rootCmd.PersistentFlags().Lookup("historiesDir"))
	_ = viper.BindPFlag("resultsFile", rootCmd.PersistentFlags().Lookup("resultsFile"))
	_ = viper.BindPFlag("targetsDir", rootCmd.PersistentFlags().Lookup("targetsDir"))
	_ = viper.BindPFlag("reportDir", rootCmd.PersistentFlags().Lookup("reportDir"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
