// internal/commands/show_config.go
package optibench

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/optibench/optibench/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:              viper.GetBool("debug"),
			Workers:            viper.GetInt("workers"),
			OverwriteHistories: viper.GetBool("overwriteHistories"),
			HistoriesDir:       viper.GetString("historiesDir"),
			ResultsFile:        viper.GetString("resultsFile"),
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), fallback)
		if DebugEnabled() && GetConfig() != nil {
			pp.Println(GetConfig())
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
