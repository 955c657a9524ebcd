// internal/commands/show.go
package optibench

import "github.com/spf13/cobra"

// showCmd groups inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration and scenario details",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
