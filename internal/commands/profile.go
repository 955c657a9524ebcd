// internal/commands/profile.go
package optibench

import (
	"fmt"

	"github.com/spf13/cobra"
)

// profileCmd computes and prints the data profiles of every problem group.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Compute the data profiles of the problem groups",
	Long: `Compute, for every problem group, the ratio of targets each algorithm
configuration has reached as a function of the evaluation budget, using the
recorded histories and the generated target values.`,
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

		out := cmd.OutOrStdout()
		for _, group := range groups {
			profiles, err := group.ComputeDataProfiles(index)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Group %q:\n", group.Name)
			for _, algorithmName := range index.Algorithms() {
				profile := profiles[algorithmName]
				if len(profile) == 0 {
					continue
				}
				fmt.Fprintf(out, "  %s: final hit ratio %.3f over %d evaluations\n",
					algorithmName, profile[len(profile)-1], len(profile))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
