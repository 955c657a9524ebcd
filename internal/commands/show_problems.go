// internal/commands/show_problems.go
package optibench

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/optibench/optibench/internal/targets"
)

// showProblemsCmd lists the configured problems and groups, with the state of
// their generated target values.
var showProblemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Show the configured problems and groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		problemList, err := buildProblems(cfg)
		if err != nil {
			return err
		}
		groups, err := buildGroups(cfg, problemList)
		if err != nil {
			return err
		}

		ready := color.New(color.FgGreen).SprintFunc()
		missing := color.New(color.FgYellow).SprintFunc()
		out := cmd.OutOrStdout()
		for _, problem := range problemList {
			status := missing("no targets")
			if targetValues, err := targets.FromFile(targetsPath(cfg, problem.Name)); err == nil {
				status = ready(fmt.Sprintf("%d targets", targetValues.Len()))
			}
			fmt.Fprintf(out, "%s: %d runs, %s\n", problem.Name, problem.InstanceCount(), status)
			if problem.BestKnownObjective != nil {
				fmt.Fprintf(out, "  best known objective: %g\n", *problem.BestKnownObjective)
			}
		}
		for _, group := range groups {
			fmt.Fprintf(out, "Group %q: %s\n", group.Name, strings.Join(group.ProblemNames(), ", "))
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showProblemsCmd)
}
