// internal/commands/scenario.go
package optibench

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/optibench/optibench/internal/algorithms"
	"github.com/optibench/optibench/internal/appconfig"
	"github.com/optibench/optibench/internal/problems"
	"github.com/optibench/optibench/internal/results"
	"github.com/optibench/optibench/internal/targets"
	"github.com/optibench/optibench/internal/util"
)

// buildConfigurations turns the configured algorithm entries into the set of
// configurations to benchmark.
func buildConfigurations(cfg *appconfig.Config) (*algorithms.Configurations, error) {
	set, err := algorithms.NewConfigurations()
	if err != nil {
		return nil, err
	}
	for _, settings := range cfg.Algorithms {
		configuration := algorithms.NewConfiguration(settings.Algorithm, settings.Name, settings.Options)
		if err := set.Add(configuration); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// buildProblems turns the configured problem entries into reference problems.
func buildProblems(cfg *appconfig.Config) ([]*problems.Problem, error) {
	list := make([]*problems.Problem, 0, len(cfg.Problems))
	seen := make(map[string]bool, len(cfg.Problems))
	for _, settings := range cfg.Problems {
		if seen[settings.Name] {
			return nil, fmt.Errorf("duplicate problem name %q in config", settings.Name)
		}
		seen[settings.Name] = true
		problem, err := problems.NewProblem(settings.Name, settings.StartingPoints)
		if err != nil {
			return nil, err
		}
		problem.Description = settings.Description
		problem.BestKnownObjective = settings.BestObjective
		list = append(list, problem)
	}
	return list, nil
}

// buildGroups assembles the configured problem groups. Without explicit
// groups, every problem lands in a single group.
func buildGroups(cfg *appconfig.Config, list []*problems.Problem) ([]*problems.Group, error) {
	byName := make(map[string]*problems.Problem, len(list))
	for _, problem := range list {
		byName[problem.Name] = problem
	}

	if len(cfg.Groups) == 0 {
		group := problems.NewGroup("All problems", list...)
		return []*problems.Group{group}, nil
	}

	groups := make([]*problems.Group, 0, len(cfg.Groups))
	for _, settings := range cfg.Groups {
		members := make([]*problems.Problem, 0, len(settings.Problems))
		for _, name := range settings.Problems {
			problem, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("group %q references unknown problem %q", settings.Name, name)
			}
			members = append(members, problem)
		}
		group := problems.NewGroup(settings.Name, members...)
		group.Description = settings.Description
		groups = append(groups, group)
	}
	return groups, nil
}

// targetsPath returns the file the target values of a problem are saved to.
func targetsPath(cfg *appconfig.Config, problemName string) string {
	return filepath.Join(cfg.TargetsDirPath(), fmt.Sprintf("%s.json", util.Slugify(problemName)))
}

// loadTargetValues installs the saved target values of every problem.
func loadTargetValues(cfg *appconfig.Config, list []*problems.Problem) error {
	for _, problem := range list {
		path := targetsPath(cfg, problem.Name)
		targetValues, err := targets.FromFile(path)
		if err != nil {
			return fmt.Errorf("problem %q: %w (generate targets first)", problem.Name, err)
		}
		problem.SetTargetValues(targetValues)
	}
	return nil
}

// targetOptions maps the configured target settings to generation options.
func targetOptions(cfg *appconfig.Config) targets.Options {
	return targets.Options{
		TargetsNumber:       cfg.Targets.TargetsNumber(),
		BudgetMin:           cfg.Targets.BudgetMin,
		Feasible:            cfg.Targets.Feasible,
		BestTargetTolerance: cfg.Targets.Tolerance,
	}
}

// loadResultsIndex loads the results index named by the config.
func loadResultsIndex(cfg *appconfig.Config) (*results.Results, error) {
	path := cfg.ResultsFilePath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no results index at %q (run the benchmark first)", path)
	}
	return results.FromFile(path)
}
