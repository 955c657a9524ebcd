// internal/problems/group.go
package problems

import (
	"fmt"

	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/profile"
	"github.com/optibench/optibench/internal/results"
	"github.com/optibench/optibench/internal/targets"
)

// Group is a set of reference problems whose results are aggregated into a
// single data profile. Problems in a group share the same number of targets.
type Group struct {
	Name        string
	Description string
	problems    []*Problem
}

// NewGroup builds a problem group.
func NewGroup(name string, problems ...*Problem) *Group {
	return &Group{Name: name, problems: append([]*Problem(nil), problems...)}
}

// Problems returns the problems of the group.
func (g *Group) Problems() []*Problem {
	return append([]*Problem(nil), g.problems...)
}

// ProblemNames returns the names of the problems of the group.
func (g *Group) ProblemNames() []string {
	names := make([]string, len(g.problems))
	for i, problem := range g.problems {
		names[i] = problem.Name
	}
	return names
}

// TargetValues returns the target values of every problem of the group.
func (g *Group) TargetValues() (map[string]*targets.TargetValues, error) {
	targetValues := make(map[string]*targets.TargetValues, len(g.problems))
	for _, problem := range g.problems {
		problemTargets, err := problem.TargetValues()
		if err != nil {
			return nil, err
		}
		targetValues[problem.Name] = problemTargets
	}
	return targetValues, nil
}

// ComputeDataProfiles computes the hit-ratio curve of each algorithm
// configuration over the group, loading the recorded histories from the
// results index. With no names, every indexed configuration is used.
func (g *Group) ComputeDataProfiles(index *results.Results, algorithmNames ...string) (map[string][]float64, error) {
	targetValues, err := g.TargetValues()
	if err != nil {
		return nil, err
	}
	dataProfile, err := profile.New(targetValues)
	if err != nil {
		return nil, err
	}

	if len(algorithmNames) == 0 {
		algorithmNames = index.Algorithms()
	}
	for _, algorithmName := range algorithmNames {
		for _, problem := range g.problems {
			paths := index.Paths(algorithmName, problem.Name)
			if len(paths) == 0 {
				return nil, fmt.Errorf("no recorded history for algorithm %q on problem %q", algorithmName, problem.Name)
			}
			for _, path := range paths {
				history, err := performance.HistoryFromFile(path)
				if err != nil {
					return nil, err
				}
				if err := dataProfile.AddHistory(problem.Name, algorithmName, history); err != nil {
					return nil, err
				}
			}
		}
	}
	return dataProfile.Compute(algorithmNames...)
}
