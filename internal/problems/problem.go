// internal/problems/problem.go
// Package problems models the reference problems algorithms are benchmarked
// on: their starting points, their target values and the groups they are
// compared within.
package problems

import (
	"errors"
	"fmt"

	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/targets"
)

// Evaluation is one raw observation from an algorithm run: the objective
// value and the constraint violation after one more function evaluation.
type Evaluation struct {
	Objective              float64
	Infeasibility          float64
	UnsatisfiedConstraints *int
}

// RunSource yields the evaluations of a completed algorithm run in
// evaluation order. The orchestration layer adapts any optimization engine
// to this interface; nothing here depends on a concrete optimizer.
type RunSource interface {
	Evaluations() []Evaluation
}

// HistoryFromRun builds a performance history from a completed run.
func HistoryFromRun(source RunSource) (*performance.History, error) {
	evaluations := source.Evaluations()
	items := make([]performance.Item, len(evaluations))
	for i, evaluation := range evaluations {
		item, err := performance.NewItem(evaluation.Objective, evaluation.Infeasibility)
		if err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		item.UnsatisfiedConstraints = evaluation.UnsatisfiedConstraints
		items[i] = item
	}
	return performance.NewHistory(items...), nil
}

// Problem is a reference problem of the benchmark: a name, the starting
// points each algorithm is run from, and the target values scoring
// convergence speed on it.
type Problem struct {
	Name        string
	Description string
	// StartingPoints holds one design point per run repetition. A problem
	// without explicit starting points is run once.
	StartingPoints [][]float64
	// BestKnownObjective is the best known feasible objective value, when
	// available. It anchors the hardest target.
	BestKnownObjective *float64

	targetValues *targets.TargetValues
}

// NewProblem builds a reference problem.
func NewProblem(name string, startingPoints [][]float64) (*Problem, error) {
	if name == "" {
		return nil, errors.New("a problem must have a name")
	}
	return &Problem{Name: name, StartingPoints: startingPoints}, nil
}

// InstanceCount returns the number of runs per algorithm configuration.
func (p *Problem) InstanceCount() int {
	if len(p.StartingPoints) == 0 {
		return 1
	}
	return len(p.StartingPoints)
}

// StartingPoint returns the starting point of the given run, or nil when the
// problem defines none.
func (p *Problem) StartingPoint(index int) []float64 {
	if index < 0 || index >= len(p.StartingPoints) {
		return nil
	}
	return p.StartingPoints[index]
}

// SetTargetValues installs precomputed target values.
func (p *Problem) SetTargetValues(targetValues *targets.TargetValues) {
	p.targetValues = targetValues
}

// TargetValues returns the problem's target values.
func (p *Problem) TargetValues() (*targets.TargetValues, error) {
	if p.targetValues == nil {
		return nil, fmt.Errorf("the target values of problem %q have not been set", p.Name)
	}
	return p.targetValues, nil
}

// ComputeTargetValues derives the problem's target values from reference
// histories. The problem's best known objective, when set, anchors the
// hardest target unless the options already fix one.
func (p *Problem) ComputeTargetValues(references []*performance.History, options targets.Options) error {
	if options.BestTargetObjective == nil {
		options.BestTargetObjective = p.BestKnownObjective
	}
	generator := targets.NewGenerator()
	for _, history := range references {
		generator.AddHistory(history)
	}
	targetValues, err := generator.Compute(options)
	if err != nil {
		return fmt.Errorf("problem %q: %w", p.Name, err)
	}
	p.targetValues = targetValues
	return nil
}
