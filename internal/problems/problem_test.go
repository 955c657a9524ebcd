// internal/problems/problem_test.go
package problems

import (
	"testing"

	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/targets"
)

type evaluations []Evaluation

func (e evaluations) Evaluations() []Evaluation { return e }

func TestHistoryFromRun(t *testing.T) {
	t.Parallel()

	one := 1
	source := evaluations{
		{Objective: 2, Infeasibility: 1, UnsatisfiedConstraints: &one},
		{Objective: 1, Infeasibility: 0},
	}
	history, err := HistoryFromRun(source)
	if err != nil {
		t.Fatalf("HistoryFromRun error: %v", err)
	}
	if history.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", history.Len())
	}
	if count := history.Item(0).UnsatisfiedConstraints; count == nil || *count != 1 {
		t.Fatalf("expected the count to carry over, got %v", count)
	}
}

func TestHistoryFromRunRejectsNegativeInfeasibility(t *testing.T) {
	t.Parallel()

	source := evaluations{{Objective: 1, Infeasibility: -1}}
	if _, err := HistoryFromRun(source); err == nil {
		t.Fatalf("expected error for a negative infeasibility measure")
	}
}

func TestNewProblemRequiresName(t *testing.T) {
	t.Parallel()

	if _, err := NewProblem("", nil); err == nil {
		t.Fatalf("expected error for an unnamed problem")
	}
}

func TestInstanceCountAndStartingPoints(t *testing.T) {
	t.Parallel()

	unstarted, err := NewProblem("problem", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	if unstarted.InstanceCount() != 1 {
		t.Fatalf("expected a single instance without starting points, got %d", unstarted.InstanceCount())
	}
	if unstarted.StartingPoint(0) != nil {
		t.Fatalf("expected no starting point")
	}

	started, err := NewProblem("problem", [][]float64{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	if started.InstanceCount() != 2 {
		t.Fatalf("expected 2 instances, got %d", started.InstanceCount())
	}
	if point := started.StartingPoint(1); len(point) != 2 || point[0] != 1 {
		t.Fatalf("unexpected starting point: %v", point)
	}
}

func TestTargetValuesUnset(t *testing.T) {
	t.Parallel()

	problem, err := NewProblem("problem", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	if _, err := problem.TargetValues(); err == nil {
		t.Fatalf("expected error when target values are unset")
	}

	targetValues, err := targets.FromValues([]float64{1, 0}, nil)
	if err != nil {
		t.Fatalf("FromValues error: %v", err)
	}
	problem.SetTargetValues(targetValues)
	got, err := problem.TargetValues()
	if err != nil {
		t.Fatalf("TargetValues error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 targets, got %d", got.Len())
	}
}

func TestComputeTargetValuesUsesBestKnownObjective(t *testing.T) {
	t.Parallel()

	problem, err := NewProblem("problem", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	best := 0.0
	problem.BestKnownObjective = &best

	reference, err := performance.NewHistoryFromValues(performance.Values{
		Objectives: []float64{2, 1, 0},
	})
	if err != nil {
		t.Fatalf("NewHistoryFromValues error: %v", err)
	}

	if err := problem.ComputeTargetValues([]*performance.History{reference}, targets.Options{TargetsNumber: 3}); err != nil {
		t.Fatalf("ComputeTargetValues error: %v", err)
	}
	targetValues, err := problem.TargetValues()
	if err != nil {
		t.Fatalf("TargetValues error: %v", err)
	}
	if targetValues.Len() != 3 {
		t.Fatalf("expected 3 targets, got %d", targetValues.Len())
	}
	if targetValues.Item(2).ObjectiveValue != 0 {
		t.Fatalf("expected the hardest target to anchor at the best known objective, got %v", targetValues.Item(2))
	}
}
