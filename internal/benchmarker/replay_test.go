// internal/benchmarker/replay_test.go
package benchmarker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/optibench/optibench/internal/algorithms"
	"github.com/optibench/optibench/internal/problems"
)

func TestReplaySolverReadsRawRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := `[
  {"objective": 2.0, "infeasibility": 1.0, "n_unsatisfied_constraints": 1},
  {"objective": 1.0, "infeasibility": 0.0}
]`
	if err := os.WriteFile(filepath.Join(dir, "rosenbrock-1.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write raw run: %v", err)
	}

	problem, err := problems.NewProblem("Rosenbrock", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	run := Run{
		Problem:       problem,
		Configuration: algorithms.NewConfiguration("slsqp", "SLSQP", map[string]any{"dir": dir}),
		Index:         0,
	}

	evaluations, err := ReplaySolver{}.Solve(context.Background(), run)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if len(evaluations) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(evaluations))
	}
	if evaluations[0].Objective != 2 || evaluations[0].Infeasibility != 1 {
		t.Fatalf("unexpected first evaluation: %+v", evaluations[0])
	}
	if count := evaluations[0].UnsatisfiedConstraints; count == nil || *count != 1 {
		t.Fatalf("expected the count to carry over, got %v", count)
	}
}

func TestReplaySolverRequiresDirOption(t *testing.T) {
	t.Parallel()

	problem, err := problems.NewProblem("Rosenbrock", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	run := Run{
		Problem:       problem,
		Configuration: algorithms.NewConfiguration("slsqp", "SLSQP", nil),
	}
	if _, err := (ReplaySolver{}).Solve(context.Background(), run); err == nil {
		t.Fatalf("expected error without a \"dir\" option")
	}
}

func TestReplaySolverMissingRunFile(t *testing.T) {
	t.Parallel()

	problem, err := problems.NewProblem("Rosenbrock", nil)
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	run := Run{
		Problem:       problem,
		Configuration: algorithms.NewConfiguration("slsqp", "SLSQP", map[string]any{"dir": t.TempDir()}),
		Index:         3,
	}
	if _, err := (ReplaySolver{}).Solve(context.Background(), run); err == nil {
		t.Fatalf("expected error for a missing raw run file")
	}
}
