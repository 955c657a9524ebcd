// internal/benchmarker/benchmarker_test.go
package benchmarker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/optibench/optibench/internal/algorithms"
	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/problems"
)

// stubSolver returns a fixed descent for every run and counts its calls.
type stubSolver struct {
	mutex sync.Mutex
	calls int
	err   error
}

func (s *stubSolver) Solve(_ context.Context, _ Run) ([]problems.Evaluation, error) {
	s.mutex.Lock()
	s.calls++
	s.mutex.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []problems.Evaluation{
		{Objective: 2, Infeasibility: 0},
		{Objective: 1, Infeasibility: 0},
	}, nil
}

func (s *stubSolver) callCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls
}

func newScenario(t *testing.T) ([]*problems.Problem, *algorithms.Configurations) {
	t.Helper()
	problem, err := problems.NewProblem("Rosenbrock", [][]float64{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("NewProblem error: %v", err)
	}
	configurations, err := algorithms.NewConfigurations(algorithms.NewConfiguration("slsqp", "SLSQP", nil))
	if err != nil {
		t.Fatalf("NewConfigurations error: %v", err)
	}
	return []*problems.Problem{problem}, configurations
}

func TestNewRequiresSolver(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, t.TempDir(), "", 1); err == nil {
		t.Fatalf("expected error for a nil solver")
	}
}

func TestExecuteRecordsHistories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	historiesDir := filepath.Join(dir, "histories")
	resultsFile := filepath.Join(dir, "results.json")
	solver := &stubSolver{}

	bench, err := New(solver, historiesDir, resultsFile, 2)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	group, configurations := newScenario(t)
	index, err := bench.Execute(context.Background(), group, configurations, false)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if solver.callCount() != 2 {
		t.Fatalf("expected 2 runs, got %d", solver.callCount())
	}
	paths := index.Paths("SLSQP", "Rosenbrock")
	if len(paths) != 2 {
		t.Fatalf("expected 2 recorded paths, got %v", paths)
	}
	for _, path := range paths {
		history, err := performance.HistoryFromFile(path)
		if err != nil {
			t.Fatalf("HistoryFromFile error: %v", err)
		}
		if history.Len() != 2 || history.ProblemName != "Rosenbrock" {
			t.Fatalf("unexpected saved history: %+v", history)
		}
		if history.AlgorithmConfiguration == nil || history.AlgorithmConfiguration.Name != "SLSQP" {
			t.Fatalf("expected the configuration to be recorded, got %+v", history.AlgorithmConfiguration)
		}
	}
	if _, err := os.Stat(resultsFile); err != nil {
		t.Fatalf("expected the results index to be written: %v", err)
	}
}

func TestExecuteSkipsSolvedRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	historiesDir := filepath.Join(dir, "histories")
	resultsFile := filepath.Join(dir, "results.json")
	group, configurations := newScenario(t)

	first := &stubSolver{}
	bench, err := New(first, historiesDir, resultsFile, 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, err := bench.Execute(context.Background(), group, configurations, false); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// A second benchmarker over the same index skips the solved runs.
	second := &stubSolver{}
	bench, err = New(second, historiesDir, resultsFile, 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	index, err := bench.Execute(context.Background(), group, configurations, false)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if second.callCount() != 0 {
		t.Fatalf("expected no re-run, got %d calls", second.callCount())
	}
	if len(index.Paths("SLSQP", "Rosenbrock")) != 2 {
		t.Fatalf("expected the index to keep both runs")
	}

	// Overwriting re-runs without duplicating index entries.
	third := &stubSolver{}
	bench, err = New(third, historiesDir, resultsFile, 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	index, err = bench.Execute(context.Background(), group, configurations, true)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if third.callCount() != 2 {
		t.Fatalf("expected 2 re-runs, got %d", third.callCount())
	}
	if len(index.Paths("SLSQP", "Rosenbrock")) != 2 {
		t.Fatalf("expected no duplicate index entries, got %v", index.Paths("SLSQP", "Rosenbrock"))
	}
}

func TestExecutePropagatesSolverErrors(t *testing.T) {
	t.Parallel()

	solver := &stubSolver{err: errors.New("diverged")}
	bench, err := New(solver, t.TempDir(), "", 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	group, configurations := newScenario(t)
	if _, err := bench.Execute(context.Background(), group, configurations, false); err == nil {
		t.Fatalf("expected the solver error to propagate")
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := &stubSolver{}
	bench, err := New(solver, t.TempDir(), "", 1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	group, configurations := newScenario(t)
	if _, err := bench.Execute(ctx, group, configurations, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
