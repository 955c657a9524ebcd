// internal/performance/history_test.go
package performance

import (
	"math"
	"testing"
)

func historyFromValues(t *testing.T, objectives, infeasibilities []float64) *History {
	t.Helper()
	history, err := NewHistoryFromValues(Values{Objectives: objectives, Infeasibilities: infeasibilities})
	if err != nil {
		t.Fatalf("NewHistoryFromValues error: %v", err)
	}
	return history
}

func assertItemsEqual(t *testing.T, got *History, objectives, infeasibilities []float64) {
	t.Helper()
	if got.Len() != len(objectives) {
		t.Fatalf("expected %d items, got %d", len(objectives), got.Len())
	}
	for i := 0; i < got.Len(); i++ {
		item := got.Item(i)
		if item.ObjectiveValue != objectives[i] || item.InfeasibilityMeasure != infeasibilities[i] {
			t.Fatalf("item %d: got %v want (%g, %g)", i, item, objectives[i], infeasibilities[i])
		}
	}
}

func TestNewHistoryFromValuesLengthMismatch(t *testing.T) {
	t.Parallel()

	if _, err := NewHistoryFromValues(Values{Objectives: []float64{3, 2}, Infeasibilities: []float64{1}}); err == nil {
		t.Fatalf("expected error for mismatched infeasibility length")
	}
	if _, err := NewHistoryFromValues(Values{Objectives: []float64{3, 2}, Feasibilities: []bool{false}}); err == nil {
		t.Fatalf("expected error for mismatched feasibility length")
	}
	if _, err := NewHistoryFromValues(Values{Objectives: []float64{3, 2}, Unsatisfied: []*int{nil}}); err == nil {
		t.Fatalf("expected error for mismatched unsatisfied length")
	}
}

func TestNewHistoryFromValuesRejectsNegativeMeasure(t *testing.T) {
	t.Parallel()

	if _, err := NewHistoryFromValues(Values{Objectives: []float64{3, 2}, Infeasibilities: []float64{1, -1}}); err == nil {
		t.Fatalf("expected error for negative infeasibility measure")
	}
}

func TestNewHistoryFromValuesFeasibilityStatuses(t *testing.T) {
	t.Parallel()

	history, err := NewHistoryFromValues(Values{
		Objectives:    []float64{3, 2},
		Feasibilities: []bool{false, true},
	})
	if err != nil {
		t.Fatalf("NewHistoryFromValues error: %v", err)
	}
	if !math.IsInf(history.Item(0).InfeasibilityMeasure, 1) {
		t.Fatalf("expected infeasible entry to map to +Inf, got %v", history.Item(0))
	}
	if history.Item(0).UnsatisfiedConstraints != nil {
		t.Fatalf("expected no unsatisfied count for infeasible entry")
	}
	if history.Item(1).InfeasibilityMeasure != 0 {
		t.Fatalf("expected feasible entry to map to zero measure, got %v", history.Item(1))
	}
	if count := history.Item(1).UnsatisfiedConstraints; count == nil || *count != 0 {
		t.Fatalf("expected zero unsatisfied count for feasible entry, got %v", count)
	}
}

func TestCumulatedMinimum(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t,
		[]float64{0, -3, -1, 0, 1, -1},
		[]float64{2, 3, 1, 0, 0, 0},
	)
	minimum := history.CumulatedMinimum()
	assertItemsEqual(t, minimum,
		[]float64{0, 0, -1, 0, 0, -1},
		[]float64{2, 2, 1, 0, 0, 0},
	)
}

func TestCumulatedMinimumKeepsMetadata(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t, []float64{2, 1}, []float64{0, 0})
	history.ProblemName = "Rosenbrock"
	history.TotalTime = 1.5
	minimum := history.CumulatedMinimum()
	if minimum.ProblemName != "Rosenbrock" || minimum.TotalTime != 1.5 {
		t.Fatalf("expected metadata to carry over, got %q %g", minimum.ProblemName, minimum.TotalTime)
	}
}

func TestRemoveLeadingInfeasible(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t,
		[]float64{2, 1, 0, 1, -1},
		[]float64{2, 1, 0, 3, 0},
	)
	truncated := history.RemoveLeadingInfeasible()
	assertItemsEqual(t, truncated, []float64{0, 1, -1}, []float64{0, 3, 0})

	infeasible := historyFromValues(t, []float64{1}, []float64{2})
	if infeasible.RemoveLeadingInfeasible().Len() != 0 {
		t.Fatalf("expected empty history when nothing is feasible")
	}
}

func TestExtendRepeatsLastItem(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t, []float64{2, 1}, []float64{1, 0})
	extended, err := history.Extend(4)
	if err != nil {
		t.Fatalf("Extend error: %v", err)
	}
	assertItemsEqual(t, extended, []float64{2, 1, 1, 1}, []float64{1, 0, 0, 0})
}

func TestExtendErrors(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t, []float64{2, 1}, []float64{0, 0})
	if _, err := history.Extend(1); err == nil {
		t.Fatalf("expected error when extending below the history size")
	}
	if _, err := NewHistory().Extend(2); err == nil {
		t.Fatalf("expected error when extending an empty history")
	}
	same, err := NewHistory().Extend(0)
	if err != nil {
		t.Fatalf("Extend(0) on empty history error: %v", err)
	}
	if same.Len() != 0 {
		t.Fatalf("expected empty result, got %d items", same.Len())
	}
}

func TestShorten(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t, []float64{3, 2, 1}, []float64{0, 0, 0})
	assertItemsEqual(t, history.Shorten(2), []float64{3, 2}, []float64{0, 0})
	assertItemsEqual(t, history.Shorten(5), []float64{3, 2, 1}, []float64{0, 0, 0})
}

func TestHistoryApplyInfeasibilityTolerance(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t, []float64{3, 2}, []float64{0.01, 0.5})
	tolerant := history.ApplyInfeasibilityTolerance(0.1)
	if !tolerant.Item(0).IsFeasible() {
		t.Fatalf("expected first item within tolerance to be feasible")
	}
	if tolerant.Item(1).IsFeasible() {
		t.Fatalf("expected second item beyond tolerance to stay infeasible")
	}
	// The receiver is untouched.
	if history.Item(0).IsFeasible() {
		t.Fatalf("expected the original history to be unchanged")
	}
}

func TestPlotData(t *testing.T) {
	t.Parallel()

	history := historyFromValues(t,
		[]float64{2, 1, 3, 0},
		[]float64{1, 0, 0, 0},
	)

	budgets, items := history.PlotData(true, false)
	if len(budgets) != 3 || budgets[0] != 2 {
		t.Fatalf("expected budgets starting at the first feasible item, got %v", budgets)
	}
	if items[0].ObjectiveValue != 1 {
		t.Fatalf("unexpected first plotted item: %v", items[0])
	}

	budgets, items = history.PlotData(false, true)
	if len(budgets) != 4 || budgets[0] != 1 {
		t.Fatalf("expected full budget range, got %v", budgets)
	}
	if items[2].ObjectiveValue != 1 {
		t.Fatalf("expected best-so-far transform, got %v", items[2])
	}
}

func TestComputeMedianLowMedian(t *testing.T) {
	t.Parallel()

	first := historyFromValues(t, []float64{1, -1, 0}, []float64{2, 0, 3})
	second := historyFromValues(t, []float64{-2, -2, 2}, []float64{0, 3, 0})
	third := historyFromValues(t, []float64{3, -3, 3}, []float64{0, 0, 0})

	median, err := ComputeMedian([]*History{first, second, third})
	if err != nil {
		t.Fatalf("ComputeMedian error: %v", err)
	}
	assertItemsEqual(t, median, []float64{3, -1, 3}, []float64{0, 0, 0})
}

func TestComputeMedianEvenCountTakesLower(t *testing.T) {
	t.Parallel()

	histories := []*History{
		historyFromValues(t, []float64{1}, []float64{0}),
		historyFromValues(t, []float64{2}, []float64{0}),
		historyFromValues(t, []float64{3}, []float64{0}),
		historyFromValues(t, []float64{4}, []float64{0}),
	}
	median, err := ComputeMedian(histories)
	if err != nil {
		t.Fatalf("ComputeMedian error: %v", err)
	}
	if median.Item(0).ObjectiveValue != 2 {
		t.Fatalf("expected low median 2, got %v", median.Item(0))
	}
}

func TestComputeMinimumAndMaximumExtendShorterHistories(t *testing.T) {
	t.Parallel()

	short := historyFromValues(t, []float64{0}, []float64{0})
	long := historyFromValues(t, []float64{2, 1}, []float64{0, 0})

	minimum, err := ComputeMinimum([]*History{short, long})
	if err != nil {
		t.Fatalf("ComputeMinimum error: %v", err)
	}
	assertItemsEqual(t, minimum, []float64{0, 0}, []float64{0, 0})

	maximum, err := ComputeMaximum([]*History{short, long})
	if err != nil {
		t.Fatalf("ComputeMaximum error: %v", err)
	}
	assertItemsEqual(t, maximum, []float64{2, 1}, []float64{0, 0})
}

func TestComputeStatisticEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := ComputeMedian(nil); err == nil {
		t.Fatalf("expected error for empty history list")
	}
}
