// internal/performance/history.go
package performance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/optibench/optibench/internal/algorithms"
)

// History is the ordered sequence of measurements produced by one algorithm
// run. The item at index i is the state after i+1 evaluations. Histories are
// never modified in place: every transformation returns a new History.
type History struct {
	items []Item

	// Optional run metadata, carried through serialization.
	ProblemName            string
	ObjectiveName          string
	ConstraintNames        []string
	DOESize                int
	TotalTime              float64
	AlgorithmConfiguration *algorithms.Configuration
}

// Values holds the parallel value slices a history can be built from.
// Objectives is mandatory. When Infeasibilities is set, Feasibilities is
// disregarded; when only Feasibilities is set, feasible entries map to a
// zero measure and infeasible entries to +Inf; when neither is set, every
// entry is feasible. Missing Unsatisfied counts default to 0 for feasible
// entries and stay unrecorded for infeasible ones.
type Values struct {
	Objectives      []float64
	Infeasibilities []float64
	Feasibilities   []bool
	Unsatisfied     []*int
}

// NewHistory builds a history from explicit items.
func NewHistory(items ...Item) *History {
	return &History{items: append([]Item(nil), items...)}
}

// NewHistoryFromValues builds a history from parallel value slices.
func NewHistoryFromValues(values Values) (*History, error) {
	measures := values.Infeasibilities
	switch {
	case measures != nil:
		if len(measures) != len(values.Objectives) {
			return nil, errors.New("the objective history and the infeasibility history must have same length")
		}
	case values.Feasibilities != nil:
		if len(values.Feasibilities) != len(values.Objectives) {
			return nil, errors.New("the objective history and the feasibility history must have same length")
		}
		measures = make([]float64, len(values.Feasibilities))
		for i, feasible := range values.Feasibilities {
			if feasible {
				measures[i] = 0
			} else {
				measures[i] = math.Inf(1)
			}
		}
	default:
		measures = make([]float64, len(values.Objectives))
	}

	unsatisfied := values.Unsatisfied
	if unsatisfied == nil {
		unsatisfied = make([]*int, len(measures))
		for i, measure := range measures {
			if measure == 0 {
				zero := 0
				unsatisfied[i] = &zero
			}
		}
	} else if len(unsatisfied) != len(measures) {
		return nil, errors.New("the unsatisfied constraints history and the feasibility history must have same length")
	}

	items := make([]Item, len(values.Objectives))
	for i, objective := range values.Objectives {
		item, err := NewItem(objective, measures[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item.UnsatisfiedConstraints = unsatisfied[i]
		items[i] = item
	}
	return &History{items: items}, nil
}

// Len returns the number of measurements.
func (h *History) Len() int {
	return len(h.items)
}

// Item returns the measurement at index i.
func (h *History) Item(i int) Item {
	return h.items[i]
}

// Items returns the measurements in evaluation order.
func (h *History) Items() []Item {
	return append([]Item(nil), h.items...)
}

// Last returns the final measurement.
func (h *History) Last() Item {
	return h.items[len(h.items)-1]
}

// ObjectiveValues returns the objective values in evaluation order.
func (h *History) ObjectiveValues() []float64 {
	values := make([]float64, len(h.items))
	for i, item := range h.items {
		values[i] = item.ObjectiveValue
	}
	return values
}

// InfeasibilityMeasures returns the infeasibility measures in evaluation order.
func (h *History) InfeasibilityMeasures() []float64 {
	measures := make([]float64, len(h.items))
	for i, item := range h.items {
		measures[i] = item.InfeasibilityMeasure
	}
	return measures
}

// withItems returns a copy of the history carrying the same metadata but the
// given items.
func (h *History) withItems(items []Item) *History {
	clone := *h
	clone.items = items
	clone.ConstraintNames = append([]string(nil), h.ConstraintNames...)
	return &clone
}

// CumulatedMinimum returns the best-so-far history: item i is the best
// measurement among items 0..i. Computed as a running reduction.
func (h *History) CumulatedMinimum() *History {
	minima := make([]Item, len(h.items))
	for i, item := range h.items {
		if i == 0 || item.Less(minima[i-1]) {
			minima[i] = item
		} else {
			minima[i] = minima[i-1]
		}
	}
	return h.withItems(minima)
}

// RemoveLeadingInfeasible returns the history starting from its first
// feasible measurement. The result is empty when no measurement is feasible.
func (h *History) RemoveLeadingInfeasible() *History {
	for i, item := range h.items {
		if item.IsFeasible() {
			return h.withItems(append([]Item(nil), h.items[i:]...))
		}
	}
	return h.withItems(nil)
}

// Extend returns the history lengthened to size by repeating its last
// measurement, the rationale being that a converged value persists.
func (h *History) Extend(size int) (*History, error) {
	if size < len(h.items) {
		return nil, fmt.Errorf("the expected size (%d) is smaller than the history size (%d)", size, len(h.items))
	}
	if size > len(h.items) && len(h.items) == 0 {
		return nil, errors.New("an empty history cannot be extended")
	}
	items := make([]Item, size)
	copy(items, h.items)
	for i := len(h.items); i < size; i++ {
		items[i] = h.items[len(h.items)-1]
	}
	return h.withItems(items), nil
}

// Shorten returns the history truncated to its first size measurements.
// A history already shorter than size is returned unchanged.
func (h *History) Shorten(size int) *History {
	if size >= len(h.items) {
		return h.withItems(append([]Item(nil), h.items...))
	}
	return h.withItems(append([]Item(nil), h.items[:size]...))
}

// ApplyInfeasibilityTolerance returns a copy of the history where every
// measurement within the tolerance is marked feasible.
func (h *History) ApplyInfeasibilityTolerance(tolerance float64) *History {
	items := make([]Item, len(h.items))
	for i, item := range h.items {
		items[i] = item.ApplyInfeasibilityTolerance(tolerance)
	}
	return h.withItems(items)
}

// PlotData returns the 1-based evaluation budgets and the measurements to
// plot. With feasibleOnly, the data starts at the first feasible
// measurement; with minimumHistory, the best-so-far transform is plotted
// instead of the raw measurements.
func (h *History) PlotData(feasibleOnly, minimumHistory bool) ([]int, []Item) {
	history := h
	if minimumHistory {
		history = h.CumulatedMinimum()
	}
	first := 0
	if feasibleOnly {
		first = len(history.items)
		for i, item := range history.items {
			if item.IsFeasible() {
				first = i
				break
			}
		}
	}
	budgets := make([]int, 0, len(history.items)-first)
	items := make([]Item, 0, len(history.items)-first)
	for i := first; i < len(history.items); i++ {
		budgets = append(budgets, i+1)
		items = append(items, history.items[i])
	}
	return budgets, items
}

// ComputeMinimum returns the pointwise minimum of the histories, each
// extended to the longest length first.
func ComputeMinimum(histories []*History) (*History, error) {
	return computeStatistic(histories, func(column []Item) Item {
		best := column[0]
		for _, item := range column[1:] {
			if item.Less(best) {
				best = item
			}
		}
		return best
	})
}

// ComputeMaximum returns the pointwise maximum of the histories, each
// extended to the longest length first.
func ComputeMaximum(histories []*History) (*History, error) {
	return computeStatistic(histories, func(column []Item) Item {
		worst := column[0]
		for _, item := range column[1:] {
			if worst.Less(item) {
				worst = item
			}
		}
		return worst
	})
}

// ComputeMedian returns the pointwise low median of the histories, each
// extended to the longest length first. The low median of an even count is
// the lower of the two middle elements.
func ComputeMedian(histories []*History) (*History, error) {
	return computeStatistic(histories, func(column []Item) Item {
		sorted := append([]Item(nil), column...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
		return sorted[(len(sorted)-1)/2]
	})
}

func computeStatistic(histories []*History, statistic func([]Item) Item) (*History, error) {
	if len(histories) == 0 {
		return nil, errors.New("there are no histories to compute a statistic from")
	}
	budgetMax := 0
	for _, history := range histories {
		if history.Len() > budgetMax {
			budgetMax = history.Len()
		}
	}
	extended := make([]*History, len(histories))
	for i, history := range histories {
		var err error
		if extended[i], err = history.Extend(budgetMax); err != nil {
			return nil, err
		}
	}
	items := make([]Item, budgetMax)
	column := make([]Item, len(histories))
	for i := range items {
		for j, history := range extended {
			column[j] = history.items[i]
		}
		items[i] = statistic(column)
	}
	return NewHistory(items...), nil
}
