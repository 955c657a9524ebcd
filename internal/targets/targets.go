// internal/targets/targets.go
// Package targets computes and stores the target values of a benchmarking
// problem: the performance milestones used to score how fast algorithms
// converge.
package targets

import (
	"errors"

	"github.com/optibench/optibench/internal/performance"
)

// TargetValues is an ordered set of performance milestones for one problem,
// easiest target first. An algorithm run is scored by how many targets its
// best-so-far history has reached at each evaluation budget.
type TargetValues struct {
	items []performance.Item
}

// New builds target values from explicit items.
func New(items ...performance.Item) *TargetValues {
	return &TargetValues{items: append([]performance.Item(nil), items...)}
}

// FromValues builds target values from parallel objective and infeasibility
// slices. A nil infeasibilities slice means every target is feasible.
func FromValues(objectives, infeasibilities []float64) (*TargetValues, error) {
	history, err := performance.NewHistoryFromValues(performance.Values{
		Objectives:      objectives,
		Infeasibilities: infeasibilities,
	})
	if err != nil {
		return nil, err
	}
	return &TargetValues{items: history.Items()}, nil
}

// Len returns the number of targets.
func (t *TargetValues) Len() int {
	return len(t.items)
}

// Item returns the target at index i.
func (t *TargetValues) Item(i int) performance.Item {
	return t.items[i]
}

// Items returns the targets in order.
func (t *TargetValues) Items() []performance.Item {
	return append([]performance.Item(nil), t.items...)
}

// CountHits returns, for each position of the history, how many targets the
// best-so-far measurement at that position has reached. A target is reached
// when the measurement ranks better than or equal to it. The result is a
// non-decreasing sequence of the history's length.
func (t *TargetValues) CountHits(history *performance.History) []int {
	minimumHistory := history.CumulatedMinimum()
	hits := make([]int, minimumHistory.Len())
	for i := 0; i < minimumHistory.Len(); i++ {
		minimum := minimumHistory.Item(i)
		for _, target := range t.items {
			if minimum.LessOrEqual(target) {
				hits[i]++
			}
		}
	}
	return hits
}

// SwitchSign returns a copy of the targets with every objective value
// negated, converting targets stated for a maximization problem into the
// minimization convention used everywhere else. Infeasibility measures are
// untouched.
func (t *TargetValues) SwitchSign() *TargetValues {
	items := make([]performance.Item, len(t.items))
	for i, item := range t.items {
		item.ObjectiveValue = -item.ObjectiveValue
		items[i] = item
	}
	return &TargetValues{items: items}
}

// ToFile saves the targets as a performance history record.
func (t *TargetValues) ToFile(path string) error {
	return performance.NewHistory(t.items...).ToFile(path)
}

// FromFile loads previously saved targets.
func FromFile(path string) (*TargetValues, error) {
	history, err := performance.HistoryFromFile(path)
	if err != nil {
		return nil, err
	}
	if history.Len() == 0 {
		return nil, errors.New("the targets file contains no targets")
	}
	return &TargetValues{items: history.Items()}, nil
}
