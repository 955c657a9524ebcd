// internal/performance/item.go
// Package performance holds the measurement model of the benchmarking
// harness: single performance measurements, per-run performance histories,
// and collections of repeated-run histories with their statistics.
package performance

import (
	"fmt"
	"strconv"
)

// Item is a single performance measurement produced by an iterative
// algorithm: the objective value together with the distance to the feasible
// region after some number of evaluations.
type Item struct {
	ObjectiveValue       float64
	InfeasibilityMeasure float64
	// UnsatisfiedConstraints is the number of violated constraints, when
	// known. A nil value means the count was not recorded.
	UnsatisfiedConstraints *int
}

// NewItem returns a measurement with the given objective value and
// infeasibility measure. The measure must be non-negative; zero means the
// measurement is feasible. An infinite measure is valid and ranks worse than
// any finite one.
func NewItem(objective, infeasibility float64) (Item, error) {
	if infeasibility < 0 {
		return Item{}, fmt.Errorf("the infeasibility measure must be non-negative, got %g", infeasibility)
	}
	return Item{ObjectiveValue: objective, InfeasibilityMeasure: infeasibility}, nil
}

// NewConstrainedItem returns a measurement that also records how many
// constraints were unsatisfied.
func NewConstrainedItem(objective, infeasibility float64, unsatisfied int) (Item, error) {
	if unsatisfied < 0 {
		return Item{}, fmt.Errorf("the number of unsatisfied constraints must be non-negative, got %d", unsatisfied)
	}
	item, err := NewItem(objective, infeasibility)
	if err != nil {
		return Item{}, err
	}
	item.UnsatisfiedConstraints = &unsatisfied
	return item, nil
}

// IsFeasible reports whether the measurement lies in the feasible region.
func (it Item) IsFeasible() bool {
	return it.InfeasibilityMeasure == 0
}

// Less ranks the item strictly better than other. The infeasibility measure
// dominates: a smaller measure always wins, the objective value only breaks
// ties between equal measures.
func (it Item) Less(other Item) bool {
	if it.InfeasibilityMeasure != other.InfeasibilityMeasure {
		return it.InfeasibilityMeasure < other.InfeasibilityMeasure
	}
	return it.ObjectiveValue < other.ObjectiveValue
}

// Equal reports whether both items carry the same objective value,
// infeasibility measure and unsatisfied-constraint count.
func (it Item) Equal(other Item) bool {
	if it.ObjectiveValue != other.ObjectiveValue || it.InfeasibilityMeasure != other.InfeasibilityMeasure {
		return false
	}
	if (it.UnsatisfiedConstraints == nil) != (other.UnsatisfiedConstraints == nil) {
		return false
	}
	if it.UnsatisfiedConstraints != nil && *it.UnsatisfiedConstraints != *other.UnsatisfiedConstraints {
		return false
	}
	return true
}

// LessOrEqual ranks the item better than or equal to other.
func (it Item) LessOrEqual(other Item) bool {
	return it.Less(other) || it.Equal(other)
}

// ApplyInfeasibilityTolerance returns a copy of the item where an
// infeasibility measure within the tolerance is zeroed out, marking the item
// feasible and clearing its unsatisfied-constraint count.
func (it Item) ApplyInfeasibilityTolerance(tolerance float64) Item {
	if it.InfeasibilityMeasure > tolerance {
		return it
	}
	zero := 0
	return Item{
		ObjectiveValue:         it.ObjectiveValue,
		InfeasibilityMeasure:   0,
		UnsatisfiedConstraints: &zero,
	}
}

// String renders the item as an (objective, infeasibility) pair.
func (it Item) String() string {
	return "(" + strconv.FormatFloat(it.ObjectiveValue, 'g', -1, 64) +
		", " + strconv.FormatFloat(it.InfeasibilityMeasure, 'g', -1, 64) + ")"
}
