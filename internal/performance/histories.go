// internal/performance/histories.go
package performance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Histories is a fixed collection of performance histories, typically the
// repeated runs of one algorithm configuration on one problem. Members may
// have unequal lengths; statistics extend every member to the longest length
// by repeating its last measurement, never by truncating.
type Histories struct {
	members []*History
}

// NewHistories builds a collection from the given histories.
func NewHistories(members ...*History) *Histories {
	return &Histories{members: append([]*History(nil), members...)}
}

// Len returns the number of member histories.
func (hs *Histories) Len() int {
	return len(hs.members)
}

// Member returns the history at index i.
func (hs *Histories) Member(i int) *History {
	return hs.members[i]
}

// Members returns the member histories.
func (hs *Histories) Members() []*History {
	return append([]*History(nil), hs.members...)
}

// MaxLength returns the length of the longest member.
func (hs *Histories) MaxLength() int {
	size := 0
	for _, member := range hs.members {
		if member.Len() > size {
			size = member.Len()
		}
	}
	return size
}

// EqualSize returns a collection where every member is extended to the
// longest member length, so that every evaluation index is defined for every
// member.
func (hs *Histories) EqualSize() (*Histories, error) {
	size := hs.MaxLength()
	members := make([]*History, len(hs.members))
	for i, member := range hs.members {
		var err error
		if members[i], err = member.Extend(size); err != nil {
			return nil, err
		}
	}
	return &Histories{members: members}, nil
}

// CumulateMinimum returns the collection of the best-so-far transforms of
// every member.
func (hs *Histories) CumulateMinimum() *Histories {
	members := make([]*History, len(hs.members))
	for i, member := range hs.members {
		members[i] = member.CumulatedMinimum()
	}
	return &Histories{members: members}
}

// Minimum returns the pointwise minimum over the members.
func (hs *Histories) Minimum() (*History, error) {
	return ComputeMinimum(hs.members)
}

// Maximum returns the pointwise maximum over the members.
func (hs *Histories) Maximum() (*History, error) {
	return ComputeMaximum(hs.members)
}

// Median returns the pointwise low median over the members.
func (hs *Histories) Median() (*History, error) {
	return ComputeMedian(hs.members)
}

// Measure selects the scalar extracted from a measurement for distribution
// summaries over repeated runs.
type Measure int

const (
	// MeasureObjective is the objective value; defined for feasible
	// measurements only.
	MeasureObjective Measure = iota
	// MeasureInfeasibility is the infeasibility measure.
	MeasureInfeasibility
	// MeasureUnsatisfiedConstraints is the number of unsatisfied constraints.
	MeasureUnsatisfiedConstraints
)

// MeasureValues returns one scalar per member at the given 1-based
// evaluation budget, members being extended to the collection length first.
// On the objective scale, infeasible measurements are not representable and
// contribute a NaN sentinel; the same goes for measurements without a
// recorded unsatisfied-constraint count.
func (hs *Histories) MeasureValues(budget int, measure Measure) ([]float64, error) {
	if len(hs.members) == 0 {
		return nil, errors.New("the collection contains no histories")
	}
	if budget < 1 || budget > hs.MaxLength() {
		return nil, fmt.Errorf("the budget %d is out of the range [1, %d]", budget, hs.MaxLength())
	}
	equalized, err := hs.EqualSize()
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(equalized.members))
	for i, member := range equalized.members {
		item := member.Item(budget - 1)
		switch measure {
		case MeasureObjective:
			if item.IsFeasible() {
				values[i] = item.ObjectiveValue
			} else {
				values[i] = math.NaN()
			}
		case MeasureInfeasibility:
			values[i] = item.InfeasibilityMeasure
		case MeasureUnsatisfiedConstraints:
			if item.UnsatisfiedConstraints != nil {
				values[i] = float64(*item.UnsatisfiedConstraints)
			} else {
				values[i] = math.NaN()
			}
		default:
			return nil, fmt.Errorf("unknown measure: %d", measure)
		}
	}
	return values, nil
}

// CentileBand summarizes a measure's distribution over the repeated runs at
// one evaluation budget.
type CentileBand struct {
	Lower  float64
	Median float64
	Upper  float64
}

// ComputeCentileBand returns the median of the chosen measure at the given
// budget together with the centile..100-centile band, computed over the
// repeated-run dimension. It fails when any run's value is not representable
// on the chosen scale (NaN sentinel), so that infeasible runs are surfaced
// instead of averaged away.
func (hs *Histories) ComputeCentileBand(budget int, measure Measure, centile float64) (CentileBand, error) {
	if centile < 0 || centile > 50 {
		return CentileBand{}, fmt.Errorf("the centile must lie in [0, 50], got %g", centile)
	}
	values, err := hs.MeasureValues(budget, measure)
	if err != nil {
		return CentileBand{}, err
	}
	for _, value := range values {
		if math.IsNaN(value) {
			return CentileBand{}, fmt.Errorf("the measure is not defined for every run at budget %d", budget)
		}
	}
	sort.Float64s(values)
	return CentileBand{
		Lower:  stat.Quantile(centile/100, stat.Empirical, values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		Upper:  stat.Quantile(1-centile/100, stat.Empirical, values, nil),
	}, nil
}
