// internal/targets/generator.go
package targets

import (
	"errors"
	"fmt"
	"math"

	"github.com/optibench/optibench/internal/performance"
)

// Generator derives target values from reference performance histories,
// i.e. runs of algorithms presumed to converge to the problem's optimum.
// The median of the references' best-so-far histories is truncated at the
// best achievable value and sampled on a linear budget scale.
type Generator struct {
	histories []*performance.History
}

// NewGenerator returns a generator with an empty reference pool.
func NewGenerator() *Generator {
	return &Generator{}
}

// AddHistory adds a reference performance history to the pool.
func (g *Generator) AddHistory(history *performance.History) {
	g.histories = append(g.histories, history)
}

// AddValues adds a reference history given as parallel value slices.
func (g *Generator) AddValues(objectives, infeasibilities []float64, feasibilities []bool) error {
	history, err := performance.NewHistoryFromValues(performance.Values{
		Objectives:      objectives,
		Infeasibilities: infeasibilities,
		Feasibilities:   feasibilities,
	})
	if err != nil {
		return err
	}
	g.histories = append(g.histories, history)
	return nil
}

// Options drives the target computation.
type Options struct {
	// TargetsNumber is the number of targets to generate.
	TargetsNumber int
	// BudgetMin is the evaluation budget of the easiest target. Zero means 1.
	BudgetMin int
	// Feasible requires every target to be feasible; leading infeasible
	// items are stripped from the median history.
	Feasible bool
	// BestTargetObjective fixes the objective value of the hardest target,
	// with zero infeasibility. When nil, the best target is inferred as the
	// best final best-so-far value across the references.
	BestTargetObjective *float64
	// BestTargetTolerance is the relative-or-absolute margin applied around
	// the best target.
	BestTargetTolerance float64
}

// Compute generates the target values from the reference pool.
func (g *Generator) Compute(options Options) (*TargetValues, error) {
	budgetMin := options.BudgetMin
	if budgetMin == 0 {
		budgetMin = 1
	}

	references, bestTarget, err := g.referenceHistories(options)
	if err != nil {
		return nil, err
	}

	medianHistory, err := performance.ComputeMedian(references)
	if err != nil {
		return nil, err
	}
	if options.Feasible {
		medianHistory = medianHistory.RemoveLeadingInfeasible()
	}

	// No point sampling milestones beyond convergence: cut the median at the
	// first position already reaching the best target.
	for i := 0; i < medianHistory.Len(); i++ {
		if medianHistory.Item(i).LessOrEqual(bestTarget) {
			medianHistory = medianHistory.Shorten(i + 1)
			break
		}
	}

	scale, err := budgetScale(budgetMin, medianHistory.Len(), options.TargetsNumber)
	if err != nil {
		return nil, err
	}

	items := make([]performance.Item, len(scale))
	for i, budget := range scale {
		items[i] = medianHistory.Item(budget - 1)
	}
	return New(items...), nil
}

// referenceHistories returns the best-so-far transforms of the reference
// histories that reach the best target, together with the best target.
func (g *Generator) referenceHistories(options Options) ([]*performance.History, performance.Item, error) {
	if len(g.histories) == 0 {
		return nil, performance.Item{}, errors.New("there are no histories to generate the targets from")
	}

	references := make([]*performance.History, len(g.histories))
	for i, history := range g.histories {
		references[i] = history.CumulatedMinimum()
	}

	var bestTarget performance.Item
	if options.BestTargetObjective == nil {
		bestItem := references[0].Last()
		for _, reference := range references[1:] {
			if reference.Last().Less(bestItem) {
				bestItem = reference.Last()
			}
		}
		bestTarget = inflateBestTarget(bestItem.ObjectiveValue, bestItem.InfeasibilityMeasure, options.BestTargetTolerance)
	} else {
		bestTarget = inflateBestTarget(*options.BestTargetObjective, 0, options.BestTargetTolerance)
	}

	if options.Feasible && !bestTarget.IsFeasible() {
		return nil, performance.Item{}, errors.New("the best target value is not feasible")
	}

	reachers := references[:0]
	for _, reference := range references {
		if reference.Last().LessOrEqual(bestTarget) {
			reachers = append(reachers, reference)
		}
	}
	if len(reachers) == 0 {
		return nil, performance.Item{}, errors.New("there is no performance history that reaches the best target value")
	}
	return reachers, bestTarget, nil
}

// inflateBestTarget applies the tolerance margin around the best target:
// a feasible target gets its objective inflated upward, an infeasible one
// gets its infeasibility measure inflated instead.
func inflateBestTarget(objective, infeasibility, tolerance float64) performance.Item {
	if infeasibility == 0 {
		return performance.Item{
			ObjectiveValue: objective + math.Max(tolerance*math.Abs(objective), tolerance),
		}
	}
	return performance.Item{
		ObjectiveValue:       objective,
		InfeasibilityMeasure: infeasibility + tolerance*math.Abs(infeasibility),
	}
}

// budgetScale returns count integer budgets evenly spread over
// [budgetMin, budgetMax], both ends included.
func budgetScale(budgetMin, budgetMax, count int) ([]int, error) {
	if count > budgetMax-budgetMin+1 {
		return nil, fmt.Errorf(
			"the number of targets required (%d) is greater than the number of available budgets (%d) starting from budget %d",
			count, budgetMax-budgetMin+1, budgetMin)
	}
	if count < 1 {
		return nil, fmt.Errorf("the number of targets must be at least 1, got %d", count)
	}
	scale := make([]int, count)
	if count == 1 {
		scale[0] = budgetMin
		return scale, nil
	}
	// Truncation, not rounding: budgets are whole evaluation counts on an
	// evenly spaced scale.
	step := float64(budgetMax-budgetMin) / float64(count-1)
	for i := range scale {
		scale[i] = budgetMin + int(float64(i)*step)
	}
	scale[count-1] = budgetMax
	return scale, nil
}
