// internal/profile/profile.go
// Package profile computes data profiles: per-algorithm curves of the
// fraction of targets reached as a function of the evaluation budget,
// aggregated over problems and repeated runs.
package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/targets"
)

// DataProfile aggregates the target-hit statistics of several algorithms on
// a group of reference problems into one comparable curve per algorithm.
type DataProfile struct {
	targetValues  map[string]*targets.TargetValues
	targetsNumber int
	// histories maps algorithm name -> problem name -> repeated runs.
	histories map[string]map[string][]*performance.History
}

// New builds a data profile over the given reference problems. Every problem
// must carry the same number of targets so that problems weigh equally.
func New(targetValues map[string]*targets.TargetValues) (*DataProfile, error) {
	if len(targetValues) == 0 {
		return nil, errors.New("the target values must cover at least one problem")
	}
	targetsNumber := -1
	for name, problemTargets := range targetValues {
		if problemTargets == nil || problemTargets.Len() == 0 {
			return nil, fmt.Errorf("problem %q has no target values", name)
		}
		if targetsNumber == -1 {
			targetsNumber = problemTargets.Len()
		} else if problemTargets.Len() != targetsNumber {
			return nil, errors.New("the reference problems must have the same number of target values")
		}
	}
	copied := make(map[string]*targets.TargetValues, len(targetValues))
	for name, problemTargets := range targetValues {
		copied[name] = problemTargets
	}
	return &DataProfile{
		targetValues:  copied,
		targetsNumber: targetsNumber,
		histories:     make(map[string]map[string][]*performance.History),
	}, nil
}

// AddHistory records one run of an algorithm on a reference problem.
func (d *DataProfile) AddHistory(problemName, algorithmName string, history *performance.History) error {
	if _, ok := d.targetValues[problemName]; !ok {
		return fmt.Errorf("%q is not the name of a reference problem", problemName)
	}
	if _, ok := d.histories[algorithmName]; !ok {
		d.histories[algorithmName] = make(map[string][]*performance.History)
	}
	d.histories[algorithmName][problemName] = append(d.histories[algorithmName][problemName], history)
	return nil
}

// AddValues records one run given as parallel value slices.
func (d *DataProfile) AddValues(problemName, algorithmName string, objectives, infeasibilities []float64, feasibilities []bool) error {
	history, err := performance.NewHistoryFromValues(performance.Values{
		Objectives:      objectives,
		Infeasibilities: infeasibilities,
		Feasibilities:   feasibilities,
	})
	if err != nil {
		return err
	}
	return d.AddHistory(problemName, algorithmName, history)
}

// AlgorithmNames returns the algorithms with recorded runs, sorted.
func (d *DataProfile) AlgorithmNames() []string {
	names := make([]string, 0, len(d.histories))
	for name := range d.histories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compute returns the hit-ratio curve of each requested algorithm; with no
// names, every recorded algorithm is computed. Each curve value is the
// fraction of (target, problem, run) combinations whose target is reached
// within the corresponding evaluation budget, in [0, 1].
func (d *DataProfile) Compute(algorithmNames ...string) (map[string][]float64, error) {
	if len(algorithmNames) == 0 {
		algorithmNames = d.AlgorithmNames()
	}
	profiles := make(map[string][]float64, len(algorithmNames))
	commonRepeat := -1
	for _, name := range algorithmNames {
		totalHits, err := d.hitsHistory(name)
		if err != nil {
			return nil, err
		}
		repeatNumber, err := d.repeatNumber(name)
		if err != nil {
			return nil, err
		}
		if commonRepeat == -1 {
			commonRepeat = repeatNumber
		} else if repeatNumber != commonRepeat {
			return nil, fmt.Errorf("algorithm %q does not have the common number of runs per problem", name)
		}
		targetsTotal := float64(d.targetsNumber * len(d.targetValues) * repeatNumber)
		ratios := make([]float64, len(totalHits))
		for i, hits := range totalHits {
			ratios[i] = float64(hits) / targetsTotal
		}
		profiles[name] = ratios
	}
	return profiles, nil
}

// hitsHistory sums the target-hit sequences of every run of an algorithm,
// over every reference problem, padding shorter sequences with their last
// (already-converged) value.
func (d *DataProfile) hitsHistory(algorithmName string) ([]int, error) {
	algorithmHistories, ok := d.histories[algorithmName]
	if !ok {
		return nil, fmt.Errorf("there is no recorded history for algorithm %q", algorithmName)
	}

	maxHistorySize := 0
	for _, problemHistories := range algorithmHistories {
		for _, history := range problemHistories {
			if history.Len() > maxHistorySize {
				maxHistorySize = history.Len()
			}
		}
	}

	totalHits := make([]int, maxHistorySize)
	for problemName, problemTargets := range d.targetValues {
		for _, history := range algorithmHistories[problemName] {
			hits := problemTargets.CountHits(history)
			if len(hits) == 0 {
				continue
			}
			for i := 0; i < maxHistorySize; i++ {
				if i < len(hits) {
					totalHits[i] += hits[i]
				} else {
					totalHits[i] += hits[len(hits)-1]
				}
			}
		}
	}
	return totalHits, nil
}

// repeatNumber returns the common number of runs per problem, failing when
// problems are unequally represented.
func (d *DataProfile) repeatNumber(algorithmName string) (int, error) {
	repeat := -1
	for problemName := range d.targetValues {
		count := len(d.histories[algorithmName][problemName])
		if repeat == -1 {
			repeat = count
		} else if count != repeat {
			return 0, fmt.Errorf("reference problems unequally represented for algorithm %q", algorithmName)
		}
	}
	return repeat, nil
}
