// internal/results/results.go
// Package results maintains the index of performance history files produced
// by benchmark runs, keyed by algorithm configuration, problem and run index.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Results indexes the history file of every benchmark run.
type Results struct {
	// paths maps algorithm configuration name -> problem name -> one history
	// file path per run, in run order.
	paths map[string]map[string][]string
}

// New returns an empty results index.
func New() *Results {
	return &Results{paths: make(map[string]map[string][]string)}
}

// FromFile loads a results index.
func FromFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading results index: %w", err)
	}
	results := New()
	if err := json.Unmarshal(data, &results.paths); err != nil {
		return nil, fmt.Errorf("invalid results index %s: %w", path, err)
	}
	return results, nil
}

// ToFile saves the index.
func (r *Results) ToFile(path string) error {
	data, err := json.MarshalIndent(r.paths, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding results index: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// AddPath records the history file of one run.
func (r *Results) AddPath(algorithmName, problemName, historyPath string) {
	if _, ok := r.paths[algorithmName]; !ok {
		r.paths[algorithmName] = make(map[string][]string)
	}
	r.paths[algorithmName][problemName] = append(r.paths[algorithmName][problemName], historyPath)
}

// SetPath records the history file of the run at the given index, growing
// the run list as needed. Re-running a solved instance overwrites its entry
// instead of appending a duplicate.
func (r *Results) SetPath(algorithmName, problemName string, index int, historyPath string) {
	if _, ok := r.paths[algorithmName]; !ok {
		r.paths[algorithmName] = make(map[string][]string)
	}
	runs := r.paths[algorithmName][problemName]
	for len(runs) <= index {
		runs = append(runs, "")
	}
	runs[index] = historyPath
	r.paths[algorithmName][problemName] = runs
}

// Algorithms returns the algorithm configuration names in the index, sorted.
func (r *Results) Algorithms() []string {
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Problems returns the problems recorded for an algorithm configuration,
// sorted.
func (r *Results) Problems(algorithmName string) []string {
	names := make([]string, 0, len(r.paths[algorithmName]))
	for name := range r.paths[algorithmName] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the history file paths of the runs of an algorithm
// configuration on a problem, in run order.
func (r *Results) Paths(algorithmName, problemName string) []string {
	return append([]string(nil), r.paths[algorithmName][problemName]...)
}

// Contains reports whether a history is recorded for the given run index.
func (r *Results) Contains(algorithmName, problemName string, index int) bool {
	return index >= 0 && index < len(r.paths[algorithmName][problemName])
}
