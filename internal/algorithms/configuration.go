// internal/algorithms/configuration.go
// Package algorithms describes the algorithm configurations being
// benchmarked: an algorithm name plus the option values it runs with.
package algorithms

import (
	"fmt"
	"sort"
	"strings"
)

// Configuration identifies one way of running an optimization algorithm:
// the algorithm name together with its option values. Two configurations of
// the same algorithm with different options are benchmarked separately.
type Configuration struct {
	// Name identifies the configuration, e.g. "SLSQP maxiter=100".
	Name string `json:"configuration_name"`
	// AlgorithmName is the name of the underlying algorithm.
	AlgorithmName string `json:"algorithm_name"`
	// Options holds the algorithm options.
	Options map[string]any `json:"options,omitempty"`
}

// NewConfiguration builds a configuration for an algorithm. When name is
// empty, a name is derived from the algorithm name and its options.
func NewConfiguration(algorithmName, name string, options map[string]any) Configuration {
	if name == "" {
		name = defaultName(algorithmName, options)
	}
	return Configuration{Name: name, AlgorithmName: algorithmName, Options: options}
}

func defaultName(algorithmName string, options map[string]any) string {
	if len(options) == 0 {
		return algorithmName
	}
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(options)+1)
	parts = append(parts, algorithmName)
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, options[key]))
	}
	return strings.Join(parts, "_")
}
