// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting the benchmark scenario
// configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the scenario configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultTargetsNumber is the number of target values generated when the
	// config omits the value.
	defaultTargetsNumber = 10
)

// Config represents the top-level benchmark scenario configuration.
type Config struct {
	Algorithms         []AlgorithmSettings `json:"algorithms"`
	Problems           []ProblemSettings   `json:"problems"`
	Groups             []GroupSettings     `json:"groups,omitempty"`
	Targets            TargetsSettings     `json:"targets"`
	HistoriesDir       string              `json:"historiesDir,omitempty"`
	ResultsFile        string              `json:"resultsFile,omitempty"`
	TargetsDir         string              `json:"targetsDir,omitempty"`
	ReportDir          string              `json:"reportDir,omitempty"`
	LogFile            string              `json:"logFile,omitempty"`
	Debug              bool                `json:"debug"`
	Workers            int                 `json:"workers,omitempty"`
	OverwriteHistories bool                `json:"overwriteHistories"`
	ConfigPath         string              `json:"-"`
}

// AlgorithmSettings describes one algorithm configuration to benchmark.
type AlgorithmSettings struct {
	Name      string         `json:"name,omitempty"`
	Algorithm string         `json:"algorithm"`
	Options   map[string]any `json:"options,omitempty"`
}

// ProblemSettings describes one reference problem.
type ProblemSettings struct {
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	StartingPoints [][]float64 `json:"startingPoints,omitempty"`
	BestObjective  *float64    `json:"bestObjective,omitempty"`
}

// GroupSettings names the problems aggregated into one data profile.
type GroupSettings struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Problems    []string `json:"problems"`
}

// TargetsSettings controls target value generation.
type TargetsSettings struct {
	Number    int     `json:"number,omitempty"`
	BudgetMin int     `json:"budgetMin,omitempty"`
	Feasible  bool    `json:"feasible"`
	Tolerance float64 `json:"tolerance,omitempty"`
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "optibench.log"
}

// HistoriesDirPath returns the directory history files are saved to.
func (c Config) HistoriesDirPath() string {
	if dir := strings.TrimSpace(c.HistoriesDir); dir != "" {
		return dir
	}
	return "histories"
}

// ResultsFilePath returns the path of the results index file.
func (c Config) ResultsFilePath() string {
	if path := strings.TrimSpace(c.ResultsFile); path != "" {
		return path
	}
	return "results.json"
}

// TargetsDirPath returns the directory target value files are saved to.
func (c Config) TargetsDirPath() string {
	if dir := strings.TrimSpace(c.TargetsDir); dir != "" {
		return dir
	}
	return "targets"
}

// ReportDirPath returns the directory the HTML report is written to.
func (c Config) ReportDirPath() string {
	if dir := strings.TrimSpace(c.ReportDir); dir != "" {
		return dir
	}
	return "report"
}

// WorkerCount returns the number of concurrent benchmark workers, defaulting
// to the number of CPUs.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// TargetsNumber returns the number of target values to generate.
func (t TargetsSettings) TargetsNumber() int {
	if t.Number > 0 {
		return t.Number
	}
	return defaultTargetsNumber
}

// Load reads the scenario configuration from the specified path, with
// fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if len(config.Algorithms) == 0 {
			return Config{}, errors.New("config must contain at least one algorithm configuration")
		}
		if len(config.Problems) == 0 {
			return Config{}, errors.New("config must contain at least one problem")
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := validateConfig(data); err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// configSchema constrains the scenario configuration file.
var configSchema = map[string]any{
	"type":     "object",
	"required": []any{"algorithms", "problems"},
	"properties": map[string]any{
		"algorithms": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"algorithm"},
				"properties": map[string]any{
					"name":      map[string]any{"type": "string"},
					"algorithm": map[string]any{"type": "string", "minLength": 1},
					"options":   map[string]any{"type": "object"},
				},
			},
		},
		"problems": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"startingPoints": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
					},
					"bestObjective": map[string]any{"type": "number"},
				},
			},
		},
		"groups": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "problems"},
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"problems": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"targets": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"number":    map[string]any{"type": "integer", "minimum": 1},
				"budgetMin": map[string]any{"type": "integer", "minimum": 1},
				"feasible":  map[string]any{"type": "boolean"},
				"tolerance": map[string]any{"type": "number", "minimum": 0},
			},
		},
		"workers": map[string]any{"type": "integer", "minimum": 1},
	},
}

// validateConfig checks the raw configuration document against the schema.
func validateConfig(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(details, "; "))
	}
	return nil
}
