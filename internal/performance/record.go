// internal/performance/record.go
package performance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/optibench/optibench/internal/algorithms"
)

// jsonMeasure is an infeasibility measure in a persisted record. Standard
// JSON has no literal for infinity, so an infinite measure is stored as the
// string "Infinity".
type jsonMeasure float64

func (m jsonMeasure) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(m), 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(m))
}

func (m *jsonMeasure) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid infeasibility measure %s: %w", data, err)
	}
	*m = jsonMeasure(value)
	return nil
}

type recordItem struct {
	Performance   float64     `json:"performance"`
	Infeasibility jsonMeasure `json:"infeasibility"`
	Unsatisfied   *int        `json:"n_unsatisfied_constraints,omitempty"`
}

type record struct {
	Problem       string                    `json:"problem,omitempty"`
	Configuration *algorithms.Configuration `json:"algorithm_configuration,omitempty"`
	DOESize       int                       `json:"DOE_size,omitempty"`
	ExecutionTime float64                   `json:"execution_time,omitempty"`
	Items         []recordItem              `json:"history_items"`
}

var historyItemSchema = map[string]any{
	"type":     "object",
	"required": []string{"performance", "infeasibility"},
	"properties": map[string]any{
		"performance": map[string]any{"type": "number"},
		"infeasibility": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "number", "minimum": 0},
				map[string]any{"type": "string", "enum": []any{"Infinity"}},
			},
		},
		"n_unsatisfied_constraints": map[string]any{"type": "integer", "minimum": 0},
	},
}

var historyRecordSchema = map[string]any{
	"type":     "object",
	"required": []string{"history_items"},
	"properties": map[string]any{
		"problem": map[string]any{"type": "string"},
		"algorithm_configuration": map[string]any{
			"type":     "object",
			"required": []string{"algorithm_name"},
			"properties": map[string]any{
				"configuration_name": map[string]any{"type": "string"},
				"algorithm_name":     map[string]any{"type": "string"},
				"options":            map[string]any{"type": "object"},
			},
		},
		"DOE_size":       map[string]any{"type": "integer", "minimum": 0},
		"execution_time": map[string]any{"type": "number", "minimum": 0},
		"history_items":  map[string]any{"type": "array", "items": historyItemSchema},
	},
}

var legacyHistorySchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"oneOf": []any{
			historyItemSchema,
			map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 2,
				"items":    map[string]any{"type": "number"},
			},
		},
	},
}

// ToFile saves the history as a structured JSON record.
func (h *History) ToFile(path string) error {
	items := make([]recordItem, len(h.items))
	for i, item := range h.items {
		items[i] = recordItem{
			Performance:   item.ObjectiveValue,
			Infeasibility: jsonMeasure(item.InfeasibilityMeasure),
			Unsatisfied:   item.UnsatisfiedConstraints,
		}
	}
	data, err := json.MarshalIndent(record{
		Problem:       h.ProblemName,
		Configuration: h.AlgorithmConfiguration,
		DOESize:       h.DOESize,
		ExecutionTime: h.TotalTime,
		Items:         items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding history record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// HistoryFromFile loads a history record. The legacy format, a bare list of
// item objects without the metadata envelope, is also accepted.
func HistoryFromFile(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading history record: %w", err)
	}
	history, err := historyFromRecord(data)
	if err != nil {
		return nil, fmt.Errorf("invalid history record %s: %w", path, err)
	}
	return history, nil
}

func historyFromRecord(data []byte) (*History, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	legacy := len(trimmed) > 0 && trimmed[0] == '['

	schema := historyRecordSchema
	if legacy {
		schema = legacyHistorySchema
	}
	if err := validateRecord(schema, data); err != nil {
		return nil, err
	}

	var rec record
	if legacy {
		items, err := legacyItems(data)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	} else if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	items := make([]Item, len(rec.Items))
	for i, itemData := range rec.Items {
		item, err := NewItem(itemData.Performance, float64(itemData.Infeasibility))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item.UnsatisfiedConstraints = itemData.Unsatisfied
		items[i] = item
	}

	history := NewHistory(items...)
	history.ProblemName = rec.Problem
	history.AlgorithmConfiguration = rec.Configuration
	history.DOESize = rec.DOESize
	history.TotalTime = rec.ExecutionTime
	return history, nil
}

// legacyItems decodes the deprecated record format: a bare list of either
// item objects or [performance, infeasibility] pairs.
func legacyItems(data []byte) ([]recordItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]recordItem, len(raw))
	for i, element := range raw {
		trimmed := bytes.TrimLeft(element, " \t\r\n")
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var pair [2]float64
			if err := json.Unmarshal(element, &pair); err != nil {
				return nil, err
			}
			items[i] = recordItem{Performance: pair[0], Infeasibility: jsonMeasure(pair[1])}
			continue
		}
		if err := json.Unmarshal(element, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func validateRecord(schema map[string]any, data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, description := range result.Errors() {
			messages = append(messages, description.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(messages, "; "))
	}
	return nil
}
