// internal/report/charts.go
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/optibench/optibench/internal/performance"
)

// renderDataProfileChart writes the hit-ratio curves of a problem group to a
// standalone HTML chart.
func renderDataProfileChart(path, groupName string, profiles map[string][]float64) error {
	size := 0
	for _, profile := range profiles {
		if len(profile) > size {
			size = len(profile)
		}
	}
	budgets := make([]string, size)
	for i := range budgets {
		budgets[i] = fmt.Sprintf("%d", i+1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Data profiles — %s", groupName)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of evaluations"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Ratio of targets reached", Max: 1}),
	)
	line.SetXAxis(budgets)

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		profile := profiles[name]
		data := make([]opts.LineData, size)
		for i := range data {
			// A shorter profile keeps its last, already-converged value.
			value := profile[len(profile)-1]
			if i < len(profile) {
				value = profile[i]
			}
			data[i] = opts.LineData{Value: value}
		}
		line.AddSeries(name, data)
	}
	return renderChart(line, path)
}

// renderHistoriesChart writes, for one problem, the median best-so-far
// objective of each algorithm's repeated runs together with the min/max band
// of the runs.
func renderHistoriesChart(path, problemName string, collections map[string]*performance.Histories) error {
	size := 0
	for _, collection := range collections {
		if collection.MaxLength() > size {
			size = collection.MaxLength()
		}
	}
	budgets := make([]string, size)
	for i := range budgets {
		budgets[i] = fmt.Sprintf("%d", i+1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Performance — %s", problemName)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Number of evaluations"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Objective value"}),
	)
	line.SetXAxis(budgets)

	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		collection := collections[name]
		median, err := collection.Median()
		if err != nil {
			return err
		}
		minimum, err := collection.Minimum()
		if err != nil {
			return err
		}
		maximum, err := collection.Maximum()
		if err != nil {
			return err
		}
		line.AddSeries(name, objectiveSeries(median, size))
		if collection.Len() > 1 {
			line.AddSeries(fmt.Sprintf("%s (min)", name), objectiveSeries(minimum, size))
			line.AddSeries(fmt.Sprintf("%s (max)", name), objectiveSeries(maximum, size))
		}
	}
	return renderChart(line, path)
}

// objectiveSeries maps a history to chart points on the objective scale,
// repeating the last measurement up to size.
func objectiveSeries(history *performance.History, size int) []opts.LineData {
	data := make([]opts.LineData, 0, size)
	for i := 0; i < size; i++ {
		index := i
		if index >= history.Len() {
			index = history.Len() - 1
		}
		item := history.Item(index)
		if item.IsFeasible() {
			data = append(data, opts.LineData{Value: item.ObjectiveValue})
		} else {
			// Infeasible measurements have no objective on this scale.
			data = append(data, opts.LineData{Value: nil})
		}
	}
	return data
}

func renderChart(line *charts.Line, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating chart file: %w", err)
	}
	defer file.Close()
	if err := line.Render(file); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}
