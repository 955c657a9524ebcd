// internal/report/report.go
// Package report renders a standalone HTML benchmark report: per-group data
// profile charts, per-problem performance charts and an index page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/optibench/optibench/internal/performance"
	"github.com/optibench/optibench/internal/problems"
	"github.com/optibench/optibench/internal/results"
	"github.com/optibench/optibench/internal/util"
)

// Report writes benchmark report files into a directory.
type Report struct {
	dir string
}

// New builds a report generator rooted at dir.
func New(dir string) *Report {
	return &Report{dir: dir}
}

// indexData is the view model of the report index page.
type indexData struct {
	Title      string
	Algorithms []string
	Groups     []groupSection
}

type groupSection struct {
	Name      string
	ChartFile string
	Problems  []problemSection
	Rows      []profileRow
}

type problemSection struct {
	Name      string
	ChartFile string
}

type profileRow struct {
	Algorithm  string
	FinalRatio string
	Budget     int
}

// Generate computes the data profiles of every group, renders one chart per
// group and one median-performance chart per problem, and writes index.html.
// With no names, every algorithm configuration in the index is reported.
func (r *Report) Generate(groups []*problems.Group, index *results.Results, algorithmNames ...string) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}
	if len(algorithmNames) == 0 {
		algorithmNames = index.Algorithms()
	}

	data := indexData{
		Title:      "optibench: Benchmark Report",
		Algorithms: algorithmNames,
	}
	for _, group := range groups {
		section, err := r.generateGroup(group, index, algorithmNames)
		if err != nil {
			return err
		}
		data.Groups = append(data.Groups, section)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("error rendering report index: %w", err)
	}
	return util.WriteFile(filepath.Join(r.dir, "index.html"), buf.Bytes())
}

// generateGroup renders the charts of one problem group.
func (r *Report) generateGroup(group *problems.Group, index *results.Results, algorithmNames []string) (groupSection, error) {
	profiles, err := group.ComputeDataProfiles(index, algorithmNames...)
	if err != nil {
		return groupSection{}, err
	}

	chartFile := fmt.Sprintf("dataprofile-%s.html", util.Slugify(group.Name))
	if err := renderDataProfileChart(filepath.Join(r.dir, chartFile), group.Name, profiles); err != nil {
		return groupSection{}, err
	}

	section := groupSection{Name: group.Name, ChartFile: chartFile}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		profile := profiles[name]
		section.Rows = append(section.Rows, profileRow{
			Algorithm:  name,
			FinalRatio: fmt.Sprintf("%.2f", profile[len(profile)-1]),
			Budget:     len(profile),
		})
	}

	for _, problem := range group.Problems() {
		problemSec, err := r.generateProblem(problem, index, algorithmNames)
		if err != nil {
			return groupSection{}, err
		}
		section.Problems = append(section.Problems, problemSec)
	}
	return section, nil
}

// generateProblem renders the performance chart of one problem: the median
// best-so-far objective of each algorithm's repeated runs with its min/max
// band.
func (r *Report) generateProblem(problem *problems.Problem, index *results.Results, algorithmNames []string) (problemSection, error) {
	collections := make(map[string]*performance.Histories, len(algorithmNames))
	for _, algorithmName := range algorithmNames {
		var runs []*performance.History
		for _, path := range index.Paths(algorithmName, problem.Name) {
			history, err := performance.HistoryFromFile(path)
			if err != nil {
				return problemSection{}, err
			}
			runs = append(runs, history)
		}
		if len(runs) == 0 {
			return problemSection{}, fmt.Errorf("no recorded history for algorithm %q on problem %q", algorithmName, problem.Name)
		}
		collections[algorithmName] = performance.NewHistories(runs...).CumulateMinimum()
	}

	chartFile := fmt.Sprintf("problem-%s.html", util.Slugify(problem.Name))
	if err := renderHistoriesChart(filepath.Join(r.dir, chartFile), problem.Name, collections); err != nil {
		return problemSection{}, err
	}
	return problemSection{Name: problem.Name, ChartFile: chartFile}, nil
}

var indexTemplate = template.Must(template.New("report-index").Parse(indexTemplateHTML))

const indexTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    body { background-color: #F1F5F9; color: #0F172A; }
    .card { margin-bottom: 1.5rem; }
    h1 { margin: 1.5rem 0; }
  </style>
</head>
<body>
  <div class="container">
    <h1>{{ .Title }}</h1>
    <p class="text-muted">
      Algorithm configurations:
      {{ range $i, $name := .Algorithms }}{{ if $i }}, {{ end }}<strong>{{ $name }}</strong>{{ end }}
    </p>
    {{ range .Groups }}
    <div class="card">
      <div class="card-header"><h4 class="mb-0">{{ .Name }}</h4></div>
      <div class="card-body">
        <p><a href="{{ .ChartFile }}">Data profiles chart</a></p>
        <table class="table table-sm table-striped">
          <thead>
            <tr><th>Algorithm configuration</th><th>Final hit ratio</th><th>Budget</th></tr>
          </thead>
          <tbody>
            {{ range .Rows }}
            <tr><td>{{ .Algorithm }}</td><td>{{ .FinalRatio }}</td><td>{{ .Budget }}</td></tr>
            {{ end }}
          </tbody>
        </table>
        <h6>Problems</h6>
        <ul>
          {{ range .Problems }}
          <li><a href="{{ .ChartFile }}">{{ .Name }}</a></li>
          {{ end }}
        </ul>
      </div>
    </div>
    {{ end }}
  </div>
</body>
</html>
`
