// internal/tui/summary.go
// Package tui renders terminal summaries of benchmark results.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/optibench/optibench/internal/results"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	rowStyle    = lipgloss.NewStyle().PaddingLeft(2)

	completeRun = color.New(color.FgGreen).SprintFunc()
	missingRun  = color.New(color.FgRed).SprintFunc()
)

// renderAlgorithmBadge returns a Lipgloss-styled badge string for an
// algorithm configuration name.
func renderAlgorithmBadge(name string) string {
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	return badgeStyle.Render(name)
}

// RenderResultsSummary returns a styled, per-algorithm summary of the runs
// recorded in a results index.
func RenderResultsSummary(index *results.Results) string {
	var builder strings.Builder
	builder.WriteString(headerStyle.Render("Benchmark results"))
	builder.WriteString("\n")

	algorithms := index.Algorithms()
	if len(algorithms) == 0 {
		builder.WriteString(rowStyle.Render("No recorded runs."))
		builder.WriteString("\n")
		return builder.String()
	}

	for _, algorithmName := range algorithms {
		builder.WriteString(renderAlgorithmBadge(algorithmName))
		builder.WriteString("\n")
		for _, problemName := range index.Problems(algorithmName) {
			paths := index.Paths(algorithmName, problemName)
			complete := 0
			for _, path := range paths {
				if path != "" {
					complete++
				}
			}
			mark := completeRun(fmt.Sprintf("%d/%d runs", complete, len(paths)))
			if complete < len(paths) {
				mark = missingRun(fmt.Sprintf("%d/%d runs", complete, len(paths)))
			}
			builder.WriteString(rowStyle.Render(fmt.Sprintf("%s: %s", problemName, mark)))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
