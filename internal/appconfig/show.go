package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fmt.Fprintf(out, "  Debug:               %v\n", fallback.Debug)
		fmt.Fprintf(out, "  Workers:             %d\n", fallback.WorkerCount())
		fmt.Fprintf(out, "  Overwrite Histories: %v\n", fallback.OverwriteHistories)
		fmt.Fprintf(out, "  Histories Dir:       %s\n", fallback.HistoriesDirPath())
		fmt.Fprintf(out, "  Results File:        %s\n", fallback.ResultsFilePath())
		return
	}

	fmt.Fprintf(out, "  Debug:               %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Workers:             %d\n", cfg.WorkerCount())
	fmt.Fprintf(out, "  Overwrite Histories: %v\n", cfg.OverwriteHistories)
	fmt.Fprintf(out, "  Histories Dir:       %s\n", cfg.HistoriesDirPath())
	fmt.Fprintf(out, "  Results File:        %s\n", cfg.ResultsFilePath())
	fmt.Fprintf(out, "  Targets Dir:         %s\n", cfg.TargetsDirPath())
	fmt.Fprintf(out, "  Report Dir:          %s\n", cfg.ReportDirPath())
	fmt.Fprintf(out, "  Targets Number:      %d\n", cfg.Targets.TargetsNumber())
	fmt.Fprintf(out, "  Feasible Targets:    %v\n", cfg.Targets.Feasible)
	fmt.Fprintf(out, "  Algorithms:          %d\n", len(cfg.Algorithms))
	fmt.Fprintf(out, "  Problems:            %d\n", len(cfg.Problems))
	fmt.Fprintf(out, "  Groups:              %d\n", len(cfg.Groups))
}
