// internal/benchmarker/replay.go
package benchmarker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/optibench/optibench/internal/problems"
	"github.com/optibench/optibench/internal/util"
)

// ReplaySolver replays runs recorded by an external algorithm harness
// instead of executing an optimizer. Each configuration's "dir" option names
// a directory holding one raw-run file per problem instance, named
// <problem-slug>-<run>.json and containing the ordered evaluations.
type ReplaySolver struct{}

// rawEvaluation is one entry of a raw-run file.
type rawEvaluation struct {
	Objective     float64 `json:"objective"`
	Infeasibility float64 `json:"infeasibility"`
	Unsatisfied   *int    `json:"n_unsatisfied_constraints,omitempty"`
}

// Solve reads the recorded evaluations of the requested run.
func (ReplaySolver) Solve(_ context.Context, run Run) ([]problems.Evaluation, error) {
	dir, _ := run.Configuration.Options["dir"].(string)
	if dir == "" {
		return nil, fmt.Errorf("configuration %q has no \"dir\" option to replay runs from", run.Configuration.Name)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%d.json", util.Slugify(run.Problem.Name), run.Index+1))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading raw run %s: %w", path, err)
	}

	var raw []rawEvaluation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid raw run %s: %w", path, err)
	}
	evaluations := make([]problems.Evaluation, len(raw))
	for i, entry := range raw {
		evaluations[i] = problems.Evaluation{
			Objective:              entry.Objective,
			Infeasibility:          entry.Infeasibility,
			UnsatisfiedConstraints: entry.Unsatisfied,
		}
	}
	return evaluations, nil
}
