// internal/benchmarker/benchmarker.go
// Package benchmarker runs algorithm configurations over reference problems
// and records one performance history file per run.
package benchmarker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/optibench/optibench/internal/algorithms"
	"github.com/optibench/optibench/internal/logging"
	"github.com/optibench/optibench/internal/problems"
	"github.com/optibench/optibench/internal/results"
	"github.com/optibench/optibench/internal/util"
)

// Run identifies one optimization to perform: a configuration on one
// problem instance.
type Run struct {
	Problem       *problems.Problem
	Configuration algorithms.Configuration
	// Index is the zero-based repetition index.
	Index int
	// StartingPoint is the design point the run starts from, nil when the
	// problem defines none.
	StartingPoint []float64
}

// Solver performs one optimization run and returns its raw evaluations.
// Implementations adapt external optimization engines; the harness never
// executes algorithms itself.
type Solver interface {
	Solve(ctx context.Context, run Run) ([]problems.Evaluation, error)
}

// Benchmarker executes configurations × problems × starting points with a
// bounded worker pool, saving histories and maintaining the results index.
type Benchmarker struct {
	solver       Solver
	historiesDir string
	resultsFile  string
	workers      int

	mutex   sync.Mutex
	results *results.Results
}

// New builds a benchmarker. An existing results index at resultsFile is
// loaded so that already-solved runs can be skipped.
func New(solver Solver, historiesDir, resultsFile string, workers int) (*Benchmarker, error) {
	if solver == nil {
		return nil, errors.New("a solver is required")
	}
	if workers < 1 {
		workers = 1
	}
	index := results.New()
	if resultsFile != "" {
		if _, err := os.Stat(resultsFile); err == nil {
			loaded, err := results.FromFile(resultsFile)
			if err != nil {
				return nil, err
			}
			index = loaded
		}
	}
	return &Benchmarker{
		solver:       solver,
		historiesDir: historiesDir,
		resultsFile:  resultsFile,
		workers:      workers,
		results:      index,
	}, nil
}


// Execute runs every configuration on every problem instance. Runs already
// present in the results index are skipped unless overwrite is set.
func (b *Benchmarker) Execute(ctx context.Context, group []*problems.Problem, configurations *algorithms.Configurations, overwrite bool) (*results.Results, error) {
	if err := os.MkdirAll(b.historiesDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating histories directory: %w", err)
	}

	var runs []Run
	for _, configuration := range configurations.Configurations() {
		for _, problem := range group {
			for index := 0; index < problem.InstanceCount(); index++ {
				if !overwrite && b.results.Contains(configuration.Name, problem.Name, index) {
					logging.LogRun("skip", configuration.Name, problem.Name, index+1, "already solved")
					continue
				}
				runs = append(runs, Run{
					Problem:       problem,
					Configuration: configuration,
					Index:         index,
					StartingPoint: problem.StartingPoint(index),
				})
			}
		}
	}

	jobs := make(chan Run)
	errs := make(chan error, len(runs))
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := b.executeRun(ctx, job); err != nil {
					errs <- err
				}
			}
		}()
	}
	for _, job := range runs {
		if err := ctx.Err(); err != nil {
			close(jobs)
			wg.Wait()
			return nil, err
		}
		select {
		case jobs <- job:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		return nil, err
	}

	if b.resultsFile != "" {
		if err := b.results.ToFile(b.resultsFile); err != nil {
			return nil, err
		}
	}
	return b.results, nil
}

// executeRun solves one problem instance and saves its history.
func (b *Benchmarker) executeRun(ctx context.Context, job Run) error {
	logging.LogRun("solve", job.Configuration.Name, job.Problem.Name, job.Index+1, "starting")

	start := time.Now()
	evaluations, err := b.solver.Solve(ctx, job)
	if err != nil {
		return fmt.Errorf("error solving %s with %s (run %d): %w",
			job.Problem.Name, job.Configuration.Name, job.Index+1, err)
	}
	elapsed := time.Since(start)

	history, err := problems.HistoryFromRun(evaluationList(evaluations))
	if err != nil {
		return err
	}
	history.ProblemName = job.Problem.Name
	history.AlgorithmConfiguration = &job.Configuration
	history.DOESize = job.Problem.InstanceCount()
	history.TotalTime = elapsed.Seconds()

	path := b.historyPath(job)
	if err := history.ToFile(path); err != nil {
		return err
	}
	logging.LogRun("save", job.Configuration.Name, job.Problem.Name, job.Index+1, path)

	b.mutex.Lock()
	b.results.SetPath(job.Configuration.Name, job.Problem.Name, job.Index, path)
	b.mutex.Unlock()
	return nil
}

// historyPath returns the file the run's history is saved to.
func (b *Benchmarker) historyPath(job Run) string {
	name := fmt.Sprintf("%s-%s-%d.json",
		util.Slugify(job.Configuration.Name), util.Slugify(job.Problem.Name), job.Index+1)
	return filepath.Join(b.historiesDir, name)
}

// evaluationList adapts a plain evaluation slice to the run-source interface.
type evaluationList []problems.Evaluation

// Evaluations returns the evaluations in order.
func (l evaluationList) Evaluations() []problems.Evaluation {
	return l
}
