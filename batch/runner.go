// Package batch converts many source units in parallel and writes their
// records to a sink in input order.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/shibukawa/cgeltree/source"
	"github.com/shibukawa/cgeltree/store"
)

// ConvertFunc converts one source unit into its tree records. A failing tree
// is returned as a record with Err set; it never stops the other trees.
type ConvertFunc func(ctx context.Context, unit *source.Unit) []store.Record

// Task is one source unit to convert. Load is called on a worker.
type Task struct {
	Name string
	Load func() (*source.Unit, error)
}

// Failure describes a tree, or a whole source when TreeID is empty, that
// could not be converted.
type Failure struct {
	Source string
	TreeID string
	Err    error
}

// Error reports the source and the error, which names the tree itself.
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Source, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Summary counts the outcome of a run.
type Summary struct {
	Sources  int
	Trees    int
	Failed   int
	Failures []Failure
	Duration time.Duration
}

// OK reports whether every source and tree converted.
func (s *Summary) OK() bool {
	return len(s.Failures) == 0
}

// Runner manages parallel conversion.
type Runner struct {
	convert    ConvertFunc
	workerPool chan struct{} // semaphore
}

// NewRunner returns a runner using at most parallel workers; zero or less
// means one worker per CPU.
func NewRunner(parallel int, convert ConvertFunc) *Runner {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	return &Runner{
		convert:    convert,
		workerPool: make(chan struct{}, parallel),
	}
}

// FileTasks makes one task per path, loaded with loader.
func FileTasks(loader *source.Loader, paths []string) []Task {
	tasks := make([]Task, len(paths))

	for i, path := range paths {
		tasks[i] = Task{Name: path, Load: func() (*source.Unit, error) { return loader.Load(path) }}
	}

	return tasks
}

// UnitTasks wraps already loaded units.
func UnitTasks(units ...*source.Unit) []Task {
	tasks := make([]Task, len(units))

	for i, unit := range units {
		tasks[i] = Task{Name: unit.ID, Load: func() (*source.Unit, error) { return unit, nil }}
	}

	return tasks
}

type outcome struct {
	name    string
	records []store.Record
	err     error
}

// Run converts every task and writes the records to sink in task order, each
// source's trees in document order. A sink error stops the run; conversion
// failures are collected in the summary.
func (r *Runner) Run(ctx context.Context, tasks []Task, sink store.Sink) (*Summary, error) {
	startTime := time.Now()
	summary := &Summary{Sources: len(tasks)}

	// one buffered channel per task keeps the output order
	outcomes := make([]chan outcome, len(tasks))
	for i := range outcomes {
		outcomes[i] = make(chan outcome, 1)
	}

	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)

		go func() {
			defer wg.Done()

			outcomes[i] <- r.execute(ctx, task)
		}()
	}

	defer wg.Wait()

	for i := range tasks {
		result := <-outcomes[i]

		if result.err != nil {
			summary.Failures = append(summary.Failures, Failure{Source: result.name, Err: result.err})
			continue
		}

		for _, rec := range result.records {
			summary.Trees++

			if rec.Err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, Failure{Source: result.name, TreeID: rec.TreeID, Err: rec.Err})
			}

			if err := sink.Write(ctx, rec); err != nil {
				return summary, err
			}
		}
	}

	summary.Duration = time.Since(startTime)

	return summary, nil
}

// execute runs one task while holding a worker slot.
func (r *Runner) execute(ctx context.Context, task Task) outcome {
	select {
	case r.workerPool <- struct{}{}:
		defer func() { <-r.workerPool }()
	case <-ctx.Done():
		return outcome{name: task.Name, err: ctx.Err()}
	}

	unit, err := task.Load()
	if err != nil {
		return outcome{name: task.Name, err: err}
	}

	return outcome{name: unit.ID, records: r.convert(ctx, unit)}
}
