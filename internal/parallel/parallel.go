package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/msalah0e/wastegraph/internal/ui"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of a parallel task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Elapsed time.Duration
}

// Task is a function that runs in parallel.
type Task struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Run executes tasks in parallel with the given concurrency limit and
// returns results in the order tasks were submitted. A failing task does not
// stop the others. When progress is non-nil each completion is reported
// there.
func Run(ctx context.Context, tasks []Task, concurrency int, progress io.Writer) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			err := task.Fn(gctx)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			results[i] = Result{Name: task.Name, OK: err == nil, Err: err, Elapsed: elapsed}
			if progress == nil {
				return nil
			}
			if err != nil {
				fmt.Fprintf(progress, "  %s %s %s\n", ui.StatusIcon(false), task.Name, ui.Bad.Sprintf("(%v)", err))
			} else {
				fmt.Fprintf(progress, "  %s %s %s\n", ui.StatusIcon(true), task.Name, ui.Subtle.Sprintf("%dms", elapsed.Milliseconds()))
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// FirstError returns the first failed result's error, wrapped with its name.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.Name, r.Err)
		}
	}
	return nil
}
