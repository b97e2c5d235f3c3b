// Package batch runs one job per input file with bounded concurrency.
// A failing job never stops its siblings.
package batch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linuxmatters/isfconv/internal/isf"
)

// Job is one input file and where its output goes.
type Job struct {
	Index  int
	Input  string
	Output string
}

// Result is the outcome of a Job.
type Result struct {
	Job
	Written  string        // file actually written, if any
	Points   int           // samples converted
	Warnings []isf.Warning // non-fatal diagnostics
	Err      error
	Duration time.Duration
}

// Func processes a single job. Failures are reported in Result.Err.
type Func func(ctx context.Context, job Job) Result

// Runner executes jobs concurrently.
type Runner struct {
	Workers int

	// OnStart and OnDone, if set, are called for each job. Calls are
	// serialised.
	OnStart func(job Job)
	OnDone  func(res Result)

	mu sync.Mutex
}

// Run processes every job and returns the results in job order. Once ctx is
// cancelled no new job is started; unstarted jobs report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job, fn Func) []Result {
	results := make([]Result, len(jobs))

	var grp errgroup.Group
	grp.SetLimit(max(r.Workers, 1))

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			results[i] = r.skip(job, err)
			continue
		}
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = r.skip(job, err)
				return nil
			}
			r.notify(func() {
				if r.OnStart != nil {
					r.OnStart(job)
				}
			})

			start := time.Now()
			res := fn(ctx, job)
			res.Job = job
			res.Duration = time.Since(start)
			results[i] = res

			r.notify(func() {
				if r.OnDone != nil {
					r.OnDone(res)
				}
			})
			return nil
		})
	}

	// Job failures are carried in the results, never as a group error
	_ = grp.Wait()
	return results
}

func (r *Runner) skip(job Job, err error) Result {
	res := Result{Job: job, Err: err}
	r.notify(func() {
		if r.OnDone != nil {
			r.OnDone(res)
		}
	})
	return res
}

func (r *Runner) notify(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f()
}

// Failed returns the number of results with an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Jobs pairs inputs with outputs.
func Jobs(inputs, outputs []string) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = Job{Index: i, Input: in}
		if i < len(outputs) {
			jobs[i].Output = outputs[i]
		}
	}
	return jobs
}
