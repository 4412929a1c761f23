// Package worker runs batches of CPU bound jobs, such as the entity updates of a tick, on a
// bounded number of goroutines.
package worker

import (
	"context"
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/motion/oerror"
	"golang.org/x/sync/errgroup"
)

// Pool bounds how many jobs of a batch run at the same time.
type Pool struct {
	limit int
}

// New returns a pool running at most limit jobs at once. A limit below one uses the number of
// CPUs.
func New(limit int) *Pool {
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	return &Pool{limit: limit}
}

// Limit returns the maximum number of concurrent jobs.
func (p *Pool) Limit() int {
	return p.limit
}

// Run runs every job and waits for all of them. The first error cancels jobs that have not
// started yet and is returned. A panicking job is reported to sentry and turned into an error.
func (p *Pool) Run(ctx context.Context, jobs ...func() error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, job := range jobs {
		g.Go(func() (err error) {
			defer recoverJob(&err)
			if err := ctx.Err(); err != nil {
				return err
			}
			return job()
		})
	}
	return g.Wait()
}

// Each runs fn for every item on p.
func Each[T any](ctx context.Context, p *Pool, items []T, fn func(T) error) error {
	jobs := make([]func() error, len(items))
	for i, item := range items {
		jobs[i] = func() error { return fn(item) }
	}
	return p.Run(ctx, jobs...)
}

func recoverJob(err *error) {
	r := recover()
	if r == nil {
		return
	}
	sentry.CurrentHub().Clone().Recover(r)
	*err = oerror.New("worker: job panicked: %v", r)
}
