package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oomph-ac/motion/worker"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestRunAll(t *testing.T) {
	p := worker.New(4)
	var done atomic.Int32
	jobs := make([]func() error, 32)
	for i := range jobs {
		jobs[i] = func() error {
			done.Inc()
			return nil
		}
	}
	require.NoError(t, p.Run(context.Background(), jobs...))
	require.EqualValues(t, 32, done.Load())
}

func TestRunRespectsLimit(t *testing.T) {
	p := worker.New(2)
	var running, peak atomic.Int32
	jobs := make([]func() error, 8)
	for i := range jobs {
		jobs[i] = func() error {
			n := running.Inc()
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Dec()
			return nil
		}
	}
	require.NoError(t, p.Run(context.Background(), jobs...))
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunReturnsFirstError(t *testing.T) {
	p := worker.New(1)
	boom := errors.New("boom")
	var after atomic.Bool
	err := p.Run(context.Background(),
		func() error { return boom },
		func() error {
			after.Store(true)
			return nil
		},
	)
	require.ErrorIs(t, err, boom)
	require.False(t, after.Load(), "jobs after a failure are cancelled")
}

func TestRunRecoversPanics(t *testing.T) {
	p := worker.New(0)
	require.Positive(t, p.Limit())

	err := p.Run(context.Background(), func() error { panic("bad state") })
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad state")
}

func TestEach(t *testing.T) {
	var sum atomic.Int64
	err := worker.Each(context.Background(), worker.New(3), []int64{1, 2, 3, 4}, func(v int64) error {
		sum.Add(v)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 10, sum.Load())
}
