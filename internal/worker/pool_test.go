package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }
func (j funcJob) Name() string                  { return j.name }

func TestPool_RunsJobs(t *testing.T) {
	p := worker.NewPool(2, 10)
	p.Start(context.Background())

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			n.Add(1)
			return nil
		}})
		require.True(t, ok)
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(5), n.Load())
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	p := worker.NewPool(1, 4)
	p.Start(context.Background())
	defer p.Stop()

	done := make(chan struct{})
	require.True(t, p.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("boom") }}))
	require.True(t, p.Submit(funcJob{name: "after", fn: func(context.Context) error { close(done); return nil }}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second job never ran")
	}
}

func TestPool_SubmitWhenFullOrStopped(t *testing.T) {
	p := worker.NewPool(1, 1)
	block := make(chan struct{})
	started := make(chan struct{})
	p.Start(context.Background())

	require.True(t, p.Submit(funcJob{name: "block", fn: func(context.Context) error {
		close(started)
		<-block
		return nil
	}}))
	<-started
	assert.Equal(t, 0, p.QueueSize())
	require.True(t, p.Submit(funcJob{name: "queued", fn: func(context.Context) error { return nil }}))
	assert.Equal(t, 1, p.QueueSize())
	assert.False(t, p.Submit(funcJob{name: "dropped", fn: func(context.Context) error { return nil }}))
	assert.Equal(t, 1, p.QueueSize())

	close(block)
	p.Stop()
	p.Stop()
	assert.False(t, p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }}))
}
