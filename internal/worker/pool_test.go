package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPoolRunsSubmittedJobs(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start(context.Background())

	done := make(chan string, 2)
	pool.Submit(funcJob{name: "a", fn: func(context.Context) error {
		done <- "a"
		return nil
	}})
	pool.Submit(funcJob{name: "b", fn: func(context.Context) error {
		done <- "b"
		return nil
	}})

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case name := <-done:
			got[name] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	assert.True(t, got["a"])
	assert.True(t, got["b"])

	pool.Stop()
}

func TestPoolTrySubmitDropsWhenFull(t *testing.T) {
	// Never started, so the queue only drains by capacity.
	pool := NewPool(1, 2)

	require.True(t, pool.TrySubmit(funcJob{name: "1", fn: func(context.Context) error { return nil }}))
	require.True(t, pool.TrySubmit(funcJob{name: "2", fn: func(context.Context) error { return nil }}))
	assert.False(t, pool.TrySubmit(funcJob{name: "3", fn: func(context.Context) error { return nil }}))
	assert.Equal(t, 2, pool.QueueSize())
}
