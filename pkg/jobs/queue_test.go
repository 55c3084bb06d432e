package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsJobs(t *testing.T) {
	q := NewQueue("test", QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	done := make(chan string, 2)
	for _, id := range []string{"a", "b"} {
		id := id
		require.NoError(t, q.Enqueue(Job{ID: id, Run: func(context.Context) error {
			done <- id
			return nil
		}}))
	}

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-done:
			got[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, got)
}

func TestQueueRequiresStart(t *testing.T) {
	q := NewQueue("idle", QueueConfig{})
	err := q.Enqueue(Job{ID: "x", Run: func(context.Context) error { return nil }})
	require.Error(t, err)
}

func TestQueueDropsJobsWhoseContextEnded(t *testing.T) {
	q := NewQueue("scoped", QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	err := q.Enqueue(Job{ID: "gone", Context: ctx, Run: func(context.Context) error {
		ran.Store(true)
		return nil
	}})
	if err == nil {
		time.Sleep(50 * time.Millisecond)
	}
	assert.False(t, ran.Load())
}

func TestQueueCancelsRunningJob(t *testing.T) {
	q := NewQueue("cancel", QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	result := make(chan error, 1)
	require.NoError(t, q.Enqueue(Job{ID: "long", Context: ctx, Run: func(runCtx context.Context) error {
		close(started)
		<-runCtx.Done()
		result <- runCtx.Err()
		return runCtx.Err()
	}}))

	<-started
	cancel()
	select {
	case err := <-result:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("job was not cancelled")
	}
}

func TestQueueEnqueueContextStopsWaitingForSlot(t *testing.T) {
	q := NewQueue("full", QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()

	release := make(chan struct{})
	defer close(release)
	block := func(context.Context) error {
		<-release
		return nil
	}
	require.NoError(t, q.Enqueue(Job{ID: "running", Run: block}))
	require.NoError(t, q.Enqueue(Job{ID: "buffered", Run: block}))

	wait, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := q.EnqueueContext(wait, Job{ID: "late", Run: block})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
