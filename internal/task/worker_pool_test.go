package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	queue := NewTaskQueue(10, setupTestLogger())

	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 5}, setupTestLogger())
	assert.Equal(t, 5, pool.workerCount)
	assert.Nil(t, pool.errorHandler)

	pool = NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 0}, setupTestLogger())
	assert.Equal(t, 1, pool.workerCount)

	pool = NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: -5}, setupTestLogger())
	assert.Equal(t, 1, pool.workerCount)

	assert.Equal(t, 1, DefaultWorkerPoolConfig().WorkerCount)
}

func TestWorkerPool_ProcessesTasks(t *testing.T) {
	queue := NewTaskQueue(10, setupTestLogger())
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 3}, setupTestLogger())
	pool.Start()
	defer pool.Stop()

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, queue.Enqueue(NewFuncTask("count", func(context.Context) error {
			defer wg.Done()
			count.Add(1)
			return nil
		})))
	}

	wg.Wait()
	assert.Equal(t, int32(10), count.Load())
}

func TestWorkerPool_ErrorHandler(t *testing.T) {
	queue := NewTaskQueue(1, setupTestLogger())
	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), setupTestLogger())

	failed := make(chan error, 1)
	pool.SetErrorHandler(func(_ Task, err error) {
		failed <- err
	})
	pool.Start()
	defer pool.Stop()

	boom := errors.New("boom")
	require.NoError(t, queue.Enqueue(NewFuncTask("fail", func(context.Context) error {
		return boom
	})))

	select {
	case err := <-failed:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}

func TestWorkerPool_StopCancelsRunningTask(t *testing.T) {
	queue := NewTaskQueue(1, setupTestLogger())
	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), setupTestLogger())
	pool.SetErrorHandler(func(Task, error) {})
	pool.Start()

	started := make(chan struct{})
	require.NoError(t, queue.Enqueue(NewFuncTask("block", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))
	<-started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestWorkerPool_ExitsWhenQueueClosed(t *testing.T) {
	queue := NewTaskQueue(1, setupTestLogger())
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 2}, setupTestLogger())
	pool.Start()

	ran := make(chan struct{})
	require.NoError(t, queue.Enqueue(NewFuncTask("last", func(context.Context) error {
		close(ran)
		return nil
	})))
	queue.Close()

	<-ran
	pool.Stop()
}
