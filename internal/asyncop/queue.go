package asyncop

import (
	"context"

	"github.com/dnsscience/dnsdig/internal/worker"
)

// Queue dispatches operations onto a bounded worker pool and hands back a
// Future per submission. A caller that wants fire-and-poll semantics uses
// the returned Future's AsyncWaitHandle/IsCompleted; a caller that wants
// to block uses End.
type Queue struct {
	pool *worker.Pool
}

// NewQueue wraps a worker pool sized by cfg (zero-value Config selects
// the pool's own CPU-scaled defaults).
func NewQueue(cfg worker.Config) *Queue {
	return &Queue{pool: worker.NewPool(cfg)}
}

// Close shuts the underlying pool down, waiting for in-flight operations.
func (q *Queue) Close() error { return q.pool.Close() }

// QueueOperation submits fn to the pool and returns a Future that
// resolves to fn's result. If the pool's queue is full, fn runs
// synchronously on the calling goroutine instead of being rejected, and
// the returned Future reports CompletedSynchronously() == true rather
// than surfacing a queue-full error to Begin's caller.
func QueueOperation[T any](q *Queue, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	future := NewFuture[T]()

	job := worker.JobFunc(func(ctx context.Context) error {
		value, err := fn(ctx)
		future.complete(value, err, false)
		return err
	})

	if err := q.pool.SubmitAsync(ctx, job); err != nil {
		value, fnErr := fn(ctx)
		future.complete(value, fnErr, true)
	}

	return future
}
