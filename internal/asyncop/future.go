// Package asyncop backs every Begin*/End* pair on the resolver with a
// one-shot future, mirroring the APM (asynchronous programming model)
// surface of the original source: Begin queues work and returns
// immediately with a handle; End blocks until the result is ready and
// may only be called once per handle.
package asyncop

import (
	"sync"

	"github.com/dnsscience/dnsdig/internal/support"
)

// WaitHandle is a lazily-created synchronization primitive a caller can
// block on without calling End, mirroring IAsyncResult.AsyncWaitHandle.
// Its initial signaled state mirrors whether the operation had already
// completed by the time the handle was requested.
type WaitHandle struct {
	done chan struct{}
}

// Wait blocks until the operation completes.
func (h *WaitHandle) Wait() { <-h.done }

// Future is a one-shot asynchronous result: a value and error become
// available exactly once, after which End may be called exactly once to
// retrieve them.
type Future[T any] struct {
	mu                    sync.Mutex
	cond                  *sync.Cond
	completed             bool
	completedSynchronously bool
	value                 T
	err                   error
	waitHandle            *WaitHandle
	endCalled             bool
}

// NewFuture returns an unresolved Future.
func NewFuture[T any]() *Future[T] {
	f := &Future[T]{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// complete resolves the future exactly once. Calling it a second time is
// a programming error in this package's own code, not a caller mistake,
// so it panics rather than returning a Usage error.
func (f *Future[T]) complete(value T, err error, synchronous bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed {
		panic("asyncop: Future completed twice")
	}
	f.completed = true
	f.completedSynchronously = synchronous
	f.value = value
	f.err = err
	if f.waitHandle != nil {
		close(f.waitHandle.done)
	}
	f.cond.Broadcast()
}

// IsCompleted reports whether the operation has finished.
func (f *Future[T]) IsCompleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// CompletedSynchronously reports whether the operation finished before
// Begin returned (the worker pool's queue was full and the job ran
// inline), matching IAsyncResult.CompletedSynchronously.
func (f *Future[T]) CompletedSynchronously() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completedSynchronously
}

// AsyncWaitHandle lazily creates and returns a WaitHandle whose initial
// signaled state mirrors whether the future had already completed.
func (f *Future[T]) AsyncWaitHandle() *WaitHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.waitHandle == nil {
		h := &WaitHandle{done: make(chan struct{})}
		if f.completed {
			close(h.done)
		}
		f.waitHandle = h
	}
	return f.waitHandle
}

// End blocks until the future resolves and returns its value and error.
// Calling End a second time on the same Future fails with
// ErrAsyncResultEndAlreadyCalled, matching the single-End-call contract
// of the Begin/End asynchronous pattern.
func (f *Future[T]) End() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.endCalled {
		var zero T
		return zero, support.ErrAsyncResultEndAlreadyCalled.Wrap(nil)
	}
	f.endCalled = true
	for !f.completed {
		f.cond.Wait()
	}
	return f.value, f.err
}
