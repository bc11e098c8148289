package support

import "sync/atomic"

// COWSlice is a copy-on-write slice: many readers iterate a snapshot
// lock-free via Load, while writers go through Append or Replace and pay the cost
// of copying the backing array. Grounded on the sharded cache and worker
// pool's atomic-counter style in this module's ancestry: readers never
// block a writer and vice versa.
type COWSlice[T any] struct {
	snapshot atomic.Pointer[[]T]
	mu       chan struct{} // 1-buffered channel used as a trylock-free mutex
}

// NewCOWSlice creates an empty copy-on-write slice.
func NewCOWSlice[T any]() *COWSlice[T] {
	c := &COWSlice[T]{mu: make(chan struct{}, 1)}
	empty := make([]T, 0)
	c.snapshot.Store(&empty)
	return c
}

// Load returns the current snapshot. Safe for concurrent use with Append;
// callers must not mutate the returned slice.
func (c *COWSlice[T]) Load() []T {
	return *c.snapshot.Load()
}

// Append adds an item, publishing a new snapshot. Serialized against other
// writers; readers are never blocked.
func (c *COWSlice[T]) Append(item T) {
	c.mu <- struct{}{}
	defer func() { <-c.mu }()

	old := *c.snapshot.Load()
	next := make([]T, len(old)+1)
	copy(next, old)
	next[len(old)] = item
	c.snapshot.Store(&next)
}

// Replace atomically swaps the entire snapshot.
func (c *COWSlice[T]) Replace(items []T) {
	c.mu <- struct{}{}
	defer func() { <-c.mu }()

	next := make([]T, len(items))
	copy(next, items)
	c.snapshot.Store(&next)
}
