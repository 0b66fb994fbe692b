package alloc

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned by allocators.
var (
	// ErrAllocationFailed indicates a block could not be obtained.
	ErrAllocationFailed = errors.New("allocation failed")
)

// Allocator hands out and takes back blocks of T.
//
// Allocate returns a block with len(block) == n whose elements are all the
// zero value. Deallocate receives a block previously returned by Allocate on
// the same allocator; the caller must not touch the block afterwards.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(block []T)
}

// Heap allocates with make. A positive Limit rejects any single request
// larger than Limit elements.
type Heap[T any] struct {
	Limit int
}

// Allocate returns a fresh zeroed block.
func (h Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 || (h.Limit > 0 && n > h.Limit) {
		return nil, fmt.Errorf("%w: %d elements", ErrAllocationFailed, n)
	}
	return make([]T, n), nil
}

// Deallocate is a no-op; the block is left to the garbage collector.
func (Heap[T]) Deallocate([]T) {}

// Limited wraps an allocator with a budget on the number of elements that may
// be outstanding at once. It is safe for concurrent use.
type Limited[T any] struct {
	mu    sync.Mutex
	inner Allocator[T]
	limit int
	live  int
	fails int
}

// NewLimited returns an allocator that fails once more than limit elements
// would be outstanding. A nil inner allocator means Heap.
func NewLimited[T any](inner Allocator[T], limit int) *Limited[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Limited[T]{inner: inner, limit: limit}
}

// Allocate obtains a block from the inner allocator if the budget allows it.
func (l *Limited[T]) Allocate(n int) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n < 0 || l.live+n > l.limit {
		l.fails++
		return nil, fmt.Errorf("%w: %d elements requested, %d of %d in use",
			ErrAllocationFailed, n, l.live, l.limit)
	}

	block, err := l.inner.Allocate(n)
	if err != nil {
		l.fails++
		return nil, err
	}
	l.live += len(block)
	return block, nil
}

// Deallocate returns the block to the inner allocator and releases its budget.
func (l *Limited[T]) Deallocate(block []T) {
	if block == nil {
		return
	}
	l.mu.Lock()
	l.live -= len(block)
	l.mu.Unlock()
	l.inner.Deallocate(block)
}

// SetLimit changes the budget. Outstanding blocks are not affected.
func (l *Limited[T]) SetLimit(limit int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = limit
}

// Live returns the number of elements currently outstanding.
func (l *Limited[T]) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

// Failures returns how many requests have been refused.
func (l *Limited[T]) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fails
}
