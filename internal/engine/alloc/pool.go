package alloc

import (
	"math/bits"
	"sync"
)

// maxPooledClass bounds the size classes kept by a Pool. Blocks larger than
// 1<<maxPooledClass elements are left to the garbage collector.
const maxPooledClass = 24

// Pool recycles released blocks to reduce GC pressure when containers grow
// and shrink repeatedly. Blocks are grouped into power-of-two size classes,
// each backed by its own sync.Pool, so it is safe for concurrent use.
//
// A block returned by Allocate has the requested length but may carry spare
// capacity up to its size class; Deallocate relies on that capacity to find
// the class again.
type Pool[T any] struct {
	classes [maxPooledClass + 1]sync.Pool
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// sizeClass returns the smallest class whose blocks hold n elements.
func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Allocate returns a zeroed block of n elements, reusing a released block of
// the same size class when one is available.
func (p *Pool[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrAllocationFailed
	}
	if n == 0 {
		return nil, nil
	}

	class := sizeClass(n)
	if class > maxPooledClass {
		return make([]T, n), nil
	}

	if v := p.classes[class].Get(); v != nil {
		block := *(v.(*[]T))
		return block[:n], nil
	}
	return make([]T, n, 1<<class), nil
}

// Deallocate clears the block and keeps it for reuse.
// The block should not be used after calling this method.
func (p *Pool[T]) Deallocate(block []T) {
	c := cap(block)
	if c == 0 {
		return
	}
	class := sizeClass(c)
	if class > maxPooledClass || 1<<class != c {
		// Not one of ours (or too big to keep).
		return
	}

	// Clear references so pooled blocks do not pin garbage.
	block = block[:c]
	clear(block)
	p.classes[class].Put(&block)
}
