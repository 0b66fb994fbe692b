package gapvec

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/alloc"
)

var nopLogger = zap.NewNop()

// GapVector is a random-access sequence backed by a single block with one
// movable gap. The zero value is an empty vector with default tuning that
// allocates from the heap.
type GapVector[T any] struct {
	data []T // backing block; len(data) is the capacity

	gapStart int // first gap slot
	gapEnd   int // first slot past the gap
	dataEnd  int // high-water mark: first slot never constructed into

	cfg   Config
	alloc alloc.Allocator[T]
	log   *zap.Logger
}

// New creates an empty vector.
func New[T any](opts ...Option[T]) *GapVector[T] {
	v := &GapVector[T]{
		cfg:   DefaultConfig(),
		alloc: alloc.Heap[T]{},
		log:   nopLogger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewWithSize creates a vector holding n zero values.
func NewWithSize[T any](n int, opts ...Option[T]) (*GapVector[T], error) {
	var zero T
	return NewFilled(n, zero, opts...)
}

// NewFilled creates a vector holding n copies of value.
func NewFilled[T any](n int, value T, opts ...Option[T]) (*GapVector[T], error) {
	v := New(opts...)
	if err := v.Reserve(n); err != nil {
		return nil, err
	}
	if _, err := v.InsertN(0, n, value); err != nil {
		return nil, err
	}
	return v, nil
}

// FromSlice creates a vector holding a copy of s.
func FromSlice[T any](s []T, opts ...Option[T]) (*GapVector[T], error) {
	v := New(opts...)
	if err := v.Reserve(len(s)); err != nil {
		return nil, err
	}
	copy(v.data, s)
	v.dataEnd = len(s)
	return v, nil
}

// FromSeq creates a vector holding the values yielded by seq, in order.
func FromSeq[T any](seq iter.Seq[T], opts ...Option[T]) (*GapVector[T], error) {
	v := New(opts...)
	if _, err := v.InsertSeq(0, seq); err != nil {
		return nil, err
	}
	return v, nil
}

// Of creates a vector holding values with default options.
// It panics if the heap allocator refuses the block.
func Of[T any](values ...T) *GapVector[T] {
	v, err := FromSlice(values)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *GapVector[T]) settings() Config {
	if v.cfg.GapSize <= 0 {
		return DefaultConfig()
	}
	return v.cfg
}

func (v *GapVector[T]) allocator() alloc.Allocator[T] {
	if v.alloc == nil {
		return alloc.Heap[T]{}
	}
	return v.alloc
}

func (v *GapVector[T]) logger() *zap.Logger {
	if v.log == nil {
		return nopLogger
	}
	return v.log
}

// Config returns the vector's tuning.
func (v *GapVector[T]) Config() Config {
	return v.settings()
}

// Len returns the number of elements.
func (v *GapVector[T]) Len() int {
	return v.dataEnd - v.gapLen()
}

// Cap returns the number of elements the backing block can hold.
func (v *GapVector[T]) Cap() int {
	return len(v.data)
}

// Empty reports whether the vector holds no elements.
func (v *GapVector[T]) Empty() bool {
	return v.Len() == 0
}

// MaxSize returns the largest length the vector could theoretically reach.
func (v *GapVector[T]) MaxSize() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	return math.MaxInt / size
}

// At returns the element at index i, or ErrOutOfRange if i is not in [0, Len).
func (v *GapVector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.Len())
	}
	return v.data[v.physical(i)], nil
}

// Get returns the element at index i. i must be in [0, Len).
func (v *GapVector[T]) Get(i int) T {
	return v.data[v.physical(i)]
}

// Set replaces the element at index i. i must be in [0, Len).
func (v *GapVector[T]) Set(i int, value T) {
	v.data[v.physical(i)] = value
}

// Ref returns a pointer to the element at index i. The pointer is
// invalidated by the next mutating call.
func (v *GapVector[T]) Ref(i int) *T {
	return &v.data[v.physical(i)]
}

// Front returns the first element. The vector must not be empty.
func (v *GapVector[T]) Front() T {
	return v.Get(0)
}

// Back returns the last element. The vector must not be empty.
func (v *GapVector[T]) Back() T {
	return v.Get(v.Len() - 1)
}

// Data compacts the vector and returns its elements as one contiguous slice
// aliasing the backing block.
//
// Data looks like a read accessor but closes the gap as a side effect; the
// logical sequence is unchanged. The slice is invalidated by the next
// mutating call.
func (v *GapVector[T]) Data() []T {
	v.unsplit()
	return v.data[:v.dataEnd:v.dataEnd]
}

// Segments returns the elements before and after the gap without compacting.
// Concatenated they form the logical sequence. Both slices alias the backing
// block and are invalidated by the next mutating call.
func (v *GapVector[T]) Segments() (before, after []T) {
	return v.data[:v.gapStart:v.gapStart], v.data[v.gapEnd:v.dataEnd:v.dataEnd]
}

// AppendRange appends the elements in [start, end) to dst and returns the
// extended slice.
func (v *GapVector[T]) AppendRange(dst []T, start, end int) []T {
	if start < 0 || end > v.Len() || start > end {
		panic(fmt.Sprintf("gapvec: range [%d:%d] out of bounds with length %d", start, end, v.Len()))
	}
	before, after := v.Segments()
	if start < len(before) {
		dst = append(dst, before[start:min(end, len(before))]...)
	}
	if end > len(before) {
		dst = append(dst, after[max(start, len(before))-len(before):end-len(before)]...)
	}
	return dst
}

// Slice returns a copy of the elements as a new slice.
func (v *GapVector[T]) Slice() []T {
	return v.AppendRange(make([]T, 0, v.Len()), 0, v.Len())
}

// String formats the logical sequence like a slice.
func (v *GapVector[T]) String() string {
	return fmt.Sprint(v.Slice())
}

// Reserve ensures the vector can hold at least n elements. It compacts and
// reallocates only if n exceeds the current capacity. On failure the vector
// is unchanged.
func (v *GapVector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	if n > v.MaxSize() {
		return fmt.Errorf("%w: reserve %d", ErrLengthExceeded, n)
	}
	return v.reallocate(n)
}

// ShrinkToFit reallocates the vector to exactly Len elements. On failure the
// vector is unchanged.
func (v *GapVector[T]) ShrinkToFit() error {
	if v.Len() == v.Cap() {
		return nil
	}
	if v.Empty() {
		v.Release()
		return nil
	}
	c, err := v.Clone()
	if err != nil {
		return err
	}
	v.Swap(c)
	c.Release()
	return nil
}

// Clone returns a deep copy with the same tuning and allocator. The copy is
// contiguous and its capacity equals its length.
func (v *GapVector[T]) Clone() (*GapVector[T], error) {
	c := &GapVector[T]{cfg: v.cfg, alloc: v.alloc, log: v.log}
	n := v.Len()
	if n == 0 {
		return c, nil
	}
	block, err := c.allocator().Allocate(n)
	if err != nil {
		return nil, fmt.Errorf("gapvec: clone %d elements: %w", n, err)
	}
	before, after := v.Segments()
	copy(block[copy(block, before):], after)
	c.data = block
	c.dataEnd = n
	return c, nil
}

// Move transfers the contents to a new vector and leaves v empty with its
// tuning and allocator intact.
func (v *GapVector[T]) Move() *GapVector[T] {
	m := new(GapVector[T])
	*m = *v
	*v = GapVector[T]{cfg: m.cfg, alloc: m.alloc, log: m.log}
	return m
}

// Swap exchanges the contents, tuning and allocator of v and o.
func (v *GapVector[T]) Swap(o *GapVector[T]) {
	*v, *o = *o, *v
}

// Clear removes all elements. The capacity is kept.
func (v *GapVector[T]) Clear() {
	clear(v.data[:v.dataEnd])
	v.gapStart, v.gapEnd, v.dataEnd = 0, 0, 0
}

// Release removes all elements and returns the backing block to the
// allocator.
func (v *GapVector[T]) Release() {
	if v.data != nil {
		v.Clear()
		v.allocator().Deallocate(v.data)
	}
	v.data = nil
	v.gapStart, v.gapEnd, v.dataEnd = 0, 0, 0
}

// AssignN replaces the contents with n copies of value.
func (v *GapVector[T]) AssignN(n int, value T) error {
	v.Clear()
	_, err := v.InsertN(0, n, value)
	return err
}

// AssignSlice replaces the contents with a copy of s.
// s must not alias the vector's own storage.
func (v *GapVector[T]) AssignSlice(s []T) error {
	v.Clear()
	_, err := v.Insert(0, s...)
	return err
}

// AssignSeq replaces the contents with the values yielded by seq.
func (v *GapVector[T]) AssignSeq(seq iter.Seq[T]) error {
	v.Clear()
	_, err := v.InsertSeq(0, seq)
	return err
}

// reallocate moves the elements into a new contiguous block of n slots.
// Nothing is modified unless the allocation succeeds.
func (v *GapVector[T]) reallocate(n int) error {
	block, err := v.allocator().Allocate(n)
	if err != nil {
		v.logger().Debug("gapvec allocation failed",
			zap.Int("requested", n),
			zap.Int("capacity", v.Cap()),
			zap.Error(err))
		return fmt.Errorf("gapvec: grow to %d elements: %w", n, err)
	}

	size := v.Len()
	before, after := v.Segments()
	copy(block[copy(block, before):], after)

	old := v.data
	v.data = block
	v.gapStart, v.gapEnd, v.dataEnd = 0, 0, size
	if old != nil {
		v.allocator().Deallocate(old)
	}

	v.logger().Debug("gapvec reallocated",
		zap.Int("old_capacity", len(old)),
		zap.Int("new_capacity", n),
		zap.Int("size", size))
	return nil
}
