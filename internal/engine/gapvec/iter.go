package gapvec

import "iter"

// Iterator designates a position in a GapVector's logical sequence. It holds
// a physical slot and skips the gap transparently when moved, so it behaves
// like a random-access iterator over the logical sequence.
//
// An Iterator is invalidated by any mutating call on its vector.
type Iterator[T any] struct {
	v    *GapVector[T]
	slot int
}

// Begin returns an iterator at the first element.
func (v *GapVector[T]) Begin() Iterator[T] {
	return Iterator[T]{v: v, slot: v.physical(0)}
}

// End returns an iterator one past the last element.
func (v *GapVector[T]) End() Iterator[T] {
	return Iterator[T]{v: v, slot: v.dataEnd}
}

// IteratorAt returns an iterator at logical position i in [0, Len].
func (v *GapVector[T]) IteratorAt(i int) Iterator[T] {
	return Iterator[T]{v: v, slot: v.physical(i)}
}

// Value returns the element at the iterator.
func (it Iterator[T]) Value() T {
	return it.v.data[it.slot]
}

// Ptr returns a pointer to the element at the iterator.
func (it Iterator[T]) Ptr() *T {
	return &it.v.data[it.slot]
}

// Set replaces the element at the iterator.
func (it Iterator[T]) Set(value T) {
	it.v.data[it.slot] = value
}

// Index returns the iterator's logical position.
func (it Iterator[T]) Index() int {
	return it.v.logical(it.slot)
}

// Next returns an iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] {
	return it.Add(1)
}

// Prev returns an iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] {
	return it.Add(-1)
}

// Add returns an iterator n positions forward (backward if n is negative).
func (it Iterator[T]) Add(n int) Iterator[T] {
	return Iterator[T]{v: it.v, slot: it.v.step(it.slot, n)}
}

// Sub returns an iterator n positions back.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	return it.Add(-n)
}

// Distance returns the number of positions from o to it. Both iterators
// must belong to the same vector.
func (it Iterator[T]) Distance(o Iterator[T]) int {
	return it.v.distance(it.slot, o.slot)
}

// Equal reports whether both iterators designate the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.v == o.v && it.slot == o.slot
}

// Less reports whether it designates an earlier position than o. Iterators
// of different vectors are unordered.
func (it Iterator[T]) Less(o Iterator[T]) bool {
	return it.v == o.v && it.slot < o.slot
}

// ReverseIterator walks a GapVector from back to front. Like its standard
// library counterpart it wraps a base iterator one position past the element
// it designates, and supports the same random-access moves.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// RBegin returns a reverse iterator at the last element.
func (v *GapVector[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: v.End()}
}

// REnd returns a reverse iterator one before the first element.
func (v *GapVector[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: v.Begin()}
}

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.base
}

// Value returns the element at the iterator.
func (r ReverseIterator[T]) Value() T {
	return r.base.Prev().Value()
}

// Index returns the logical position of the designated element.
func (r ReverseIterator[T]) Index() int {
	return r.base.Index() - 1
}

// Next moves toward the front.
func (r ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{base: r.base.Prev()}
}

// Prev moves toward the back.
func (r ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{base: r.base.Next()}
}

// Add returns an iterator n positions further toward the front of the vector.
func (r ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	return ReverseIterator[T]{base: r.base.Sub(n)}
}

// Sub returns an iterator n positions back toward the end of the vector.
func (r ReverseIterator[T]) Sub(n int) ReverseIterator[T] {
	return ReverseIterator[T]{base: r.base.Add(n)}
}

// Distance returns the number of reverse steps from o to r.
func (r ReverseIterator[T]) Distance(o ReverseIterator[T]) int {
	return o.base.Distance(r.base)
}

// Less reports whether r comes before o in reverse order.
func (r ReverseIterator[T]) Less(o ReverseIterator[T]) bool {
	return o.base.Less(r.base)
}

// Equal reports whether both iterators designate the same position.
func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}

// All returns an iterator over index/value pairs in logical order.
func (v *GapVector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		before, after := v.Segments()
		for i, x := range before {
			if !yield(i, x) {
				return
			}
		}
		for i, x := range after {
			if !yield(len(before)+i, x) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in logical order.
func (v *GapVector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.All() {
			if !yield(x) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/value pairs from back to front.
func (v *GapVector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		before, after := v.Segments()
		for i := len(after) - 1; i >= 0; i-- {
			if !yield(len(before)+i, after[i]) {
				return
			}
		}
		for i := len(before) - 1; i >= 0; i-- {
			if !yield(i, before[i]) {
				return
			}
		}
	}
}
