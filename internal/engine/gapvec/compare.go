package gapvec

import "cmp"

// Equal reports whether a and b hold the same elements in the same order.
// The gap never participates.
func Equal[T comparable](a, b *GapVector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T, U any](a *GapVector[T], b *GapVector[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if !eq(a.Get(i), b.Get(i)) {
			return false
		}
	}
	return true
}

// Compare compares a and b lexicographically and returns -1, 0 or +1.
// A vector that is a proper prefix of the other is less.
func Compare[T cmp.Ordered](a, b *GapVector[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but compares elements with cmp.
func CompareFunc[T, U any](a *GapVector[T], b *GapVector[U], cmpFn func(T, U) int) int {
	n := min(a.Len(), b.Len())
	for i := range n {
		if c := cmpFn(a.Get(i), b.Get(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}
