// Package gapvec provides GapVector, a random-access sequence that keeps one
// movable gap of reserved capacity inside its backing block.
//
// A GapVector behaves like a slice that knows how to insert and erase: the
// observable sequence, indexing and iteration are exactly those of a dynamic
// array. The difference is cost. Edits clustered around one position are
// served by growing or shrinking the gap, which only moves the elements
// between the edit and the gap. Edits far from the gap fall back to
// array-like behavior: the block is compacted and a fresh gap is opened at
// the edit point.
//
// # Storage Layout
//
// The backing block is split, left to right, into four regions:
//
//	[0, gapStart)          prefix: live elements
//	[gapStart, gapEnd)     gap: reserved, always zero
//	[gapEnd, dataEnd)      suffix: live elements
//	[dataEnd, capacity)    reserve: never written, always zero
//
// The logical sequence is the prefix followed by the suffix. Logical index i
// lives at physical slot i when i < gapStart and at i + (gapEnd-gapStart)
// otherwise.
//
// # Insertion Policy
//
// An insertion whose position lies within GapSize*NearnessFactor slots of
// either gap edge, and which fits in the current gap, is served in place:
// the elements between the position and the gap slide into the gap. Any
// other insertion compacts the block (growing it if needed) and opens a new
// gap of up to GapSize slots directly after the insertion point. Erasure
// mirrors this: near the gap the erased slots are absorbed into the gap,
// elsewhere the block is compacted and the hole closed by a shift.
//
// Growth reallocates to (capacity + GapSize + count) * 3/2 elements with
// explicit overflow checks.
//
// # Basic Usage
//
//	v := gapvec.New[int]()
//	for i := 1; i <= 1000; i++ {
//	    _ = v.PushBack(i)
//	}
//	_, _ = v.Insert(v.Len()/2, 1, 2, 3, 4)
//	v.Erase(0)
//
//	for i, x := range v.All() {
//	    fmt.Println(i, x)
//	}
//
// # Invalidation
//
// Any mutating call (insert, erase, reserve, shrink, Data) may move elements
// physically, even when no reallocation happens. Iterators, pointers from Ref
// and slices from Data or Segments obtained before the call are invalid
// afterwards. The index returned by an insert or erase designates the first
// inserted element or the element now at the erasure point.
//
// # Failure Semantics
//
// Operations that may grow the block return an error wrapping
// alloc.ErrAllocationFailed when the allocator refuses; the vector is then
// exactly as it was before the call. At reports ErrOutOfRange for a bad
// index. Get, Set, Ref, Front, Back and positions passed to Insert or Erase
// are not range checked beyond what Go's own slice indexing does.
//
// # Thread Safety
//
// A GapVector is not safe for concurrent use. Even read accessors such as
// Data may compact the block. Callers sharing a vector must serialize every
// call and every iterator's lifetime themselves.
package gapvec
