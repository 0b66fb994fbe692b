package gapvec

import "fmt"

// gapLen returns the number of slots in the gap.
func (v *GapVector[T]) gapLen() int {
	return v.gapEnd - v.gapStart
}

// gapActive reports whether the gap holds any slots.
func (v *GapVector[T]) gapActive() bool {
	return v.gapStart != v.gapEnd
}

// physical maps a logical index to its slot in the backing block. Index Len
// maps to the high-water mark.
func (v *GapVector[T]) physical(i int) int {
	if i < v.gapStart {
		return i
	}
	return i + v.gapLen()
}

// logical maps a slot outside the gap back to its logical position.
func (v *GapVector[T]) logical(slot int) int {
	if slot < v.gapEnd {
		return slot
	}
	return slot - v.gapLen()
}

// step moves a slot by n logical positions, skipping the gap when the move
// lands in it or crosses it. Shared by iterator advance, retreat and
// distance.
func (v *GapVector[T]) step(slot, n int) int {
	next := slot + n
	if !v.gapActive() {
		return next
	}
	switch {
	case n > 0 && slot < v.gapStart && next >= v.gapStart:
		next += v.gapLen()
	case n < 0 && slot >= v.gapEnd && next < v.gapEnd:
		next -= v.gapLen()
	}
	return next
}

// distance returns the number of logical positions from slot b to slot a.
func (v *GapVector[T]) distance(a, b int) int {
	d := a - b
	if !v.gapActive() {
		return d
	}
	switch {
	case b < v.gapStart && a >= v.gapEnd:
		d -= v.gapLen()
	case a < v.gapStart && b >= v.gapEnd:
		d += v.gapLen()
	}
	return d
}

// nearGap reports whether slot is within the near-gap threshold of either
// gap edge. Always false when the gap is inactive.
func (v *GapVector[T]) nearGap(slot int) bool {
	if !v.gapActive() {
		return false
	}
	th := v.settings().Threshold()
	return abs(slot-v.gapStart) <= th || abs(slot-v.gapEnd) <= th
}

// room returns the number of elements that fit without reallocating.
func (v *GapVector[T]) room() int {
	return v.Cap() - v.Len()
}

// relocate moves n elements from slot src to slot dst, leaving every vacated
// source slot zeroed. The ranges may overlap. All element movement inside
// the block goes through here.
func (v *GapVector[T]) relocate(dst, src, n int) {
	if n <= 0 || dst == src {
		return
	}
	copy(v.data[dst:dst+n], v.data[src:src+n])
	if dst < src {
		clear(v.data[max(src, dst+n) : src+n])
	} else {
		clear(v.data[src:min(src+n, dst)])
	}
}

// destroy zeroes the slots in [from, to) so they no longer reference
// anything.
func (v *GapVector[T]) destroy(from, to int) {
	clear(v.data[from:to])
}

// unsplit closes the gap by sliding the suffix left to abut the prefix.
// The logical sequence is unchanged.
func (v *GapVector[T]) unsplit() {
	if !v.gapActive() {
		v.gapStart, v.gapEnd = 0, 0
		return
	}
	gap := v.gapLen()
	v.relocate(v.gapStart, v.gapEnd, v.dataEnd-v.gapEnd)
	v.dataEnd -= gap
	v.gapStart, v.gapEnd = 0, 0
}

// normalize resets the cursors once the gap is inactive or the vector is
// empty so that an empty vector is always fully contiguous.
func (v *GapVector[T]) normalize() {
	switch {
	case v.Len() == 0:
		v.gapStart, v.gapEnd, v.dataEnd = 0, 0, 0
	case !v.gapActive():
		v.gapStart, v.gapEnd = 0, 0
	}
}

// checkInvariants verifies the cursor ordering.
func (v *GapVector[T]) checkInvariants() error {
	if !(0 <= v.gapStart && v.gapStart <= v.gapEnd && v.gapEnd <= v.dataEnd && v.dataEnd <= len(v.data)) {
		return fmt.Errorf("gapvec: cursor order violated: gapStart=%d gapEnd=%d dataEnd=%d cap=%d",
			v.gapStart, v.gapEnd, v.dataEnd, len(v.data))
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
