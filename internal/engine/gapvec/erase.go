package gapvec

import "fmt"

// Erase removes the element at index i and returns i, which now designates
// the element that followed it (or Len if it was the last).
func (v *GapVector[T]) Erase(i int) int {
	return v.EraseRange(i, i+1)
}

// EraseRange removes the elements in [first, last) and returns first.
//
// A range near the gap is absorbed into it: only the elements between the
// range and the gap move. Any other range is closed by compacting the block
// and shifting the tail left.
func (v *GapVector[T]) EraseRange(first, last int) int {
	if first < 0 || last > v.Len() || first > last {
		panic(fmt.Sprintf("gapvec: erase range [%d:%d] out of range with length %d", first, last, v.Len()))
	}
	n := last - first
	if n == 0 {
		return first
	}

	if v.gapActive() {
		firstSlot := v.physical(first)
		lastSlot := last
		if last > v.gapStart {
			lastSlot = last + v.gapLen()
		}
		if v.nearGap(firstSlot) || v.nearGap(lastSlot) {
			switch {
			case last <= v.gapStart:
				v.destroy(first, last)
				v.relocate(first, last, v.gapStart-last)
				v.gapStart -= n
			case first >= v.gapStart:
				v.destroy(firstSlot, lastSlot)
				v.relocate(v.gapEnd+n, v.gapEnd, firstSlot-v.gapEnd)
				v.gapEnd += n
			default:
				v.destroy(first, v.gapStart)
				v.destroy(v.gapEnd, lastSlot)
				v.gapStart = first
				v.gapEnd = lastSlot
			}
			v.normalize()
			return first
		}
	}

	v.unsplit()
	v.destroy(first, last)
	v.relocate(first, last, v.dataEnd-last)
	v.dataEnd -= n
	v.normalize()
	return first
}

// PopBack removes the last element. The vector must not be empty.
func (v *GapVector[T]) PopBack() {
	v.Erase(v.Len() - 1)
}
