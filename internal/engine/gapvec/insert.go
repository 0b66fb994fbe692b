package gapvec

import (
	"fmt"
	"iter"
)

// Insert inserts values at logical position pos in [0, Len] and returns pos,
// which now designates the first inserted element. values must not alias the
// vector's own storage. On failure the vector is unchanged.
func (v *GapVector[T]) Insert(pos int, values ...T) (int, error) {
	if len(values) == 0 {
		v.checkInsertPos(pos)
		return pos, nil
	}
	slot, err := v.allocateFromGap(pos, len(values))
	if err != nil {
		return pos, err
	}
	copy(v.data[slot:slot+len(values)], values)
	return pos, nil
}

// InsertN inserts n copies of value at pos.
func (v *GapVector[T]) InsertN(pos, n int, value T) (int, error) {
	if n <= 0 {
		v.checkInsertPos(pos)
		return pos, nil
	}
	slot, err := v.allocateFromGap(pos, n)
	if err != nil {
		return pos, err
	}
	for i := slot; i < slot+n; i++ {
		v.data[i] = value
	}
	return pos, nil
}

// InsertSeq inserts the values yielded by seq at pos, one at a time, each
// through the gap machinery. If an insertion fails the values inserted so far
// remain and the error is returned.
func (v *GapVector[T]) InsertSeq(pos int, seq iter.Seq[T]) (int, error) {
	v.checkInsertPos(pos)
	next := pos
	for value := range seq {
		if _, err := v.Insert(next, value); err != nil {
			return pos, err
		}
		next++
	}
	return pos, nil
}

// Emplace reserves a slot at pos and lets build initialize the element in
// place.
func (v *GapVector[T]) Emplace(pos int, build func(*T)) (int, error) {
	slot, err := v.allocateFromGap(pos, 1)
	if err != nil {
		return pos, err
	}
	if build != nil {
		build(&v.data[slot])
	}
	return pos, nil
}

// PushBack appends value.
func (v *GapVector[T]) PushBack(value T) error {
	_, err := v.Insert(v.Len(), value)
	return err
}

// EmplaceBack appends an element initialized in place by build.
func (v *GapVector[T]) EmplaceBack(build func(*T)) error {
	_, err := v.Emplace(v.Len(), build)
	return err
}

// Resize grows the vector with zero values or truncates it to n elements.
func (v *GapVector[T]) Resize(n int) error {
	var zero T
	return v.ResizeFill(n, zero)
}

// ResizeFill grows the vector with copies of value or truncates it to n
// elements.
func (v *GapVector[T]) ResizeFill(n int, value T) error {
	size := v.Len()
	switch {
	case n < 0:
		return fmt.Errorf("%w: resize to %d", ErrLengthExceeded, n)
	case n < size:
		v.EraseRange(n, size)
	case n > size:
		_, err := v.InsertN(size, n-size, value)
		return err
	}
	return nil
}

func (v *GapVector[T]) checkInsertPos(pos int) {
	if pos < 0 || pos > v.Len() {
		panic(fmt.Sprintf("gapvec: insert position %d out of range with length %d", pos, v.Len()))
	}
}

// allocateFromGap makes room for count elements at logical position pos and
// returns the first slot of the room. The returned slots are zeroed and
// counted as live; the caller must fill them.
//
// Near the gap with enough room, the elements between pos and the gap slide
// into the gap. Otherwise the block is compacted (growing it if needed) and a
// new gap is opened directly after pos.
func (v *GapVector[T]) allocateFromGap(pos, count int) (int, error) {
	v.checkInsertPos(pos)

	if v.gapActive() && count <= v.gapLen() {
		slot := pos
		if pos > v.gapStart {
			slot = pos + v.gapLen()
		}
		if v.nearGap(slot) {
			switch {
			case pos < v.gapStart:
				v.relocate(pos+count, pos, v.gapStart-pos)
				v.gapStart += count
				v.normalize()
				return pos, nil
			case pos == v.gapStart:
				v.gapStart += count
				v.normalize()
				return pos, nil
			default:
				v.relocate(v.gapEnd-count, v.gapEnd, slot-v.gapEnd)
				v.gapEnd -= count
				v.normalize()
				return slot - count, nil
			}
		}
	}

	if v.room() < count {
		if err := v.grow(count); err != nil {
			return pos, err
		}
	} else {
		v.unsplit()
	}

	gap := min(v.room(), v.settings().GapSize)
	if gap < count {
		gap = count
	}
	v.relocate(pos+gap, pos, v.dataEnd-pos)
	v.dataEnd += gap
	v.gapStart = pos + count
	v.gapEnd = pos + gap
	v.normalize()
	return pos, nil
}

// grow compacts the vector into a block large enough for count more
// elements.
func (v *GapVector[T]) grow(count int) error {
	n, err := growthTarget(v.Cap(), v.Len(), v.settings().GapSize, count, v.MaxSize())
	if err != nil {
		return err
	}
	return v.reallocate(n)
}

// growthTarget returns (capacity + gapSize + count) * 3/2, clamped to limit.
// Every step is checked for overflow; only a request whose final length
// cannot fit under limit is an error.
func growthTarget(capacity, size, gapSize, count, limit int) (int, error) {
	if count > limit-size {
		return 0, fmt.Errorf("%w: %d + %d elements", ErrLengthExceeded, size, count)
	}

	n := capacity
	for _, add := range []int{gapSize, count} {
		if n > limit-add {
			return limit, nil
		}
		n += add
	}
	if n > limit-n/2 {
		return limit, nil
	}
	return n + n/2, nil
}
