package buffer

import (
	"bytes"
	"slices"
)

// lineIndex records the byte offset at which every line starts. The first
// entry is always 0; each further entry sits one past a '\n'. It is updated
// incrementally by each edit rather than rebuilt.
type lineIndex struct {
	starts []ByteOffset
}

func newLineIndex(text []byte) lineIndex {
	idx := lineIndex{starts: []ByteOffset{0}}
	idx.starts = appendLineStarts(idx.starts, 0, text)
	return idx
}

// appendLineStarts appends base+i+1 for every '\n' at text[i].
func appendLineStarts(dst []ByteOffset, base ByteOffset, text []byte) []ByteOffset {
	for off := 0; ; {
		i := bytes.IndexByte(text[off:], '\n')
		if i < 0 {
			return dst
		}
		off += i + 1
		dst = append(dst, base+ByteOffset(off))
	}
}

func (idx *lineIndex) clone() lineIndex {
	return lineIndex{starts: slices.Clone(idx.starts)}
}

func (idx *lineIndex) count() uint32 {
	return uint32(len(idx.starts))
}

// after returns the index of the first line starting strictly after offset.
func (idx *lineIndex) after(offset ByteOffset) int {
	i, _ := slices.BinarySearch(idx.starts, offset+1)
	return i
}

// lineOf returns the line containing offset.
func (idx *lineIndex) lineOf(offset ByteOffset) uint32 {
	return uint32(idx.after(offset) - 1)
}

// inserted accounts for text inserted at offset.
func (idx *lineIndex) inserted(offset ByteOffset, text []byte) {
	at := idx.after(offset)
	n := ByteOffset(len(text))
	for i := at; i < len(idx.starts); i++ {
		idx.starts[i] += n
	}
	added := appendLineStarts(nil, offset, text)
	idx.starts = slices.Insert(idx.starts, at, added...)
}

// deleted accounts for the removal of [start, end).
func (idx *lineIndex) deleted(start, end ByteOffset) {
	lo := idx.after(start)
	hi := idx.after(end)
	idx.starts = slices.Delete(idx.starts, lo, hi)
	n := end - start
	for i := lo; i < len(idx.starts); i++ {
		idx.starts[i] -= n
	}
}
