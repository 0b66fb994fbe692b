package buffer

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// ByteOffset is a byte position in the buffer.
type ByteOffset = int64

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1, 0 or +1 ordering p against other by line, then column.
func (p Point) Compare(other Point) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before reports whether p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// PointUTF16 is a line and column where the column counts UTF-16 code
// units, as used by LSP clients.
type PointUTF16 struct {
	Line   uint32
	Column uint32
}

func (p PointUTF16) String() string {
	return fmt.Sprintf("(%d:%d utf16)", p.Line, p.Column)
}

// RevisionID identifies a buffer revision. Every modification produces a new
// one.
type RevisionID uint64

var revisionCounter atomic.Uint64

// NewRevisionID returns a process-wide unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
