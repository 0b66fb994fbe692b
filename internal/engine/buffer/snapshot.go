package buffer

import "iter"

// Snapshot is a read-only copy of a buffer at one revision. It owns its own
// gap vector, so later edits to the buffer never show through, and it is
// safe for concurrent reads.
type Snapshot struct {
	doc        document
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.doc.String()
}

// TextRange returns text in the given byte range, clamped to the snapshot.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	return s.doc.textRange(start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.doc.len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return s.doc.lines.count()
}

// LineText returns the text of a specific line (without newline).
func (s *Snapshot) LineText(line uint32) string {
	return s.doc.lineText(line)
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, bool) {
	return s.doc.byteAt(offset)
}

// RuneAt returns the rune at the given byte offset.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	return s.doc.runeAt(offset)
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	return s.doc.offsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset.
func (s *Snapshot) PointToOffset(point Point) ByteOffset {
	return s.doc.pointToOffset(point)
}

// OffsetToPointUTF16 converts a byte offset to UTF-16 line/column.
func (s *Snapshot) OffsetToPointUTF16(offset ByteOffset) PointUTF16 {
	return s.doc.offsetToPointUTF16(offset)
}

// PointUTF16ToOffset converts UTF-16 line/column to byte offset.
func (s *Snapshot) PointUTF16ToOffset(point PointUTF16) ByteOffset {
	return s.doc.pointUTF16ToOffset(point)
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty reports whether the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return s.doc.len() == 0
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// Lines returns an iterator over line numbers and line text.
func (s *Snapshot) Lines() iter.Seq2[uint32, string] {
	return func(yield func(uint32, string) bool) {
		for line := range s.doc.lines.count() {
			if !yield(line, s.doc.lineText(line)) {
				return
			}
		}
	}
}

// Bytes returns an iterator over the snapshot's bytes.
func (s *Snapshot) Bytes() iter.Seq[byte] {
	return s.doc.text.Values()
}
