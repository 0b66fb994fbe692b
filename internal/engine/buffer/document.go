package buffer

import (
	"unicode/utf8"

	"github.com/jopadan/neolib/internal/engine/gapvec"
)

// document is the unsynchronized text state shared by Buffer and Snapshot:
// the bytes in a gap vector plus the line index kept in step with them.
type document struct {
	text  *gapvec.GapVector[byte]
	lines lineIndex
}

func (d *document) len() ByteOffset {
	return ByteOffset(d.text.Len())
}

func (d *document) clamp(offset ByteOffset) ByteOffset {
	return min(max(offset, 0), d.len())
}

func (d *document) bytes(start, end ByteOffset) []byte {
	start, end = d.clamp(start), d.clamp(end)
	if start >= end {
		return nil
	}
	return d.text.AppendRange(make([]byte, 0, end-start), int(start), int(end))
}

func (d *document) String() string {
	return string(d.bytes(0, d.len()))
}

func (d *document) textRange(start, end ByteOffset) string {
	return string(d.bytes(start, end))
}

func (d *document) byteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= d.len() {
		return 0, false
	}
	return d.text.Get(int(offset)), true
}

func (d *document) runeAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= d.len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(d.bytes(offset, offset+utf8.UTFMax))
}

func (d *document) lineStart(line uint32) ByteOffset {
	if line >= d.lines.count() {
		return d.len()
	}
	return d.lines.starts[line]
}

// lineEnd returns the offset of the '\n' ending line, or the end of the text
// for the last line.
func (d *document) lineEnd(line uint32) ByteOffset {
	if line+1 >= d.lines.count() {
		return d.len()
	}
	return d.lines.starts[line+1] - 1
}

func (d *document) lineText(line uint32) string {
	return d.textRange(d.lineStart(line), d.lineEnd(line))
}

func (d *document) offsetToPoint(offset ByteOffset) Point {
	offset = d.clamp(offset)
	line := d.lines.lineOf(offset)
	return Point{Line: line, Column: uint32(offset - d.lines.starts[line])}
}

func (d *document) pointToOffset(p Point) ByteOffset {
	start, end := d.lineStart(p.Line), d.lineEnd(p.Line)
	if ByteOffset(p.Column) >= end-start {
		return end
	}
	return start + ByteOffset(p.Column)
}

func (d *document) offsetToPointUTF16(offset ByteOffset) PointUTF16 {
	p := d.offsetToPoint(offset)
	start := d.lines.starts[p.Line]
	col := utf16Column(d.bytes(start, start+ByteOffset(p.Column)))
	return PointUTF16{Line: p.Line, Column: col}
}

func (d *document) pointUTF16ToOffset(p PointUTF16) ByteOffset {
	start := d.lineStart(p.Line)
	line := d.bytes(start, d.lineEnd(p.Line))
	return start + ByteOffset(byteOffsetFromUTF16Column(line, p.Column))
}

// insert and remove leave the document unchanged on error.

func (d *document) insert(offset ByteOffset, text []byte) error {
	if len(text) == 0 {
		return nil
	}
	if _, err := d.text.Insert(int(offset), text...); err != nil {
		return err
	}
	d.lines.inserted(offset, text)
	return nil
}

func (d *document) remove(start, end ByteOffset) {
	if start == end {
		return
	}
	d.text.EraseRange(int(start), int(end))
	d.lines.deleted(start, end)
}

// replace reserves the final length up front so the insertion cannot fail
// once the range is gone.
func (d *document) replace(start, end ByteOffset, text []byte) error {
	if err := d.text.Reserve(int(d.len()-(end-start)) + len(text)); err != nil {
		return err
	}
	d.remove(start, end)
	return d.insert(start, text)
}

func (d *document) clone() (document, error) {
	text, err := d.text.Clone()
	if err != nil {
		return document{}, err
	}
	return document{text: text, lines: d.lines.clone()}, nil
}

// utf16Column counts the UTF-16 code units needed to encode s.
func utf16Column(s []byte) uint32 {
	var col uint32
	for len(s) > 0 {
		r, size := utf8.DecodeRune(s)
		s = s[size:]
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// byteOffsetFromUTF16Column converts a UTF-16 column to a byte offset within
// line, stopping at the end of the line.
func byteOffsetFromUTF16Column(line []byte, utf16Col uint32) int {
	var col uint32
	var off int
	for off < len(line) && col < utf16Col {
		r, size := utf8.DecodeRune(line[off:])
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		off += size
	}
	return off
}
