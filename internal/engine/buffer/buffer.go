package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/alloc"
	"github.com/jopadan/neolib/internal/engine/gapvec"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	return fmt.Sprintf("%q", le.Sequence())
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// normalize converts every line ending in s to le.
func (le LineEnding) normalize(s string) string {
	if !strings.ContainsRune(s, '\r') && le == LineEndingLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if le == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", le.Sequence())
}

// Buffer is an editable text buffer stored in a gap vector of bytes, so
// edits clustered around one location move only the bytes between the edit
// and the gap. All methods are safe for concurrent use.
type Buffer struct {
	mu  sync.RWMutex
	doc document

	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	history    history

	gapConfig gapvec.Config
	allocator alloc.Allocator[byte]
	log       *zap.Logger
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
		history:    newHistory(DefaultUndoLimit),
		gapConfig:  gapvec.DefaultConfig(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	vecOpts := []gapvec.Option[byte]{
		gapvec.WithConfig[byte](b.gapConfig),
		gapvec.WithLogger[byte](b.log),
	}
	if b.allocator != nil {
		vecOpts = append(vecOpts, gapvec.WithAllocator(b.allocator))
	}
	b.doc = document{
		text:  gapvec.New(vecOpts...),
		lines: newLineIndex(nil),
	}
	return b
}

// NewBufferFromString creates a buffer with initial content. The content is
// not recorded in the undo history.
func NewBufferFromString(s string, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	if err := b.doc.insert(0, []byte(b.lineEnding.normalize(s))); err != nil {
		return nil, fmt.Errorf("load %d bytes: %w", len(s), err)
	}
	return b, nil
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first so CRLF pairs split across reads normalize
	// correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...)
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.String()
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.textRange(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.len()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.lines.count()
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.lineText(line)
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int(b.doc.lineEnd(line) - b.doc.lineStart(line))
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.byteAt(offset)
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.runeAt(offset)
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.offsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset. Columns past the end of
// the line clamp to the line end.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.pointToOffset(point)
}

// OffsetToPointUTF16 converts a byte offset to UTF-16 line/column.
func (b *Buffer) OffsetToPointUTF16(offset ByteOffset) PointUTF16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.offsetToPointUTF16(offset)
}

// PointUTF16ToOffset converts UTF-16 line/column to byte offset.
func (b *Buffer) PointUTF16ToOffset(point PointUTF16) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.pointUTF16ToOffset(point)
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.lineStart(line)
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.lineEnd(line)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.doc.len() {
		return 0, ErrOffsetOutOfRange
	}
	res, err := b.applyLocked(Edit{Range: Range{Start: offset, End: offset}, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.applyLocked(Edit{Range: Range{Start: start, End: end}})
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.applyLocked(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applyLocked(edit)
}

func (b *Buffer) applyLocked(edit Edit) (EditResult, error) {
	if !b.validRange(edit.Range) {
		return EditResult{}, ErrRangeInvalid
	}
	text := b.lineEnding.normalize(edit.NewText)
	if edit.Range.IsEmpty() && text == "" {
		return EditResult{OldRange: edit.Range, NewRange: edit.Range}, nil
	}

	oldText := b.doc.textRange(edit.Range.Start, edit.Range.End)
	if err := b.doc.replace(edit.Range.Start, edit.Range.End, []byte(text)); err != nil {
		return EditResult{}, err
	}
	b.revisionID = NewRevisionID()

	res := EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + ByteOffset(len(text))},
		OldText:  oldText,
		Delta:    int64(len(text)) - edit.Range.Len(),
	}
	b.history.record([]Change{res.change(text)})
	return res, nil
}

// ApplyEdits applies multiple edits atomically as one undo step.
// Edits must be in reverse order (highest offset first) to maintain validity.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	texts := make([]string, len(edits))
	grow := 0
	for i, edit := range edits {
		if !b.validRange(edit.Range) {
			return ErrRangeInvalid
		}
		texts[i] = b.lineEnding.normalize(edit.NewText)
		grow += len(texts[i])
	}
	// With room for every insertion reserved, no step below can fail.
	if err := b.doc.text.Reserve(b.doc.text.Len() + grow); err != nil {
		return err
	}

	changes := make([]Change, 0, len(edits))
	for i, edit := range edits {
		oldText := b.doc.textRange(edit.Range.Start, edit.Range.End)
		if err := b.doc.replace(edit.Range.Start, edit.Range.End, []byte(texts[i])); err != nil {
			return err
		}
		res := EditResult{
			OldRange: edit.Range,
			NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + ByteOffset(len(texts[i]))},
			OldText:  oldText,
		}
		changes = append(changes, res.change(texts[i]))
	}

	b.revisionID = NewRevisionID()
	b.history.record(changes)
	return nil
}

func (b *Buffer) validRange(r Range) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= b.doc.len()
}

// Undo reverts the most recent edit step. It returns ErrNothingToUndo when
// the history is empty.
func (b *Buffer) Undo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	changes, err := b.history.popUndo()
	if err != nil {
		return err
	}
	if err := b.reserveFor(changes, Change.Invert); err != nil {
		b.history.pushUndo(changes)
		return err
	}
	// Changes were applied in order, so revert them back to front.
	for i := len(changes) - 1; i >= 0; i-- {
		if err := b.applyChange(changes[i].Invert()); err != nil {
			return err
		}
	}
	b.history.pushRedo(changes)
	b.revisionID = NewRevisionID()
	return nil
}

// Redo reapplies the most recently undone edit step. It returns
// ErrNothingToRedo when there is nothing to redo.
func (b *Buffer) Redo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	changes, err := b.history.popRedo()
	if err != nil {
		return err
	}
	if err := b.reserveFor(changes, func(c Change) Change { return c }); err != nil {
		b.history.pushRedo(changes)
		return err
	}
	for _, c := range changes {
		if err := b.applyChange(c); err != nil {
			return err
		}
	}
	b.history.pushUndo(changes)
	b.revisionID = NewRevisionID()
	return nil
}

// reserveFor makes room for every insertion the changes will perform, as
// mapped by fn, so applying them cannot fail halfway.
func (b *Buffer) reserveFor(changes []Change, fn func(Change) Change) error {
	grow := 0
	for _, c := range changes {
		grow += len(fn(c).NewText)
	}
	return b.doc.text.Reserve(b.doc.text.Len() + grow)
}

func (b *Buffer) applyChange(c Change) error {
	return b.doc.replace(c.Range.Start, c.Range.End, []byte(c.NewText))
}

// CanUndo reports whether Undo has anything to revert.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.undo) > 0
}

// CanRedo reports whether Redo has anything to reapply.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.redo) > 0
}

// ClearHistory drops all undo and redo steps.
func (b *Buffer) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.clear()
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.len() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style.
// This does not convert existing line endings.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabWidth = width
}

// Compact closes the gap and trims spare capacity.
func (b *Buffer) Compact() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.text.ShrinkToFit()
}

// Capacity returns the number of bytes the backing block can hold.
func (b *Buffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc.text.Cap()
}

// Snapshot returns a read-only copy of the current buffer state. The copy
// is independent of later edits and safe to read from other goroutines.
func (b *Buffer) Snapshot() (*Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	doc, err := b.doc.clone()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &Snapshot{
		doc:        doc,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}, nil
}
