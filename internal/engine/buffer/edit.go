package buffer

import "fmt"

// Edit replaces the text in Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// NewReplace creates an Edit that replaces [start, end) with text.
func NewReplace(start, end ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: text}
}

func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	case e.NewText == "":
		return "Delete" + e.Range.String()
	default:
		return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
	}
}

// IsNoOp reports whether applying the edit would change nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// EditResult describes an applied edit.
type EditResult struct {
	OldRange Range  // range that was replaced
	NewRange Range  // range now holding the replacement
	OldText  string // text that was replaced
	Delta    int64  // change in buffer length
}

// change describes the applied edit for the undo history. text is the
// normalized replacement that actually went into the buffer.
func (r EditResult) change(text string) Change {
	c := Change{
		Type:     ChangeReplace,
		Range:    r.OldRange,
		NewRange: r.NewRange,
		OldText:  r.OldText,
		NewText:  text,
	}
	switch {
	case r.OldText == "":
		c.Type = ChangeInsert
	case text == "":
		c.Type = ChangeDelete
	}
	return c
}

// ChangeType categorizes a Change.
type ChangeType uint8

const (
	ChangeInsert ChangeType = iota
	ChangeDelete
	ChangeReplace
)

func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change records one applied edit with enough text to reverse it.
type Change struct {
	Type     ChangeType
	Range    Range  // range before the change
	NewRange Range  // range after the change
	OldText  string // removed text
	NewText  string // added text
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	inv := Change{
		Type:     c.Type,
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
		inv.Range = Range{Start: c.Range.Start, End: c.Range.Start}
	}
	return inv
}

// ToEdit converts a Change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}
