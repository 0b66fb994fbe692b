package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/jopadan/neolib/internal/engine/buffer"
)

// bufModule builds the buf table. Offsets are 0-based bytes; lines are
// 1-based.
func (r *Runner) bufModule() *lua.LTable {
	return r.module(map[string]lua.LGFunction{
		"text":       r.bufText,
		"insert":     r.bufInsert,
		"delete":     r.bufDelete,
		"replace":    r.bufReplace,
		"len":        r.bufLen,
		"line":       r.bufLine,
		"line_count": r.bufLineCount,
		"undo":       r.bufUndo,
		"redo":       r.bufRedo,
	})
}

// buf.text([start, end])
func (r *Runner) bufText(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LString(r.buf.Text()))
		return 1
	}
	start := buffer.ByteOffset(L.CheckInt64(1))
	end := buffer.ByteOffset(L.OptInt64(2, int64(r.buf.Len())))
	L.Push(lua.LString(r.buf.TextRange(start, end)))
	return 1
}

// buf.insert(offset, text) returns the offset after the inserted text.
func (r *Runner) bufInsert(L *lua.LState) int {
	offset := buffer.ByteOffset(L.CheckInt64(1))
	end, err := r.buf.Insert(offset, L.CheckString(2))
	raiseIf(L, err)
	L.Push(lua.LNumber(end))
	return 1
}

// buf.delete(start, end)
func (r *Runner) bufDelete(L *lua.LState) int {
	start := buffer.ByteOffset(L.CheckInt64(1))
	end := buffer.ByteOffset(L.CheckInt64(2))
	raiseIf(L, r.buf.Delete(start, end))
	return 0
}

// buf.replace(start, end, text) returns the offset after the new text.
func (r *Runner) bufReplace(L *lua.LState) int {
	start := buffer.ByteOffset(L.CheckInt64(1))
	end := buffer.ByteOffset(L.CheckInt64(2))
	newEnd, err := r.buf.Replace(start, end, L.CheckString(3))
	raiseIf(L, err)
	L.Push(lua.LNumber(newEnd))
	return 1
}

func (r *Runner) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.buf.Len()))
	return 1
}

// buf.line(n) returns line n without its newline.
func (r *Runner) bufLine(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 || n > int(r.buf.LineCount()) {
		L.ArgError(1, "line out of range")
	}
	L.Push(lua.LString(r.buf.LineText(uint32(n - 1))))
	return 1
}

func (r *Runner) bufLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.buf.LineCount()))
	return 1
}

// buf.undo() returns false when there is nothing to undo.
func (r *Runner) bufUndo(L *lua.LState) int {
	return r.pushHistoryResult(L, r.buf.Undo(), buffer.ErrNothingToUndo)
}

// buf.redo() returns false when there is nothing to redo.
func (r *Runner) bufRedo(L *lua.LState) int {
	return r.pushHistoryResult(L, r.buf.Redo(), buffer.ErrNothingToRedo)
}

func (r *Runner) pushHistoryResult(L *lua.LState, err, empty error) int {
	if errors.Is(err, empty) {
		L.Push(lua.LFalse)
		return 1
	}
	raiseIf(L, err)
	L.Push(lua.LTrue)
	return 1
}
