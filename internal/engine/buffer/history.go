package buffer

import "errors"

// DefaultUndoLimit is the number of undo steps kept when no limit is set.
const DefaultUndoLimit = 1000

// Errors returned by Undo and Redo.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// history holds undo and redo steps. Each step is the list of changes one
// buffer call applied, in application order. Callers hold the buffer lock.
type history struct {
	undo  [][]Change
	redo  [][]Change
	limit int
}

func newHistory(limit int) history {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return history{limit: limit}
}

// record adds a fresh step and drops anything that could be redone.
func (h *history) record(changes []Change) {
	h.redo = nil
	h.pushUndo(changes)
}

func (h *history) pushUndo(changes []Change) {
	h.undo = append(h.undo, changes)
	if excess := len(h.undo) - h.limit; excess > 0 {
		clear(h.undo[:excess])
		h.undo = h.undo[excess:]
	}
}

func (h *history) pushRedo(changes []Change) {
	h.redo = append(h.redo, changes)
}

func (h *history) popUndo() ([]Change, error) {
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return last, nil
}

func (h *history) popRedo() ([]Change, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return last, nil
}

func (h *history) setLimit(limit int) {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	h.limit = limit
	if excess := len(h.undo) - limit; excess > 0 {
		h.undo = h.undo[excess:]
	}
}

func (h *history) clear() {
	h.undo = nil
	h.redo = nil
}
