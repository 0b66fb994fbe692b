package gapvec

import (
	"errors"

	"github.com/jopadan/neolib/internal/engine/alloc"
)

// Errors returned by GapVector operations.
var (
	// ErrOutOfRange indicates a checked access beyond Len.
	ErrOutOfRange = errors.New("gapvec: index out of range")

	// ErrLengthExceeded indicates a request for more than MaxSize elements.
	ErrLengthExceeded = errors.New("gapvec: length exceeds max size")

	// ErrAllocationFailed indicates the allocator refused a growth request.
	// It is the same value as alloc.ErrAllocationFailed.
	ErrAllocationFailed = alloc.ErrAllocationFailed
)
