// Package buffer provides a thread-safe text buffer stored in a gap vector
// of bytes. Typing and deleting around one location only moves the bytes
// between the edit and the gap, which makes it a good fit for interactive
// editing.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between byte offsets and line/column positions
//   - UTF-16 coordinate support for LSP compatibility
//   - An incrementally maintained line index
//   - Read-only snapshots that copy the text
//   - Line ending normalization
//   - Revision tracking and bounded undo/redo
//
// Basic usage:
//
//	buf, _ := buffer.NewBufferFromString("Hello, World!")
//
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//	buf.Undo()                   // "Hello, Beautiful World!"
//
//	snap, _ := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Edits that fail to allocate leave the buffer, its line index and its
// history unchanged.
package buffer
