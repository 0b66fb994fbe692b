package buffer

import (
	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/alloc"
	"github.com/jopadan/neolib/internal/engine/gapvec"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithGapConfig tunes the gap vector holding the text.
func WithGapConfig(cfg gapvec.Config) Option {
	return func(b *Buffer) {
		b.gapConfig = cfg
	}
}

// WithAllocator sets the allocator for the text block.
func WithAllocator(a alloc.Allocator[byte]) Option {
	return func(b *Buffer) {
		b.allocator = a
	}
}

// WithLogger sets the logger handed to the underlying gap vector.
func WithLogger(l *zap.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l
		}
	}
}

// WithUndoLimit bounds the number of undo steps kept. Non-positive values
// select DefaultUndoLimit.
func WithUndoLimit(n int) Option {
	return func(b *Buffer) {
		b.history.setLimit(n)
	}
}

// DetectLineEnding returns the most common line ending in text, or
// LineEndingLF if there is none. Ties prefer CRLF, then CR.
func DetectLineEnding(text string) LineEnding {
	var lf, crlf, cr int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}

	switch {
	case crlf > 0 && crlf >= lf && crlf >= cr:
		return LineEndingCRLF
	case cr > 0 && cr >= lf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// WithDetectedLineEnding sets the buffer's line ending style from the most
// common line ending in text.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}
