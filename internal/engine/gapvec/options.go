package gapvec

import (
	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/alloc"
)

// Default tuning values.
const (
	DefaultGapSize        = 256
	DefaultNearnessFactor = 2
)

// Config tunes the amortized behavior of a GapVector.
type Config struct {
	// GapSize is the size of a freshly opened gap.
	GapSize int `toml:"gap_size" yaml:"gap_size"`

	// NearnessFactor scales GapSize into the near-gap threshold.
	NearnessFactor int `toml:"nearness_factor" yaml:"nearness_factor"`
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		GapSize:        DefaultGapSize,
		NearnessFactor: DefaultNearnessFactor,
	}
}

// Threshold returns the near-gap distance: GapSize * NearnessFactor.
func (c Config) Threshold() int {
	return c.GapSize * c.NearnessFactor
}

// Option configures a GapVector during creation.
type Option[T any] func(*GapVector[T])

// WithConfig sets both tuning values. Non-positive GapSize and negative
// NearnessFactor are ignored.
func WithConfig[T any](cfg Config) Option[T] {
	return func(v *GapVector[T]) {
		WithGapSize[T](cfg.GapSize)(v)
		WithNearnessFactor[T](cfg.NearnessFactor)(v)
	}
}

// WithGapSize sets the size of freshly opened gaps.
func WithGapSize[T any](n int) Option[T] {
	return func(v *GapVector[T]) {
		if n > 0 {
			v.cfg.GapSize = n
		}
	}
}

// WithNearnessFactor sets the near-gap multiplier. Zero restricts gap reuse
// to positions exactly at a gap edge.
func WithNearnessFactor[T any](f int) Option[T] {
	return func(v *GapVector[T]) {
		if f >= 0 {
			v.cfg.NearnessFactor = f
		}
	}
}

// WithAllocator sets the allocator used for the backing block.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(v *GapVector[T]) {
		if a != nil {
			v.alloc = a
		}
	}
}

// WithLogger sets a logger for reallocation events, logged at debug level.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(v *GapVector[T]) {
		if l != nil {
			v.log = l
		}
	}
}
