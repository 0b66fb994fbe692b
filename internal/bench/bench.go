// Package bench compares a gap vector with a plain slice under the
// clustered edit workload editors produce: a long sequential fill followed
// by inserts and erases that wander around a cursor.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/alloc"
	"github.com/jopadan/neolib/internal/engine/gapvec"
)

// ErrMismatch is returned when the gap vector and the slice disagree.
var ErrMismatch = errors.New("bench: gap vector and slice differ")

// Defaults for Config.
const (
	DefaultSize = 1_000_000
	DefaultOps  = 10_000
	DefaultSeed = 0
)

// Config describes one workload.
type Config struct {
	// Size is the number of elements pushed before editing.
	Size int

	// Ops is the number of clustered edits.
	Ops int

	// Seed drives the edit sequence. Both containers see the same edits.
	Seed uint64

	// Vector tunes the gap vector.
	Vector gapvec.Config

	// Allocator backs the gap vector. Nil means the heap.
	Allocator alloc.Allocator[int]
}

// DefaultConfig returns the default workload.
func DefaultConfig() Config {
	return Config{
		Size:   DefaultSize,
		Ops:    DefaultOps,
		Seed:   DefaultSeed,
		Vector: gapvec.DefaultConfig(),
	}
}

// Result holds timings for both containers.
type Result struct {
	Size     int
	Ops      int
	FinalLen int

	VectorFill time.Duration
	SliceFill  time.Duration
	VectorEdit time.Duration
	SliceEdit  time.Duration
}

// Speedup is the slice edit time divided by the gap vector edit time.
func (r Result) Speedup() float64 {
	if r.VectorEdit <= 0 {
		return 0
	}
	return float64(r.SliceEdit) / float64(r.VectorEdit)
}

// editKind enumerates the four edits of the workload.
type editKind int

const (
	insertOne editKind = iota
	insertFour
	eraseOne
	eraseFour
)

// edit is one step of the workload: a cursor move then an operation.
type edit struct {
	kind  editKind
	value int
}

// editor yields the workload's edits. Two editors with the same seed and
// container lengths produce identical steps.
type editor struct {
	rng    *rand.Rand
	gap    int
	cursor int
}

func newEditor(seed uint64, gapSize, length int) *editor {
	return &editor{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		gap:    max(gapSize, 2),
		cursor: length / 2,
	}
}

// next moves the cursor within [0, length-1] and picks an edit.
func (e *editor) next(length int) (int, edit) {
	e.cursor += e.rng.IntN(e.gap) - e.gap/2
	e.cursor = max(0, min(e.cursor, length-1))
	return e.cursor, edit{kind: editKind(e.rng.IntN(4)), value: int(e.rng.Int32())}
}

var four = [...]int{1, 2, 3, 4}

// Run executes the workload on both containers and verifies they end equal.
func Run(ctx context.Context, cfg Config, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Size < 0 || cfg.Ops < 0 {
		return Result{}, fmt.Errorf("bench: negative size or ops")
	}

	opts := []gapvec.Option[int]{gapvec.WithConfig[int](cfg.Vector), gapvec.WithLogger[int](log)}
	if cfg.Allocator != nil {
		opts = append(opts, gapvec.WithAllocator(cfg.Allocator))
	}
	v := gapvec.New(opts...)
	defer v.Release()

	res := Result{Size: cfg.Size, Ops: cfg.Ops}

	start := time.Now()
	for i := 1; i <= cfg.Size; i++ {
		if err := v.PushBack(i); err != nil {
			return res, fmt.Errorf("bench: fill: %w", err)
		}
	}
	res.VectorFill = time.Since(start)

	start = time.Now()
	var s []int
	for i := 1; i <= cfg.Size; i++ {
		s = append(s, i)
	}
	res.SliceFill = time.Since(start)
	log.Info("filled", zap.Int("size", cfg.Size),
		zap.Duration("vector", res.VectorFill), zap.Duration("slice", res.SliceFill))

	if err := ctx.Err(); err != nil {
		return res, err
	}

	gap := v.Config().GapSize

	var err error
	start = time.Now()
	if err = editVector(ctx, v, cfg.Ops, cfg.Seed, gap); err != nil {
		return res, err
	}
	res.VectorEdit = time.Since(start)

	start = time.Now()
	if s, err = editSlice(ctx, s, cfg.Ops, cfg.Seed, gap); err != nil {
		return res, err
	}
	res.SliceEdit = time.Since(start)

	res.FinalLen = v.Len()
	if err := compare(v, s); err != nil {
		return res, err
	}
	log.Info("edited", zap.Int("ops", cfg.Ops), zap.Int("len", res.FinalLen),
		zap.Duration("vector", res.VectorEdit), zap.Duration("slice", res.SliceEdit))
	return res, nil
}

const checkEvery = 1024

func editVector(ctx context.Context, v *gapvec.GapVector[int], ops int, seed uint64, gap int) error {
	ed := newEditor(seed, gap, v.Len())
	for i := range ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		pos, e := ed.next(v.Len())
		var err error
		switch {
		case e.kind == insertOne:
			_, err = v.Insert(pos, e.value)
		case e.kind == insertFour:
			_, err = v.Insert(pos, four[:]...)
		case v.Empty():
		case e.kind == eraseOne:
			v.Erase(pos)
		case e.kind == eraseFour:
			v.EraseRange(pos, min(v.Len(), pos+4))
		}
		if err != nil {
			return fmt.Errorf("bench: edit %d: %w", i, err)
		}
	}
	return nil
}

func editSlice(ctx context.Context, s []int, ops int, seed uint64, gap int) ([]int, error) {
	ed := newEditor(seed, gap, len(s))
	for i := range ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return s, err
			}
		}
		pos, e := ed.next(len(s))
		switch {
		case e.kind == insertOne:
			s = slices.Insert(s, pos, e.value)
		case e.kind == insertFour:
			s = slices.Insert(s, pos, four[:]...)
		case len(s) == 0:
		case e.kind == eraseOne:
			s = slices.Delete(s, pos, pos+1)
		case e.kind == eraseFour:
			s = slices.Delete(s, pos, min(len(s), pos+4))
		}
	}
	return s, nil
}

func compare(v *gapvec.GapVector[int], s []int) error {
	if v.Len() != len(s) {
		return fmt.Errorf("%w: length %d vs %d", ErrMismatch, v.Len(), len(s))
	}
	for i, x := range v.All() {
		if x != s[i] {
			return fmt.Errorf("%w: index %d: %d vs %d", ErrMismatch, i, x, s[i])
		}
	}
	return nil
}
