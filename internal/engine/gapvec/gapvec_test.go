package gapvec

import (
	"errors"
	"slices"
	"testing"

	"github.com/jopadan/neolib/internal/engine/alloc"
)

// seq returns [from, to).
func seq(from, to int) []int {
	s := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		s = append(s, i)
	}
	return s
}

// assertLayout checks cursor order and that gap and reserve slots are zero.
func assertLayout(t *testing.T, v *GapVector[int]) {
	t.Helper()
	if err := v.checkInvariants(); err != nil {
		t.Fatal(err)
	}
	for i := v.gapStart; i < v.gapEnd; i++ {
		if v.data[i] != 0 {
			t.Fatalf("gap slot %d holds %d", i, v.data[i])
		}
	}
	for i := v.dataEnd; i < len(v.data); i++ {
		if v.data[i] != 0 {
			t.Fatalf("reserve slot %d holds %d", i, v.data[i])
		}
	}
}

func assertContents(t *testing.T, v *GapVector[int], want []int) {
	t.Helper()
	if v.Len() != len(want) {
		t.Fatalf("expected length %d, got %d", len(want), v.Len())
	}
	if got := v.Slice(); !slices.Equal(got, want) {
		t.Fatalf("contents mismatch\n got: %v\nwant: %v", got, want)
	}
	assertLayout(t, v)
}

func TestNewIsEmpty(t *testing.T) {
	v := New[int]()

	if !v.Empty() {
		t.Error("new vector should be empty")
	}
	if v.Len() != 0 || v.Cap() != 0 {
		t.Errorf("expected len 0 cap 0, got len %d cap %d", v.Len(), v.Cap())
	}
	if !v.Begin().Equal(v.End()) {
		t.Error("begin should equal end on an empty vector")
	}
	if v.Config() != DefaultConfig() {
		t.Errorf("expected default config, got %+v", v.Config())
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var v GapVector[string]

	if err := v.PushBack("a"); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if _, err := v.Insert(0, "b"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := v.Slice(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("unexpected contents %v", got)
	}
}

func TestConstructors(t *testing.T) {
	filled, err := NewFilled(5, 7)
	if err != nil {
		t.Fatal(err)
	}
	assertContents(t, filled, []int{7, 7, 7, 7, 7})

	sized, err := NewWithSize[int](3)
	if err != nil {
		t.Fatal(err)
	}
	assertContents(t, sized, []int{0, 0, 0})

	fromSlice, err := FromSlice(seq(0, 10))
	if err != nil {
		t.Fatal(err)
	}
	assertContents(t, fromSlice, seq(0, 10))
	if fromSlice.Cap() != 10 {
		t.Errorf("expected exact capacity 10, got %d", fromSlice.Cap())
	}

	fromSeq, err := FromSeq(slices.Values(seq(3, 9)))
	if err != nil {
		t.Fatal(err)
	}
	assertContents(t, fromSeq, seq(3, 9))

	assertContents(t, Of(4, 5, 6), []int{4, 5, 6})
}

func TestPushBackSequence(t *testing.T) {
	v := New[int]()
	want := make([]int, 0, 5000)
	for i := 1; i <= 5000; i++ {
		if err := v.PushBack(i); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
		want = append(want, i)
	}
	assertContents(t, v, want)
	if v.Front() != 1 || v.Back() != 5000 {
		t.Errorf("unexpected front/back %d/%d", v.Front(), v.Back())
	}
}

func TestPushBackTwentyMillion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large push_back run in short mode")
	}

	const n = 20_000_000
	v := New[int]()
	for i := 1; i <= n; i++ {
		if err := v.PushBack(i); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
	}
	if v.Len() != n {
		t.Fatalf("expected %d elements, got %d", n, v.Len())
	}
	if d := v.End().Distance(v.Begin()); d != n {
		t.Fatalf("expected distance %d, got %d", n, d)
	}
	want := 1
	for _, x := range v.All() {
		if x != want {
			t.Fatalf("expected %d, got %d", want, x)
		}
		want++
	}
}

func TestInsertMiddleOfThousand(t *testing.T) {
	v, err := FromSlice(seq(0, 1000))
	if err != nil {
		t.Fatal(err)
	}

	pos, err := v.Insert(v.Len()/2, 1, 2, 3, 4)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if pos != 500 {
		t.Errorf("expected returned position 500, got %d", pos)
	}

	want := slices.Concat(seq(0, 500), []int{1, 2, 3, 4}, seq(500, 1000))
	assertContents(t, v, want)
	for i, x := range []int{1, 2, 3, 4} {
		if got := v.Get(500 + i); got != x {
			t.Errorf("index %d: expected %d, got %d", 500+i, x, got)
		}
	}
}

func TestEraseOnlyElementThenPush(t *testing.T) {
	v := Of(42)

	if pos := v.Erase(0); pos != 0 {
		t.Errorf("expected erase to return 0, got %d", pos)
	}
	if !v.Empty() {
		t.Fatal("vector should be empty after erasing its only element")
	}

	if err := v.PushBack(9); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	assertContents(t, v, []int{9})

	// Same scenario with a gap in play.
	g := New[int]()
	if err := g.PushBack(1); err != nil {
		t.Fatal(err)
	}
	g.Erase(0)
	if !g.Empty() {
		t.Fatal("vector should be empty")
	}
	if err := g.PushBack(2); err != nil {
		t.Fatal(err)
	}
	assertContents(t, g, []int{2})
}

func TestAtOutOfRange(t *testing.T) {
	v := Of(1, 2, 3)

	if x, err := v.At(2); err != nil || x != 3 {
		t.Errorf("At(2) = %d, %v; want 3, nil", x, err)
	}

	for _, i := range []int{-1, 3, 100} {
		_, err := v.At(i)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("At(%d): expected ErrOutOfRange, got %v", i, err)
		}
	}
	assertContents(t, v, []int{1, 2, 3})
}

func TestSetAndRef(t *testing.T) {
	v := Of(1, 2, 3)
	if _, err := v.Insert(1, 10); err != nil {
		t.Fatal(err)
	}

	v.Set(2, 20)
	*v.Ref(3) = 30
	assertContents(t, v, []int{1, 10, 20, 30})
}

func TestDataUnsplits(t *testing.T) {
	v, err := FromSlice(seq(0, 100))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Insert(50, -1); err != nil {
		t.Fatal(err)
	}
	if !v.gapActive() {
		t.Fatal("expected an active gap after a miss insert")
	}

	data := v.Data()
	if v.gapActive() {
		t.Error("Data should close the gap")
	}
	want := slices.Concat(seq(0, 50), []int{-1}, seq(50, 100))
	if !slices.Equal(data, want) {
		t.Errorf("Data mismatch: %v", data)
	}
	assertContents(t, v, want)
}

func TestSegments(t *testing.T) {
	v, err := FromSlice(seq(0, 20))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Insert(5, 99); err != nil {
		t.Fatal(err)
	}

	before, after := v.Segments()
	got := slices.Concat(before, after)
	want := slices.Concat(seq(0, 5), []int{99}, seq(5, 20))
	if !slices.Equal(got, want) {
		t.Errorf("segments mismatch: %v", got)
	}

	if r := v.AppendRange(nil, 3, 9); !slices.Equal(r, want[3:9]) {
		t.Errorf("AppendRange(3, 9) = %v, want %v", r, want[3:9])
	}
	if r := v.AppendRange(nil, 10, 21); !slices.Equal(r, want[10:21]) {
		t.Errorf("AppendRange(10, 21) = %v, want %v", r, want[10:21])
	}
}

func TestReserveShrinkRoundTrip(t *testing.T) {
	v := New[int]()
	for i := range 700 {
		if _, err := v.Insert(v.Len()/3, i); err != nil {
			t.Fatal(err)
		}
	}
	want := v.Slice()

	if err := v.ShrinkToFit(); err != nil {
		t.Fatalf("shrink failed: %v", err)
	}
	if v.Cap() != v.Len() {
		t.Errorf("expected capacity %d after shrink, got %d", v.Len(), v.Cap())
	}
	assertContents(t, v, want)

	for _, n := range []int{len(want), len(want) + 1, 5000} {
		if err := v.Reserve(n); err != nil {
			t.Fatalf("reserve %d failed: %v", n, err)
		}
		if v.Cap() < n {
			t.Errorf("expected capacity >= %d, got %d", n, v.Cap())
		}
		assertContents(t, v, want)
	}
}

func TestReserveSmallerIsNoop(t *testing.T) {
	v, err := FromSlice(seq(0, 10))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Insert(5, 1); err != nil {
		t.Fatal(err)
	}
	gapStart, gapEnd, capBefore := v.gapStart, v.gapEnd, v.Cap()

	if err := v.Reserve(3); err != nil {
		t.Fatal(err)
	}
	if v.gapStart != gapStart || v.gapEnd != gapEnd || v.Cap() != capBefore {
		t.Error("reserve below capacity should not touch the layout")
	}
}

func TestShrinkEmptyReleasesBlock(t *testing.T) {
	v := Of(1, 2, 3)
	v.Clear()
	if err := v.ShrinkToFit(); err != nil {
		t.Fatal(err)
	}
	if v.Cap() != 0 {
		t.Errorf("expected capacity 0, got %d", v.Cap())
	}
}

func TestCloneIsDeep(t *testing.T) {
	v := Of(1, 2, 3)
	if _, err := v.Insert(1, 9); err != nil {
		t.Fatal(err)
	}

	c, err := v.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.Set(0, 100)
	if err := c.PushBack(4); err != nil {
		t.Fatal(err)
	}

	assertContents(t, v, []int{1, 9, 2, 3})
	assertContents(t, c, []int{100, 9, 2, 3, 4})
}

func TestMoveResetsSource(t *testing.T) {
	v := New(WithGapSize[int](16))
	for i := range 10 {
		if err := v.PushBack(i); err != nil {
			t.Fatal(err)
		}
	}

	m := v.Move()
	assertContents(t, m, seq(0, 10))
	if !v.Empty() || v.Cap() != 0 {
		t.Errorf("source should be empty with no block, got len %d cap %d", v.Len(), v.Cap())
	}
	if v.Config().GapSize != 16 {
		t.Error("source should keep its tuning")
	}
	if err := v.PushBack(1); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{1})
}

func TestSwap(t *testing.T) {
	a := Of(1, 2)
	b := Of(3, 4, 5)
	a.Swap(b)
	assertContents(t, a, []int{3, 4, 5})
	assertContents(t, b, []int{1, 2})
}

func TestResize(t *testing.T) {
	v := Of(1, 2, 3)

	if err := v.ResizeFill(6, 8); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{1, 2, 3, 8, 8, 8})

	if err := v.Resize(2); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{1, 2})

	if err := v.Resize(4); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{1, 2, 0, 0})

	if err := v.Resize(-1); !errors.Is(err, ErrLengthExceeded) {
		t.Errorf("expected ErrLengthExceeded, got %v", err)
	}
}

func TestAssign(t *testing.T) {
	v := Of(1, 2, 3)

	if err := v.AssignN(2, 5); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{5, 5})

	if err := v.AssignSlice([]int{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{7, 8, 9})

	if err := v.AssignSeq(slices.Values([]int{4})); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, []int{4})
}

func TestClearKeepsCapacity(t *testing.T) {
	v, err := FromSlice(seq(0, 50))
	if err != nil {
		t.Fatal(err)
	}
	v.Clear()
	if !v.Empty() || v.Cap() != 50 {
		t.Errorf("expected empty vector with capacity 50, got len %d cap %d", v.Len(), v.Cap())
	}
	assertLayout(t, v)
}

func TestEmplace(t *testing.T) {
	type point struct{ x, y int }
	v := New[point]()

	if err := v.EmplaceBack(func(p *point) { p.x, p.y = 1, 2 }); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Emplace(0, func(p *point) { p.x = 5 }); err != nil {
		t.Fatal(err)
	}
	if got := v.Slice(); !slices.Equal(got, []point{{5, 0}, {1, 2}}) {
		t.Errorf("unexpected contents %v", got)
	}
}

func TestInsertLargerThanGapSize(t *testing.T) {
	v := New(WithGapSize[int](4))
	for i := range 10 {
		if err := v.PushBack(i); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := v.InsertN(5, 100, -1); err != nil {
		t.Fatal(err)
	}
	want := slices.Concat(seq(0, 5), slices.Repeat([]int{-1}, 100), seq(5, 10))
	assertContents(t, v, want)

	if _, err := v.Insert(v.Len(), seq(0, 40)...); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, slices.Concat(want, seq(0, 40)))
}

func TestPopBack(t *testing.T) {
	v := Of(1, 2, 3)
	v.PopBack()
	v.PopBack()
	assertContents(t, v, []int{1})
	v.PopBack()
	if !v.Empty() {
		t.Error("expected empty vector")
	}
}

func TestEraseEmptyRange(t *testing.T) {
	v := Of(1, 2, 3)
	if pos := v.EraseRange(2, 2); pos != 2 {
		t.Errorf("expected 2, got %d", pos)
	}
	assertContents(t, v, []int{1, 2, 3})
}

func TestInvalidPositionsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func(v *GapVector[int])
	}{
		{"insert past end", func(v *GapVector[int]) { _, _ = v.Insert(4, 1) }},
		{"insert negative", func(v *GapVector[int]) { _, _ = v.Insert(-1, 1) }},
		{"erase past end", func(v *GapVector[int]) { v.Erase(3) }},
		{"erase inverted", func(v *GapVector[int]) { v.EraseRange(2, 1) }},
		{"append range past end", func(v *GapVector[int]) { v.AppendRange(nil, 0, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(Of(1, 2, 3))
		})
	}
}

func TestEqualAndCompare(t *testing.T) {
	a := Of(1, 2, 3)
	b, err := FromSlice([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	// Give b a different physical layout.
	if _, err := b.Insert(1, 0); err != nil {
		t.Fatal(err)
	}
	b.Erase(1)

	if !Equal(a, b) {
		t.Error("vectors with the same sequence should be equal")
	}
	if Compare(a, b) != 0 {
		t.Error("equal vectors should compare as 0")
	}

	tests := []struct {
		a, b []int
		want int
	}{
		{[]int{1, 2}, []int{1, 2, 3}, -1},
		{[]int{1, 3}, []int{1, 2, 3}, 1},
		{nil, nil, 0},
		{nil, []int{0}, -1},
		{[]int{2}, []int{1, 9, 9}, 1},
	}
	for _, tt := range tests {
		x, y := Of(tt.a...), Of(tt.b...)
		if got := Compare(x, y); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if Equal(x, y) != (tt.want == 0) {
			t.Errorf("Equal(%v, %v) disagrees with Compare", tt.a, tt.b)
		}
	}

	if !EqualFunc(Of(1, 2), Of("a", "b"), func(int, string) bool { return true }) {
		t.Error("EqualFunc should only require equal lengths when eq always holds")
	}
	if CompareFunc(Of(1), Of("x", "y"), func(int, string) int { return 0 }) != -1 {
		t.Error("CompareFunc should order the shorter vector first")
	}
}

func TestStringFormatsLikeSlice(t *testing.T) {
	v := Of(1, 2, 3)
	if s := v.String(); s != "[1 2 3]" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestLimitedAllocatorStrongGuarantee(t *testing.T) {
	lim := alloc.NewLimited[int](nil, 500)
	v := New(WithAllocator[int](lim), WithGapSize[int](8))

	var failed bool
	for i := 0; i < 1000; i++ {
		lenBefore, capBefore := v.Len(), v.Cap()
		contents := v.Slice()
		gapStart, gapEnd, dataEnd := v.gapStart, v.gapEnd, v.dataEnd

		_, err := v.Insert(v.Len()/2, i)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrAllocationFailed) || !errors.Is(err, alloc.ErrAllocationFailed) {
			t.Fatalf("expected allocation failure, got %v", err)
		}
		failed = true

		if v.Len() != lenBefore || v.Cap() != capBefore {
			t.Fatalf("failed insert changed len/cap: %d/%d -> %d/%d",
				lenBefore, capBefore, v.Len(), v.Cap())
		}
		if v.gapStart != gapStart || v.gapEnd != gapEnd || v.dataEnd != dataEnd {
			t.Fatal("failed insert moved the cursors")
		}
		assertContents(t, v, contents)
		break
	}
	if !failed {
		t.Fatal("expected the allocation budget to be exhausted")
	}

	lim.SetLimit(1 << 20)
	want := slices.Insert(v.Slice(), v.Len()/2, -1)
	if _, err := v.Insert(v.Len()/2, -1); err != nil {
		t.Fatalf("insert after raising the limit failed: %v", err)
	}
	assertContents(t, v, want)
}

func TestStrongGuaranteeOnReserveAndShrink(t *testing.T) {
	lim := alloc.NewLimited[int](nil, 100)
	v := New(WithAllocator[int](lim))
	if err := v.Reserve(60); err != nil {
		t.Fatal(err)
	}
	for i := range 30 {
		if err := v.PushBack(i); err != nil {
			t.Fatal(err)
		}
	}

	if err := v.Reserve(80); !errors.Is(err, ErrAllocationFailed) {
		t.Fatalf("expected reserve to fail, got %v", err)
	}
	assertContents(t, v, seq(0, 30))
	if v.Cap() != 60 {
		t.Errorf("expected capacity 60, got %d", v.Cap())
	}

	if err := v.ShrinkToFit(); err != nil {
		t.Fatalf("shrink within budget failed: %v", err)
	}
	if lim.Live() != 30 {
		t.Errorf("expected 30 live elements after shrink, got %d", lim.Live())
	}

	if err := v.Reserve(v.MaxSize()); err == nil {
		t.Error("reserving MaxSize elements should fail under a small budget")
	}
	assertContents(t, v, seq(0, 30))
}

func TestPoolAllocatorRoundTrip(t *testing.T) {
	pool := alloc.NewPool[int]()
	v := New(WithAllocator[int](pool))
	for i := range 3000 {
		if _, err := v.Insert(v.Len()/2, i); err != nil {
			t.Fatal(err)
		}
	}
	want := v.Slice()
	if err := v.ShrinkToFit(); err != nil {
		t.Fatal(err)
	}
	assertContents(t, v, want)
	v.Release()
	if v.Cap() != 0 {
		t.Error("release should drop the block")
	}
}

func TestGrowthTarget(t *testing.T) {
	const limit = 1000

	tests := []struct {
		name                       string
		capacity, size, gap, count int
		want                       int
		wantErr                    bool
	}{
		{"from empty", 0, 0, 256, 1, 385, false},
		{"regular", 100, 100, 10, 5, 172, false},
		{"clamped by gap", 900, 500, 200, 1, limit, false},
		{"clamped by growth factor", 700, 700, 10, 10, limit, false},
		{"exact fit at limit", 990, 990, 0, 10, limit, false},
		{"exceeds limit", 990, 990, 0, 11, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := growthTarget(tt.capacity, tt.size, tt.gap, tt.count, limit)
			if tt.wantErr {
				if !errors.Is(err, ErrLengthExceeded) {
					t.Fatalf("expected ErrLengthExceeded, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			if got < tt.size+tt.count {
				t.Errorf("target %d cannot hold %d elements", got, tt.size+tt.count)
			}
		})
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	v := New(
		WithGapSize[int](0),
		WithNearnessFactor[int](-1),
		WithAllocator[int](nil),
		WithLogger[int](nil),
	)
	if v.Config() != DefaultConfig() {
		t.Errorf("invalid options should be ignored, got %+v", v.Config())
	}

	v = New(WithConfig[int](Config{GapSize: 32, NearnessFactor: 0}))
	if got := v.Config(); got.GapSize != 32 || got.NearnessFactor != 0 {
		t.Errorf("unexpected config %+v", got)
	}
	if v.Config().Threshold() != 0 {
		t.Error("zero nearness factor should give a zero threshold")
	}
}
