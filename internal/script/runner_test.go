package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/jopadan/neolib/internal/engine/alloc"
	"github.com/jopadan/neolib/internal/engine/buffer"
	"github.com/jopadan/neolib/internal/engine/gapvec"
	"github.com/jopadan/neolib/internal/logging"
)

func newRunner(t *testing.T, opts ...Option) *Runner {
	t.Helper()
	r := NewRunner(append([]Option{WithOutput(&bytes.Buffer{})}, opts...)...)
	t.Cleanup(r.Close)
	return r
}

func TestRunnerVec(t *testing.T) {
	r := newRunner(t)

	err := r.RunString(context.Background(), `
		for i = 1, 100 do vec.push(i) end
		assert(vec.len() == 100)
		assert(vec.insert(50, "a", "b") == 50)
		assert(vec.get(50) == "a" and vec.get(51) == "b" and vec.get(52) == 50)
		assert(vec.erase(1, 10) == 1)
		assert(vec.get(1) == 11)
		vec.set(1, true)
		vec.push("tail")
		assert(vec.cap() >= vec.len())
	`)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}

	v := r.Vector()
	if v.Len() != 93 {
		t.Fatalf("Len() = %d, want 93", v.Len())
	}
	if v.Front() != lua.LTrue {
		t.Errorf("Front() = %v, want true", v.Front())
	}
	if v.Back() != lua.LString("tail") {
		t.Errorf("Back() = %v, want tail", v.Back())
	}
}

func TestRunnerVecValuesAndCapacity(t *testing.T) {
	r := newRunner(t)

	err := r.RunString(context.Background(), `
		vec.push(3, 1, 2)
		local t = vec.values()
		assert(#t == 3 and t[1] == 3 and t[3] == 2)
		vec.reserve(500)
		assert(vec.cap() >= 500)
		vec.shrink()
		assert(vec.cap() == 3)
		vec.clear()
		assert(vec.len() == 0)
		vec.push("x")
		assert(vec.erase(1, 99) == 1 and vec.len() == 0)
	`)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
}

func TestRunnerVecValuesKeepsNilPositions(t *testing.T) {
	r := newRunner(t)

	err := r.RunString(context.Background(), `
		vec.push(1, nil, 3)
		local t = vec.values()
		assert(vec.len() == 3)
		assert(t[1] == 1, "t[1]")
		assert(t[2] == nil, "t[2]")
		assert(t[3] == 3, "t[3]")
	`)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
}

func TestRunnerVecArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "get zero", code: `vec.push(1) vec.get(0)`},
		{name: "get past end", code: `vec.push(1) vec.get(2)`},
		{name: "insert past end", code: `vec.insert(2, "x")`},
		{name: "erase empty", code: `vec.erase(1)`},
		{name: "negative count", code: `vec.push(1) vec.erase(1, -1)`},
		{name: "negative reserve", code: `vec.reserve(-1)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner(t)
			if err := r.RunString(context.Background(), tt.code); err == nil {
				t.Fatal("RunString() should fail")
			}
		})
	}
}

func TestRunnerAllocationFailure(t *testing.T) {
	limited := alloc.NewLimited[lua.LValue](alloc.Heap[lua.LValue]{}, 16)
	v := gapvec.New(
		gapvec.WithAllocator[lua.LValue](limited),
		gapvec.WithGapSize[lua.LValue](4),
	)
	r := newRunner(t, WithVector(v))

	err := r.RunString(context.Background(), `for i = 1, 100 do vec.push(i) end`)
	if err == nil || !strings.Contains(err.Error(), "allocation failed") {
		t.Fatalf("RunString() error = %v, want allocation failure", err)
	}
	if v.Len() == 0 || v.Len() >= 100 {
		t.Errorf("Len() = %d, want partial progress", v.Len())
	}
	for i, val := range v.All() {
		if val != lua.LNumber(i+1) {
			t.Fatalf("Get(%d) = %v, want %d", i, val, i+1)
		}
	}
}

func TestRunnerBuf(t *testing.T) {
	b, err := buffer.NewBufferFromString("hello")
	if err != nil {
		t.Fatal(err)
	}
	r := newRunner(t, WithBuffer(b))

	err = r.RunString(context.Background(), `
		assert(buf.text() == "hello")
		assert(buf.insert(5, "\nworld") == 11)
		assert(buf.line_count() == 2)
		assert(buf.line(2) == "world")
		assert(buf.replace(0, 5, "HELLO") == 5)
		assert(buf.text(6) == "world")
		assert(buf.text(0, 5) == "HELLO")
		buf.delete(5, 11)
		assert(buf.len() == 5)
		assert(buf.undo() == true)
		assert(buf.text() == "HELLO\nworld")
		assert(buf.redo() == true)
		assert(buf.redo() == false)
	`)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got := b.Text(); got != "HELLO" {
		t.Errorf("Text() = %q, want %q", got, "HELLO")
	}
}

func TestRunnerBufErrors(t *testing.T) {
	for _, code := range []string{
		`buf.insert(10, "x")`,
		`buf.delete(3, 1)`,
		`buf.line(0)`,
		`buf.line(2)`,
	} {
		r := newRunner(t)
		if err := r.RunString(context.Background(), code); err == nil {
			t.Errorf("RunString(%q) should fail", code)
		}
	}

	r := newRunner(t)
	if err := r.RunString(context.Background(), `assert(buf.undo() == false)`); err != nil {
		t.Errorf("undo on empty history: %v", err)
	}
}

func TestRunnerSandbox(t *testing.T) {
	r := newRunner(t)

	err := r.RunString(context.Background(), `
		assert(os == nil and io == nil and debug == nil and package == nil)
		assert(require == nil and dofile == nil and loadfile == nil and load == nil)
		assert(string.upper("a") == "A" and math.max(1, 2) == 2 and table.concat({"a"}) == "a")
	`)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
}

func TestRunnerOpLimit(t *testing.T) {
	r := newRunner(t, WithOpLimit(100))

	err := r.RunString(context.Background(), `for i = 1, 1000 do vec.push(i) end`)
	if !errors.Is(err, ErrOpLimit) {
		t.Fatalf("RunString() error = %v, want ErrOpLimit", err)
	}
	if r.Ops() != 101 {
		t.Errorf("Ops() = %d, want 101", r.Ops())
	}
	if r.Vector().Len() != 100 {
		t.Errorf("Len() = %d, want 100", r.Vector().Len())
	}

	// The budget resets per run.
	if err := r.RunString(context.Background(), `vec.clear()`); err != nil {
		t.Errorf("second run error = %v", err)
	}
}

func TestRunnerTimeout(t *testing.T) {
	r := newRunner(t, WithTimeout(50*time.Millisecond))

	err := r.RunString(context.Background(), `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunString() error = %v, want DeadlineExceeded", err)
	}

	if err := r.RunString(context.Background(), `x = 1`); err != nil {
		t.Errorf("run after timeout error = %v", err)
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunString(ctx, `for i = 1, 10 do vec.push(i) end`)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunString() error = %v, want Canceled", err)
	}
}

func TestRunnerPrint(t *testing.T) {
	var out bytes.Buffer
	tl := logging.NewTestLogger()
	r := newRunner(t, WithOutput(&out), WithLogger(tl.Zap()))

	if err := r.RunString(context.Background(), `print("len", vec.len(), nil)`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "len\t0\tnil\n" {
		t.Errorf("output = %q", got)
	}
	tl.AssertLogged(t, logging.Debug, "script output")
	tl.AssertLogged(t, logging.Debug, "script finished")
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.lua")
	if err := os.WriteFile(path, []byte(`for i = 1, 10 do vec.push(i * i) end`), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newRunner(t)
	if err := r.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if got := r.Vector().Back(); got != lua.LNumber(100) {
		t.Errorf("Back() = %v, want 100", got)
	}

	err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Error("RunFile() on missing file should fail")
	}
}

func TestRunnerSyntaxError(t *testing.T) {
	r := newRunner(t)
	err := r.RunString(context.Background(), `vec.push(`)
	if err == nil || !strings.Contains(err.Error(), "<string>") {
		t.Errorf("RunString() error = %v", err)
	}
}

func TestRunnerClosed(t *testing.T) {
	r := NewRunner()
	r.Close()
	r.Close()

	if err := r.RunString(context.Background(), `x = 1`); !errors.Is(err, ErrRunnerClosed) {
		t.Errorf("RunString() error = %v, want ErrRunnerClosed", err)
	}
}
