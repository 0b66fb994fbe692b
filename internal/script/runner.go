package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/engine/buffer"
	"github.com/jopadan/neolib/internal/engine/gapvec"
)

// Default limits for a run.
const (
	DefaultOpLimit = 10_000_000
	DefaultTimeout = 30 * time.Second
)

// Runner owns a Lua state bound to one vector and one buffer. It is safe for
// concurrent use; runs are serialized.
type Runner struct {
	mu sync.Mutex
	L  *lua.LState

	vec *gapvec.GapVector[lua.LValue]
	buf *buffer.Buffer

	log     *zap.Logger
	out     io.Writer
	opLimit int64
	timeout time.Duration

	ops      int64
	limitHit bool
	closed   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithVector binds an existing vector to the vec module.
func WithVector(v *gapvec.GapVector[lua.LValue]) Option {
	return func(r *Runner) {
		if v != nil {
			r.vec = v
		}
	}
}

// WithBuffer binds an existing buffer to the buf module.
func WithBuffer(b *buffer.Buffer) Option {
	return func(r *Runner) {
		if b != nil {
			r.buf = b
		}
	}
}

// WithLogger sets the logger. Script print output is also logged at debug
// level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithOutput redirects print. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithOpLimit sets the per-run operation budget. Zero disables it.
func WithOpLimit(n int64) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.opLimit = n
		}
	}
}

// WithTimeout bounds each run. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// NewRunner creates a sandboxed runner. Without WithVector or WithBuffer
// fresh empty ones are created.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		log:     zap.NewNop(),
		out:     os.Stdout,
		opLimit: DefaultOpLimit,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.vec == nil {
		r.vec = gapvec.New(gapvec.WithLogger[lua.LValue](r.log))
	}
	if r.buf == nil {
		r.buf = buffer.NewBuffer(buffer.WithLogger(r.log))
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installPrint()
	r.L.SetGlobal("vec", r.vecModule())
	r.L.SetGlobal("buf", r.bufModule())
	return r
}

// Vector returns the vector bound to the vec module.
func (r *Runner) Vector() *gapvec.GapVector[lua.LValue] {
	return r.vec
}

// Buffer returns the buffer bound to the buf module.
func (r *Runner) Buffer() *buffer.Buffer {
	return r.buf
}

// Ops returns the number of operations the last run performed.
func (r *Runner) Ops() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ops
}

// RunString executes Lua source.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.run(ctx, "<string>", func() error {
		return r.L.DoString(code)
	})
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error {
		return r.L.DoFile(path)
	})
}

func (r *Runner) run(ctx context.Context, name string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.ops = 0
	r.limitHit = false
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic in %s: %v", name, p)
		}
		r.L.SetTop(0)
		r.log.Debug("script finished",
			zap.String("script", name),
			zap.Int64("ops", r.ops),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	}()

	if err := fn(); err != nil {
		switch {
		case r.limitHit:
			return fmt.Errorf("%s: %w", name, ErrOpLimit)
		case ctx.Err() != nil:
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state. The vector and buffer stay usable.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// tick charges one operation and raises a Lua error past the budget.
func (r *Runner) tick(L *lua.LState) {
	r.ops++
	if r.opLimit > 0 && r.ops > r.opLimit {
		r.limitHit = true
		L.RaiseError("operation limit of %d exceeded", r.opLimit)
	}
}

func (r *Runner) installPrint() {
	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		line := strings.Join(parts, "\t")
		r.log.Debug("script output", zap.String("line", line))
		fmt.Fprintln(r.out, line)
		return 0
	}))
}

// openSafeLibraries opens only the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}
