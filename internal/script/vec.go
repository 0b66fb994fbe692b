package script

import (
	lua "github.com/yuin/gopher-lua"
)

// vecModule builds the vec table. Lua indices are 1-based; position
// len()+1 is the end.
func (r *Runner) vecModule() *lua.LTable {
	return r.module(map[string]lua.LGFunction{
		"push":    r.vecPush,
		"insert":  r.vecInsert,
		"erase":   r.vecErase,
		"get":     r.vecGet,
		"set":     r.vecSet,
		"len":     r.vecLen,
		"cap":     r.vecCap,
		"reserve": r.vecReserve,
		"shrink":  r.vecShrink,
		"clear":   r.vecClear,
		"values":  r.vecValues,
	})
}

// module wraps every function so it is charged against the op budget.
func (r *Runner) module(funcs map[string]lua.LGFunction) *lua.LTable {
	mod := r.L.NewTable()
	for name, fn := range funcs {
		r.L.SetField(mod, name, r.L.NewFunction(func(L *lua.LState) int {
			r.tick(L)
			return fn(L)
		}))
	}
	return mod
}

// checkIndex reads a 1-based index in [1, upper] and returns it 0-based.
func checkIndex(L *lua.LState, n, upper int) int {
	i := L.CheckInt(n)
	if i < 1 || i > upper {
		L.ArgError(n, "index out of range")
	}
	return i - 1
}

func raiseIf(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

// vec.push(value, ...)
func (r *Runner) vecPush(L *lua.LState) int {
	values := make([]lua.LValue, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		values = append(values, L.Get(i))
	}
	_, err := r.vec.Insert(r.vec.Len(), values...)
	raiseIf(L, err)
	return 0
}

// vec.insert(index, value, ...) returns the index of the first inserted value.
func (r *Runner) vecInsert(L *lua.LState) int {
	pos := checkIndex(L, 1, r.vec.Len()+1)
	values := make([]lua.LValue, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		values = append(values, L.Get(i))
	}
	at, err := r.vec.Insert(pos, values...)
	raiseIf(L, err)
	L.Push(lua.LNumber(at + 1))
	return 1
}

// vec.erase(index [, count]) removes count values (default 1) and returns
// the index of the value that followed them.
func (r *Runner) vecErase(L *lua.LState) int {
	first := checkIndex(L, 1, r.vec.Len())
	count := L.OptInt(2, 1)
	if count < 0 {
		L.ArgError(2, "negative count")
	}
	last := min(first+count, r.vec.Len())
	L.Push(lua.LNumber(r.vec.EraseRange(first, last) + 1))
	return 1
}

// vec.get(index)
func (r *Runner) vecGet(L *lua.LState) int {
	i := checkIndex(L, 1, r.vec.Len())
	L.Push(r.vec.Get(i))
	return 1
}

// vec.set(index, value)
func (r *Runner) vecSet(L *lua.LState) int {
	i := checkIndex(L, 1, r.vec.Len())
	r.vec.Set(i, L.Get(2))
	return 0
}

func (r *Runner) vecLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.vec.Len()))
	return 1
}

func (r *Runner) vecCap(L *lua.LState) int {
	L.Push(lua.LNumber(r.vec.Cap()))
	return 1
}

func (r *Runner) vecReserve(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, "negative capacity")
	}
	raiseIf(L, r.vec.Reserve(n))
	return 0
}

func (r *Runner) vecShrink(L *lua.LState) int {
	raiseIf(L, r.vec.ShrinkToFit())
	return 0
}

func (r *Runner) vecClear(L *lua.LState) int {
	r.vec.Clear()
	return 0
}

// vec.values() returns a Lua array copy of the contents. Nil elements
// leave holes at their index rather than shifting later elements down.
func (r *Runner) vecValues(L *lua.LState) int {
	t := L.CreateTable(r.vec.Len(), 0)
	for i, v := range r.vec.All() {
		t.RawSetInt(i+1, v)
	}
	L.Push(t)
	return 1
}
