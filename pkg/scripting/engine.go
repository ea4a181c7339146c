package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"grue/internal/telemetry"
	"grue/pkg/action"
	"grue/pkg/world"
)

// Engine wraps a single gopher-lua VM holding every scripted hook function
// loaded from a directory of .lua files. It implements action.Resolver for
// ActionRefs whose Backend is "lua".
type Engine struct {
	vm *lua.LState
}

// NewEngine creates a Lua VM and loads every .lua file directly under dir
// (non-recursive — catalogue authors group scripts by file, not by
// subsystem subdirectory, since a core this size has few enough scripted
// hooks not to need one).
func NewEngine(dir string) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &Engine{vm: vm}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the underlying Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("scripting: reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("scripting: loading %s: %w", path, err)
		}
		telemetry.Log.Debugw("loaded lua hook script", "file", path)
	}
	return nil
}

// Resolve implements action.Resolver for Backend "lua": it reports a hit
// whenever the named function exists as a Lua global, deferring the actual
// lookup cost to Call.
func (e *Engine) Resolve(ref *world.ActionRef) (action.Hook, bool) {
	if ref == nil || ref.Backend != "lua" {
		return nil, false
	}
	if fn := e.vm.GetGlobal(ref.Key); fn == lua.LNil {
		return nil, false
	}
	return luaHook{engine: e, key: ref.Key}, true
}

type luaHook struct {
	engine *Engine
	key    string
}

// Call implements action.Hook: it builds a context table describing the
// invocation, binds the Runtime callbacks the script may use this call,
// invokes the named Lua function, and translates its return values into
// an Outcome.
//
// Return convention: the function returns a string outcome
// ("handled"/"use-default"/"fatal", default "handled" if omitted) and,
// optionally, a second string that is emitted as player-facing output
// before the outcome is applied.
func (h luaHook) Call(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	vm := h.engine.vm
	h.bindCallbacks(vm, rt)

	fn := vm.GetGlobal(h.key)
	if fn == lua.LNil {
		return action.UseDefault, nil
	}

	ctxTable := buildContextTable(vm, hc)
	if err := vm.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true}, ctxTable); err != nil {
		return action.Handled, fmt.Errorf("scripting: hook %q: %w", h.key, err)
	}

	msg := vm.Get(-1)
	outcomeVal := vm.Get(-2)
	vm.Pop(2)

	if s, ok := msg.(lua.LString); ok && string(s) != "" {
		rt.Emit(string(s))
	}
	return parseOutcome(outcomeVal), nil
}

func parseOutcome(v lua.LValue) action.Outcome {
	s, ok := v.(lua.LString)
	if !ok {
		return action.Handled
	}
	switch string(s) {
	case "use-default":
		return action.UseDefault
	case "fatal":
		return action.Fatal
	default:
		return action.Handled
	}
}

func buildContextTable(vm *lua.LState, hc action.HookContext) *lua.LTable {
	t := vm.NewTable()
	t.RawSetString("entity", lua.LString(string(hc.Entity)))
	t.RawSetString("phase", lua.LString(string(hc.Phase)))
	if hc.Frame != nil {
		f := vm.NewTable()
		f.RawSetString("verb", lua.LString(hc.Frame.Verb))
		f.RawSetString("direction", lua.LString(hc.Frame.Direction))
		f.RawSetString("preposition", lua.LString(hc.Frame.Preposition))
		direct := vm.NewTable()
		for i, id := range hc.Frame.Direct {
			direct.RawSetInt(i+1, lua.LString(string(id)))
		}
		f.RawSetString("direct", direct)
		if hc.Frame.Indirect != nil {
			f.RawSetString("indirect", lua.LString(string(*hc.Frame.Indirect)))
		}
		t.RawSetString("frame", f)
	}
	return t
}

// bindCallbacks installs the Runtime surface a script may call for the
// duration of this single invocation. Re-binding on every call (rather
// than once at Engine construction) is safe and cheap: the core is
// strictly single-threaded (§5), so only one hook call is ever in flight.
func (h luaHook) bindCallbacks(vm *lua.LState, rt action.Runtime) {
	vm.SetGlobal("emit", vm.NewFunction(func(L *lua.LState) int {
		rt.Emit(L.ToString(1))
		return 0
	}))
	vm.SetGlobal("roll", vm.NewFunction(func(L *lua.LState) int {
		n := L.ToInt(1)
		L.Push(lua.LNumber(rt.Roll(n)))
		return 1
	}))
	vm.SetGlobal("set_flag", vm.NewFunction(func(L *lua.LState) int {
		err := rt.SetFlag(world.EntityId(L.ToString(1)), world.Flag(L.ToString(2)))
		pushErr(L, err)
		return 1
	}))
	vm.SetGlobal("unset_flag", vm.NewFunction(func(L *lua.LState) int {
		rt.UnsetFlag(world.EntityId(L.ToString(1)), world.Flag(L.ToString(2)))
		return 0
	}))
	vm.SetGlobal("move", vm.NewFunction(func(L *lua.LState) int {
		err := rt.MoveObject(world.EntityId(L.ToString(1)), world.EntityId(L.ToString(2)))
		pushErr(L, err)
		return 1
	}))
	vm.SetGlobal("die", vm.NewFunction(func(L *lua.LState) int {
		err := rt.Die(L.ToString(1))
		pushErr(L, err)
		return 1
	}))
}

func pushErr(L *lua.LState, err error) {
	if err != nil {
		L.Push(lua.LString(err.Error()))
		return
	}
	L.Push(lua.LNil)
}
