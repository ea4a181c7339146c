// Package scripting is the optional scripted action-hook backend (§9's
// "function-pointer index into a registry" design note, given a second
// registry kind alongside pkg/action's built-in Go closures). A catalogue
// action hook with Backend "lua" names a global Lua function; Engine
// resolves it and calls it with a small table describing the hook
// invocation, the same way pkg/action.Registry resolves a "builtin" key to
// a Go closure.
//
// One *lua.LState per Engine, called only from the turn loop's single
// goroutine — matching both this core's single-threaded model (spec §5)
// and the source material's own single-VM, single-goroutine Lua usage.
package scripting
