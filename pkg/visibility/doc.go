// Package visibility implements the pure derivations of spec component C:
// which objects are visible or reachable from a room, and whether a room
// is lit. Nothing here mutates world state except Recompute, which writes
// the single cached scalar (Store.Global.Lit) that spec invariant I4
// allows.
package visibility
