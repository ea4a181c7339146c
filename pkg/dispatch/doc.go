// Package dispatch implements spec component F: given a parsed
// action.Frame, run it through the seven-layer pipeline (§4.F) — resolve
// pronouns, pre-hooks, direct-object hook, indirect-object hook, room
// hook, default verb handler, turn-end — stopping early on the first
// layer that reports action.Handled except the trailing turn-end layer,
// which always runs unless a layer returned action.Fatal.
//
// Meta-verbs (verbose, quit, score, ...) bypass every hook layer and are
// routed straight to a small fixed set of handlers; pkg/session is the
// one that knows not to tick moves or daemons for them, using the
// Result.IsMeta flag this package reports back.
//
// Default verb handlers live in verbs.go, one function per verb, doing
// the ordinary thing a catalogue author expects when nothing overrides
// it: v_take picks the object up, v_open opens it, and so on. They are
// deliberately dumb; all the interesting behaviour belongs in a
// catalogue's action hooks, which run before these ever get a chance.
package dispatch
