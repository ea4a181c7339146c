// Package session implements spec component K: the turn loop, and is the
// one concrete implementation of action.Runtime that every hook, daemon,
// and default verb handler in the rest of the module is written against.
//
// A Session owns the single mutable world handle (*world.Store), the RNG,
// the daemon scheduler, the parser, and the dispatcher, and wires them
// together the way §4.K describes: read a line, snapshot for undo, parse,
// dispatch, and — for a non-meta command — tick moves and run daemons.
// Registering the combat daemon before any other daemon at Session
// construction time is what gives combat its "fires first" ordering
// guarantee (§4.H); the scheduler itself has no notion of combat.
//
// Output is buffered per turn (Session.Emit/Emitf append to it) and
// drained by Step, matching the "emit buffered output, clear the buffer"
// closing step of the turn loop.
package session
