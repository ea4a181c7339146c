// Package hooks holds the builtin action.Hook closures and daemon.Func
// bodies for the handful of catalogue entities whose behaviour can't be
// expressed by a default verb handler or a plain flag/exit descriptor:
// the mailbox's custom open text, the trap door's one-way slam, the dam's
// bolt-and-wrench drain sequence, the loud room's echo, and the troll's
// death. Wire registers all of them against a builtin registry and a
// session's daemon definitions; a catalogue's world.yaml/grammar.toml then
// only needs to reference them by key ("builtin"/"mailbox-open", and so
// on).
package hooks
