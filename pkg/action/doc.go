// Package action implements the action-fn protocol of spec component E:
// rooms, objects and verbs may carry a hook that can intercept a frame.
//
// A hook is stored on an entity as a *world.ActionRef — a tagged catalogue
// id, never a closure — so that save/restore never needs to serialise
// behaviour (design note, spec §9). Two backends resolve an ActionRef to a
// callable Hook: the builtin Registry in this package (Go closures keyed
// by string), and pkg/scripting's lua-backed resolver. A Chain combines
// resolvers so the catalogue loader can offer both without pkg/action
// importing pkg/scripting (which would invert the dependency the wrong
// way: scripting depends on action, not the reverse).
//
// Hooks never touch *world.Store directly; they go through the Runtime
// interface, which is implemented by the dispatcher/session layer. This
// keeps the action package free of dependencies on pkg/daemon, pkg/score
// and pkg/combat while still letting a hook register a daemon, kill the
// player, or move an object.
package action
