// Package world holds the flag & entity store (spec component B): the
// typed world state for rooms, objects, the player, and the scalars that
// live outside any single entity (score, moves, here, the daemon-visible
// world flags, ...).
//
// # Entities
//
// Rooms and objects share one symbolic identifier space, EntityId. The
// player ("the winner") is represented as an Object carrying the actor,
// invisible, ndesc and sacred flags (per spec §3) rather than as a fourth
// entity kind — Store.Global.WinnerID names which Object it is.
//
// # Invariants
//
// Store is responsible for I1 (single container, no cycles), I2
// (reachability from a room/winner/LOCAL_GLOBALS/LIMBO root) and I3 (flag
// coherence) at the level of "does not let an illegal move or flag happen
// silently" — MoveTo and SetFlag return errors when a caller tries to
// violate them. I4 (lit is a cached derivation) is intentionally NOT
// computed inside this package: Store only stores the Lit scalar and
// exposes SetLit so that pkg/visibility (which depends on pkg/world, not
// the other way around) can recompute it after a mutation and write it
// back. See DESIGN.md for why this avoids an import cycle while still
// satisfying I4's "the store itself updates it" intent at the call-site
// discipline level (every mutation path that can affect light calls
// visibility.Recompute immediately afterwards).
package world
