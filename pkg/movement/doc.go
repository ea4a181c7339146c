// Package movement implements spec component G: resolving a direction
// word against the current room's exits and relocating the winner.
//
// An exit is a tagged union (world.Exit): a direct link, a permanently
// blocked path, a conditional link gated on a named world flag, a door
// whose own open/closed flag gates the link, or a functional exit that
// hands the entire move to a named builtin hook (Per) — used for the
// handful of exits that do something stranger than relocate the winner
// (the dam's wall of water, the slide into the cellar).
//
// Go sets a destination room's touch flag before anything else happens
// in that room, and before this package returns: the first-visit state
// that produces a long description is decided at the moment of arrival,
// not later when pkg/dispatch goes to render it. This is the movement
// half of the general touch-before-describe discipline (every room's long
// description is preceded by its touch flag being set). Objects are not
// covered: pkg/dispatch's look layer reads an object's touch flag to
// choose its first description and does not set it.
package movement
