// Package mapexport renders a debug SVG of the room graph: a node per
// room, an edge per exit, colored by exit kind. It exists purely as a
// map-authoring aid — nothing in the turn loop reads an export's output —
// adapted from the teacher's dungeon-graph SVG renderer to draw the rooms
// and exits of a *world.Store instead of a generated ADG.
package mapexport
