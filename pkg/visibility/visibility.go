package visibility

import "grue/pkg/world"

// ContainerContentsVisible reports whether a container's contents can be
// seen without opening it: it is open, transparent, or a surface (§4.C).
func ContainerContentsVisible(s *world.Store, id world.EntityId) bool {
	o, err := s.Object(id)
	if err != nil {
		return false
	}
	return o.Flags.Has(world.FlagOpen) || o.Flags.Has(world.FlagTrans) || o.Flags.Has(world.FlagSurface)
}

// VisibleInRoom returns the transitive closure of everything visible in
// room: direct contents, LOCAL_GLOBALS members the room declares, and
// (recursively) the contents of any visible container — skipping
// FlagInvisible entities and not descending into a closed, opaque,
// non-surface container.
func VisibleInRoom(s *world.Store, room world.EntityId) []world.EntityId {
	var out []world.EntityId
	var walk func(id world.EntityId)
	walk = func(id world.EntityId) {
		for _, child := range s.Contents(id) {
			o, err := s.Object(child)
			if err != nil {
				continue // a nested room/global id that isn't itself an object
			}
			if o.Flags.Has(world.FlagInvisible) {
				continue
			}
			out = append(out, child)
			if ContainerContentsVisible(s, child) {
				walk(child)
			}
		}
	}
	walk(room)
	return out
}

// AccessibleToWinner reports whether obj is visible in the current room or
// lies within the winner's inventory subtree (§4.C).
func AccessibleToWinner(s *world.Store, obj world.EntityId) bool {
	for _, id := range VisibleInRoom(s, s.Global.Here) {
		if id == obj {
			return true
		}
	}
	return inSubtree(s, s.Global.WinnerID, obj)
}

// inSubtree reports whether obj is root or a (possibly indirect) child of
// root in the container graph, descending into every container whether
// or not it is open.
func inSubtree(s *world.Store, root, obj world.EntityId) bool {
	if root == obj {
		return true
	}
	for _, child := range s.Contents(root) {
		if inSubtree(s, child, obj) {
			return true
		}
	}
	return false
}

// Lit computes lit(room) per I4: true iff the room itself carries FlagLit,
// or any transitively visible object in the room or in the winner's
// inventory has FlagLight set and FlagOn set.
func Lit(s *world.Store, room world.EntityId) bool {
	r, err := s.Room(room)
	if err != nil {
		return false
	}
	if r.Flags.Has(world.FlagLit) {
		return true
	}
	if hasLitSourceIn(s, room) {
		return true
	}
	return hasLitSourceIn(s, s.Global.WinnerID)
}

// hasLitSourceIn reports whether any object reachable from root has
// FlagLight && FlagOn, descending only into open, transparent or surface
// containers (the same rule VisibleInRoom uses); darkness itself never
// hides a light source.
func hasLitSourceIn(s *world.Store, root world.EntityId) bool {
	for _, child := range s.Contents(root) {
		o, err := s.Object(child)
		if err != nil {
			continue
		}
		if o.Flags.Has(world.FlagLight) && o.Flags.Has(world.FlagOn) {
			return true
		}
		if ContainerContentsVisible(s, child) && hasLitSourceIn(s, child) {
			return true
		}
	}
	return false
}

// Recompute derives lit(here) and writes it to Store.Global.Lit (I4/P8).
// Call this after any operation that adds, removes, or toggles a light
// source, or moves the player to a new room.
func Recompute(s *world.Store) {
	s.SetLit(Lit(s, s.Global.Here))
}
