package world

import "fmt"

// BadIDError is raised when a caller addresses an entity id the store does
// not know about. Per spec §7 this is a programmer/catalogue bug: the
// store always returns it as a normal error rather than panicking itself,
// leaving any panic-or-swallow policy to the caller; pkg/session reports
// it as turn output like any other dispatch error.
type BadIDError struct {
	ID EntityId
}

func (e *BadIDError) Error() string {
	return fmt.Sprintf("world: unknown entity id %q", e.ID)
}

// Verbosity is the global narration mode (§3).
type Verbosity int

const (
	VerbosityBrief Verbosity = iota
	VerbosityVerbose
	VerbositySuperBrief
)

// GlobalState holds scalars that live outside any single entity (§3).
type GlobalState struct {
	Score     int
	BaseScore int
	Moves     int
	Deaths    int
	Here      EntityId
	Lit       bool // cached lit(here); see doc.go for why this package doesn't compute it
	It        *EntityId
	Verbosity Verbosity

	// WorldFlags holds named world flags such as gates-open, low-tide,
	// gate-flag, rainbow-flag, magic-flag, troll-flag, cyclops-flag, won,
	// rug-moved, loud-flag, mirror-mung.
	WorldFlags map[string]bool

	WaterLevel       int
	MatchCount       int
	LampStageIndex   int
	CandleStageIndex int

	// DarkTurns counts consecutive move attempts made while the current
	// room is unlit (§4.G); it resets to 0 the instant the room is lit
	// again and reaching 2 means a grue has gotten the player.
	DarkTurns int

	Won      bool
	Finished bool
	Quit     bool

	WinnerID EntityId

	// ScoreMax is the catalogue-declared maximum score; reaching it sets
	// Won (§4.J) and it scales the player's combat fight strength (§4.I).
	ScoreMax int

	// WakeProbs tracks each unconscious villain's current wake
	// probability (starts at the villain's catalogue wake_prob and grows
	// by 25 every turn it stays unconscious, §4.I Awakening). Absent
	// entries mean "use the catalogue default".
	WakeProbs map[EntityId]int
}

// Store is the bulk storage for rooms and objects, plus the global state
// scalars (spec component B).
type Store struct {
	Rooms   map[EntityId]*Room
	Objects map[EntityId]*Object
	Global  GlobalState

	nextAcquireSeq uint64
}

// NewStore creates an empty store. Global.WorldFlags is initialised so
// callers never need a nil check before indexing it.
func NewStore() *Store {
	return &Store{
		Rooms:   make(map[EntityId]*Room),
		Objects: make(map[EntityId]*Object),
		Global: GlobalState{
			WorldFlags: make(map[string]bool),
			WakeProbs:  make(map[EntityId]int),
		},
	}
}

// AddRoom registers a room at world-load time. Rooms are created once and
// never destroyed (§3 Lifecycle).
func (s *Store) AddRoom(r *Room) error {
	if r.ID == "" {
		return fmt.Errorf("world: room id cannot be empty")
	}
	if r.Flags == nil {
		r.Flags = FlagSet{}
	}
	if r.Exits == nil {
		r.Exits = map[string]Exit{}
	}
	s.Rooms[r.ID] = r
	return nil
}

// AddObject registers an object at world-load time.
func (s *Store) AddObject(o *Object) error {
	if o.ID == "" {
		return fmt.Errorf("world: object id cannot be empty")
	}
	if o.Flags == nil {
		o.Flags = FlagSet{}
	}
	s.Objects[o.ID] = o
	return nil
}

// Room looks up a room, returning *BadIDError if unknown.
func (s *Store) Room(id EntityId) (*Room, error) {
	r, ok := s.Rooms[id]
	if !ok {
		return nil, &BadIDError{ID: id}
	}
	return r, nil
}

// Object looks up an object, returning *BadIDError if unknown.
func (s *Store) Object(id EntityId) (*Object, error) {
	o, ok := s.Objects[id]
	if !ok {
		return nil, &BadIDError{ID: id}
	}
	return o, nil
}

// IsRoom reports whether id names a room.
func (s *Store) IsRoom(id EntityId) bool {
	_, ok := s.Rooms[id]
	return ok
}

// IsObject reports whether id names an object.
func (s *Store) IsObject(id EntityId) bool {
	_, ok := s.Objects[id]
	return ok
}

// Here returns the player's current room.
func (s *Store) Here() (*Room, error) {
	return s.Room(s.Global.Here)
}

// Winner returns the player object.
func (s *Store) Winner() (*Object, error) {
	return s.Object(s.Global.WinnerID)
}

// Flag dispatches a flag read on a room or object id.
func (s *Store) Flag(id EntityId, f Flag) (bool, error) {
	if r, ok := s.Rooms[id]; ok {
		return r.Flags.Has(f), nil
	}
	if o, ok := s.Objects[id]; ok {
		return o.Flags.Has(f), nil
	}
	return false, &BadIDError{ID: id}
}

// SetFlag sets a flag on a room or object id, enforcing I3 flag coherence
// for the couple of flags that have a hard prerequisite.
func (s *Store) SetFlag(id EntityId, f Flag) error {
	if r, ok := s.Rooms[id]; ok {
		r.Flags.Set(f)
		return nil
	}
	if o, ok := s.Objects[id]; ok {
		if f == FlagOpen && !o.Flags.Has(FlagCont) && !o.Flags.Has(FlagDoor) {
			return fmt.Errorf("world: %s cannot be open, it is neither a container nor a door", id)
		}
		if f == FlagOn && o.Flags.Has(FlagBurnedOut) {
			return fmt.Errorf("world: %s is burned out and cannot be switched on", id)
		}
		if f == FlagOn && !o.Flags.Has(FlagLight) {
			return fmt.Errorf("world: %s is not a light source and cannot be switched on", id)
		}
		o.Flags.Set(f)
		return nil
	}
	return &BadIDError{ID: id}
}

// UnsetFlag clears a flag on a room or object id.
func (s *Store) UnsetFlag(id EntityId, f Flag) error {
	if r, ok := s.Rooms[id]; ok {
		r.Flags.Unset(f)
		return nil
	}
	if o, ok := s.Objects[id]; ok {
		o.Flags.Unset(f)
		return nil
	}
	return &BadIDError{ID: id}
}

// HereFlag reads a flag on the current room.
func (s *Store) HereFlag(f Flag) (bool, error) {
	return s.Flag(s.Global.Here, f)
}

// WinnerFlag reads a flag on the player.
func (s *Store) WinnerFlag(f Flag) (bool, error) {
	return s.Flag(s.Global.WinnerID, f)
}

// MoveTo updates an object's logical location, preserving I1 (single
// container, no cycles) and bumping the acquisition sequence counter used
// to reproduce "most recently acquired first" inventory ordering.
func (s *Store) MoveTo(id, newContainer EntityId) error {
	o, ok := s.Objects[id]
	if !ok {
		return &BadIDError{ID: id}
	}
	if newContainer != Limbo && newContainer != LocalGlobals {
		if !s.IsRoom(newContainer) && !s.IsObject(newContainer) {
			return &BadIDError{ID: newContainer}
		}
		if s.wouldCycle(id, newContainer) {
			return fmt.Errorf("world: moving %s into %s would create a container cycle", id, newContainer)
		}
	}
	o.Location = newContainer
	s.nextAcquireSeq++
	o.AcquireSeq = s.nextAcquireSeq
	return nil
}

// wouldCycle reports whether placing id inside newContainer would make id
// its own ancestor in the container graph.
func (s *Store) wouldCycle(id, newContainer EntityId) bool {
	cur := newContainer
	for {
		if cur == id {
			return true
		}
		next, ok := s.Objects[cur]
		if !ok {
			return false
		}
		cur = next.Location
	}
}

// Contents returns the direct children of id: objects whose Location is
// id, plus — when id is a room — the room's LOCAL_GLOBALS members.
func (s *Store) Contents(id EntityId) []EntityId {
	var out []EntityId
	for oid, o := range s.Objects {
		if o.Location == id {
			out = append(out, oid)
		}
	}
	if r, ok := s.Rooms[id]; ok {
		out = append(out, r.Globals...)
	}
	return out
}

// Size returns an object's own size, defaulting to 0 when unset.
func (s *Store) Size(id EntityId) (int, error) {
	o, err := s.Object(id)
	if err != nil {
		return 0, err
	}
	if o.Size == nil {
		return 0, nil
	}
	return *o.Size, nil
}

// Weight returns a container's effective weight: its own size plus the
// summed weight of its direct children (recursively).
func (s *Store) Weight(id EntityId) (int, error) {
	own, err := s.Size(id)
	if err != nil {
		return 0, err
	}
	total := own
	for _, child := range s.Contents(id) {
		if !s.IsObject(child) {
			continue
		}
		w, err := s.Weight(child)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}

// Capacity returns an object's declared capacity, or -1 (unbounded) when unset.
func (s *Store) Capacity(id EntityId) (int, error) {
	o, err := s.Object(id)
	if err != nil {
		return 0, err
	}
	if o.Capacity == nil {
		return -1, nil
	}
	return *o.Capacity, nil
}

// SetLit writes the cached lit(here) scalar. Called by pkg/visibility
// immediately after any mutation it determines is light-relevant (I4/P8).
func (s *Store) SetLit(lit bool) {
	s.Global.Lit = lit
}

// Clone deep-copies the store: every Room and Object (and their flag/exit
// sets), plus GlobalState's own maps and the It pointer. Used by
// pkg/session for the undo stack (§3 Lifecycle, P4) — cloning a plain
// struct graph is simpler and cheaper here than journaling individual
// mutations, and the store is small enough that per-command copying is
// not a hot path.
func (s *Store) Clone() *Store {
	out := &Store{
		Rooms:          make(map[EntityId]*Room, len(s.Rooms)),
		Objects:        make(map[EntityId]*Object, len(s.Objects)),
		Global:         s.Global,
		nextAcquireSeq: s.nextAcquireSeq,
	}
	for id, r := range s.Rooms {
		cp := *r
		cp.Flags = cloneFlagSet(r.Flags)
		cp.Exits = make(map[string]Exit, len(r.Exits))
		for dir, ex := range r.Exits {
			cp.Exits[dir] = ex
		}
		cp.Globals = append([]EntityId(nil), r.Globals...)
		out.Rooms[id] = &cp
	}
	for id, o := range s.Objects {
		cp := *o
		cp.Flags = cloneFlagSet(o.Flags)
		cp.Synonyms = append([]string(nil), o.Synonyms...)
		cp.Adjectives = append([]string(nil), o.Adjectives...)
		out.Objects[id] = &cp
	}
	out.Global.WorldFlags = make(map[string]bool, len(s.Global.WorldFlags))
	for k, v := range s.Global.WorldFlags {
		out.Global.WorldFlags[k] = v
	}
	out.Global.WakeProbs = make(map[EntityId]int, len(s.Global.WakeProbs))
	for k, v := range s.Global.WakeProbs {
		out.Global.WakeProbs[k] = v
	}
	if s.Global.It != nil {
		it := *s.Global.It
		out.Global.It = &it
	}
	return out
}

func cloneFlagSet(fs FlagSet) FlagSet {
	out := make(FlagSet, len(fs))
	for f := range fs {
		out[f] = struct{}{}
	}
	return out
}
