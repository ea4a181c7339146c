package world

import "fmt"

// EntityId is an interned short name shared by rooms, objects and the
// player (mailbox, living-room, troll, ...).
type EntityId string

// Pseudo-location tokens used as Object.Location values. They are not
// entities themselves and never appear as keys in Store.Rooms/Objects.
const (
	// LocalGlobals is the location of an object that is visible from
	// multiple rooms (the house, the tree, the river); a room declares
	// which globals it sees via Room.Globals.
	LocalGlobals EntityId = "LOCAL-GLOBALS"

	// Limbo is the sink location for destroyed entities.
	Limbo EntityId = "LIMBO"
)

// ActionRef is a tagged pointer to an action hook: either a built-in Go
// closure registered under Key in pkg/action's registry, or a scripted
// hook (Backend "lua") resolved through pkg/scripting. Storing a catalogue
// id instead of a closure is what makes save/restore trivial (design note,
// spec §9): only Backend+Key needs to round-trip, and hooks are re-bound
// from the static catalogue on load.
type ActionRef struct {
	Backend string `yaml:"backend" json:"backend"` // "builtin" | "lua"
	Key     string `yaml:"key" json:"key"`
}

// ExitKind distinguishes the exit-descriptor variants of spec §4.G.
type ExitKind int

const (
	ExitDirect ExitKind = iota
	ExitBlocked
	ExitConditional
	ExitDoor
	ExitFunctional
)

// Exit is a tagged union describing one room exit. Which fields are
// meaningful depends on Kind:
//
//	ExitDirect:      To
//	ExitBlocked:     Text
//	ExitConditional: To, IfFlag, Text (else_text)
//	ExitDoor:        To, Door, Text (else_text)
//	ExitFunctional:  Per
type Exit struct {
	Kind   ExitKind `yaml:"kind" json:"kind"`
	To     EntityId `yaml:"to,omitempty" json:"to,omitempty"`
	Text   string   `yaml:"text,omitempty" json:"text,omitempty"`
	IfFlag string   `yaml:"ifFlag,omitempty" json:"ifFlag,omitempty"`
	Door   EntityId `yaml:"door,omitempty" json:"door,omitempty"`
	Per    string   `yaml:"per,omitempty" json:"per,omitempty"`
}

// Room is a node in the world graph.
type Room struct {
	ID        EntityId
	ShortName string
	LongDesc  string
	Flags     FlagSet
	Exits     map[string]Exit // direction name -> exit descriptor
	Globals   []EntityId      // LOCAL_GLOBALS objects this room can see
	Value     int
	Action    *ActionRef
}

// String returns a human-readable representation, matching the teacher's
// Room.String convention.
func (r *Room) String() string {
	return fmt.Sprintf("Room[%s: %q, value=%d]", r.ID, r.ShortName, r.Value)
}

// Object is a takeable or fixed thing: furniture, treasure, a door, a
// villain (when it carries FlagActor), or the player (the winner).
type Object struct {
	ID          EntityId
	Synonyms    []string
	Adjectives  []string
	ShortName   string
	Flags       FlagSet
	Location    EntityId // logical container: a room id, another object id, the winner id, LocalGlobals, or Limbo
	Capacity    *int
	Size        *int
	Value       *int
	TValue      *int
	Strength    *int // wound counter (player) or combat strength (villain)
	Text        *string
	FDesc       *string // first-description, shown before Touch
	LDesc       *string // long description, shown once touched
	Action      *ActionRef
	AcquireSeq  uint64 // bumped on every MoveTo; higher = more recently acquired
}

// String returns a human-readable representation.
func (o *Object) String() string {
	return fmt.Sprintf("Object[%s: %q @ %s]", o.ID, o.ShortName, o.Location)
}

// MatchesNounPhrase reports whether every adjective in adjs and the noun n
// match this object's adjective/synonym sets (§4.D object resolution).
func (o *Object) MatchesNounPhrase(adjs []string, n string) bool {
	if n != "" {
		found := false
		for _, syn := range o.Synonyms {
			if syn == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, want := range adjs {
		found := false
		for _, have := range o.Adjectives {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
