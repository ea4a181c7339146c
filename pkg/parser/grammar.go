package parser

// SyntaxShape is the slot shape a verb syntax accepts.
type SyntaxShape int

const (
	ShapeNone SyntaxShape = iota
	ShapeDirectOnly
	ShapeDirectIndirect // two noun phrases, no preposition: "give troll sword"
	ShapeDirectPrepIndirect
	ShapeDirection
)

// Syntax describes one accepted slot shape for a verb template.
type Syntax struct {
	Shape               SyntaxShape
	Preposition         string // required preposition word, for ShapeDirectPrepIndirect
	AllowMultipleDirect bool   // whether more than one resolved direct object is legal
	RequiresLight       bool   // verb needs a lit room (e.g. look, read, examine)
}

// VerbTemplate is the catalogue's description of one verb: its id and the
// syntaxes it accepts, tried in declaration order (first match wins).
type VerbTemplate struct {
	VerbID   string
	Syntaxes []Syntax
}

// Grammar is the static, catalogue-supplied grammar the parser matches
// against: verb aliases (synonym -> canonical verb id), verb templates
// keyed by canonical id, the set of words recognised as prepositions, and
// direction aliases (n -> north, ...).
type Grammar struct {
	VerbAliases     map[string]string
	Templates       map[string]*VerbTemplate
	Prepositions    map[string]bool
	DirectionWords  map[string]string // alias -> canonical direction
	NoiseWords      map[string]bool
	MetaVerbs       map[string]bool
}

// DefaultDirectionWords is the standard direction-alias table used by the
// bundled test catalogue and available to any catalogue that does not
// override it.
func DefaultDirectionWords() map[string]string {
	return map[string]string{
		"n": "north", "north": "north",
		"s": "south", "south": "south",
		"e": "east", "east": "east",
		"w": "west", "west": "west",
		"ne": "northeast", "northeast": "northeast",
		"nw": "northwest", "northwest": "northwest",
		"se": "southeast", "southeast": "southeast",
		"sw": "southwest", "southwest": "southwest",
		"u": "up", "up": "up",
		"d": "down", "down": "down",
		"in": "in", "out": "out",
	}
}

// DefaultNoiseWords is the standard noise-word table (§4.D stage 1).
func DefaultNoiseWords() map[string]bool {
	return map[string]bool{"the": true, "a": true, "an": true, "of": true}
}

// DefaultMetaVerbs is the closed set of meta-verbs (§4.F) that bypass
// object/room hooks and never tick the clock.
func DefaultMetaVerbs() map[string]bool {
	verbs := []string{
		"verbose", "brief", "super-brief", "version", "diagnose", "score",
		"quit", "verify", "restart", "save", "restore", "script", "unscript",
	}
	out := make(map[string]bool, len(verbs))
	for _, v := range verbs {
		out[v] = true
	}
	return out
}
