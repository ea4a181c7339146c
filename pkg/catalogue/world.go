package catalogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"grue/pkg/score"
	"grue/pkg/world"
)

// ActionDef names a catalogue-bound action hook: Backend is "builtin" or
// "lua", Key is the hook id within that backend's registry.
type ActionDef struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
}

func (a *ActionDef) ref() *world.ActionRef {
	if a == nil || a.Key == "" {
		return nil
	}
	return &world.ActionRef{Backend: a.Backend, Key: a.Key}
}

// ExitDef is the YAML shape of one room exit; Kind is one of "direct",
// "blocked", "conditional", "door", "functional".
type ExitDef struct {
	Kind   string `yaml:"kind"`
	To     string `yaml:"to,omitempty"`
	Text   string `yaml:"text,omitempty"`
	IfFlag string `yaml:"ifFlag,omitempty"`
	Door   string `yaml:"door,omitempty"`
	Per    string `yaml:"per,omitempty"`
}

var exitKinds = map[string]world.ExitKind{
	"direct":      world.ExitDirect,
	"blocked":     world.ExitBlocked,
	"conditional": world.ExitConditional,
	"door":        world.ExitDoor,
	"functional":  world.ExitFunctional,
}

func (e ExitDef) build() (world.Exit, error) {
	kind, ok := exitKinds[e.Kind]
	if !ok {
		return world.Exit{}, fmt.Errorf("catalogue: unknown exit kind %q", e.Kind)
	}
	return world.Exit{
		Kind:   kind,
		To:     world.EntityId(e.To),
		Text:   e.Text,
		IfFlag: e.IfFlag,
		Door:   world.EntityId(e.Door),
		Per:    e.Per,
	}, nil
}

// RoomDef is the YAML shape of one room.
type RoomDef struct {
	ID        string             `yaml:"id"`
	ShortName string             `yaml:"shortName"`
	LongDesc  string             `yaml:"longDesc,omitempty"`
	Flags     []string           `yaml:"flags,omitempty"`
	Exits     map[string]ExitDef `yaml:"exits,omitempty"`
	Globals   []string           `yaml:"globals,omitempty"`
	Value     int                `yaml:"value,omitempty"`
	Action    *ActionDef         `yaml:"action,omitempty"`
}

func (r RoomDef) build() (*world.Room, error) {
	flags, err := flagSet(r.Flags)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", r.ID, err)
	}
	exits := make(map[string]world.Exit, len(r.Exits))
	for dir, ed := range r.Exits {
		ex, err := ed.build()
		if err != nil {
			return nil, fmt.Errorf("room %s exit %s: %w", r.ID, dir, err)
		}
		exits[dir] = ex
	}
	globals := make([]world.EntityId, len(r.Globals))
	for i, g := range r.Globals {
		globals[i] = world.EntityId(g)
	}
	return &world.Room{
		ID:        world.EntityId(r.ID),
		ShortName: r.ShortName,
		LongDesc:  r.LongDesc,
		Flags:     flags,
		Exits:     exits,
		Globals:   globals,
		Value:     r.Value,
		Action:    r.Action.ref(),
	}, nil
}

// ObjectDef is the YAML shape of one object (or the player, which is an
// object with no distinguishing catalogue field beyond its id matching
// Catalogue.WinnerID).
type ObjectDef struct {
	ID         string     `yaml:"id"`
	Synonyms   []string   `yaml:"synonyms,omitempty"`
	Adjectives []string   `yaml:"adjectives,omitempty"`
	ShortName  string     `yaml:"shortName"`
	Location   string     `yaml:"location"`
	Flags      []string   `yaml:"flags,omitempty"`
	Capacity   *int       `yaml:"capacity,omitempty"`
	Size       *int       `yaml:"size,omitempty"`
	Value      *int       `yaml:"value,omitempty"`
	TValue     *int       `yaml:"tvalue,omitempty"`
	Strength   *int       `yaml:"strength,omitempty"`
	Text       *string    `yaml:"text,omitempty"`
	FDesc      *string    `yaml:"fdesc,omitempty"`
	LDesc      *string    `yaml:"ldesc,omitempty"`
	Action     *ActionDef `yaml:"action,omitempty"`
}

func (o ObjectDef) build() (*world.Object, error) {
	flags, err := flagSet(o.Flags)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", o.ID, err)
	}
	return &world.Object{
		ID:         world.EntityId(o.ID),
		Synonyms:   o.Synonyms,
		Adjectives: o.Adjectives,
		ShortName:  o.ShortName,
		Flags:      flags,
		Location:   world.EntityId(o.Location),
		Capacity:   o.Capacity,
		Size:       o.Size,
		Value:      o.Value,
		TValue:     o.TValue,
		Strength:   o.Strength,
		Text:       o.Text,
		FDesc:      o.FDesc,
		LDesc:      o.LDesc,
		Action:     o.Action.ref(),
	}, nil
}

func flagSet(names []string) (world.FlagSet, error) {
	fs := world.FlagSet{}
	for _, n := range names {
		f := world.Flag(n)
		if !world.IsKnownFlag(f) {
			return nil, fmt.Errorf("unknown flag %q", n)
		}
		fs.Set(f)
	}
	return fs, nil
}

// Resurrection is the YAML shape of the death-path destinations (§4.J).
type Resurrection struct {
	ReviveRoom  string `yaml:"reviveRoom"`
	ScatterRoom string `yaml:"scatterRoom"`
}

// World is the YAML-authored world catalogue: rooms, objects, and the
// handful of global scalars a session needs before the first command.
type World struct {
	Seed         uint64       `yaml:"seed"`
	ScoreMax     int          `yaml:"scoreMax"`
	FinalRoom    string       `yaml:"finalRoom,omitempty"`
	WinnerID     string       `yaml:"winnerId"`
	Here         string       `yaml:"here"`
	Resurrection Resurrection `yaml:"resurrection"`
	Rooms        []RoomDef    `yaml:"rooms"`
	Objects      []ObjectDef  `yaml:"objects"`
}

// LoadWorld reads and parses a YAML world catalogue from path.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: reading world file: %w", err)
	}
	return LoadWorldBytes(data)
}

// LoadWorldBytes parses a YAML world catalogue from raw bytes.
func LoadWorldBytes(data []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("catalogue: parsing world YAML: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("catalogue: validating world: %w", err)
	}
	return &w, nil
}

// Validate checks the catalogue is internally consistent before Build is
// attempted: every room/object id is unique, every flag name is known, and
// the winner/starting room and any non-empty resurrection targets name
// real entities.
func (w *World) Validate() error {
	if w.WinnerID == "" {
		return fmt.Errorf("winnerId is required")
	}
	if w.Here == "" {
		return fmt.Errorf("here is required")
	}
	seen := map[string]bool{}
	for _, r := range w.Rooms {
		if r.ID == "" {
			return fmt.Errorf("room with empty id")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate entity id %q", r.ID)
		}
		if _, err := flagSet(r.Flags); err != nil {
			return fmt.Errorf("room %s: %w", r.ID, err)
		}
		seen[r.ID] = true
	}
	for _, o := range w.Objects {
		if o.ID == "" {
			return fmt.Errorf("object with empty id")
		}
		if seen[o.ID] {
			return fmt.Errorf("duplicate entity id %q", o.ID)
		}
		if _, err := flagSet(o.Flags); err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
		seen[o.ID] = true
	}
	if !seen[w.Here] {
		return fmt.Errorf("here %q does not name a declared room", w.Here)
	}
	if !seen[w.WinnerID] {
		return fmt.Errorf("winnerId %q does not name a declared entity", w.WinnerID)
	}
	for _, id := range []string{w.Resurrection.ReviveRoom, w.Resurrection.ScatterRoom} {
		if id != "" && !seen[id] {
			return fmt.Errorf("resurrection target %q does not name a declared entity", id)
		}
	}
	return nil
}

// Build materializes the catalogue into a *world.Store ready for
// pkg/session.New.
func (w *World) Build() (*world.Store, error) {
	s := world.NewStore()
	for _, rd := range w.Rooms {
		r, err := rd.build()
		if err != nil {
			return nil, err
		}
		if err := s.AddRoom(r); err != nil {
			return nil, err
		}
	}
	for _, od := range w.Objects {
		o, err := od.build()
		if err != nil {
			return nil, err
		}
		if err := s.AddObject(o); err != nil {
			return nil, err
		}
	}
	s.Global.WinnerID = world.EntityId(w.WinnerID)
	s.Global.Here = world.EntityId(w.Here)
	s.Global.ScoreMax = w.ScoreMax
	return s, nil
}

// BuildResurrection converts the YAML resurrection block into the form
// pkg/score expects.
func (w *World) BuildResurrection() score.Resurrection {
	return score.Resurrection{
		ReviveRoom:  world.EntityId(w.Resurrection.ReviveRoom),
		ScatterRoom: world.EntityId(w.Resurrection.ScatterRoom),
	}
}
