package catalogue

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"grue/pkg/combat"
	"grue/pkg/parser"
	"grue/pkg/world"
)

// SyntaxDef is the TOML shape of one accepted verb syntax. Shape is one of
// "none", "direct", "direct-indirect", "direct-prep-indirect", "direction".
type SyntaxDef struct {
	Shape         string `toml:"shape"`
	Preposition   string `toml:"preposition,omitempty"`
	AllowMultiple bool   `toml:"allowMultiple,omitempty"`
	RequiresLight bool   `toml:"requiresLight,omitempty"`
}

var syntaxShapes = map[string]parser.SyntaxShape{
	"none":                 parser.ShapeNone,
	"direct":               parser.ShapeDirectOnly,
	"direct-indirect":      parser.ShapeDirectIndirect,
	"direct-prep-indirect": parser.ShapeDirectPrepIndirect,
	"direction":            parser.ShapeDirection,
}

func (sd SyntaxDef) build() (parser.Syntax, error) {
	shape, ok := syntaxShapes[sd.Shape]
	if !ok {
		return parser.Syntax{}, fmt.Errorf("unknown syntax shape %q", sd.Shape)
	}
	return parser.Syntax{
		Shape:               shape,
		Preposition:         sd.Preposition,
		AllowMultipleDirect: sd.AllowMultiple,
		RequiresLight:       sd.RequiresLight,
	}, nil
}

// VerbDef is the TOML shape of one verb: its canonical id, the words that
// resolve to it, and the syntaxes it accepts, tried in declaration order.
type VerbDef struct {
	ID       string      `toml:"id"`
	Aliases  []string    `toml:"aliases"`
	Syntaxes []SyntaxDef `toml:"syntaxes"`
}

// VillainDef is the TOML shape of one villain's combat registration.
type VillainDef struct {
	ID         string            `toml:"id"`
	BestWeapon string            `toml:"bestWeapon,omitempty"`
	BestAdv    int               `toml:"bestAdv,omitempty"`
	WakeProb   int               `toml:"wakeProb,omitempty"`
	Messages   map[string]string `toml:"messages,omitempty"`
}

var resultKindsByName = map[string]combat.ResultKind{
	"missed":        combat.Missed,
	"stagger":       combat.Stagger,
	"light-wound":   combat.LightWound,
	"serious-wound": combat.SeriousWound,
	"unconscious":   combat.Unconscious,
	"killed":        combat.Killed,
	"lose-weapon":   combat.LoseWeapon,
	"hesitate":      combat.Hesitate,
	"sitting-duck":  combat.SittingDuck,
}

func (vd VillainDef) build() (combat.VillainReg, error) {
	msgs := combat.Messages{}
	for k, v := range vd.Messages {
		kind, ok := resultKindsByName[k]
		if !ok {
			return combat.VillainReg{}, fmt.Errorf("villain %s: unknown combat result %q", vd.ID, k)
		}
		msgs[kind] = v
	}
	return combat.VillainReg{
		ID:         world.EntityId(vd.ID),
		BestWeapon: world.EntityId(vd.BestWeapon),
		BestAdv:    vd.BestAdv,
		WakeProb:   vd.WakeProb,
		Messages:   msgs,
	}, nil
}

// Grammar is the TOML-authored verb/combat catalogue: the grammar the
// parser and dispatcher need, plus every villain's combat registration.
type Grammar struct {
	Directions map[string]string `toml:"directions,omitempty"`
	Noise      []string          `toml:"noise,omitempty"`
	Meta       []string          `toml:"meta,omitempty"`
	Verbs      []VerbDef         `toml:"verbs"`
	Villains   []VillainDef      `toml:"villains,omitempty"`
}

// LoadGrammar reads and parses a TOML verb/combat catalogue from path.
func LoadGrammar(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: reading grammar file: %w", err)
	}
	return LoadGrammarBytes(data)
}

// LoadGrammarBytes parses a TOML verb/combat catalogue from raw bytes.
func LoadGrammarBytes(data []byte) (*Grammar, error) {
	var g Grammar
	if err := toml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("catalogue: parsing grammar TOML: %w", err)
	}
	if len(g.Verbs) == 0 {
		return nil, fmt.Errorf("catalogue: grammar declares no verbs")
	}
	return &g, nil
}

// BuildGrammar materializes the TOML catalogue into a *parser.Grammar.
// Direction words, noise words and meta-verbs fall back to the package
// defaults when the catalogue omits them, so a minimal test fixture does
// not need to restate the standard compass and noise-word tables.
func (g *Grammar) BuildGrammar() (*parser.Grammar, error) {
	pg := &parser.Grammar{
		VerbAliases:    map[string]string{},
		Templates:      map[string]*parser.VerbTemplate{},
		Prepositions:   map[string]bool{},
		DirectionWords: parser.DefaultDirectionWords(),
		NoiseWords:     parser.DefaultNoiseWords(),
		MetaVerbs:      parser.DefaultMetaVerbs(),
	}
	if len(g.Directions) > 0 {
		pg.DirectionWords = g.Directions
	}
	if len(g.Noise) > 0 {
		nw := make(map[string]bool, len(g.Noise))
		for _, w := range g.Noise {
			nw[w] = true
		}
		pg.NoiseWords = nw
	}
	if len(g.Meta) > 0 {
		mv := make(map[string]bool, len(g.Meta))
		for _, w := range g.Meta {
			mv[w] = true
		}
		pg.MetaVerbs = mv
	}

	for _, vd := range g.Verbs {
		if vd.ID == "" {
			return nil, fmt.Errorf("verb with empty id")
		}
		tmpl := &parser.VerbTemplate{VerbID: vd.ID}
		for _, sd := range vd.Syntaxes {
			syn, err := sd.build()
			if err != nil {
				return nil, fmt.Errorf("verb %s: %w", vd.ID, err)
			}
			tmpl.Syntaxes = append(tmpl.Syntaxes, syn)
			if syn.Preposition != "" {
				pg.Prepositions[syn.Preposition] = true
			}
		}
		pg.Templates[vd.ID] = tmpl
		pg.VerbAliases[vd.ID] = vd.ID
		for _, alias := range vd.Aliases {
			pg.VerbAliases[alias] = vd.ID
		}
	}
	return pg, nil
}

// BuildVillains materializes the TOML catalogue's villain registrations,
// keyed by villain id, for Dispatcher.RegisterVillain / Session.BindCombat.
func (g *Grammar) BuildVillains() (map[world.EntityId]combat.VillainReg, error) {
	out := make(map[world.EntityId]combat.VillainReg, len(g.Villains))
	for _, vd := range g.Villains {
		reg, err := vd.build()
		if err != nil {
			return nil, err
		}
		out[reg.ID] = reg
	}
	return out, nil
}
