package catalogue

import (
	"testing"

	"grue/pkg/combat"
	"grue/pkg/world"
)

const testWorldYAML = `
seed: 1
scoreMax: 10
finalRoom: stone-barrow
winnerId: winner
here: kitchen
resurrection:
  reviveRoom: kitchen
  scatterRoom: kitchen
rooms:
  - id: kitchen
    shortName: Kitchen
    longDesc: A dingy kitchen.
    flags: [lit]
    exits:
      down:
        kind: direct
        to: cellar
  - id: cellar
    shortName: Cellar
    flags: []
  - id: stone-barrow
    shortName: Stone Barrow
    flags: [lit]
objects:
  - id: winner
    shortName: you
    location: kitchen
  - id: egg
    shortName: jewel-encrusted egg
    synonyms: [egg]
    adjectives: [jewel-encrusted]
    location: kitchen
    flags: [take]
    value: 5
`

func TestLoadWorldBuildsStore(t *testing.T) {
	w, err := LoadWorldBytes([]byte(testWorldYAML))
	if err != nil {
		t.Fatal(err)
	}
	s, err := w.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsRoom("kitchen") || !s.IsRoom("cellar") {
		t.Fatalf("expected both rooms present")
	}
	egg, err := s.Object("egg")
	if err != nil {
		t.Fatal(err)
	}
	if egg.Location != "kitchen" {
		t.Fatalf("expected egg in kitchen, got %s", egg.Location)
	}
	if s.Global.WinnerID != "winner" || s.Global.Here != "kitchen" {
		t.Fatalf("expected winner/here wired from catalogue")
	}
	if s.Global.ScoreMax != 10 {
		t.Fatalf("expected scoreMax 10, got %d", s.Global.ScoreMax)
	}
}

func TestLoadWorldRejectsUnknownFlag(t *testing.T) {
	bad := `
winnerId: winner
here: kitchen
rooms:
  - id: kitchen
    shortName: Kitchen
    flags: [not-a-real-flag]
`
	if _, err := LoadWorldBytes([]byte(bad)); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestLoadWorldRejectsMissingHere(t *testing.T) {
	bad := `
winnerId: winner
here: nowhere
rooms:
  - id: kitchen
    shortName: Kitchen
`
	if _, err := LoadWorldBytes([]byte(bad)); err == nil {
		t.Fatalf("expected an error when here does not name a declared room")
	}
}

func TestBuildResurrectionConvertsRoomIds(t *testing.T) {
	w, err := LoadWorldBytes([]byte(testWorldYAML))
	if err != nil {
		t.Fatal(err)
	}
	r := w.BuildResurrection()
	if r.ReviveRoom != world.EntityId("kitchen") || r.ScatterRoom != world.EntityId("kitchen") {
		t.Fatalf("expected resurrection rooms wired from catalogue, got %+v", r)
	}
}

const testGrammarTOML = `
[[verbs]]
id = "take"
aliases = ["get"]
[[verbs.syntaxes]]
shape = "direct"
allowMultiple = true

[[verbs]]
id = "go"
aliases = []
[[verbs.syntaxes]]
shape = "direction"

[[villains]]
id = "troll"
bestWeapon = "axe"
bestAdv = 2
wakeProb = 25
[villains.messages]
killed = "The troll falls dead."
missed = "You miss the troll."
`

func TestLoadGrammarBuildsParserGrammar(t *testing.T) {
	g, err := LoadGrammarBytes([]byte(testGrammarTOML))
	if err != nil {
		t.Fatal(err)
	}
	pg, err := g.BuildGrammar()
	if err != nil {
		t.Fatal(err)
	}
	if pg.VerbAliases["get"] != "take" {
		t.Fatalf("expected alias get->take, got %q", pg.VerbAliases["get"])
	}
	if _, ok := pg.Templates["take"]; !ok {
		t.Fatalf("expected a take template")
	}
	if pg.DirectionWords["n"] != "north" {
		t.Fatalf("expected default direction words to survive an empty catalogue override")
	}
}

func TestLoadGrammarBuildsVillains(t *testing.T) {
	g, err := LoadGrammarBytes([]byte(testGrammarTOML))
	if err != nil {
		t.Fatal(err)
	}
	villains, err := g.BuildVillains()
	if err != nil {
		t.Fatal(err)
	}
	troll, ok := villains["troll"]
	if !ok {
		t.Fatalf("expected a troll registration")
	}
	if troll.BestWeapon != "axe" || troll.BestAdv != 2 {
		t.Fatalf("expected troll's best weapon/advantage wired, got %+v", troll)
	}
	if troll.Messages[combat.Missed] == "" {
		t.Fatalf("expected the Missed message to be wired")
	}
}

func TestLoadGrammarRejectsUnknownCombatResult(t *testing.T) {
	bad := `
[[verbs]]
id = "take"
[[verbs.syntaxes]]
shape = "direct"

[[villains]]
id = "troll"
[villains.messages]
not-a-real-result = "oops"
`
	g, err := LoadGrammarBytes([]byte(bad))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.BuildVillains(); err == nil {
		t.Fatalf("expected an error for an unrecognised combat result key")
	}
}
