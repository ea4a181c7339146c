package movement

import (
	"fmt"
	"testing"

	"grue/pkg/action"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

type fakeRuntime struct {
	store    *world.Store
	emitted  []string
	rolls    []int
	rollIdx  int
	daemons  map[string]int
}

func newFakeRuntime(s *world.Store) *fakeRuntime {
	return &fakeRuntime{store: s, daemons: map[string]int{}}
}

func (f *fakeRuntime) Store() *world.Store { return f.store }
func (f *fakeRuntime) Emit(text string)    { f.emitted = append(f.emitted, text) }
func (f *fakeRuntime) Emitf(format string, args ...any) {
	f.emitted = append(f.emitted, fmt.Sprintf(format, args...))
}
func (f *fakeRuntime) MoveObject(id, newContainer world.EntityId) error {
	return f.store.MoveTo(id, newContainer)
}
func (f *fakeRuntime) SetFlag(id world.EntityId, fl world.Flag) error   { return f.store.SetFlag(id, fl) }
func (f *fakeRuntime) UnsetFlag(id world.EntityId, fl world.Flag) error { return f.store.UnsetFlag(id, fl) }
func (f *fakeRuntime) RecomputeLight()                                 { visibility.Recompute(f.store) }
func (f *fakeRuntime) RegisterDaemon(name string, initialTicks int) error {
	f.daemons[name] = initialTicks
	return nil
}
func (f *fakeRuntime) UnregisterDaemon(name string) { delete(f.daemons, name) }
func (f *fakeRuntime) QueueDaemon(name string, ticks int) error {
	f.daemons[name] = ticks
	return nil
}
func (f *fakeRuntime) Roll(n int) int {
	if f.rollIdx < len(f.rolls) {
		v := f.rolls[f.rollIdx]
		f.rollIdx++
		return v
	}
	return 0
}
func (f *fakeRuntime) Die(message string) error {
	f.store.Global.Deaths++
	f.emitted = append(f.emitted, message)
	return nil
}

var _ action.Runtime = (*fakeRuntime)(nil)

func buildTestWorld(t *testing.T) (*world.Store, world.EntityId, world.EntityId) {
	t.Helper()
	s := world.NewStore()
	const westOfHouse world.EntityId = "west-of-house"
	const forest world.EntityId = "forest"
	const door world.EntityId = "front-door"
	const winner world.EntityId = "winner"

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(s.AddRoom(&world.Room{
		ID: westOfHouse, ShortName: "West of House", Flags: world.NewFlagSet(world.FlagLit),
		Exits: map[string]world.Exit{
			"north": {Kind: world.ExitDirect, To: forest},
			"east":  {Kind: world.ExitDoor, To: "living-room", Door: door, Text: "The door is boarded and you can't remove the boards."},
			"south": {Kind: world.ExitBlocked, Text: "The forest is too dense in that direction."},
			"in":    {Kind: world.ExitConditional, To: "living-room", IfFlag: "gates-open", Text: "The way is barred."},
		},
	}))
	must(s.AddRoom(&world.Room{ID: forest, ShortName: "Forest", Flags: world.NewFlagSet(world.FlagLit)}))
	must(s.AddRoom(&world.Room{ID: "living-room", ShortName: "Living Room", Flags: world.NewFlagSet(world.FlagLit)}))
	must(s.AddObject(&world.Object{ID: door, ShortName: "front door", Flags: world.NewFlagSet(world.FlagDoor), Location: westOfHouse}))
	must(s.AddObject(&world.Object{ID: winner, ShortName: "you", Location: westOfHouse}))

	s.Global.WinnerID = winner
	s.Global.Here = westOfHouse
	s.Global.Lit = true

	return s, westOfHouse, forest
}

func TestGoDirectExitMoves(t *testing.T) {
	s, _, forest := buildTestWorld(t)
	rt := newFakeRuntime(s)

	res, err := Go(rt, action.NewRegistry(), "north")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Moved || res.NewRoom != forest || !res.FirstVisit {
		t.Fatalf("unexpected result: %+v", res)
	}
	if s.Global.Here != forest {
		t.Fatalf("expected winner in forest, got %s", s.Global.Here)
	}
}

func TestGoSecondVisitIsNotFirstVisit(t *testing.T) {
	s, _, forest := buildTestWorld(t)
	rt := newFakeRuntime(s)

	if _, err := Go(rt, action.NewRegistry(), "north"); err != nil {
		t.Fatal(err)
	}
	s.Global.Here = forest
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.MoveTo(s.Global.WinnerID, forest))
	s.Global.Here = "west-of-house"
	must(s.MoveTo(s.Global.WinnerID, "west-of-house"))

	res, err := Go(rt, action.NewRegistry(), "north")
	if err != nil {
		t.Fatal(err)
	}
	if res.FirstVisit {
		t.Fatalf("expected second visit to not be first, got %+v", res)
	}
}

func TestGoBlockedExitEmitsText(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	rt := newFakeRuntime(s)

	res, err := Go(rt, action.NewRegistry(), "south")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moved {
		t.Fatalf("expected blocked exit to not move, got %+v", res)
	}
	if len(rt.emitted) != 1 || rt.emitted[0] != "The forest is too dense in that direction." {
		t.Fatalf("unexpected emitted text: %v", rt.emitted)
	}
}

func TestGoDoorExitBlockedWhenClosed(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	rt := newFakeRuntime(s)

	res, err := Go(rt, action.NewRegistry(), "east")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moved {
		t.Fatalf("expected closed door to block movement, got %+v", res)
	}
}

func TestGoDoorExitOpensWhenDoorOpen(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	rt := newFakeRuntime(s)
	if err := s.SetFlag("front-door", world.FlagOpen); err != nil {
		t.Fatal(err)
	}

	res, err := Go(rt, action.NewRegistry(), "east")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Moved || res.NewRoom != "living-room" {
		t.Fatalf("expected open door to allow movement, got %+v", res)
	}
}

func TestGoConditionalExitGatedOnWorldFlag(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	rt := newFakeRuntime(s)

	res, err := Go(rt, action.NewRegistry(), "in")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moved {
		t.Fatalf("expected conditional exit to block before flag is set, got %+v", res)
	}

	s.Global.WorldFlags["gates-open"] = true
	res, err = Go(rt, action.NewRegistry(), "in")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Moved || res.NewRoom != "living-room" {
		t.Fatalf("expected conditional exit to allow movement once flag set, got %+v", res)
	}
}

func TestGoNoExitInDarkWarnsOfGrue(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	s.Global.Lit = false
	rt := newFakeRuntime(s)

	res, err := Go(rt, action.NewRegistry(), "west")
	if err != nil {
		t.Fatal(err)
	}
	if res.Moved {
		t.Fatalf("unexpected move: %+v", res)
	}
	if len(rt.emitted) != 1 || rt.emitted[0] != "It is pitch black. You are likely to be eaten by a grue." {
		t.Fatalf("unexpected emitted text: %v", rt.emitted)
	}
}

func TestGoFunctionalExitDelegatesToHook(t *testing.T) {
	s, _, _ := buildTestWorld(t)
	room, err := s.Room("west-of-house")
	if err != nil {
		t.Fatal(err)
	}
	room.Exits["down"] = world.Exit{Kind: world.ExitFunctional, Per: "slide-to-cellar"}

	reg := action.NewRegistry()
	reg.Register("slide-to-cellar", action.HookFunc(func(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
		rt.Emit("You slide down the chute.")
		if err := rt.MoveObject(rt.Store().Global.WinnerID, "living-room"); err != nil {
			return action.Fatal, err
		}
		rt.Store().Global.Here = "living-room"
		return action.Handled, nil
	}))

	rt := newFakeRuntime(s)
	res, err := Go(rt, reg, "down")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Moved || res.NewRoom != "living-room" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
