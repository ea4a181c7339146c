package dispatch

import (
	"fmt"
	"testing"

	"grue/pkg/action"
	"grue/pkg/parser"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

type fakeRuntime struct {
	store   *world.Store
	emitted []string
	daemons map[string]int
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
func (f *fakeRuntime) Roll(n int) int { return 0 }
func (f *fakeRuntime) Die(message string) error {
	f.emitted = append(f.emitted, message)
	return nil
}

var _ action.Runtime = (*fakeRuntime)(nil)

func testGrammar() *parser.Grammar {
	return &parser.Grammar{
		VerbAliases:    map[string]string{"take": "take", "get": "take", "drop": "drop", "look": "look"},
		DirectionWords: parser.DefaultDirectionWords(),
		NoiseWords:     parser.DefaultNoiseWords(),
		MetaVerbs:      parser.DefaultMetaVerbs(),
	}
}

func buildWorld(t *testing.T) (*world.Store, world.EntityId, world.EntityId) {
	t.Helper()
	s := world.NewStore()
	const kitchen world.EntityId = "kitchen"
	const winner world.EntityId = "winner"
	const sack world.EntityId = "sack"

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.AddRoom(&world.Room{ID: kitchen, ShortName: "Kitchen", Flags: world.NewFlagSet(world.FlagLit)}))
	must(s.AddObject(&world.Object{ID: winner, ShortName: "you", Location: kitchen}))
	must(s.AddObject(&world.Object{
		ID: sack, ShortName: "brown sack", Synonyms: []string{"sack"}, Location: kitchen,
		Flags: world.NewFlagSet(world.FlagTake),
	}))
	s.Global.WinnerID = winner
	s.Global.Here = kitchen
	s.Global.Lit = true
	return s, kitchen, sack
}

func TestDispatchDefaultTakeHandler(t *testing.T) {
	s, _, sack := buildWorld(t)
	rt := newFakeRuntime(s)
	d := New(action.NewRegistry(), testGrammar())

	res, err := d.Dispatch(rt, &action.Frame{Verb: "take", Direct: []world.EntityId{sack}})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsMeta {
		t.Fatalf("take is not a meta-verb")
	}
	sackObj, _ := s.Object(sack)
	if sackObj.Location != s.Global.WinnerID {
		t.Fatalf("expected sack taken into inventory, got location %s", sackObj.Location)
	}
	found := false
	for _, m := range rt.emitted {
		if m == "Taken." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Taken.' in output, got %v", rt.emitted)
	}
}

func TestDispatchDirectObjectHookShortCircuitsDefault(t *testing.T) {
	s, _, sack := buildWorld(t)
	rt := newFakeRuntime(s)
	reg := action.NewRegistry()
	reg.Register("magic-sack", action.HookFunc(func(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
		rt.Emit("The sack wriggles out of your grasp!")
		return action.Handled, nil
	}))
	sackObj, _ := s.Object(sack)
	sackObj.Action = &world.ActionRef{Backend: "builtin", Key: "magic-sack"}

	d := New(reg, testGrammar())
	if _, err := d.Dispatch(rt, &action.Frame{Verb: "take", Direct: []world.EntityId{sack}}); err != nil {
		t.Fatal(err)
	}
	if sackObj.Location == s.Global.WinnerID {
		t.Fatalf("expected object hook to pre-empt the default take handler")
	}
	if len(rt.emitted) != 1 || rt.emitted[0] != "The sack wriggles out of your grasp!" {
		t.Fatalf("expected only the hook's message, got %v", rt.emitted)
	}
}

func TestDispatchRoomMBegHookPreemptsDefault(t *testing.T) {
	s, kitchen, sack := buildWorld(t)
	rt := newFakeRuntime(s)
	reg := action.NewRegistry()
	reg.Register("kitchen-fcn", action.HookFunc(func(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
		if hc.Phase == action.PhaseMBeg {
			rt.Emit("A voice booms: NOT IN THE KITCHEN.")
			return action.Handled, nil
		}
		return action.UseDefault, nil
	}))
	room, _ := s.Room(kitchen)
	room.Action = &world.ActionRef{Backend: "builtin", Key: "kitchen-fcn"}

	d := New(reg, testGrammar())
	if _, err := d.Dispatch(rt, &action.Frame{Verb: "take", Direct: []world.EntityId{sack}}); err != nil {
		t.Fatal(err)
	}
	sackObj, _ := s.Object(sack)
	if sackObj.Location == s.Global.WinnerID {
		t.Fatalf("expected the room hook to pre-empt the default handler")
	}
}

func TestDispatchTurnEndAlwaysRunsUnlessFatal(t *testing.T) {
	s, kitchen, sack := buildWorld(t)
	rt := newFakeRuntime(s)
	reg := action.NewRegistry()
	fired := false
	reg.Register("kitchen-fcn", action.HookFunc(func(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
		if hc.Phase == action.PhaseTurnEnd {
			fired = true
		}
		return action.UseDefault, nil
	}))
	room, _ := s.Room(kitchen)
	room.Action = &world.ActionRef{Backend: "builtin", Key: "kitchen-fcn"}

	d := New(reg, testGrammar())
	if _, err := d.Dispatch(rt, &action.Frame{Verb: "take", Direct: []world.EntityId{sack}}); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Fatalf("expected turn-end phase to run even after a handled default")
	}
}

func TestDispatchMetaVerbBypassesHooksAndReportsIsMeta(t *testing.T) {
	s, _, _ := buildWorld(t)
	rt := newFakeRuntime(s)
	d := New(action.NewRegistry(), testGrammar())

	res, err := d.Dispatch(rt, &action.Frame{Verb: "score"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsMeta {
		t.Fatalf("expected score to report IsMeta")
	}
	if len(rt.emitted) != 1 {
		t.Fatalf("expected exactly one score line, got %v", rt.emitted)
	}
}

func TestDispatchQuitMetaVerbReturnsFatal(t *testing.T) {
	s, _, _ := buildWorld(t)
	rt := newFakeRuntime(s)
	d := New(action.NewRegistry(), testGrammar())

	res, err := d.Dispatch(rt, &action.Frame{Verb: "quit"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != action.Fatal {
		t.Fatalf("expected quit to report Fatal outcome")
	}
	if !s.Global.Quit {
		t.Fatalf("expected quit to set Global.Quit")
	}
}

func TestDispatchPreHookRedirectsDropVehicleToDisembark(t *testing.T) {
	s, kitchen, _ := buildWorld(t)
	const boat world.EntityId = "boat"
	if err := s.AddObject(&world.Object{ID: boat, ShortName: "inflatable boat", Location: kitchen, Flags: world.NewFlagSet(world.FlagVehicle)}); err != nil {
		t.Fatal(err)
	}
	if err := s.MoveTo(s.Global.WinnerID, boat); err != nil {
		t.Fatal(err)
	}

	rt := newFakeRuntime(s)
	d := New(action.NewRegistry(), testGrammar())
	if _, err := d.Dispatch(rt, &action.Frame{Verb: "drop", Direct: []world.EntityId{boat}}); err != nil {
		t.Fatal(err)
	}
	winner, _ := s.Object(s.Global.WinnerID)
	if winner.Location != kitchen {
		t.Fatalf("expected drop-the-vehicle-you're-in to disembark instead, got winner.Location=%s", winner.Location)
	}
	boatObj, _ := s.Object(boat)
	if boatObj.Location != kitchen {
		t.Fatalf("expected the boat to stay in the kitchen rather than being dropped, got %s", boatObj.Location)
	}
}

func TestDispatchUnknownVerbEmitsDefaultComplaint(t *testing.T) {
	s, _, _ := buildWorld(t)
	rt := newFakeRuntime(s)
	d := New(action.NewRegistry(), testGrammar())

	if _, err := d.Dispatch(rt, &action.Frame{Verb: "xyzzy-unbound"}); err != nil {
		t.Fatal(err)
	}
	if len(rt.emitted) != 1 || rt.emitted[0] != "I don't understand how to do that." {
		t.Fatalf("expected the fallback complaint, got %v", rt.emitted)
	}
}
