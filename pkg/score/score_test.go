package score

import (
	"testing"

	"grue/pkg/action"
	"grue/pkg/world"
)

type fakeRuntime struct {
	store   *world.Store
	emitted []string
}

func (f *fakeRuntime) Store() *world.Store { return f.store }
func (f *fakeRuntime) Emit(text string)    { f.emitted = append(f.emitted, text) }
func (f *fakeRuntime) Emitf(format string, args ...any) {}
func (f *fakeRuntime) MoveObject(id, newContainer world.EntityId) error {
	return f.store.MoveTo(id, newContainer)
}
func (f *fakeRuntime) SetFlag(id world.EntityId, fl world.Flag) error   { return f.store.SetFlag(id, fl) }
func (f *fakeRuntime) UnsetFlag(id world.EntityId, fl world.Flag) error { return f.store.UnsetFlag(id, fl) }
func (f *fakeRuntime) RecomputeLight()                                 {}
func (f *fakeRuntime) RegisterDaemon(name string, initialTicks int) error { return nil }
func (f *fakeRuntime) UnregisterDaemon(name string)                      {}
func (f *fakeRuntime) QueueDaemon(name string, ticks int) error          { return nil }
func (f *fakeRuntime) Roll(n int) int                                    { return 0 }
func (f *fakeRuntime) Die(message string) error                          { return nil }

var _ action.Runtime = (*fakeRuntime)(nil)

func intPtr(v int) *int { return &v }

func TestScoreUpdateAccumulates(t *testing.T) {
	s := world.NewStore()
	s.Global.ScoreMax = 350
	rt := &fakeRuntime{store: s}

	ScoreUpdate(rt, 10)
	ScoreUpdate(rt, 5)

	if s.Global.Score != 15 || s.Global.BaseScore != 15 {
		t.Fatalf("expected score 15, got score=%d base=%d", s.Global.Score, s.Global.BaseScore)
	}
	if s.Global.Won {
		t.Fatalf("did not expect Won yet")
	}
}

func TestScoreUpdateLatchesWinAtMax(t *testing.T) {
	s := world.NewStore()
	s.Global.ScoreMax = 100
	rt := &fakeRuntime{store: s}

	ScoreUpdate(rt, 100)

	if !s.Global.Won {
		t.Fatalf("expected Won to latch at ScoreMax")
	}
	if !s.Global.WorldFlags["won"] {
		t.Fatalf("expected the won world flag to be set")
	}
	if len(rt.emitted) != 1 || rt.emitted[0] != WinHintMessage {
		t.Fatalf("expected the win hint to be emitted, got %v", rt.emitted)
	}

	// Crossing max again must not re-emit the hint.
	ScoreUpdate(rt, 5)
	if len(rt.emitted) != 1 {
		t.Fatalf("expected the hint to print only once, got %v", rt.emitted)
	}
}

func TestAwardPickupPaysOnceOnly(t *testing.T) {
	s := world.NewStore()
	s.Global.ScoreMax = 350
	const bar world.EntityId = "platinum-bar"
	if err := s.AddObject(&world.Object{ID: bar, ShortName: "platinum bar", Value: intPtr(10)}); err != nil {
		t.Fatal(err)
	}
	rt := &fakeRuntime{store: s}

	if err := AwardPickup(rt, bar); err != nil {
		t.Fatal(err)
	}
	if err := AwardPickup(rt, bar); err != nil {
		t.Fatal(err)
	}
	if s.Global.Score != 10 {
		t.Fatalf("expected pickup value awarded exactly once, got score=%d", s.Global.Score)
	}
}

func TestAwardDepositPaysOnceOnly(t *testing.T) {
	s := world.NewStore()
	s.Global.ScoreMax = 350
	const bar world.EntityId = "platinum-bar"
	if err := s.AddObject(&world.Object{ID: bar, ShortName: "platinum bar", TValue: intPtr(5)}); err != nil {
		t.Fatal(err)
	}
	rt := &fakeRuntime{store: s}

	if err := AwardDeposit(rt, bar); err != nil {
		t.Fatal(err)
	}
	if err := AwardDeposit(rt, bar); err != nil {
		t.Fatal(err)
	}
	if s.Global.Score != 5 {
		t.Fatalf("expected deposit value awarded exactly once, got score=%d", s.Global.Score)
	}
}

func buildDeathWorld(t *testing.T) (*world.Store, world.EntityId, world.EntityId) {
	t.Helper()
	s := world.NewStore()
	const kitchen world.EntityId = "kitchen"
	const livingRoom world.EntityId = "living-room"
	const winner world.EntityId = "winner"
	const lamp world.EntityId = "lamp"

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.AddRoom(&world.Room{ID: kitchen, ShortName: "Kitchen", Flags: world.NewFlagSet(world.FlagLit)}))
	must(s.AddRoom(&world.Room{ID: livingRoom, ShortName: "Living Room", Flags: world.NewFlagSet(world.FlagLit)}))
	must(s.AddObject(&world.Object{ID: winner, ShortName: "you", Location: kitchen}))
	must(s.AddObject(&world.Object{ID: lamp, ShortName: "brass lantern", Location: winner}))

	s.Global.WinnerID = winner
	s.Global.Here = kitchen
	s.Global.Lit = true
	return s, kitchen, livingRoom
}

func TestJigsUpResurrectsBeforeThirdDeath(t *testing.T) {
	s, kitchen, livingRoom := buildDeathWorld(t)
	rt := &fakeRuntime{store: s}
	resurrect := Resurrection{ReviveRoom: kitchen, ScatterRoom: livingRoom}

	if err := JigsUp(rt, "You trip over a grue.", false, resurrect); err != nil {
		t.Fatal(err)
	}
	if s.Global.Deaths != 1 {
		t.Fatalf("expected deaths=1, got %d", s.Global.Deaths)
	}
	if s.Global.Quit {
		t.Fatalf("did not expect quit after first death")
	}
	lamp, err := s.Object("lamp")
	if err != nil {
		t.Fatal(err)
	}
	if lamp.Location != livingRoom {
		t.Fatalf("expected inventory scattered to living room, got %s", lamp.Location)
	}
	if s.Global.Here != kitchen {
		t.Fatalf("expected player revived in kitchen, got %s", s.Global.Here)
	}
}

func TestJigsUpEndsGameOnThirdDeath(t *testing.T) {
	s, kitchen, livingRoom := buildDeathWorld(t)
	rt := &fakeRuntime{store: s}
	resurrect := Resurrection{ReviveRoom: kitchen, ScatterRoom: livingRoom}

	for i := 0; i < 2; i++ {
		if err := JigsUp(rt, "death", false, resurrect); err != nil {
			t.Fatal(err)
		}
	}
	if s.Global.Quit {
		t.Fatalf("did not expect quit before the third death")
	}
	if err := JigsUp(rt, "death", false, resurrect); err != nil {
		t.Fatal(err)
	}
	if !s.Global.Quit {
		t.Fatalf("expected the game to end on the third death")
	}
	if s.Global.Deaths != 3 {
		t.Fatalf("expected deaths=3, got %d", s.Global.Deaths)
	}
}

func TestJigsUpFatalEndingBypassesDeathCounter(t *testing.T) {
	s, kitchen, livingRoom := buildDeathWorld(t)
	rt := &fakeRuntime{store: s}
	resurrect := Resurrection{ReviveRoom: kitchen, ScatterRoom: livingRoom}

	if err := JigsUp(rt, "You drown.", true, resurrect); err != nil {
		t.Fatal(err)
	}
	if !s.Global.Quit {
		t.Fatalf("expected a fatal ending to end the game immediately")
	}
	if s.Global.Deaths != 1 {
		t.Fatalf("expected deaths to still increment once, got %d", s.Global.Deaths)
	}
}

func TestMaybeFinishSetsFinishedOnlyAfterWinning(t *testing.T) {
	s, kitchen, _ := buildDeathWorld(t)
	rt := &fakeRuntime{store: s}
	const stoneBarrow world.EntityId = "stone-barrow"

	MaybeFinish(rt, kitchen, stoneBarrow)
	if s.Global.Finished {
		t.Fatalf("did not expect Finished before entering the final room")
	}

	MaybeFinish(rt, stoneBarrow, stoneBarrow)
	if s.Global.Finished {
		t.Fatalf("did not expect Finished before winning")
	}

	s.Global.Won = true
	MaybeFinish(rt, stoneBarrow, stoneBarrow)
	if !s.Global.Finished {
		t.Fatalf("expected Finished once the won player enters the final room")
	}
}
