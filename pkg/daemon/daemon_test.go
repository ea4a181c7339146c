package daemon

import (
	"errors"
	"testing"

	"grue/pkg/action"
	"grue/pkg/world"
)

type fakeRuntime struct {
	store   *world.Store
	emitted []string
}

func newFakeRuntime() *fakeRuntime { return &fakeRuntime{store: world.NewStore()} }

func (f *fakeRuntime) Store() *world.Store { return f.store }
func (f *fakeRuntime) Emit(text string)    { f.emitted = append(f.emitted, text) }
func (f *fakeRuntime) Emitf(format string, args ...any) {}
func (f *fakeRuntime) MoveObject(id, newContainer world.EntityId) error { return nil }
func (f *fakeRuntime) SetFlag(id world.EntityId, fl world.Flag) error   { return nil }
func (f *fakeRuntime) UnsetFlag(id world.EntityId, fl world.Flag) error { return nil }
func (f *fakeRuntime) RecomputeLight()                                 {}
func (f *fakeRuntime) RegisterDaemon(name string, initialTicks int) error { return nil }
func (f *fakeRuntime) UnregisterDaemon(name string)                      {}
func (f *fakeRuntime) QueueDaemon(name string, ticks int) error          { return nil }
func (f *fakeRuntime) Roll(n int) int                                    { return 0 }
func (f *fakeRuntime) Die(message string) error                          { return nil }

var _ action.Runtime = (*fakeRuntime)(nil)

func TestTickFiresAtZero(t *testing.T) {
	s := New()
	fired := 0
	s.Register("match", func(rt action.Runtime) (action.Outcome, error) {
		fired++
		return action.Handled, nil
	}, 2, 0)

	rt := newFakeRuntime()
	for i := 0; i < 1; i++ {
		if err := s.Tick(rt); err != nil {
			t.Fatal(err)
		}
		if fired != 0 {
			t.Fatalf("fired too early at tick %d", i)
		}
	}
	if err := s.Tick(rt); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("expected daemon to fire once, fired=%d", fired)
	}
}

func TestOneShotGoesInertAfterFiring(t *testing.T) {
	s := New()
	fired := 0
	s.Register("one-shot", func(rt action.Runtime) (action.Outcome, error) {
		fired++
		return action.Handled, nil
	}, 0, 0)

	rt := newFakeRuntime()
	if err := s.Tick(rt); err != nil {
		t.Fatal(err)
	}
	if err := s.Tick(rt); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("expected one-shot to fire exactly once, fired=%d", fired)
	}
	if s.Active("one-shot") {
		t.Fatalf("expected one-shot to be inert after firing")
	}
}

func TestPeriodicReschedulesItself(t *testing.T) {
	s := New()
	fired := 0
	s.Register("candle", func(rt action.Runtime) (action.Outcome, error) {
		fired++
		return action.Handled, nil
	}, 1, 3)

	rt := newFakeRuntime()
	for i := 0; i < 7; i++ {
		if err := s.Tick(rt); err != nil {
			t.Fatal(err)
		}
	}
	// fires at turn 1, then every 3 turns after: turns 1, 4, 7 => 3 fires.
	if fired != 3 {
		t.Fatalf("expected 3 fires over 7 ticks, got %d", fired)
	}
	if !s.Active("candle") {
		t.Fatalf("expected periodic daemon to remain active")
	}
}

func TestRegistrationOrderGovernsFiring(t *testing.T) {
	s := New()
	var firedOrder []string
	s.Register("second", func(rt action.Runtime) (action.Outcome, error) {
		firedOrder = append(firedOrder, "second")
		return action.Handled, nil
	}, 0, 0)
	s.Register("combat", func(rt action.Runtime) (action.Outcome, error) {
		firedOrder = append(firedOrder, "combat")
		return action.Handled, nil
	}, 0, 0)

	if err := s.Tick(newFakeRuntime()); err != nil {
		t.Fatal(err)
	}
	if len(firedOrder) != 2 || firedOrder[0] != "second" || firedOrder[1] != "combat" {
		t.Fatalf("expected registration order to govern firing, got %v", firedOrder)
	}
}

func TestQueueUnknownDaemonErrors(t *testing.T) {
	s := New()
	err := s.Queue("nope", 3)
	var udErr *UnknownDaemonError
	if !errors.As(err, &udErr) {
		t.Fatalf("expected UnknownDaemonError, got %v", err)
	}
}

func TestQueueReactivatesUnregisteredDaemon(t *testing.T) {
	s := New()
	fired := 0
	s.Register("thief", func(rt action.Runtime) (action.Outcome, error) {
		fired++
		return action.Handled, nil
	}, 5, 5)
	s.Unregister("thief")

	if err := s.Tick(newFakeRuntime()); err != nil {
		t.Fatal(err)
	}
	if fired != 0 {
		t.Fatalf("expected inert daemon not to fire, fired=%d", fired)
	}

	if err := s.Queue("thief", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Tick(newFakeRuntime()); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("expected requeued daemon to fire, fired=%d", fired)
	}
}

func TestFatalOutcomeGoesInertButOtherDaemonsStillFireThisTurn(t *testing.T) {
	s := New()
	var firedOrder []string
	s.Register("dies", func(rt action.Runtime) (action.Outcome, error) {
		firedOrder = append(firedOrder, "dies")
		return action.Fatal, nil
	}, 0, 0)
	s.Register("never", func(rt action.Runtime) (action.Outcome, error) {
		firedOrder = append(firedOrder, "never")
		return action.Handled, nil
	}, 0, 0)

	if err := s.Tick(newFakeRuntime()); err != nil {
		t.Fatal(err)
	}
	if len(firedOrder) != 2 {
		t.Fatalf("expected both daemons to still fire this turn, got %v", firedOrder)
	}
	if s.Active("dies") {
		t.Fatalf("expected fatal daemon to go inert")
	}
}
