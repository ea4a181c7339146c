package daemon

import (
	"fmt"

	"grue/pkg/action"
)

// Func is the body of a daemon. It uses the same Runtime surface an
// action hook does.
type Func func(rt action.Runtime) (action.Outcome, error)

// UnknownDaemonError is returned when a caller names a daemon that was
// never registered.
type UnknownDaemonError struct {
	Name string
}

func (e *UnknownDaemonError) Error() string {
	return fmt.Sprintf("daemon: unknown daemon %q", e.Name)
}

type entry struct {
	fn       Func
	ticks    int
	interval int // 0 => one-shot, removed from the active set after firing
	active   bool
}

// Scheduler runs named daemons against a turn counter. The zero value is
// not usable; construct with New.
type Scheduler struct {
	order   []string
	entries map[string]*entry
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{entries: make(map[string]*entry)}
}

// Register adds a daemon under name, active immediately, firing after
// initialTicks turns. interval of 0 makes it one-shot: it deactivates
// itself after firing once. A positive interval makes it periodic: after
// firing it reschedules itself interval turns out. Registering an
// already-known name replaces its function and schedule but preserves
// its position in firing order.
func (s *Scheduler) Register(name string, fn Func, initialTicks, interval int) {
	if e, ok := s.entries[name]; ok {
		e.fn, e.ticks, e.interval, e.active = fn, initialTicks, interval, true
		return
	}
	s.entries[name] = &entry{fn: fn, ticks: initialTicks, interval: interval, active: true}
	s.order = append(s.order, name)
}

// Unregister deactivates name; it keeps its place in the registration
// order (inert) so a later Queue can reactivate it without disturbing
// relative firing order among the other daemons.
func (s *Scheduler) Unregister(name string) {
	if e, ok := s.entries[name]; ok {
		e.active = false
	}
}

// Queue reschedules an already-registered daemon to fire in ticks turns,
// reactivating it if it was inert.
func (s *Scheduler) Queue(name string, ticks int) error {
	e, ok := s.entries[name]
	if !ok {
		return &UnknownDaemonError{Name: name}
	}
	e.ticks = ticks
	e.active = true
	return nil
}

// Active reports whether name is currently scheduled to fire.
func (s *Scheduler) Active(name string) bool {
	e, ok := s.entries[name]
	return ok && e.active
}

// Tick decrements every active daemon's countdown by one turn and fires,
// in registration order, every daemon whose countdown has just reached
// zero. A periodic daemon reschedules itself to interval after firing; a
// one-shot daemon goes inert. Tick stops and returns the error from the
// first daemon whose Func fails; daemons after it in firing order do not
// run this turn.
func (s *Scheduler) Tick(rt action.Runtime) error {
	for _, name := range s.order {
		e := s.entries[name]
		if !e.active {
			continue
		}
		if e.ticks > 0 {
			e.ticks--
		}
		if e.ticks > 0 {
			continue
		}
		outcome, err := e.fn(rt)
		if err != nil {
			return fmt.Errorf("daemon %q: %w", name, err)
		}
		if outcome == action.Fatal {
			e.active = false
			continue
		}
		if e.interval > 0 {
			e.ticks = e.interval
		} else {
			e.active = false
		}
	}
	return nil
}
