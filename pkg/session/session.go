package session

import (
	"fmt"

	"github.com/google/uuid"

	"grue/internal/telemetry"
	"grue/pkg/action"
	"grue/pkg/combat"
	"grue/pkg/daemon"
	"grue/pkg/dispatch"
	"grue/pkg/parser"
	"grue/pkg/rng"
	"grue/pkg/score"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

// combatDaemonName is registered first so it always fires before any
// catalogue-registered daemon in the same tick (§4.H ordering rule).
const combatDaemonName = "__combat__"

// DefaultUndoDepth bounds the undo stack absent an explicit override.
const DefaultUndoDepth = 20

// Session is the concrete action.Runtime: one player's live game state.
type Session struct {
	ID uuid.UUID

	RNG        *rng.RNG
	Daemons    *daemon.Scheduler
	Parser     *parser.Parser
	Dispatcher *dispatch.Dispatcher
	Resolver   action.Resolver

	UndoDepth int

	store        *world.Store
	output       []string
	undo         []*world.Store
	turnCount    int
	daemonDefs   map[string]daemonDef
	seenRooms    map[string]bool
	seenMessages map[string]bool
	resurrection score.Resurrection
}

// daemonDef is a catalogue-declared daemon's function and reschedule
// interval, recorded once at load time so a later action.Runtime.
// RegisterDaemon(name, ticks) call (an action hook arming a daemon it
// doesn't carry the closure for) knows what to hand the scheduler.
type daemonDef struct {
	fn       daemon.Func
	interval int
}

var _ action.Runtime = (*Session)(nil)

// New builds a Session over an already-loaded store. resolver is typically
// an action.Chain of the builtin registry and, when scripting is enabled,
// a pkg/scripting resolver. grammar drives the parser and the
// dispatcher's meta-verb set.
func New(store *world.Store, resolver action.Resolver, grammar *parser.Grammar, seed uint64) *Session {
	s := &Session{
		ID:         uuid.New(),
		store:      store,
		RNG:        rng.New(seed),
		Daemons:    daemon.New(),
		Parser:     parser.New(store, grammar),
		Dispatcher: dispatch.New(resolver, grammar),
		Resolver:   resolver,
		UndoDepth:  DefaultUndoDepth,
		daemonDefs: make(map[string]daemonDef),
	}
	visibility.Recompute(store)
	return s
}

// DefineDaemon records a catalogue daemon's closure and reschedule
// interval without arming it, so a later RegisterDaemon(name, ticks) call
// (typically from an action hook) knows what to hand the scheduler.
func (s *Session) DefineDaemon(name string, fn daemon.Func, interval int) {
	s.daemonDefs[name] = daemonDef{fn: fn, interval: interval}
}

// RegisterCombatDaemon installs the villain-turn daemon under a reserved
// name, ahead of every daemon the catalogue itself registers.
func (s *Session) RegisterCombatDaemon(fn daemon.Func) {
	s.Daemons.Register(combatDaemonName, fn, 1, 1)
}

// BindCombat registers the standard per-turn combat daemon: every villain
// in the winner's current room with the fight flag set either takes a
// swing or, if unconscious, gets an Awaken roll. It also registers every
// villain with Dispatcher.RegisterVillain so the default attack handler
// (pkg/dispatch) can find their combat registration.
func (s *Session) BindCombat(villains map[world.EntityId]combat.VillainReg) {
	for _, reg := range villains {
		s.Dispatcher.RegisterVillain(reg)
	}
	s.RegisterCombatDaemon(func(rt action.Runtime) (action.Outcome, error) {
		st := rt.Store()
		combat.EnforceFightLocation(st)
		for id, o := range st.Objects {
			if o.Location != st.Global.Here || !o.Flags.Has(world.FlagActor) || !o.Flags.Has(world.FlagFight) {
				continue
			}
			reg, ok := villains[id]
			if !ok {
				continue
			}
			if strengthOf(o) < 0 {
				if err := combat.Awaken(rt, s.Resolver, reg, id); err != nil {
					return action.Handled, err
				}
				continue
			}
			msg, err := combat.VillainBlow(rt, s.Resolver, reg, id)
			if err != nil {
				return action.Handled, err
			}
			if msg != "" {
				rt.Emit(msg)
			}
		}
		return action.Handled, nil
	})
}

func strengthOf(o *world.Object) int {
	if o.Strength == nil {
		return 0
	}
	return *o.Strength
}

// --- action.Runtime ---

// Store implements action.Runtime.
func (s *Session) Store() *world.Store { return s.store }

func (s *Session) Emit(text string) {
	s.output = append(s.output, text)
}

func (s *Session) Emitf(format string, args ...any) {
	s.output = append(s.output, fmt.Sprintf(format, args...))
}

func (s *Session) MoveObject(id, newContainer world.EntityId) error {
	if err := s.store.MoveTo(id, newContainer); err != nil {
		return err
	}
	s.RecomputeLight()
	return nil
}

func (s *Session) SetFlag(id world.EntityId, f world.Flag) error {
	if err := s.store.SetFlag(id, f); err != nil {
		return err
	}
	s.RecomputeLight()
	return nil
}

func (s *Session) UnsetFlag(id world.EntityId, f world.Flag) error {
	if err := s.store.UnsetFlag(id, f); err != nil {
		return err
	}
	s.RecomputeLight()
	return nil
}

func (s *Session) RecomputeLight() {
	visibility.Recompute(s.store)
}

// RegisterDaemon arms a daemon an action hook knows only by catalogue
// name (its closure was recorded earlier via DefineDaemon), to fire in
// initialTicks turns.
func (s *Session) RegisterDaemon(name string, initialTicks int) error {
	def, ok := s.daemonDefs[name]
	if !ok {
		return fmt.Errorf("session: no daemon definition named %q (call DefineDaemon at load time)", name)
	}
	s.Daemons.Register(name, def.fn, initialTicks, def.interval)
	return nil
}

func (s *Session) UnregisterDaemon(name string) {
	s.Daemons.Unregister(name)
}

func (s *Session) QueueDaemon(name string, ticks int) error {
	return s.Daemons.Queue(name, ticks)
}

func (s *Session) Roll(n int) int {
	if n <= 0 {
		return 0
	}
	return s.RNG.NextInRange(n)
}

// SetResurrection records where a non-fatal death sends the player and
// their belongings (§4.J). Callers set this once at session build time
// from the catalogue's resurrection rooms.
func (s *Session) SetResurrection(r score.Resurrection) {
	s.resurrection = r
}

func (s *Session) Die(message string) error {
	telemetry.Log.Infow("player died", "session", s.ID, "message", message, "deaths", s.store.Global.Deaths+1)
	return score.JigsUp(s, message, false, s.resurrection)
}
