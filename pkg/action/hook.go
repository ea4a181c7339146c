package action

import "grue/pkg/world"

// Outcome is the three-way result an action hook returns (§4.E).
type Outcome int

const (
	// Handled means the hook possibly mutated world state; the dispatcher
	// stops running further layers for this frame.
	Handled Outcome = iota
	// UseDefault means the hook declined; the dispatcher continues to the
	// next layer.
	UseDefault
	// Fatal means the hook requested game-over.
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case UseDefault:
		return "use-default"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Phase identifies which lifecycle moment a room hook is being invoked for.
type Phase string

const (
	PhaseLook           Phase = "look"
	PhaseEnter          Phase = "enter"
	PhaseExit           Phase = "exit"
	PhaseFunctionalExit Phase = "functional-exit" // ExitFunctional hands the whole move to the named hook
	PhaseTurnEnd        Phase = "turn-end"
	PhaseMBeg           Phase = "m-beg"

	// Combat lifecycle phases (§4.I), fired on a villain's own action hook.
	PhaseDead         Phase = "f-dead"
	PhaseUnconscious  Phase = "f-unconscious"
	PhaseConscious    Phase = "f-conscious"
)

// Frame is the parsed command the dispatcher is executing. Object and verb
// hooks receive it implicitly through HookContext.
type Frame struct {
	Verb        string
	Direct      []world.EntityId
	Indirect    *world.EntityId
	Preposition string
	Direction   string
}

// HookContext is what a hook is called with: which entity it is attached
// to, which room-lifecycle phase (if any), and the frame being executed
// (if any — room-phase calls outside of dispatch, like turn-end, have no
// frame).
type HookContext struct {
	Entity world.EntityId
	Phase  Phase
	Frame  *Frame
}

// Runtime is the callback surface a hook may use to affect the world. It
// is implemented by pkg/session so that pkg/action does not need to
// depend on pkg/daemon, pkg/score or pkg/combat.
type Runtime interface {
	Store() *world.Store
	Emit(text string)
	Emitf(format string, args ...any)
	MoveObject(id, newContainer world.EntityId) error
	SetFlag(id world.EntityId, f world.Flag) error
	UnsetFlag(id world.EntityId, f world.Flag) error
	RecomputeLight()
	RegisterDaemon(name string, initialTicks int) error
	UnregisterDaemon(name string)
	QueueDaemon(name string, ticks int) error
	Roll(n int) int // uniform draw in [0,n) from the session RNG
	Die(message string) error
}

// Hook is a piece of behaviour attached to a room, object, or verb.
type Hook interface {
	Call(rt Runtime, hc HookContext) (Outcome, error)
}

// HookFunc adapts a plain function to the Hook interface, the same way
// net/http.HandlerFunc adapts a function to http.Handler.
type HookFunc func(rt Runtime, hc HookContext) (Outcome, error)

// Call implements Hook.
func (f HookFunc) Call(rt Runtime, hc HookContext) (Outcome, error) {
	return f(rt, hc)
}
