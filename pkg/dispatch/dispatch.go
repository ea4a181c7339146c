package dispatch

import (
	"grue/pkg/action"
	"grue/pkg/combat"
	"grue/pkg/parser"
	"grue/pkg/score"
	"grue/pkg/world"
)

// Result reports what a Dispatch call did, for pkg/session to decide
// whether this turn ticks moves and runs daemons.
type Result struct {
	Outcome action.Outcome
	IsMeta  bool
}

// Dispatcher runs parsed frames through the seven-layer pipeline (§4.F).
// It is stateless across turns except for the catalogue-supplied tables
// it is built with.
type Dispatcher struct {
	Resolver     action.Resolver
	Grammar      *parser.Grammar
	Villains     map[world.EntityId]combat.VillainReg
	Resurrection score.Resurrection
	FinalRoom    world.EntityId

	defaults map[string]Handler
	metas    map[string]MetaHandler
}

// Handler is a default verb handler (layer 6): the catalogue's fallback
// behaviour when nothing overrode the verb first.
type Handler func(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error)

// MetaHandler handles one of the closed set of meta-verbs.
type MetaHandler func(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error)

// New builds a Dispatcher with the standard default-verb and meta-verb
// tables registered.
func New(resolver action.Resolver, grammar *parser.Grammar) *Dispatcher {
	d := &Dispatcher{
		Resolver: resolver,
		Grammar:  grammar,
		Villains: make(map[world.EntityId]combat.VillainReg),
		defaults: make(map[string]Handler),
		metas:    make(map[string]MetaHandler),
	}
	d.registerDefaults()
	d.registerMetas()
	return d
}

// RegisterVillain records a villain's combat registration, used by the
// default attack/kill handler.
func (d *Dispatcher) RegisterVillain(reg combat.VillainReg) {
	d.Villains[reg.ID] = reg
}

// RegisterDefault overrides or adds a default verb handler.
func (d *Dispatcher) RegisterDefault(verb string, h Handler) {
	d.defaults[verb] = h
}

// RegisterMeta overrides or adds a meta-verb handler.
func (d *Dispatcher) RegisterMeta(verb string, h MetaHandler) {
	d.metas[verb] = h
}

// Dispatch runs f through the pipeline. frame.Verb must already be a
// canonical verb id (parser.Parse's output).
func (d *Dispatcher) Dispatch(rt action.Runtime, f *action.Frame) (Result, error) {
	if d.Grammar.MetaVerbs[f.Verb] {
		outcome, err := d.runMeta(rt, f)
		return Result{Outcome: outcome, IsMeta: true}, err
	}

	s := rt.Store()

	d.applyPreHooks(s, f)

	outcome, err := d.runObjectHooks(rt, f)
	if err != nil || outcome == action.Fatal {
		return Result{Outcome: action.Fatal}, err
	}

	if outcome == action.UseDefault {
		outcome, err = d.invokeRoom(rt, s.Global.Here, action.PhaseMBeg, f)
		if err != nil {
			return Result{Outcome: action.Fatal}, err
		}
	}

	if outcome == action.UseDefault {
		outcome, err = d.runDefault(rt, f)
		if err != nil {
			return Result{Outcome: action.Fatal}, err
		}
	}

	if outcome == action.Fatal {
		return Result{Outcome: action.Fatal}, nil
	}

	teOutcome, err := d.invokeRoom(rt, s.Global.Here, action.PhaseTurnEnd, nil)
	if err != nil {
		return Result{Outcome: action.Fatal}, err
	}
	if teOutcome == action.Fatal {
		return Result{Outcome: action.Fatal}, nil
	}

	return Result{Outcome: outcome}, nil
}

// applyPreHooks implements layer 2's one standing rewrite: dropping the
// vehicle you are riding redirects to disembarking it instead.
func (d *Dispatcher) applyPreHooks(s *world.Store, f *action.Frame) {
	if f.Verb != "drop" || len(f.Direct) != 1 {
		return
	}
	winner, err := s.Object(s.Global.WinnerID)
	if err != nil {
		return
	}
	if winner.Location == f.Direct[0] {
		if veh, err := s.Object(f.Direct[0]); err == nil && veh.Flags.Has(world.FlagVehicle) {
			f.Verb = "disembark"
		}
	}
}

// runObjectHooks runs layers 3 and 4: the direct object's hook, then the
// indirect object's, each called with the full frame.
func (d *Dispatcher) runObjectHooks(rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	for _, id := range f.Direct {
		o, err := s.Object(id)
		if err != nil {
			continue
		}
		outcome, err := action.Invoke(d.Resolver, o.Action, rt, action.HookContext{Entity: id, Frame: f})
		if err != nil || outcome != action.UseDefault {
			return outcome, err
		}
	}
	if f.Indirect != nil {
		o, err := s.Object(*f.Indirect)
		if err == nil {
			outcome, err := action.Invoke(d.Resolver, o.Action, rt, action.HookContext{Entity: *f.Indirect, Frame: f})
			if err != nil || outcome != action.UseDefault {
				return outcome, err
			}
		}
	}
	return action.UseDefault, nil
}

// invokeRoom resolves and invokes id's room action hook for the given
// phase, treating a room with no hook (or an unknown id) as use-default.
func (d *Dispatcher) invokeRoom(rt action.Runtime, id world.EntityId, phase action.Phase, f *action.Frame) (action.Outcome, error) {
	r, err := rt.Store().Room(id)
	if err != nil {
		return action.UseDefault, nil
	}
	return action.Invoke(d.Resolver, r.Action, rt, action.HookContext{Entity: id, Phase: phase, Frame: f})
}

// runDefault runs layer 6, the catalogue's built-in fallback handler.
func (d *Dispatcher) runDefault(rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	h, ok := d.defaults[f.Verb]
	if !ok {
		rt.Emit("I don't understand how to do that.")
		return action.Handled, nil
	}
	return h(d, rt, f)
}

// runMeta dispatches a meta-verb straight to its handler, bypassing every
// hook layer.
func (d *Dispatcher) runMeta(rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	h, ok := d.metas[f.Verb]
	if !ok {
		rt.Emit("I don't understand how to do that.")
		return action.Handled, nil
	}
	return h(d, rt, f)
}
