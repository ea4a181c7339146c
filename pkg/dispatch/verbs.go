package dispatch

import (
	"grue/pkg/action"
	"grue/pkg/combat"
	"grue/pkg/movement"
	"grue/pkg/score"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

// registerDefaults wires the built-in fallback handler for every verb a
// stock catalogue's grammar declares. A catalogue is free to override any
// of these per-object via an action hook (layers 3/4) or override the
// table entry itself with RegisterDefault.
func (d *Dispatcher) registerDefaults() {
	d.defaults = map[string]Handler{
		"look":      vLook,
		"inventory": vInventory,
		"take":      vTake,
		"drop":      vDrop,
		"open":      vOpen,
		"close":     vClose,
		"examine":   vExamine,
		"read":      vExamine,
		"put":       vPut,
		"give":      vGive,
		"go":        vGo,
		"attack":    vAttack,
		"kill":      vAttack,
		"wait":      vWait,
		"disembark": vDisembark,
	}
}

func singleDirect(f *action.Frame) (world.EntityId, bool) {
	if len(f.Direct) != 1 {
		return "", false
	}
	return f.Direct[0], true
}

func vLook(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	room, err := s.Room(s.Global.Here)
	if err != nil {
		return action.Handled, err
	}
	if !s.Global.Lit {
		rt.Emit("It is pitch black. You are likely to be eaten by a grue.")
		return action.Handled, nil
	}
	// An explicit "look" shows the full description regardless of prior
	// touch state; super-brief mode still suppresses it (see describeRoom).
	outcome, err := d.invokeRoom(rt, room.ID, action.PhaseLook, f)
	if err != nil || outcome != action.UseDefault {
		return outcome, err
	}
	describeRoom(rt, room, s, true)
	return action.Handled, nil
}

// describeRoom prints a room's name, its long description when forceLong
// (first visit, an explicit "look", or verbose mode) is true and the mode
// isn't super-brief, and the objects currently visible in it. Called both
// by the "look" default handler and, after a successful move, by vGo.
func describeRoom(rt action.Runtime, room *world.Room, s *world.Store, forceLong bool) {
	rt.Emit(room.ShortName)
	printLong := room.LongDesc != "" && s.Global.Verbosity != world.VerbositySuperBrief &&
		(forceLong || s.Global.Verbosity == world.VerbosityVerbose)
	if printLong {
		rt.Emit(room.LongDesc)
	}
	for _, id := range visibility.VisibleInRoom(s, room.ID) {
		o, err := s.Object(id)
		if err != nil || o.Flags.Has(world.FlagNDesc) {
			continue
		}
		if o.FDesc != nil && !o.Flags.Has(world.FlagTouch) {
			rt.Emit(*o.FDesc)
			continue
		}
		rt.Emitf("There is %s here.", o.ShortName)
	}
}

func vInventory(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	items := s.Contents(s.Global.WinnerID)
	if len(items) == 0 {
		rt.Emit("You are empty-handed.")
		return action.Handled, nil
	}
	rt.Emit("You are carrying:")
	for _, id := range items {
		o, err := s.Object(id)
		if err != nil {
			continue
		}
		rt.Emitf("  A %s", o.ShortName)
	}
	return action.Handled, nil
}

func vTake(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	for _, id := range f.Direct {
		o, err := s.Object(id)
		if err != nil {
			return action.Handled, err
		}
		if !o.Flags.Has(world.FlagTake) {
			rt.Emitf("You can't take the %s.", o.ShortName)
			continue
		}
		if o.Location == s.Global.WinnerID {
			rt.Emitf("You already have the %s.", o.ShortName)
			continue
		}
		if err := rt.MoveObject(id, s.Global.WinnerID); err != nil {
			return action.Handled, err
		}
		if err := score.AwardPickup(rt, id); err != nil {
			return action.Handled, err
		}
		rt.Emit("Taken.")
	}
	return action.Handled, nil
}

func vDrop(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	for _, id := range f.Direct {
		o, err := s.Object(id)
		if err != nil {
			return action.Handled, err
		}
		if err := rt.MoveObject(id, s.Global.Here); err != nil {
			return action.Handled, err
		}
		rt.Emitf("Dropped the %s.", o.ShortName)
	}
	return action.Handled, nil
}

func vOpen(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	id, ok := singleDirect(f)
	if !ok {
		return action.Handled, nil
	}
	s := rt.Store()
	o, err := s.Object(id)
	if err != nil {
		return action.Handled, err
	}
	if !o.Flags.Has(world.FlagCont) && !o.Flags.Has(world.FlagDoor) {
		rt.Emitf("You can't open the %s.", o.ShortName)
		return action.Handled, nil
	}
	if o.Flags.Has(world.FlagOpen) {
		rt.Emitf("The %s is already open.", o.ShortName)
		return action.Handled, nil
	}
	if err := rt.SetFlag(id, world.FlagOpen); err != nil {
		return action.Handled, err
	}
	rt.RecomputeLight()
	rt.Emit("Opened.")
	return action.Handled, nil
}

func vClose(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	id, ok := singleDirect(f)
	if !ok {
		return action.Handled, nil
	}
	s := rt.Store()
	o, err := s.Object(id)
	if err != nil {
		return action.Handled, err
	}
	if !o.Flags.Has(world.FlagOpen) {
		rt.Emitf("The %s is already closed.", o.ShortName)
		return action.Handled, nil
	}
	if err := rt.UnsetFlag(id, world.FlagOpen); err != nil {
		return action.Handled, err
	}
	rt.RecomputeLight()
	rt.Emit("Closed.")
	return action.Handled, nil
}

func vExamine(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	id, ok := singleDirect(f)
	if !ok {
		return action.Handled, nil
	}
	s := rt.Store()
	o, err := s.Object(id)
	if err != nil {
		return action.Handled, err
	}
	switch {
	case o.Text != nil:
		rt.Emit(*o.Text)
	case o.LDesc != nil:
		rt.Emit(*o.LDesc)
	default:
		rt.Emitf("There is nothing special about the %s.", o.ShortName)
	}
	return action.Handled, nil
}

func vPut(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	if f.Indirect == nil {
		return action.Handled, nil
	}
	s := rt.Store()
	container, err := s.Object(*f.Indirect)
	if err != nil {
		return action.Handled, err
	}
	if !container.Flags.Has(world.FlagCont) {
		rt.Emitf("You can't put anything in the %s.", container.ShortName)
		return action.Handled, nil
	}
	if !container.Flags.Has(world.FlagOpen) {
		rt.Emitf("The %s is closed.", container.ShortName)
		return action.Handled, nil
	}
	for _, id := range f.Direct {
		o, err := s.Object(id)
		if err != nil {
			return action.Handled, err
		}
		if err := rt.MoveObject(id, *f.Indirect); err != nil {
			return action.Handled, err
		}
		rt.Emitf("You put the %s in the %s.", o.ShortName, container.ShortName)
	}
	return action.Handled, nil
}

func vGive(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	if f.Indirect == nil || len(f.Direct) != 1 {
		return action.Handled, nil
	}
	s := rt.Store()
	recipient, err := s.Object(*f.Indirect)
	if err != nil {
		return action.Handled, err
	}
	item, err := s.Object(f.Direct[0])
	if err != nil {
		return action.Handled, err
	}
	if err := rt.MoveObject(f.Direct[0], *f.Indirect); err != nil {
		return action.Handled, err
	}
	rt.Emitf("You give the %s to the %s.", item.ShortName, recipient.ShortName)
	return action.Handled, nil
}

func vGo(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	if f.Direction == "" {
		rt.Emit("You must specify a direction.")
		return action.Handled, nil
	}
	res, err := movement.Go(rt, d.Resolver, f.Direction)
	if err != nil {
		return action.Handled, err
	}
	if !res.Moved {
		return action.Handled, nil
	}
	s := rt.Store()
	if !s.Global.Lit {
		return action.Handled, nil
	}
	room, err := s.Room(res.NewRoom)
	if err != nil {
		return action.Handled, err
	}
	outcome, err := d.invokeRoom(rt, room.ID, action.PhaseLook, f)
	if err != nil {
		return action.Handled, err
	}
	if outcome == action.UseDefault {
		describeRoom(rt, room, s, res.FirstVisit)
	}
	if d.FinalRoom != "" {
		score.MaybeFinish(rt, res.NewRoom, d.FinalRoom)
	}
	return action.Handled, nil
}

func vAttack(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	id, ok := singleDirect(f)
	if !ok {
		rt.Emit("Attack what?")
		return action.Handled, nil
	}
	s := rt.Store()
	o, err := s.Object(id)
	if err != nil {
		return action.Handled, err
	}
	if !o.Flags.Has(world.FlagActor) {
		rt.Emitf("You can't attack the %s.", o.ShortName)
		return action.Handled, nil
	}
	reg, ok := d.Villains[id]
	if !ok {
		rt.Emitf("Attacking the %s leads nowhere.", o.ShortName)
		return action.Handled, nil
	}
	if err := rt.SetFlag(id, world.FlagFight); err != nil {
		return action.Handled, err
	}
	var weapon world.EntityId
	if f.Indirect != nil {
		weapon = *f.Indirect
	}
	msg, err := combat.HeroBlow(rt, d.Resolver, reg, id, weapon)
	if err != nil {
		return action.Handled, err
	}
	if msg != "" {
		rt.Emit(msg)
	}
	return action.Handled, nil
}

func vWait(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	rt.Emit("Time passes.")
	return action.Handled, nil
}

func vDisembark(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	winner, err := s.Object(s.Global.WinnerID)
	if err != nil {
		return action.Handled, err
	}
	vehicle, err := s.Object(winner.Location)
	if err != nil || !vehicle.Flags.Has(world.FlagVehicle) {
		rt.Emit("You aren't in a vehicle.")
		return action.Handled, nil
	}
	if err := rt.MoveObject(s.Global.WinnerID, vehicle.Location); err != nil {
		return action.Handled, err
	}
	rt.Emitf("You get out of the %s.", vehicle.ShortName)
	return action.Handled, nil
}
