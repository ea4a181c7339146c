package hooks

import (
	"grue/pkg/action"
	"grue/pkg/daemon"
	"grue/pkg/session"
	"grue/pkg/world"
)

// Entity ids of the named scenario objects and rooms these hooks are
// bound to. A catalogue author wires a room or object to one of these
// by setting its action field to {backend: "builtin", key: <...Key>}.
const (
	mailboxID  world.EntityId = "mailbox"
	leafletID  world.EntityId = "leaflet"
	trapDoorID world.EntityId = "trap-door"
	cellarID   world.EntityId = "cellar"
	boltID     world.EntityId = "bolt"
	wrenchID   world.EntityId = "wrench"
	barID      world.EntityId = "platinum-bar"
	trollID    world.EntityId = "troll"
	axeID      world.EntityId = "axe"

	// MailboxOpenKey names the mailbox's open-verb override.
	MailboxOpenKey = "mailbox-open"
	// TrapDoorDescendKey names the one-way down exit out of the room
	// above the cellar.
	TrapDoorDescendKey = "trapdoor-descend"
	// DamBoltTurnKey names the dam bolt's turn-with-wrench handler.
	DamBoltTurnKey = "dam-bolt-turn"
	// LoudRoomEchoKey names the loud room's echo handler.
	LoudRoomEchoKey = "loud-room-echo"
	// TrollDeathKey names the troll's f-dead hook.
	TrollDeathKey = "troll-dead"

	// DamDrainDaemon is the catalogue name the dam bolt hook arms with
	// RegisterDaemon once the gates are opened.
	DamDrainDaemon = "dam-drain"
)

// Wire registers every scenario hook in registry and defines the dam's
// drain daemon on sess, so a catalogue referencing these keys resolves
// and the dam bolt hook's RegisterDaemon(DamDrainDaemon, 8) call succeeds.
func Wire(sess *session.Session, registry *action.Registry) {
	registry.Register(MailboxOpenKey, action.HookFunc(MailboxOpen))
	registry.Register(TrapDoorDescendKey, action.HookFunc(TrapDoorDescend))
	registry.Register(DamBoltTurnKey, action.HookFunc(DamBoltTurn))
	registry.Register(LoudRoomEchoKey, action.HookFunc(LoudRoomEcho))
	registry.Register(TrollDeathKey, action.HookFunc(TrollDeath))
	sess.DefineDaemon(DamDrainDaemon, DamDrainFire, 0)
}

// MailboxOpen overrides "open mailbox" to reveal the leaflet with custom
// prose instead of the generic "Opened." message. Every other verb, and
// an already-open mailbox, falls through to the default handler.
func MailboxOpen(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	if hc.Frame == nil || hc.Frame.Verb != "open" {
		return action.UseDefault, nil
	}
	o, err := rt.Store().Object(mailboxID)
	if err != nil {
		return action.UseDefault, nil
	}
	if o.Flags.Has(world.FlagOpen) {
		return action.UseDefault, nil
	}
	if err := rt.SetFlag(mailboxID, world.FlagOpen); err != nil {
		return action.Handled, err
	}
	rt.Emit("Opening the small mailbox reveals a leaflet.")
	return action.Handled, nil
}

// TrapDoorDescend is the functional down-exit out of the room above the
// cellar (§ scenario 3): it relocates the winner, then slams and bars
// the door behind them so it can't be used to climb back up.
func TrapDoorDescend(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	s := rt.Store()
	open, err := s.Flag(trapDoorID, world.FlagOpen)
	if err != nil {
		return action.Handled, err
	}
	if !open {
		rt.Emit("The trap door is closed.")
		return action.Handled, nil
	}
	if err := rt.MoveObject(s.Global.WinnerID, cellarID); err != nil {
		return action.Handled, err
	}
	s.Global.Here = cellarID
	if err := rt.SetFlag(cellarID, world.FlagTouch); err != nil {
		return action.Handled, err
	}
	if err := rt.UnsetFlag(trapDoorID, world.FlagOpen); err != nil {
		return action.Handled, err
	}
	if err := rt.SetFlag(trapDoorID, world.FlagTouch); err != nil {
		return action.Handled, err
	}
	rt.RecomputeLight()
	rt.Emit("The trap door crashes shut, and you hear someone barring it.")
	return action.Handled, nil
}

// DamBoltTurn handles "turn bolt with wrench" (§ scenario 4): with the
// wrench as instrument and the gates not yet open, it opens the sluice
// gates and arms the drain daemon to fire 8 turns out. Any other verb or
// instrument returns UseDefault; the stock default handler table has no
// "turn" entry. With the gates already open it says so and handles the
// command.
func DamBoltTurn(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	f := hc.Frame
	if f == nil || f.Verb != "turn" || f.Indirect == nil || *f.Indirect != wrenchID {
		return action.UseDefault, nil
	}
	s := rt.Store()
	if s.Global.WorldFlags["gates-open"] {
		rt.Emit("The sluice gates are already open.")
		return action.Handled, nil
	}
	s.Global.WorldFlags["gates-open"] = true
	if err := rt.RegisterDaemon(DamDrainDaemon, 8); err != nil {
		return action.Handled, err
	}
	rt.Emit("The sluice gates open and water pours through the dam.")
	return action.Handled, nil
}

// DamDrainFire is the drain daemon's body: 8 turns after the gates open,
// the reservoir finishes draining and the river's low-tide state takes
// hold.
func DamDrainFire(rt action.Runtime) (action.Outcome, error) {
	rt.Store().Global.WorldFlags["low-tide"] = true
	return action.Handled, nil
}

// LoudRoomEcho handles the loud room's "echo" verb (§ scenario 5): with
// the gates open and the river not yet low, the echo changes the room's
// acoustics and clears the platinum-bar-sacred world flag. The bar's own
// take flag is not changed here.
// It is invoked as the room's own m-beg hook, since "echo" has no direct
// object to attach a per-object hook to.
func LoudRoomEcho(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	if hc.Frame == nil || hc.Frame.Verb != "echo" {
		return action.UseDefault, nil
	}
	s := rt.Store()
	if !s.Global.WorldFlags["gates-open"] || s.Global.WorldFlags["low-tide"] {
		rt.Emit("Your voice echoes, but nothing happens.")
		return action.Handled, nil
	}
	s.Global.WorldFlags["loud-flag"] = true
	delete(s.Global.WorldFlags, "platinum-bar-sacred")
	rt.Emit("The acoustics of the room change subtly.")
	return action.Handled, nil
}

// TrollDeath is the troll's f-dead hook (§ scenario 6): by the time it
// fires the combat package has already moved the troll to LIMBO and
// cleared its fight flag. It drops whatever the troll was carrying back
// into the room it died in and latches the troll's defeat.
func TrollDeath(rt action.Runtime, hc action.HookContext) (action.Outcome, error) {
	s := rt.Store()
	here := s.Global.Here
	for _, id := range s.Contents(trollID) {
		if err := rt.MoveObject(id, here); err != nil {
			return action.Handled, err
		}
	}
	s.Global.WorldFlags["troll-flag"] = true
	return action.Handled, nil
}

var _ daemon.Func = DamDrainFire
