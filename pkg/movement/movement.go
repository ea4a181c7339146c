package movement

import (
	"fmt"

	"grue/pkg/action"
	"grue/pkg/score"
	"grue/pkg/world"
)

// Result reports what happened when the player attempted to leave the
// current room in a given direction.
type Result struct {
	Moved      bool
	NewRoom    world.EntityId
	FirstVisit bool // true when NewRoom had never been touched before this move
}

// Go resolves direction from the winner's current room. On success it
// fires the departed room's exit hook, relocates the winner, sets the
// destination's touch flag (I7) and awards its value on a first visit,
// recomputes cached light, and fires the arrived room's enter hook, in
// that order. On failure it emits the appropriate "can't go that way" or
// grue-warning text itself and returns a zero Result.
func Go(rt action.Runtime, resolver action.Resolver, direction string) (Result, error) {
	s := rt.Store()
	here, err := s.Room(s.Global.Here)
	if err != nil {
		return Result{}, err
	}

	exit, ok := here.Exits[direction]
	if !ok {
		return Result{}, reportNoMove(rt, s, "")
	}

	if exit.Kind == world.ExitFunctional {
		return goFunctional(rt, resolver, here, exit)
	}

	dest, blockedText, err := resolveExit(s, exit)
	if err != nil {
		return Result{}, err
	}
	if dest == "" {
		return Result{}, reportNoMove(rt, s, blockedText)
	}

	return enterRoom(rt, resolver, here, dest)
}

// reportNoMove emits the outcome of a move attempt that leaves the player
// in the same room: the catalogue's own blockedText when it supplied one,
// otherwise the lit-dependent fallback. Either way the player has spent
// another turn without reaching a new room, so it advances the darkness
// counter (§4.G) the same as a successful move into an unlit room would.
func reportNoMove(rt action.Runtime, s *world.Store, blockedText string) error {
	if blockedText != "" {
		rt.Emit(blockedText)
	}
	if s.Global.Lit {
		s.Global.DarkTurns = 0
		if blockedText == "" {
			rt.Emit("You can't go that way.")
		}
		return nil
	}
	_, err := advanceDarkness(rt, s)
	return err
}

// advanceDarkness tracks consecutive turns spent in an unlit room (§4.G):
// it resets DarkTurns to 0 whenever the room is lit, prints the grue
// warning on the first dark turn, and kills the player on the second.
// Callers only invoke it once they already know the room is unlit. The
// returned bool reports whether the player died this call, so a caller
// mid-move can skip describing a room the death may have moved them out of.
func advanceDarkness(rt action.Runtime, s *world.Store) (bool, error) {
	s.Global.DarkTurns++
	if s.Global.DarkTurns < 2 {
		rt.Emit("It is pitch black. You are likely to be eaten by a grue.")
		return false, nil
	}
	return true, rt.Die("Oh, no! A grue has got you!")
}

// resolveExit interprets one exit descriptor (other than ExitFunctional,
// handled by the caller), returning the destination room id — empty if
// the move is blocked — and the text to show when it is.
func resolveExit(s *world.Store, exit world.Exit) (world.EntityId, string, error) {
	switch exit.Kind {
	case world.ExitDirect:
		return exit.To, "", nil
	case world.ExitBlocked:
		return "", exit.Text, nil
	case world.ExitConditional:
		if s.Global.WorldFlags[exit.IfFlag] {
			return exit.To, "", nil
		}
		return "", exit.Text, nil
	case world.ExitDoor:
		open, err := s.Flag(exit.Door, world.FlagOpen)
		if err != nil {
			return "", "", err
		}
		if open {
			return exit.To, "", nil
		}
		return "", exit.Text, nil
	default:
		return "", "", fmt.Errorf("movement: unknown exit kind %d", exit.Kind)
	}
}

// goFunctional hands the move entirely to the builtin hook named by
// exit.Per; the hook is responsible for relocating the winner (or not)
// and emitting its own text.
func goFunctional(rt action.Runtime, resolver action.Resolver, here *world.Room, exit world.Exit) (Result, error) {
	before := rt.Store().Global.Here
	ref := &world.ActionRef{Backend: "builtin", Key: exit.Per}
	outcome, err := action.Invoke(resolver, ref, rt, action.HookContext{Entity: here.ID, Phase: action.PhaseFunctionalExit})
	if err != nil {
		return Result{}, err
	}
	after := rt.Store().Global.Here
	if outcome == action.UseDefault {
		return Result{}, reportNoMove(rt, rt.Store(), "")
	}
	return Result{Moved: after != before, NewRoom: after}, nil
}

// enterRoom performs the departed/arrived hook sequence and the actual
// relocation for a resolved, non-functional exit.
func enterRoom(rt action.Runtime, resolver action.Resolver, from *world.Room, dest world.EntityId) (Result, error) {
	s := rt.Store()

	if from.Action != nil {
		outcome, err := action.Invoke(resolver, from.Action, rt, action.HookContext{Entity: from.ID, Phase: action.PhaseExit})
		if err != nil {
			return Result{}, err
		}
		if outcome == action.Fatal {
			return Result{}, nil
		}
	}

	if err := rt.MoveObject(s.Global.WinnerID, dest); err != nil {
		return Result{}, err
	}
	s.Global.Here = dest

	destRoom, err := s.Room(dest)
	if err != nil {
		return Result{}, err
	}

	firstVisit := !destRoom.Flags.Has(world.FlagTouch)
	if firstVisit {
		if err := rt.SetFlag(dest, world.FlagTouch); err != nil {
			return Result{}, err
		}
		if destRoom.Value != 0 {
			score.ScoreUpdate(rt, destRoom.Value)
			destRoom.Value = 0
		}
	}

	rt.RecomputeLight()

	if destRoom.Action != nil {
		outcome, err := action.Invoke(resolver, destRoom.Action, rt, action.HookContext{Entity: destRoom.ID, Phase: action.PhaseEnter})
		if err != nil {
			return Result{}, err
		}
		if outcome == action.Fatal {
			return Result{Moved: true, NewRoom: dest, FirstVisit: firstVisit}, nil
		}
	}

	if s.Global.Lit {
		s.Global.DarkTurns = 0
	} else {
		died, err := advanceDarkness(rt, s)
		if err != nil {
			return Result{}, err
		}
		if died {
			// JigsUp has already relocated the player (or ended the
			// game); there is no "arrived" room left to describe.
			return Result{}, nil
		}
	}

	return Result{Moved: true, NewRoom: dest, FirstVisit: firstVisit}, nil
}
