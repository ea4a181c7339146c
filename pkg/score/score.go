package score

import (
	"grue/pkg/action"
	"grue/pkg/world"
)

// WinHintMessage is printed the instant the player's score reaches
// ScoreMax (§4.J); the catalogue is expected to gate the stone barrow's
// exits on the "won" world flag this sets.
const WinHintMessage = `An almost inaudible voice says, "Look to your treasures for the final secret."`

// ScoreUpdate adds delta to both Score and BaseScore and, the first time
// Score reaches ScoreMax, latches Won and prints the hint line.
func ScoreUpdate(rt action.Runtime, delta int) {
	s := rt.Store()
	s.Global.Score += delta
	s.Global.BaseScore += delta
	if s.Global.Won || s.Global.ScoreMax <= 0 || s.Global.Score < s.Global.ScoreMax {
		return
	}
	s.Global.Won = true
	s.Global.WorldFlags["won"] = true
	rt.Emit(WinHintMessage)
}

// AwardPickup pays an object's Value the first time it is taken, marking
// it so a later drop-and-retake never pays twice.
func AwardPickup(rt action.Runtime, objID world.EntityId) error {
	o, err := rt.Store().Object(objID)
	if err != nil {
		return err
	}
	if o.Flags.Has(world.FlagScored) || o.Value == nil {
		return nil
	}
	if err := rt.SetFlag(objID, world.FlagScored); err != nil {
		return err
	}
	ScoreUpdate(rt, *o.Value)
	return nil
}

// AwardDeposit pays an object's trophy-case value the first time it is
// deposited there, independently of whether AwardPickup already paid
// its pickup value.
func AwardDeposit(rt action.Runtime, objID world.EntityId) error {
	o, err := rt.Store().Object(objID)
	if err != nil {
		return err
	}
	if o.Flags.Has(world.FlagDeposited) || o.TValue == nil {
		return nil
	}
	if err := rt.SetFlag(objID, world.FlagDeposited); err != nil {
		return err
	}
	ScoreUpdate(rt, *o.TValue)
	return nil
}

// Resurrection describes where a non-fatal death sends the player and
// their belongings (§4.J): inventory scatters to ScatterRoom, the
// player wakes in ReviveRoom.
type Resurrection struct {
	ReviveRoom  world.EntityId
	ScatterRoom world.EntityId
}

// JigsUp implements the death path. message is printed regardless of
// outcome. fatal endings (drowning, a fall with no chance of survival)
// bypass the three-death counter and end the game on the first call.
// Otherwise death count 1 and 2 resurrect the player; death count 3
// ends the game permanently.
func JigsUp(rt action.Runtime, message string, fatal bool, resurrect Resurrection) error {
	s := rt.Store()
	rt.Emit(message)
	s.Global.Deaths++

	if fatal || s.Global.Deaths >= 3 {
		s.Global.Quit = true
		return nil
	}

	winnerID := s.Global.WinnerID
	for _, id := range s.Contents(winnerID) {
		if err := rt.MoveObject(id, resurrect.ScatterRoom); err != nil {
			return err
		}
	}
	if err := rt.MoveObject(winnerID, resurrect.ReviveRoom); err != nil {
		return err
	}
	s.Global.Here = resurrect.ReviveRoom
	rt.RecomputeLight()
	return nil
}

// MaybeFinish sets Finished once the player, having already won, steps
// into the game's final room (the stone barrow). The catalogue wires
// this as that room's enter-phase action hook.
func MaybeFinish(rt action.Runtime, enteredRoom, finalRoom world.EntityId) {
	if enteredRoom == finalRoom && rt.Store().Global.Won {
		rt.Store().Global.Finished = true
	}
}
