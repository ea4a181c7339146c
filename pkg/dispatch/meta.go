package dispatch

import (
	"grue/pkg/action"
	"grue/pkg/world"
)

// registerMetas wires the closed set of meta-verbs (§4.F). Meta-verbs
// never reach an object/room hook and never tick moves or daemons —
// pkg/session relies on Result.IsMeta to know that.
//
// save/restore/script/unscript/verify/restart need a real filesystem or
// process-restart capability the core deliberately doesn't expose
// (spec §5: "operations that may block ... are confined to the shell
// layer"); here they only acknowledge the command. pkg/session is free
// to intercept them before they ever reach Dispatch if it wants the real
// behaviour, the same way a shell intercepts a REPL meta-command.
func (d *Dispatcher) registerMetas() {
	d.metas = map[string]MetaHandler{
		"verbose":     mVerbosity(world.VerbosityVerbose),
		"brief":       mVerbosity(world.VerbosityBrief),
		"super-brief": mVerbosity(world.VerbositySuperBrief),
		"version":     mVersion,
		"diagnose":    mDiagnose,
		"score":       mScore,
		"quit":        mQuit,
		"verify":      mAck("Everything seems to be in its proper place."),
		"restart":     mAck("Restarting is not available mid-session."),
		"save":        mAck("Saving is not available in this session."),
		"restore":     mAck("Restoring is not available in this session."),
		"script":      mAck("Scripting is not available in this session."),
		"unscript":    mAck("Scripting was not on."),
	}
}

func mVerbosity(v world.Verbosity) MetaHandler {
	return func(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
		rt.Store().Global.Verbosity = v
		switch v {
		case world.VerbosityVerbose:
			rt.Emit("Maximum verbosity.")
		case world.VerbositySuperBrief:
			rt.Emit("Super-brief descriptions.")
		default:
			rt.Emit("Brief descriptions.")
		}
		return action.Handled, nil
	}
}

func mVersion(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	rt.Emit("Release 1 / Serial number unknown.")
	return action.Handled, nil
}

func mDiagnose(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	winner, err := s.Winner()
	if err != nil {
		return action.Handled, err
	}
	wound := 0
	if winner.Strength != nil {
		wound = *winner.Strength
	}
	switch {
	case wound == 0:
		rt.Emit("You are in perfect health.")
	case wound > -3:
		rt.Emit("You have a few scratches.")
	case wound > -6:
		rt.Emit("You are in pretty bad shape.")
	default:
		rt.Emit("You are dying.")
	}
	if s.Global.Deaths > 0 {
		rt.Emitf("You have been killed %d time(s).", s.Global.Deaths)
	}
	return action.Handled, nil
}

func mScore(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	s := rt.Store()
	rt.Emitf("Your score is %d (total of %d points), in %d move(s).", s.Global.Score, s.Global.ScoreMax, s.Global.Moves)
	return action.Handled, nil
}

func mQuit(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
	rt.Store().Global.Quit = true
	rt.Emit("Thanks for playing.")
	return action.Fatal, nil
}

func mAck(text string) MetaHandler {
	return func(d *Dispatcher, rt action.Runtime, f *action.Frame) (action.Outcome, error) {
		rt.Emit(text)
		return action.Handled, nil
	}
}
