package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"grue/pkg/session"
)

// mlAction is one line of --ml stdin input: either a reserved verb
// ("reset" or "stats") or a StructuredAction to execute.
type mlAction struct {
	Verb         string `json:"verb"`
	Direction    string `json:"direction,omitempty"`
	DirectObject string `json:"direct_object,omitempty"`
	IndirectObj  string `json:"indirect_object,omitempty"`
	Preposition  string `json:"preposition,omitempty"`
}

// mlSnapshot is one line of --ml stdout output: a session.Snapshot plus,
// when --ml-rewards is set, the reward signals for the transition that
// produced it.
type mlSnapshot struct {
	session.Snapshot
	Reward *session.RewardSignals `json:"reward,omitempty"`
}

// runML implements the §6 JSON-lines protocol: read one mlAction per
// line from in, execute it, write one mlSnapshot per line to stdout.
// "reset" rebuilds the session from the same catalogue and seed; "stats"
// emits the current snapshot without consuming a turn.
func runML(sess *session.Session, in *bufio.Scanner) int {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	emit := func(snap session.Snapshot, reward *session.RewardSignals) int {
		line, err := json.Marshal(mlSnapshot{Snapshot: snap, Reward: reward})
		if err != nil {
			fmt.Fprintln(os.Stderr, "grue:", err)
			return exitInternal
		}
		out.Write(line)
		out.WriteByte('\n')
		out.Flush()
		return exitSuccess
	}

	before := sess.Snapshot("")
	if code := emit(before, nil); code != exitSuccess {
		return code
	}

	turns := 0
	for in.Scan() {
		var a mlAction
		if err := json.Unmarshal(in.Bytes(), &a); err != nil {
			fmt.Fprintln(os.Stderr, "grue: malformed --ml action:", err)
			return exitInternal
		}

		switch a.Verb {
		case "stats":
			if code := emit(sess.Snapshot(""), nil); code != exitSuccess {
				return code
			}
			continue
		case "reset":
			rebuilt, err := buildSession()
			if err != nil {
				fmt.Fprintln(os.Stderr, "grue: reset failed:", err)
				return exitInternal
			}
			*sess = *rebuilt
			turns = 0
			before = sess.Snapshot("")
			if code := emit(before, nil); code != exitSuccess {
				return code
			}
			continue
		}

		structured := session.StructuredAction{
			Verb: a.Verb, Direction: a.Direction, DirectObject: a.DirectObject,
			IndirectObj: a.IndirectObj, Preposition: a.Preposition,
		}
		res, execErr := sess.ExecuteStructured(structured)
		after := sess.Snapshot(res.OutputText)

		var reward *session.RewardSignals
		if flags.mlRewards {
			r := sess.Reward(before, after, execErr == nil)
			reward = &r
		}
		if code := emit(after, reward); code != exitSuccess {
			return code
		}
		before = after

		if res.TurnCounter > turns {
			turns = res.TurnCounter
			if flags.maxTurns > 0 && turns >= flags.maxTurns {
				return exitMaxTurns
			}
		}
		if after.GameOver {
			if after.EndReason == "died" && (flags.strict || flags.failOnDeath) {
				return exitDeath
			}
			return exitSuccess
		}
	}
	return exitSuccess
}
