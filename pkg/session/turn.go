package session

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"grue/pkg/action"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

// StepResult is what one Step/Execute call reports back to a driver (a CLI
// loop, a test harness, or an RL wrapper).
type StepResult struct {
	OutputText  string
	TurnCounter int
	Ended       bool
	EndReason   string
	ParserError bool
}

// Step runs one line of player input through the full turn loop (§4.K):
// snapshot for undo, parse, dispatch, and — for a non-meta command — tick
// moves and daemons. A parse error is reported as ordinary output and does
// not consume a turn.
func (s *Session) Step(line string) (StepResult, error) {
	if r, done := s.checkGameOver(); done {
		return r, nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
		return s.drain(), nil
	}

	frame, perr := s.Parser.Parse(trimmed)
	if perr != nil {
		s.Emit(perr.Error())
		r := s.drain()
		r.ParserError = true
		return r, nil
	}

	return s.runFrame(frame), nil
}

// Execute runs an already-parsed frame through dispatch, for callers (an
// RL driver, a scripted test) that build a StructuredAction directly
// instead of going through the parser.
func (s *Session) Execute(f *action.Frame) StepResult {
	return s.runFrame(f)
}

func (s *Session) runFrame(f *action.Frame) StepResult {
	isMeta := s.Dispatcher.Grammar.MetaVerbs[f.Verb]
	if !isMeta {
		s.pushUndo()
	}

	res, err := s.Dispatcher.Dispatch(s, f)
	if err != nil {
		s.Emit(err.Error())
	}

	if !res.IsMeta {
		s.store.Global.Moves++
		s.turnCount++
		if derr := s.Daemons.Tick(s); derr != nil {
			s.Emit(derr.Error())
		}
	}

	out := s.drain()
	if res.Outcome == action.Fatal || s.store.Global.Quit || s.store.Global.Finished {
		out.Ended = true
		out.EndReason = s.endReason()
	}
	return out
}

func (s *Session) checkGameOver() (StepResult, bool) {
	if s.store.Global.Quit || s.store.Global.Finished || s.store.Global.Deaths >= 3 {
		r := s.drain()
		r.Ended = true
		r.EndReason = s.endReason()
		return r, true
	}
	return StepResult{}, false
}

func (s *Session) endReason() string {
	switch {
	case s.store.Global.Won:
		return "won"
	case s.store.Global.Deaths >= 3:
		return "died"
	case s.store.Global.Quit:
		return "quit"
	case s.store.Global.Finished:
		return "finished"
	default:
		return ""
	}
}

func (s *Session) drain() StepResult {
	text := strings.Join(s.output, "\n")
	s.output = s.output[:0]
	return StepResult{OutputText: text, TurnCounter: s.turnCount}
}

// pushUndo snapshots the store before a non-meta command mutates it,
// bounding the stack to UndoDepth entries.
func (s *Session) pushUndo() {
	s.undo = append(s.undo, s.store.Clone())
	if len(s.undo) > s.UndoDepth {
		s.undo = s.undo[len(s.undo)-s.UndoDepth:]
	}
}

// Undo restores the store to its state before the last non-meta command,
// reporting false if there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	restored := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.store = restored
	s.Parser.Store = restored
	s.RecomputeLight()
	return true
}

// ObjectView is one entity's player-facing shape in a snapshot.
type ObjectView struct {
	ID       world.EntityId `json:"id"`
	Name     string         `json:"name"`
	Flags    []string       `json:"flags"`
	Depth    int            `json:"depth"` // 0 for a direct child of the room/inventory root, 1 for anything inside a container; deeper nesting is not distinguished
}

// Snapshot is the structured state handed to an RL driver or debug client
// after each step: everything Step's plain-text output also says, shaped
// for programmatic consumption.
type Snapshot struct {
	Score       int                       `json:"score"`
	ScoreMax    int                       `json:"score_max"`
	Moves       int                       `json:"moves"`
	Deaths      int                       `json:"deaths"`
	RoomID      world.EntityId            `json:"room_id"`
	RoomName    string                    `json:"room_name"`
	Lit         bool                      `json:"lit"`
	Visible     []ObjectView              `json:"visible"`
	Inventory   []ObjectView              `json:"inventory"`
	Exits       map[string]world.EntityId `json:"exits"`
	LastMessage string                    `json:"last_message"`
	MessageHash string                    `json:"message_hash"`
	GameOver    bool                      `json:"game_over"`
	EndReason   string                    `json:"end_reason,omitempty"`
	ValidVerbs  []string                  `json:"valid_verbs"`
}

// Snapshot renders the session's current state for a driver. lastMessage
// should be the OutputText of the Step/Execute call that produced this
// state (Snapshot itself does not buffer output).
func (s *Session) Snapshot(lastMessage string) Snapshot {
	g := s.store.Global
	room, _ := s.store.Room(g.Here)

	snap := Snapshot{
		Score:       g.Score,
		ScoreMax:    g.ScoreMax,
		Moves:       g.Moves,
		Deaths:      g.Deaths,
		RoomID:      g.Here,
		Lit:         g.Lit,
		LastMessage: lastMessage,
		MessageHash: hashMessage(lastMessage),
		GameOver:    g.Quit || g.Finished || g.Deaths >= 3,
		EndReason:   s.endReason(),
	}
	if room != nil {
		snap.RoomName = room.ShortName
		snap.Exits = exitMap(room)
	}
	if g.Lit {
		snap.Visible = objectViews(s.store, visibility.VisibleInRoom(s.store, g.Here), g.Here, 0)
	}
	snap.Inventory = objectViews(s.store, s.store.Contents(g.WinnerID), g.WinnerID, 0)
	snap.ValidVerbs = s.validVerbs()
	return snap
}

func exitMap(room *world.Room) map[string]world.EntityId {
	out := make(map[string]world.EntityId, len(room.Exits))
	for dir, ex := range room.Exits {
		if ex.Kind == world.ExitDirect || ex.Kind == world.ExitDoor || ex.Kind == world.ExitConditional {
			if ex.To != "" {
				out[dir] = ex.To
			}
		}
	}
	return out
}

func objectViews(s *world.Store, ids []world.EntityId, root world.EntityId, depth int) []ObjectView {
	out := make([]ObjectView, 0, len(ids))
	for _, id := range ids {
		o, err := s.Object(id)
		if err != nil {
			continue
		}
		d := depth
		if o.Location != root {
			d++
		}
		out = append(out, ObjectView{ID: id, Name: o.ShortName, Flags: flagNames(o.Flags), Depth: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func flagNames(fs world.FlagSet) []string {
	out := make([]string, 0, len(fs))
	for f := range fs {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// validVerbs lists every verb the grammar has a template for, for a
// driver that wants a closed action space rather than free text.
func (s *Session) validVerbs() []string {
	seen := map[string]bool{}
	for v := range s.Dispatcher.Grammar.Templates {
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func hashMessage(msg string) string {
	sum := sha256.Sum256([]byte(msg))
	return hex.EncodeToString(sum[:8])
}
