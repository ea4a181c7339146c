package session

import (
	"fmt"

	"grue/pkg/action"
	"grue/pkg/world"
)

// StructuredAction is the wire shape of a pre-parsed command (§6), used by
// a headless agent that builds a verb frame directly instead of typing a
// sentence for the parser to resolve.
type StructuredAction struct {
	Verb         string `json:"verb"`
	Direction    string `json:"direction,omitempty"`
	DirectObject string `json:"direct_object,omitempty"`
	IndirectObj  string `json:"indirect_object,omitempty"`
	Preposition  string `json:"preposition,omitempty"`
}

// ToFrame converts a wire-format StructuredAction into the *action.Frame
// the dispatcher expects. An empty DirectObject yields a nil Direct slice,
// matching a verb (like "look") that takes no object.
func (a StructuredAction) ToFrame() *action.Frame {
	f := &action.Frame{
		Verb:        a.Verb,
		Preposition: a.Preposition,
		Direction:   a.Direction,
	}
	if a.DirectObject != "" {
		f.Direct = []world.EntityId{world.EntityId(a.DirectObject)}
	}
	if a.IndirectObj != "" {
		id := world.EntityId(a.IndirectObj)
		f.Indirect = &id
	}
	return f
}

// ExecuteStructured validates the verb against the current verb grammar
// and runs it, rejecting anything the dispatcher would not recognise
// before it ever reaches parse/dispatch.
func (s *Session) ExecuteStructured(a StructuredAction) (StepResult, error) {
	if _, ok := s.Dispatcher.Grammar.Templates[a.Verb]; !ok && !s.Dispatcher.Grammar.MetaVerbs[a.Verb] {
		return StepResult{}, fmt.Errorf("session: unknown verb %q", a.Verb)
	}
	return s.Execute(a.ToFrame()), nil
}

// ValidActions enumerates one StructuredAction per verb the dispatcher
// currently recognises, derived purely from the verb grammar — a closed
// action space a headless agent can sample from without parsing prose.
func (s *Session) ValidActions() []StructuredAction {
	verbs := s.validVerbs()
	out := make([]StructuredAction, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, StructuredAction{Verb: v})
	}
	return out
}

// ActionCount is len(s.ValidActions()) without building the slice.
func (s *Session) ActionCount() int {
	return len(s.Dispatcher.Grammar.Templates)
}
