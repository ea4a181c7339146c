package session

import "testing"

func TestToFrameBuildsDirectAndIndirect(t *testing.T) {
	a := StructuredAction{Verb: "put", DirectObject: "egg", IndirectObj: "case", Preposition: "in"}
	f := a.ToFrame()
	if f.Verb != "put" || len(f.Direct) != 1 || f.Direct[0] != "egg" {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if f.Indirect == nil || *f.Indirect != "case" {
		t.Fatalf("expected indirect object wired, got %+v", f.Indirect)
	}
}

func TestToFrameOmitsDirectWhenEmpty(t *testing.T) {
	f := StructuredAction{Verb: "look"}.ToFrame()
	if len(f.Direct) != 0 {
		t.Fatalf("expected no direct objects for a bare verb, got %+v", f.Direct)
	}
}

func TestExecuteStructuredRejectsUnknownVerb(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.ExecuteStructured(StructuredAction{Verb: "xyzzy-nonexistent"}); err == nil {
		t.Fatalf("expected an error for an unrecognised verb")
	}
}

func TestExecuteStructuredRunsTake(t *testing.T) {
	s := newTestSession(t)
	res, err := s.ExecuteStructured(StructuredAction{Verb: "take", DirectObject: "egg"})
	if err != nil {
		t.Fatal(err)
	}
	if res.TurnCounter != 1 {
		t.Fatalf("expected one turn to elapse, got %d", res.TurnCounter)
	}
}

func TestValidActionsAndActionCountAgree(t *testing.T) {
	s := newTestSession(t)
	actions := s.ValidActions()
	if len(actions) != s.ActionCount() {
		t.Fatalf("expected ValidActions and ActionCount to agree: %d vs %d", len(actions), s.ActionCount())
	}
}
