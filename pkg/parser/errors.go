package parser

import (
	"fmt"

	"grue/pkg/world"
)

// ErrorKind is the closed set of parser failure kinds (§4.D, §7).
type ErrorKind int

const (
	UnknownVerb ErrorKind = iota
	UnknownNoun
	NoMatch
	Ambiguous
	NotHere
	CantSee
	InClosedContainer
	MultipleNotAllowed
	DarkRoom
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownVerb:
		return "UnknownVerb"
	case UnknownNoun:
		return "UnknownNoun"
	case NoMatch:
		return "NoMatch"
	case Ambiguous:
		return "Ambiguous"
	case NotHere:
		return "NotHere"
	case CantSee:
		return "CantSee"
	case InClosedContainer:
		return "InClosedContainer"
	case MultipleNotAllowed:
		return "MultipleNotAllowed"
	case DarkRoom:
		return "DarkRoom"
	default:
		return "Unknown"
	}
}

// Error is the parser's single error type; its Kind selects the
// player-visible prose a shell renders (§7's table).
type Error struct {
	Kind       ErrorKind
	Word       string           // offending word, for Unknown{Verb,Noun}
	Noun       string           // the noun phrase, for NotHere/Ambiguous
	Candidates []world.EntityId // for Ambiguous
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownVerb:
		return fmt.Sprintf("I don't know the word %q.", e.Word)
	case UnknownNoun:
		return fmt.Sprintf("I don't know the word %q.", e.Word)
	case NoMatch:
		return "I don't understand that sentence."
	case Ambiguous:
		return fmt.Sprintf("Which %s do you mean?", e.Noun)
	case NotHere:
		return fmt.Sprintf("You don't see any %s here.", e.Noun)
	case CantSee:
		return "It's too dark to see."
	case InClosedContainer:
		return "You can't reach something that's inside a closed container."
	case MultipleNotAllowed:
		return "You can't use multiple direct objects with that verb."
	case DarkRoom:
		return "It's too dark to see."
	default:
		return "I don't understand that sentence."
	}
}
