package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grue/pkg/action"
	"grue/pkg/visibility"
	"grue/pkg/world"
)

var lowerer = cases.Lower(language.Und)

// Parser converts player input lines into *action.Frame values against a
// fixed Grammar and a live world.Store.
type Parser struct {
	Store     *world.Store
	Grammar   *Grammar
	lastFrame *action.Frame
}

// New creates a Parser bound to store and grammar.
func New(store *world.Store, grammar *Grammar) *Parser {
	return &Parser{Store: store, Grammar: grammar}
}

// LastFrame returns the most recently parsed frame, or nil.
func (p *Parser) LastFrame() *action.Frame {
	return p.lastFrame
}

// tokenize lower-cases, splits on whitespace/punctuation, and drops noise
// words (§4.D stage 1).
func (p *Parser) tokenize(line string) []string {
	lowered := lowerer.String(line)
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	out := fields[:0]
	for _, f := range fields {
		if p.Grammar.NoiseWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Parse runs the full pipeline and, on success, updates the pronoun "it"
// and the last-parsed-frame cache — the only world state this package
// touches.
func (p *Parser) Parse(line string) (*action.Frame, error) {
	tokens := p.tokenize(line)
	if len(tokens) == 0 {
		return nil, &Error{Kind: NoMatch}
	}

	first := tokens[0]
	verbID, isVerb := p.resolveVerb(first)
	var rest []string
	if isVerb {
		rest = tokens[1:]
	} else if dir, ok := p.Grammar.DirectionWords[first]; ok && len(tokens) == 1 {
		verbID = "go"
		rest = []string{dir}
	} else {
		return nil, &Error{Kind: UnknownVerb, Word: first}
	}

	tmpl, ok := p.Grammar.Templates[verbID]
	if !ok {
		return nil, &Error{Kind: UnknownVerb, Word: verbID}
	}

	frame, err := p.matchSyntax(verbID, tmpl, rest)
	if err != nil {
		return nil, err
	}

	p.lastFrame = frame
	p.updatePronoun(frame)
	return frame, nil
}

func (p *Parser) resolveVerb(word string) (string, bool) {
	canon, ok := p.Grammar.VerbAliases[word]
	return canon, ok
}

func (p *Parser) matchSyntax(verbID string, tmpl *VerbTemplate, rest []string) (*action.Frame, error) {
	// Bare direction command, e.g. "go north" / a direction word alone.
	if len(rest) == 1 {
		if dir, ok := p.Grammar.DirectionWords[rest[0]]; ok {
			if hasShape(tmpl, ShapeDirection) {
				return &action.Frame{Verb: verbID, Direction: dir}, nil
			}
		}
	}

	if len(rest) == 0 {
		if syn, ok := firstShape(tmpl, ShapeNone); ok {
			if syn.RequiresLight && !p.Store.Global.Lit {
				return nil, &Error{Kind: DarkRoom}
			}
			return &action.Frame{Verb: verbID}, nil
		}
		return nil, &Error{Kind: NoMatch}
	}

	// direct + preposition + indirect
	if syn, prepIdx, ok := p.findPrepSplit(tmpl, rest); ok {
		directToks := rest[:prepIdx]
		indirectToks := rest[prepIdx+1:]
		if len(directToks) == 0 || len(indirectToks) == 0 {
			return nil, &Error{Kind: NoMatch}
		}
		direct, err := p.resolveDirectSlot(verbID, directToks, syn.AllowMultipleDirect)
		if err != nil {
			return nil, err
		}
		indirect, err := p.resolveOne(indirectToks)
		if err != nil {
			return nil, err
		}
		return &action.Frame{Verb: verbID, Direct: direct, Indirect: &indirect, Preposition: rest[prepIdx]}, nil
	}

	// direct + indirect, no preposition: catalogue verbs using this shape
	// are restricted to single-token noun phrases on each side (see
	// DESIGN.md) — "give troll sword", not "give troll the rusty sword".
	if syn, ok := firstShape(tmpl, ShapeDirectIndirect); ok && len(rest) == 2 {
		indirect, err := p.resolveOne(rest[0:1])
		if err != nil {
			return nil, err
		}
		direct, err := p.resolveOne(rest[1:2])
		if err != nil {
			return nil, err
		}
		_ = syn
		return &action.Frame{Verb: verbID, Direct: []world.EntityId{direct}, Indirect: &indirect}, nil
	}

	// direct-only
	if syn, ok := firstShape(tmpl, ShapeDirectOnly); ok {
		if syn.RequiresLight && !p.Store.Global.Lit {
			return nil, &Error{Kind: DarkRoom}
		}
		direct, err := p.resolveDirectSlot(verbID, rest, syn.AllowMultipleDirect)
		if err != nil {
			return nil, err
		}
		return &action.Frame{Verb: verbID, Direct: direct}, nil
	}

	return nil, &Error{Kind: NoMatch}
}

func hasShape(tmpl *VerbTemplate, shape SyntaxShape) bool {
	_, ok := firstShape(tmpl, shape)
	return ok
}

func firstShape(tmpl *VerbTemplate, shape SyntaxShape) (Syntax, bool) {
	for _, s := range tmpl.Syntaxes {
		if s.Shape == shape {
			return s, true
		}
	}
	return Syntax{}, false
}

func (p *Parser) findPrepSplit(tmpl *VerbTemplate, rest []string) (Syntax, int, bool) {
	for _, syn := range tmpl.Syntaxes {
		if syn.Shape != ShapeDirectPrepIndirect {
			continue
		}
		for i, tok := range rest {
			if tok == syn.Preposition {
				return syn, i, true
			}
		}
	}
	return Syntax{}, 0, false
}

// resolveDirectSlot resolves the direct-object slot, expanding "all" and
// rejecting multi-object results when the syntax forbids them.
func (p *Parser) resolveDirectSlot(verbID string, toks []string, allowMultiple bool) ([]world.EntityId, error) {
	if len(toks) == 1 && toks[0] == "all" {
		ids := p.resolveAll(verbID)
		if !allowMultiple && len(ids) > 1 {
			return nil, &Error{Kind: MultipleNotAllowed}
		}
		return ids, nil
	}

	phrases := splitNounPhrases(toks)
	if len(phrases) > 1 && !allowMultiple {
		return nil, &Error{Kind: MultipleNotAllowed}
	}
	out := make([]world.EntityId, 0, len(phrases))
	for _, ph := range phrases {
		id, err := p.resolveOne(ph)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// splitNounPhrases splits a direct-object slot's tokens on "and"/",".
func splitNounPhrases(toks []string) [][]string {
	var phrases [][]string
	var cur []string
	for _, t := range toks {
		if t == "and" || t == "," {
			if len(cur) > 0 {
				phrases = append(phrases, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		phrases = append(phrases, cur)
	}
	if len(phrases) == 0 {
		return [][]string{toks}
	}
	return phrases
}

// resolveAll expands "all" per verb family (§4.D stage 5).
func (p *Parser) resolveAll(verbID string) []world.EntityId {
	switch verbID {
	case "take":
		var out []world.EntityId
		for _, id := range visibility.VisibleInRoom(p.Store, p.Store.Global.Here) {
			o, err := p.Store.Object(id)
			if err != nil {
				continue
			}
			if o.Flags.Has(world.FlagTake) {
				out = append(out, id)
			}
		}
		return out
	case "drop":
		var out []world.EntityId
		for _, id := range p.Store.Contents(p.Store.Global.WinnerID) {
			out = append(out, id)
		}
		return out
	default:
		return visibility.VisibleInRoom(p.Store, p.Store.Global.Here)
	}
}

// resolveOne resolves a single noun phrase (adjectives..., noun) against
// the store, honouring pronouns and darkness.
func (p *Parser) resolveOne(toks []string) (world.EntityId, error) {
	if len(toks) == 1 && (toks[0] == "it" || toks[0] == "them") {
		if p.Store.Global.It == nil {
			return "", &Error{Kind: NotHere, Noun: toks[0]}
		}
		return *p.Store.Global.It, nil
	}

	noun := toks[len(toks)-1]
	adjs := toks[:len(toks)-1]

	var reachable []world.EntityId
	if p.Store.Global.Lit {
		reachable = visibility.VisibleInRoom(p.Store, p.Store.Global.Here)
		reachable = append(reachable, p.Store.Contents(p.Store.Global.WinnerID)...)
	} else {
		reachable = p.litReachableOnly()
	}

	var matches []world.EntityId
	for _, id := range reachable {
		o, err := p.Store.Object(id)
		if err != nil {
			continue
		}
		if o.MatchesNounPhrase(adjs, noun) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", p.explainMiss(noun)
	default:
		return "", &Error{Kind: Ambiguous, Noun: noun, Candidates: matches}
	}
}

// litReachableOnly returns the objects resolvable in a dark room: only the
// things the winner is already holding (§4.D CantSee).
func (p *Parser) litReachableOnly() []world.EntityId {
	var out []world.EntityId
	for _, id := range p.Store.Contents(p.Store.Global.WinnerID) {
		out = append(out, id)
	}
	return out
}

// explainMiss distinguishes NotHere / InClosedContainer / UnknownNoun / CantSee
// for a noun that did not resolve among reachable objects.
func (p *Parser) explainMiss(noun string) error {
	if !p.Store.Global.Lit {
		for _, o := range p.Store.Objects {
			if matchesLoose(o, noun) {
				return &Error{Kind: CantSee}
			}
		}
	}
	for id, o := range p.Store.Objects {
		if !matchesLoose(o, noun) {
			continue
		}
		if p.isInClosedContainer(id) {
			return &Error{Kind: InClosedContainer}
		}
		return &Error{Kind: NotHere, Noun: noun}
	}
	return &Error{Kind: UnknownNoun, Word: noun}
}

func matchesLoose(o *world.Object, noun string) bool {
	for _, syn := range o.Synonyms {
		if syn == noun {
			return true
		}
	}
	return false
}

func (p *Parser) isInClosedContainer(id world.EntityId) bool {
	o, err := p.Store.Object(id)
	if err != nil {
		return false
	}
	parent, err := p.Store.Object(o.Location)
	if err != nil {
		return false
	}
	if parent.Flags.Has(world.FlagCont) && !parent.Flags.Has(world.FlagOpen) && !parent.Flags.Has(world.FlagTrans) {
		return true
	}
	return false
}

// updatePronoun sets "it"/"them" antecedent to the last direct object
// referenced, skipping rooms and the winner themselves (§4.D stage 4).
func (p *Parser) updatePronoun(f *action.Frame) {
	if len(f.Direct) == 0 {
		return
	}
	last := f.Direct[len(f.Direct)-1]
	if last == p.Store.Global.WinnerID || p.Store.IsRoom(last) {
		return
	}
	id := last
	p.Store.Global.It = &id
}
