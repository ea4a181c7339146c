// Package parser implements spec component D: it converts a line of
// player text into an *action.Frame (verb, direct objects, indirect
// object, preposition, direction).
//
// # Pipeline
//
// Tokenise (lowercase via golang.org/x/text/cases, drop noise words,
// collapse direction synonyms) → match a verb template's syntax shape →
// resolve each noun phrase against accessible objects → resolve pronouns.
// "all" expands to every accessible takeable (for take-like verbs) or to
// inventory (for drop-like verbs); the AllowMultipleDirect flag on a
// syntax governs whether a verb's template permits more than one
// resolved direct object at all.
//
// The pronoun "it" is rebound only by Parse, from the frame it has just
// produced; the dispatcher (pkg/dispatch) does not call back into the
// parser during a turn. The parser never mutates world state itself beyond
// Store.Global.It and its own last-parsed-frame cache.
package parser
