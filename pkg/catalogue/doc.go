// Package catalogue loads static world content from disk: rooms, objects
// and global scalars from YAML (the world catalogue), and verb grammar,
// villain combat registrations from TOML (the verb/combat catalogue) — two
// authoring formats for two different concerns, the way the source
// material kept world data and verb grammar in separate files.
//
// Loading only builds data: *world.Store, *parser.Grammar, and a villain
// registration map. Binding built-in Go action hooks to the ActionRef keys
// a catalogue names is the caller's job (pkg/session, or a test fixture),
// since a hook is executable code and the whole point of ActionRef (§9) is
// that the catalogue never carries any.
package catalogue
