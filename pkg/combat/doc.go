// Package combat implements spec component I: the hero-blow and
// villain-blow resolution tables, strength bookkeeping, and the
// unconscious-villain awakening cycle.
//
// Combat state lives entirely on world.Object: a combatant's Strength is
// positive while alive, zero when dead, negative while unconscious (the
// magnitude is the strength it returns to on waking), and its Fight flag
// marks it as currently engaged. The player is just another Object by
// this package's reckoning — HeroBlow and VillainBlow share the same
// table-selection and post-modifier logic, applying the result to
// whichever side is the defender this swing.
//
// The six result tables (DEF1, DEF2A/B, DEF3A/B/C in the source
// material) are collapsed here to one lookup keyed by defender state and
// the attack/defence differential; table contents are an invented but
// Zork-shaped weighting since the original numeric tables are not part of
// this specification.
package combat
