// Package rng provides the deterministic, save/restore-able random stream
// used throughout the grue runtime (combat rolls, message-variant
// selection, daemon jitter, thief wandering).
//
// # Determinism
//
// An RNG is created from a single uint64 seed. Every value it produces is a
// pure function of (seed, draw index): two RNGs created from the same seed
// and advanced the same number of times produce identical sequences. This
// is what makes P5 (save/restore identity) and P6 (determinism) possible —
// a saved RngState is just the seed plus a draw count, not a snapshot of
// math/rand's internal algorithm state.
//
// # Speculative draws
//
// Combat-outcome search tooling (and tests that want to preview "what would
// happen") can call WithSpeculative to run a closure against the live RNG,
// observe the resulting state, and have the RNG rewound to where it was
// before the closure ran.
package rng
