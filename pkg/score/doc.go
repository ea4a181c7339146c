// Package score implements spec component J: score bookkeeping and the
// two end-of-game paths, win and death.
//
// ScoreUpdate is the single entry point that mutates Score/BaseScore; it
// is also where crossing ScoreMax is detected and Won is latched.
// AwardPickup and AwardDeposit wrap it with the one-shot bookkeeping a
// catalogue needs for treasures (paid once on first pickup, again once
// on trophy-case deposit), using a flag on the object itself so the
// award survives save/restore without a separate "already scored" set.
//
// JigsUp is the death path: it prints the message, always increments
// Deaths, and then either resurrects the player (scattering inventory
// to a fixed room) or ends the game, depending on the death count and
// whether the catalogue marked this particular ending as bypassing the
// three-death counter (drowning, falling into a chasm, ...).
package score
