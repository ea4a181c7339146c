// Package daemon implements spec component H: a named, turn-driven
// scheduler for one-shot and periodic background behaviour (the
// reservoir filling, the lantern burning down, the thief wandering the
// maze, the cyclops waking up).
//
// A daemon is registered once under a stable name with an initial tick
// count and, for periodic daemons, an interval it reschedules itself to
// after firing. Tick decrements every active daemon's countdown and
// fires the ones that reach zero, strictly in registration order — this
// is why pkg/session registers the combat daemon before any other
// daemon: a combat round always resolves before, say, the candles
// burning down within the same turn.
//
// The scheduler knows nothing about world state; a daemon's Func
// receives only an action.Runtime and is expected to use it (Emit,
// MoveObject, SetFlag, Roll, Die, ...) the same way an action hook does.
package daemon
