package world

// Flag is a boolean predicate from the closed catalogue set described in
// spec §3. Flags are held in a set associated with their owning entity.
type Flag string

// The closed set of roughly thirty flags. Location-type flags are only
// meaningful on rooms; object-nature and dynamic-state flags are only
// meaningful on objects (which includes the player, an Object per §3).
const (
	// Location type.
	FlagLit    Flag = "lit"
	FlagSacred Flag = "sacred"
	FlagMaze   Flag = "maze"
	FlagRWater Flag = "rwater"

	// Object nature.
	FlagTake    Flag = "take"
	FlagTryTake Flag = "trytake"
	FlagCont    Flag = "cont"
	FlagSurface Flag = "surface"
	FlagOpen    Flag = "open"
	FlagDoor    Flag = "door"
	FlagTrans   Flag = "trans"
	FlagRead    Flag = "read"
	FlagLight   Flag = "light"
	FlagOn      Flag = "on"
	FlagBurn    Flag = "burn"
	FlagFlame   Flag = "flame"
	FlagWeapon  Flag = "weapon"
	FlagTool    Flag = "tool"
	FlagFood    Flag = "food"
	FlagDrink   Flag = "drink"
	FlagVehicle Flag = "vehicle"
	FlagClimb   Flag = "climb"
	FlagActor   Flag = "actor"

	// Dynamic state.
	FlagTouch      Flag = "touch"
	FlagInvisible  Flag = "invisible"
	FlagNDesc      Flag = "ndesc"
	FlagSearch     Flag = "search"
	FlagFight      Flag = "fight"
	FlagStaggered  Flag = "staggered"
	FlagBurnedOut  Flag = "burned-out"
	FlagScored     Flag = "scored"     // pickup value already awarded once (§4.J)
	FlagDeposited  Flag = "deposited"  // trophy-case value already awarded once (§4.J)
)

// AllFlags lists every flag in the closed catalogue set, used by
// catalogue validation to reject typos in authored content.
var AllFlags = []Flag{
	FlagLit, FlagSacred, FlagMaze, FlagRWater,
	FlagTake, FlagTryTake, FlagCont, FlagSurface, FlagOpen, FlagDoor, FlagTrans,
	FlagRead, FlagLight, FlagOn, FlagBurn, FlagFlame, FlagWeapon, FlagTool,
	FlagFood, FlagDrink, FlagVehicle, FlagClimb, FlagActor,
	FlagTouch, FlagInvisible, FlagNDesc, FlagSearch, FlagFight, FlagStaggered, FlagBurnedOut,
	FlagScored, FlagDeposited,
}

// IsKnownFlag reports whether f is in the closed catalogue set.
func IsKnownFlag(f Flag) bool {
	for _, known := range AllFlags {
		if known == f {
			return true
		}
	}
	return false
}

// FlagSet is a small set of flags. The zero value is an empty set.
type FlagSet map[Flag]struct{}

// Has reports whether f is set.
func (s FlagSet) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// Set adds f to the set.
func (s FlagSet) Set(f Flag) {
	s[f] = struct{}{}
}

// Unset removes f from the set.
func (s FlagSet) Unset(f Flag) {
	delete(s, f)
}

// NewFlagSet builds a FlagSet from the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	s := make(FlagSet, len(flags))
	for _, f := range flags {
		s.Set(f)
	}
	return s
}
