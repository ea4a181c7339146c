package combat

import (
	"strings"

	"grue/pkg/action"
	"grue/pkg/world"
)

// Baseline clamp bounds for the player's computed fight strength
// (§4.I hero blow, step 2). The specification names STRENGTH_MIN and
// STRENGTH_MAX without fixing their value; these reproduce the source
// material's classic range.
const (
	StrengthMin = 2
	StrengthMax = 7
)

// ResultKind is one outcome of a single blow.
type ResultKind int

const (
	Missed ResultKind = iota
	Stagger
	LightWound
	SeriousWound
	Unconscious
	Killed
	LoseWeapon
	Hesitate    // post-modifier: Stagger against an already-staggered defender
	SittingDuck // post-modifier: Unconscious against an already-staggered defender
)

func (r ResultKind) String() string {
	switch r {
	case Missed:
		return "missed"
	case Stagger:
		return "stagger"
	case LightWound:
		return "light-wound"
	case SeriousWound:
		return "serious-wound"
	case Unconscious:
		return "unconscious"
	case Killed:
		return "killed"
	case LoseWeapon:
		return "lose-weapon"
	case Hesitate:
		return "hesitate"
	case SittingDuck:
		return "sitting-duck"
	default:
		return "unknown"
	}
}

// Messages maps a result kind to its prose template. Templates may
// contain the tokens "{weapon}" and "{defender}", substituted at message
// formatting time.
type Messages map[ResultKind]string

// VillainReg is the catalogue's combat registration for one villain
// (§4.I): its preferred weapon and the advantage it grants the wielder,
// the per-turn wake-probability growth base, and its message templates.
type VillainReg struct {
	ID         world.EntityId
	BestWeapon world.EntityId
	BestAdv    int
	WakeProb   int
	Messages   Messages
}

func strengthOf(o *world.Object) int {
	if o.Strength == nil {
		return 0
	}
	return *o.Strength
}

func setStrength(rt action.Runtime, id world.EntityId, v int) error {
	o, err := rt.Store().Object(id)
	if err != nil {
		return err
	}
	o.Strength = &v
	return nil
}

func hasWeaponHeld(s *world.Store, holder world.EntityId) bool {
	for _, id := range s.Contents(holder) {
		o, err := s.Object(id)
		if err != nil {
			continue
		}
		if o.Flags.Has(world.FlagWeapon) {
			return true
		}
	}
	return false
}

// weaponHeld returns holder's preferred weapon if carried, else any
// carried weapon, else "" (bare-handed).
func weaponHeld(s *world.Store, holder, preferred world.EntityId) world.EntityId {
	var any world.EntityId
	for _, id := range s.Contents(holder) {
		o, err := s.Object(id)
		if err != nil || !o.Flags.Has(world.FlagWeapon) {
			continue
		}
		if id == preferred {
			return id
		}
		if any == "" {
			any = id
		}
	}
	return any
}

// playerFightStrength computes the player's combat strength (§4.I step
// 2): a base scaled linearly by score toward ScoreMax, clamped to
// [StrengthMin, StrengthMax], plus the wound modifier (the player's own
// Strength, which is <= 0), floored at 1.
func playerFightStrength(s *world.Store) int {
	scoreMax := s.Global.ScoreMax
	if scoreMax <= 0 {
		scoreMax = 1
	}
	divisor := scoreMax / (StrengthMax - StrengthMin)
	if divisor <= 0 {
		divisor = 1
	}
	base := StrengthMin + s.Global.Score/divisor
	if base < StrengthMin {
		base = StrengthMin
	}
	if base > StrengthMax {
		base = StrengthMax
	}

	winner, err := s.Winner()
	wound := 0
	if err == nil {
		wound = strengthOf(winner)
	}

	att := base + wound
	if att < 1 {
		att = 1
	}
	return att
}

// defenderStrength computes a combatant's defensive strength against a
// given attacking weapon (§4.I step 3): unconscious combatants
// (negative strength) keep their strength unchanged; an attacker
// wielding the weapon registered as reg.BestWeapon otherwise subtracts
// the registered advantage (minimum 1).
func defenderStrength(reg VillainReg, defender *world.Object, weapon world.EntityId) int {
	base := strengthOf(defender)
	if base < 0 {
		return base
	}
	if weapon != "" && weapon == reg.BestWeapon {
		adv := reg.BestAdv
		if adv < 1 {
			adv = 1
		}
		base -= adv
	}
	return base
}

// selectTable picks one of the six result tables by defender strength
// and the attack/defence differential (§4.I step 5).
func selectTable(defStrength, diff int) []ResultKind {
	if defStrength < 0 {
		return tableDEF1
	}
	switch {
	case diff <= 0:
		return tableDEF2A
	case diff <= 2:
		return tableDEF2B
	case diff <= 4:
		return tableDEF3A
	case diff <= 6:
		return tableDEF3B
	default:
		return tableDEF3C
	}
}

var (
	tableDEF1 = []ResultKind{ // finishing blow on an already-unconscious defender
		Killed, Killed, Killed, Killed, Killed, Killed, Killed, Missed, Unconscious,
	}
	tableDEF2A = []ResultKind{ // defender stronger than attacker
		Missed, Missed, Missed, Missed, Stagger, Stagger, Stagger, LightWound, LightWound,
	}
	tableDEF2B = []ResultKind{ // roughly even
		Missed, Missed, Missed, Stagger, Stagger, LightWound, LightWound, LightWound, Unconscious,
	}
	tableDEF3A = []ResultKind{ // attacker ahead
		Missed, Missed, Stagger, Stagger, LightWound, LightWound, SeriousWound, Unconscious, Killed,
	}
	tableDEF3B = []ResultKind{ // attacker well ahead
		Missed, Stagger, LightWound, LightWound, SeriousWound, SeriousWound, Unconscious, Killed, Killed,
	}
	tableDEF3C = []ResultKind{ // attacker overwhelming
		Missed, Stagger, LightWound, SeriousWound, SeriousWound, Unconscious, Killed, Killed, Killed,
	}
)

func formatMessage(reg VillainReg, result ResultKind, weaponName, defenderName string) string {
	tmpl, ok := reg.Messages[result]
	if !ok {
		tmpl = result.String()
	}
	replacer := strings.NewReplacer("{weapon}", weaponName, "{defender}", defenderName)
	return replacer.Replace(tmpl)
}

func displayName(s *world.Store, id world.EntityId) string {
	if id == "" {
		return "bare hands"
	}
	o, err := s.Object(id)
	if err != nil {
		return string(id)
	}
	return o.ShortName
}

// applyPostModifiers implements §4.I step 6: escalates stagger/
// unconscious results against a defender that is already staggered from
// an earlier blow this fight, then rolls the 25% stagger-to-lose-weapon
// promotion.
func applyPostModifiers(rt action.Runtime, result ResultKind, defenderID world.EntityId) ResultKind {
	s := rt.Store()
	defender, err := s.Object(defenderID)
	if err != nil {
		return result
	}
	if defender.Flags.Has(world.FlagStaggered) {
		if result == Stagger {
			result = Hesitate
		} else if result == Unconscious {
			result = SittingDuck
		}
	}
	if result == Stagger && hasWeaponHeld(s, defenderID) && rt.Roll(4) == 0 {
		result = LoseWeapon
	}
	return result
}

// resolveBlow runs §4.I steps 2-7 for one swing: attacker strikes
// defender (whose defensive strength is def) with weapon, returning the
// chosen result and its formatted message. It does not apply the
// result; callers decide how death is finalised for each side (villain
// -> LIMBO, player -> end-game).
func resolveBlow(rt action.Runtime, reg VillainReg, att, def int, defenderID, weaponID world.EntityId) (ResultKind, string, error) {
	s := rt.Store()
	if _, err := s.Object(defenderID); err != nil {
		return Missed, "", err
	}

	var result ResultKind
	if !hasWeaponHeld(s, defenderID) && def < 0 {
		result = Killed
	} else {
		diff := att - def
		table := selectTable(def, diff)
		idx := rt.Roll(len(table))
		if idx < 0 || idx >= len(table) {
			idx = 0
		}
		result = table[idx]
	}

	result = applyPostModifiers(rt, result, defenderID)

	msg := formatMessage(reg, result, displayName(s, weaponID), displayName(s, defenderID))
	return result, msg, nil
}

// applyToVillain finalises a blow landed on a villain (§4.I step 8): wound
// bookkeeping, death (move to LIMBO, clear fight, fire f-dead), or the
// unconscious transition (fire f-unconscious).
func applyToVillain(rt action.Runtime, resolver action.Resolver, result ResultKind, villainID, weaponID world.EntityId) error {
	s := rt.Store()
	villain, err := s.Object(villainID)
	if err != nil {
		return err
	}

	switch result {
	case Missed:
		return nil
	case Stagger, Hesitate:
		return rt.SetFlag(villainID, world.FlagStaggered)
	case LightWound:
		return setStrength(rt, villainID, strengthOf(villain)-1)
	case SeriousWound:
		return setStrength(rt, villainID, strengthOf(villain)-2)
	case LoseWeapon:
		if weaponID != "" {
			if err := rt.MoveObject(weaponID, s.Global.Here); err != nil {
				return err
			}
		}
		return nil
	case Unconscious, SittingDuck:
		mag := strengthOf(villain)
		if mag <= 0 {
			mag = 1
		}
		if err := setStrength(rt, villainID, -mag); err != nil {
			return err
		}
		_, err := action.Invoke(resolver, villain.Action, rt, action.HookContext{Entity: villainID, Phase: action.PhaseUnconscious})
		return err
	case Killed:
		if err := setStrength(rt, villainID, 0); err != nil {
			return err
		}
		if err := rt.UnsetFlag(villainID, world.FlagFight); err != nil {
			return err
		}
		if err := rt.MoveObject(villainID, world.Limbo); err != nil {
			return err
		}
		_, err := action.Invoke(resolver, villain.Action, rt, action.HookContext{Entity: villainID, Phase: action.PhaseDead})
		return err
	}
	return nil
}

// applyToPlayer finalises a blow landed on the player: wound bookkeeping
// or the end-game when the wound counter reaches zero.
func applyToPlayer(rt action.Runtime, result ResultKind, weaponID world.EntityId) error {
	s := rt.Store()
	winner, err := s.Winner()
	if err != nil {
		return err
	}

	switch result {
	case Missed:
		return nil
	case Stagger, Hesitate:
		return rt.SetFlag(s.Global.WinnerID, world.FlagStaggered)
	case LightWound:
		return setStrength(rt, s.Global.WinnerID, strengthOf(winner)-1)
	case SeriousWound:
		return setStrength(rt, s.Global.WinnerID, strengthOf(winner)-2)
	case LoseWeapon:
		if weaponID != "" {
			return rt.MoveObject(weaponID, s.Global.Here)
		}
		return nil
	case Unconscious, SittingDuck:
		mag := strengthOf(winner)
		if mag <= 0 {
			mag = 1
		}
		return setStrength(rt, s.Global.WinnerID, -mag)
	case Killed:
		if err := setStrength(rt, s.Global.WinnerID, 0); err != nil {
			return err
		}
		return rt.Die("It appears that that last blow was too much for you.")
	}
	return nil
}

// HeroBlow resolves the player attacking villainID with weaponID (""
// for bare hands). If the player is currently staggered the attack
// fails outright and the flag clears (§4.I step 1).
func HeroBlow(rt action.Runtime, resolver action.Resolver, reg VillainReg, villainID, weaponID world.EntityId) (string, error) {
	s := rt.Store()
	winner, err := s.Winner()
	if err != nil {
		return "", err
	}
	if winner.Flags.Has(world.FlagStaggered) {
		if err := rt.UnsetFlag(s.Global.WinnerID, world.FlagStaggered); err != nil {
			return "", err
		}
		return "You are still recovering your balance and fail to attack.", nil
	}

	villain, err := s.Object(villainID)
	if err != nil {
		return "", err
	}

	att := playerFightStrength(s)
	def := defenderStrength(reg, villain, weaponID)
	result, msg, err := resolveBlow(rt, reg, att, def, villainID, weaponID)
	if err != nil {
		return "", err
	}
	if err := applyToVillain(rt, resolver, result, villainID, weaponID); err != nil {
		return "", err
	}
	return msg, nil
}

// VillainBlow resolves villainID attacking the player, driven by the
// combat daemon once per turn for every villain with Fight set in the
// current room. An unconscious or dead villain never swings.
func VillainBlow(rt action.Runtime, resolver action.Resolver, reg VillainReg, villainID world.EntityId) (string, error) {
	s := rt.Store()
	villain, err := s.Object(villainID)
	if err != nil {
		return "", err
	}
	if strengthOf(villain) <= 0 {
		return "", nil
	}
	if villain.Flags.Has(world.FlagStaggered) {
		if err := rt.UnsetFlag(villainID, world.FlagStaggered); err != nil {
			return "", err
		}
		return "", nil
	}

	weapon := weaponHeld(s, villainID, reg.BestWeapon)
	att := strengthOf(villain)
	def := playerFightStrength(s)
	result, msg, err := resolveBlow(rt, reg, att, def, s.Global.WinnerID, weapon)
	if err != nil {
		return "", err
	}
	if err := applyToPlayer(rt, result, weapon); err != nil {
		return "", err
	}
	return msg, nil
}

// Awaken implements §4.I's awakening cycle for one unconscious villain:
// its wake probability grows by 25 (capped at 100) each turn it fails to
// wake, rolled fresh every turn.
func Awaken(rt action.Runtime, resolver action.Resolver, reg VillainReg, villainID world.EntityId) error {
	s := rt.Store()
	villain, err := s.Object(villainID)
	if err != nil {
		return err
	}
	mag := strengthOf(villain)
	if mag >= 0 {
		return nil
	}

	prob, ok := s.Global.WakeProbs[villainID]
	if !ok {
		prob = reg.WakeProb
	}

	if rt.Roll(100) < prob {
		if err := setStrength(rt, villainID, -mag); err != nil {
			return err
		}
		delete(s.Global.WakeProbs, villainID)
		_, err := action.Invoke(resolver, villain.Action, rt, action.HookContext{Entity: villainID, Phase: action.PhaseConscious})
		return err
	}

	prob += 25
	if prob > 100 {
		prob = 100
	}
	s.Global.WakeProbs[villainID] = prob
	return nil
}

// EnforceFightLocation implements C3: clears Fight on any actor whose
// current location is not the winner's room. Call once per turn before
// the combat daemon swings.
func EnforceFightLocation(s *world.Store) {
	for _, o := range s.Objects {
		if !o.Flags.Has(world.FlagActor) || !o.Flags.Has(world.FlagFight) {
			continue
		}
		if o.Location != s.Global.Here {
			o.Flags.Unset(world.FlagFight)
		}
	}
}
