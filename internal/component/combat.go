package component

// ModifierKind — что меняет временный модификатор
type ModifierKind string

const (
	ModDamage   ModifierKind = "damage"
	ModFireRate ModifierKind = "fire_rate"
	ModSpeed    ModifierKind = "speed"
)

// TimedModifier is a multiplicative buff that is ticked every frame and
// removed when Remaining reaches zero.
type TimedModifier struct {
	Kind       ModifierKind
	Multiplier float64
	Remaining  float64
	Source     string // id умения или лута
}

// Shield поглощает урон, пока не кончится запас или время.
type Shield struct {
	Absorb    float64
	Remaining float64
}

// Active reports whether the shield still absorbs anything.
func (s *Shield) Active() bool {
	return s != nil && s.Absorb > 0 && s.Remaining > 0
}

// Absorbs takes as much of dmg as the shield can and returns what gets through.
func (s *Shield) Absorbs(dmg float64) float64 {
	if !s.Active() || dmg <= 0 {
		return dmg
	}
	if dmg <= s.Absorb {
		s.Absorb -= dmg
		return 0
	}
	rest := dmg - s.Absorb
	s.Absorb = 0
	return rest
}
