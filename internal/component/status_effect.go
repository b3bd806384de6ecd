// internal/component/status_effect.go
package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
)

// EffectFlags — видимое состояние статус-эффектов на цели.
// Заморозка кэширует исходную скорость при первом наложении.
type EffectFlags struct {
	Burning  bool
	Poisoned bool
	Phased   bool
	Frozen   bool
	Armor    float64 // суммарное снижение урона, 0..MaxReduction

	OriginalSpeed float64
	SpeedCached   bool
	FreezeStacks  int
	BurnStacks    int
	PoisonStacks  int
	PhaseStacks   int
}

// Reset clears everything except armor.
func (f *EffectFlags) Reset() {
	armor := f.Armor
	*f = EffectFlags{Armor: armor}
}

// StatusEffect is one active timed effect. Target is a weak reference: the
// effect system checks Alive before every mutation.
type StatusEffect struct {
	ID        types.EntityID
	TargetID  types.EntityID
	Target    Target
	Ability   defs.AbilityType
	Strength  float64
	Source    string
	Element   defs.ElementType
	StartTime float64
	LastTick  float64 // elapsed time of the last damage tick
	Elapsed   float64
	Config    defs.SpecialAbility
}

// Expired reports whether the effect has run its full duration.
func (e *StatusEffect) Expired() bool {
	return e.Elapsed >= e.Config.Duration
}
