package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
	"dragon-hunter/pkg/geom"
)

// Target is anything status effects and elemental damage can land on:
// the player, a boss segment or a simple dragon.
type Target interface {
	TargetID() types.EntityID
	Alive() bool
	Center() geom.Vec2
	CurrentHealth() float64
	SetCurrentHealth(float64)
	CurrentSpeed() float64
	SetCurrentSpeed(float64)
	Status() *EffectFlags
	TargetElement() defs.ElementType
}

var (
	_ Target = (*Player)(nil)
	_ Target = (*Segment)(nil)
	_ Target = (*SimpleDragon)(nil)
)
