package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
	"dragon-hunter/pkg/geom"
)

// SimpleDragon — упрощённый враг без сегментов. Используется для
// внешне добавленных врагов; радиус столкновения плоский (Size).
type SimpleDragon struct {
	ID types.EntityID
	Position
	Size            float64
	Health          float64
	MaxHealth       float64
	Speed           float64
	BaseSpeed       float64
	Damage          float64
	Element         defs.ElementType
	ContactCooldown float64
	Effects         EffectFlags
}

// Clone returns a copy.
func (d *SimpleDragon) Clone() SimpleDragon { return *d }

func (d *SimpleDragon) TargetID() types.EntityID        { return d.ID }
func (d *SimpleDragon) Alive() bool                     { return d.Health > 0 }
func (d *SimpleDragon) Center() geom.Vec2               { return d.Vec() }
func (d *SimpleDragon) CurrentHealth() float64          { return d.Health }
func (d *SimpleDragon) SetCurrentHealth(h float64)      { d.Health = h }
func (d *SimpleDragon) CurrentSpeed() float64           { return d.Speed }
func (d *SimpleDragon) SetCurrentSpeed(s float64)       { d.Speed = s }
func (d *SimpleDragon) Status() *EffectFlags            { return &d.Effects }
func (d *SimpleDragon) TargetElement() defs.ElementType { return d.Element }
