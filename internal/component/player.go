// internal/component/player.go
package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
	"dragon-hunter/pkg/geom"
)

// Player — аватар игрока. Создаётся один раз на сессию;
// смерть отнимает жизнь, но не удаляет сущность.
type Player struct {
	ID types.EntityID
	Position
	Radius     float64
	Speed      float64 // текущая, с учётом заморозки
	BaseSpeed  float64
	BaseDamage float64
	Health     float64
	MaxHealth  float64
	Element    defs.ElementType

	Level         int // Текущий уровень игрока
	Experience    int // Текущее количество очков опыта
	XPToNextLevel int // Количество опыта, необходимое для следующего уровня

	Shield            *Shield
	InvulnerableTimer float64
	Mana, MaxMana     float64
	Crystals          int
	Tokens            int

	FireCooldown float64
	Facing       float64 // угол последнего выстрела
	Modifiers    []TimedModifier
	Effects      EffectFlags
	Upgrades     map[defs.UpgradeKind]int
}

// Clone returns a deep copy.
func (p *Player) Clone() Player {
	c := *p
	if p.Shield != nil {
		s := *p.Shield
		c.Shield = &s
	}
	c.Modifiers = append([]TimedModifier(nil), p.Modifiers...)
	c.Upgrades = make(map[defs.UpgradeKind]int, len(p.Upgrades))
	for k, v := range p.Upgrades {
		c.Upgrades[k] = v
	}
	return c
}

// ModifierProduct multiplies all active modifiers of a kind.
func (p *Player) ModifierProduct(kind ModifierKind) float64 {
	m := 1.0
	for _, mod := range p.Modifiers {
		if mod.Kind == kind && mod.Remaining > 0 {
			m *= mod.Multiplier
		}
	}
	return m
}

// HealthRatio — доля здоровья 0..1.
func (p *Player) HealthRatio() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	r := p.Health / p.MaxHealth
	if r < 0 {
		return 0
	}
	return r
}

func (p *Player) TargetID() types.EntityID        { return p.ID }
func (p *Player) Alive() bool                     { return p.Health > 0 }
func (p *Player) Center() geom.Vec2               { return p.Vec() }
func (p *Player) CurrentHealth() float64          { return p.Health }
func (p *Player) SetCurrentHealth(h float64)      { p.Health = h }
func (p *Player) CurrentSpeed() float64           { return p.Speed }
func (p *Player) SetCurrentSpeed(s float64)       { p.Speed = s }
func (p *Player) Status() *EffectFlags            { return &p.Effects }
func (p *Player) TargetElement() defs.ElementType { return p.Element }
