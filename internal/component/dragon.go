package component

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
	"dragon-hunter/pkg/geom"
)

// Segment — одно звено тела дракона. Index 0 — голова.
type Segment struct {
	ID types.EntityID
	Position
	Radius         float64
	Health         float64
	MaxHealth      float64
	AttackCooldown float64
	Index          int
	Damage         float64
	Flash          DamageFlash

	owner *Dragon
}

// Owner returns the dragon this segment belongs to (nil for a detached segment).
func (s *Segment) Owner() *Dragon { return s.owner }

func (s *Segment) TargetID() types.EntityID { return s.ID }

// Alive: сегмент жив, пока у него есть здоровье.
func (s *Segment) Alive() bool                { return s.Health > 0 }
func (s *Segment) Center() geom.Vec2          { return s.Vec() }
func (s *Segment) CurrentHealth() float64     { return s.Health }
func (s *Segment) SetCurrentHealth(h float64) { s.Health = h }

// Скорость, фаза и броня общие для всего дракона.

func (s *Segment) CurrentSpeed() float64 {
	if s.owner == nil {
		return 0
	}
	return s.owner.Speed
}

func (s *Segment) SetCurrentSpeed(v float64) {
	if s.owner != nil {
		s.owner.Speed = v
	}
}

func (s *Segment) Status() *EffectFlags {
	if s.owner == nil {
		return &EffectFlags{}
	}
	return &s.owner.Effects
}

func (s *Segment) TargetElement() defs.ElementType {
	if s.owner == nil {
		return defs.ElementNormal
	}
	return s.owner.Element
}

// LaserSweep — состояние лазерного удара: телеграф, затем поворот луча.
type LaserSweep struct {
	Cooldown      float64
	Telegraphing  bool
	TelegraphLeft float64
	Active        bool
	StartAngle    float64
	CurrentAngle  float64
	Direction     float64 // +1 или -1
	ElapsedTime   float64
	ImmunityTimer float64
}

// Busy reports whether the laser is telegraphing or sweeping.
func (l LaserSweep) Busy() bool { return l.Telegraphing || l.Active }

// ChargeAttack — состояние рывка головы к запомненной точке.
type ChargeAttack struct {
	Cooldown      float64
	Telegraphing  bool
	TelegraphLeft float64
	Charging      bool
	Target        geom.Vec2
	ElapsedTime   float64
	ImmunityTimer float64
}

// Busy reports whether the charge is telegraphing or moving.
func (c ChargeAttack) Busy() bool { return c.Telegraphing || c.Charging }

// Dragon — сегментированный босс. Пока он жив, Segments не пуст.
type Dragon struct {
	ID      types.EntityID
	SpawnID string // uuid появления, для логов и статистики
	Element defs.ElementType
	Wave    int

	Segments  []*Segment
	Speed     float64 // текущая, с учётом заморозки
	BaseSpeed float64

	SpecialTimer    float64
	GrowthTimer     float64
	AICheckTimer    float64
	ContactCooldown float64
	Age             float64 // для шума движения головы
	WobbleSeed      float64

	Laser   LaserSweep
	Charge  ChargeAttack
	Effects EffectFlags
}

// Attach makes the dragon the owner of seg and appends it at the tail.
func (d *Dragon) Attach(seg *Segment) {
	seg.owner = d
	seg.Index = len(d.Segments)
	d.Segments = append(d.Segments, seg)
}

// Reindex restores Index == position after segments were removed.
func (d *Dragon) Reindex() {
	for i, s := range d.Segments {
		s.Index = i
		s.owner = d
	}
}

// Alive: дракон жив, пока есть сегменты.
func (d *Dragon) Alive() bool { return d != nil && len(d.Segments) > 0 }

// Head returns segment 0 or nil.
func (d *Dragon) Head() *Segment {
	if d == nil || len(d.Segments) == 0 {
		return nil
	}
	return d.Segments[0]
}

// Phased — босс неуязвим.
func (d *Dragon) Phased() bool { return d != nil && d.Effects.Phased }

// HeadHealthRatio returns head health / max health, 0 when headless.
func (d *Dragon) HeadHealthRatio() float64 {
	h := d.Head()
	if h == nil || h.MaxHealth <= 0 {
		return 0
	}
	return h.Health / h.MaxHealth
}

// TotalHealth sums health over all segments.
func (d *Dragon) TotalHealth() (cur, max float64) {
	for _, s := range d.Segments {
		cur += s.Health
		max += s.MaxHealth
	}
	return cur, max
}

// Clone deep-copies the dragon; the copies' segments point at the copy.
func (d *Dragon) Clone() *Dragon {
	if d == nil {
		return nil
	}
	c := *d
	c.Segments = make([]*Segment, len(d.Segments))
	for i, s := range d.Segments {
		sc := *s
		sc.owner = &c
		c.Segments[i] = &sc
	}
	return &c
}
