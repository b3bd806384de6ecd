// internal/system/projectile.go
package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/pkg/geom"
)

// bulletMargin — на сколько пуля может вылететь за арену до удаления.
const bulletMargin = 40.0

// ProjectileSystem управляет автоматической стрельбой игрока и полётом пуль.
type ProjectileSystem struct {
	state *entity.State
	bus   *event.Bus
}

func NewProjectileSystem(state *entity.State, bus *event.Bus) *ProjectileSystem {
	return &ProjectileSystem{state: state, bus: bus}
}

// NearestTarget ищет ближайшее живое звено босса или простого дракона.
func (s *ProjectileSystem) NearestTarget(from geom.Vec2) (geom.Vec2, bool) {
	best := math.Inf(1)
	var target geom.Vec2
	found := false
	consider := func(v geom.Vec2) {
		if d := from.DistTo(v); d < best {
			best, target, found = d, v, true
		}
	}
	if boss := s.state.LiveBoss(); boss.Alive() {
		for _, seg := range boss.Segments {
			if seg.Alive() {
				consider(seg.Vec())
			}
		}
	}
	for _, d := range s.state.LiveDragons() {
		if d.Alive() {
			consider(d.Vec())
		}
	}
	return target, found
}

// AutoFire стреляет по ближайшей цели с эффективной скорострельностью.
// Возвращает число выпущенных пуль.
func (s *ProjectileSystem) AutoFire(deltaTime float64) int {
	p := s.state.LivePlayer()
	if p == nil || !p.Alive() {
		return 0
	}
	b := s.state.Library().Balance
	rate := EffectiveFireRate(p, b)
	if rate <= 0 {
		return 0
	}
	interval := 1 / rate
	if p.FireCooldown > 0 {
		p.FireCooldown -= deltaTime
	}
	if p.FireCooldown > 0 {
		return 0
	}
	target, ok := s.NearestTarget(p.Vec())
	if !ok {
		p.FireCooldown = 0
		return 0
	}
	s.Fire(p, geom.Angle(p.Vec(), target))
	p.FireCooldown = math.Max(0, p.FireCooldown+interval)
	return 1
}

// Fire выпускает одну пулю под углом angle.
func (s *ProjectileSystem) Fire(p *component.Player, angle float64) *component.Bullet {
	b := s.state.Library().Balance.Player
	v := geom.FromAngle(angle).Scale(b.BulletSpeed)
	bullet := &component.Bullet{
		Position:    p.Position,
		Velocity:    component.Velocity{VX: v.X, VY: v.Y},
		Damage:      EffectiveDamage(p, s.state.Library().Balance),
		Element:     p.Element,
		Penetration: b.BulletPenetration,
		Radius:      b.BulletRadius,
		Life:        b.BulletLife,
	}
	p.Facing = angle
	s.state.AddBullet(bullet)
	s.state.LiveStatistics().ShotsFired++
	if s.bus != nil {
		s.bus.Emit(event.BulletFired, bullet.ID)
	}
	return bullet
}

// Update двигает пули и убирает вылетевшие или истёкшие.
func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, b := range s.state.LiveBullets() {
		component.Step(&b.Position, b.Velocity, deltaTime)
		b.Life -= deltaTime
		if b.Life <= 0 || !InArena(b.X, b.Y, bulletMargin) {
			s.state.RemoveBullet(b.ID)
		}
	}
}
