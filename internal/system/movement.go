// internal/system/movement.go
package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/interfaces"
	"dragon-hunter/pkg/geom"
)

// MovementSystem обновляет позиции игрока и простых драконов.
type MovementSystem struct {
	state *entity.State
}

func NewMovementSystem(state *entity.State) *MovementSystem {
	return &MovementSystem{state: state}
}

// PlayerSpeed — текущая скорость игрока с заморозкой, апгрейдом и баффами.
func PlayerSpeed(p *component.Player, b *defs.Balance) float64 {
	speed := p.Speed
	if u, ok := b.Upgrades[defs.UpgradeSpeed]; ok {
		speed *= math.Pow(u.Step, float64(p.Upgrades[defs.UpgradeSpeed]))
	}
	return speed * p.ModifierProduct(component.ModSpeed)
}

// MovePlayer двигает игрока по зажатым клавишам. Диагональ не быстрее прямой.
func (s *MovementSystem) MovePlayer(deltaTime float64, keys map[interfaces.Key]bool) {
	p := s.state.LivePlayer()
	if p == nil || len(keys) == 0 {
		return
	}
	var dir geom.Vec2
	if keys[interfaces.KeyUp] {
		dir.Y--
	}
	if keys[interfaces.KeyDown] {
		dir.Y++
	}
	if keys[interfaces.KeyLeft] {
		dir.X--
	}
	if keys[interfaces.KeyRight] {
		dir.X++
	}
	dir = dir.Norm()
	if dir.Len() == 0 {
		return
	}
	step := PlayerSpeed(p, s.state.Library().Balance) * deltaTime
	p.SetVec(p.Vec().Add(dir.Scale(step)))
	ClampToArena(&p.Position, p.Radius)
}

// Update ведёт простых драконов к игроку.
func (s *MovementSystem) Update(deltaTime float64) {
	p := s.state.LivePlayer()
	if p == nil {
		return
	}
	for _, d := range s.state.LiveDragons() {
		if !d.Alive() {
			continue
		}
		d.SetVec(geom.MoveToward(d.Vec(), p.Vec(), d.Speed*deltaTime))
		ClampToArena(&d.Position, d.Size)
	}
}
