// component/movement.go
package component

import "dragon-hunter/pkg/geom"

// Position — компонент позиции
type Position struct {
	X, Y float64
}

// Vec возвращает позицию как вектор.
func (p Position) Vec() geom.Vec2 {
	return geom.V(p.X, p.Y)
}

// SetVec переносит позицию в точку v.
func (p *Position) SetVec(v geom.Vec2) {
	p.X, p.Y = v.X, v.Y
}

// Velocity — компонент скорости
type Velocity struct {
	VX, VY float64
}

// Step сдвигает позицию на скорость за dt.
func Step(p *Position, v Velocity, dt float64) {
	p.X += v.VX * dt
	p.Y += v.VY * dt
}
