// pkg/geom/vec.go
package geom

import "math"

// Vec2 — точка или вектор на плоскости арены
type Vec2 struct{ X, Y float64 }

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2  { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Len() float64          { return math.Hypot(a.X, a.Y) }
func (a Vec2) Dot(b Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func (a Vec2) DistTo(b Vec2) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Norm returns the unit vector, or the zero vector for a zero-length input.
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// FromAngle строит единичный вектор по углу в радианах
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Angle возвращает угол направления from→to; для совпадающих точек — 0.
func Angle(from, to Vec2) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// Dist is the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// PointSegmentDistance returns the distance from p to the segment ab.
// A degenerate segment (a == b) collapses to point distance.
func PointSegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.DistTo(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.DistTo(closest)
}

// MoveToward сдвигает from в сторону to не дальше чем на step.
func MoveToward(from, to Vec2, step float64) Vec2 {
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 || step <= 0 {
		return from
	}
	if step >= dist {
		return to
	}
	return from.Add(d.Scale(step / dist))
}

// Clamp ограничивает v диапазоном [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect — прямоугольная область (используется для хит-тестов UI)
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}
