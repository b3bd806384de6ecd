package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormZeroVector(t *testing.T) {
	n := Vec2{}.Norm()
	assert.Equal(t, Vec2{}, n, "zero vector must normalise to zero, not NaN")
	assert.False(t, math.IsNaN(n.X))
}

func TestPointSegmentDistance(t *testing.T) {
	a := V(0, 0)
	b := V(10, 0)

	assert.InDelta(t, 5.0, PointSegmentDistance(V(5, 5), a, b), 1e-9)
	assert.InDelta(t, 5.0, PointSegmentDistance(V(-3, 4), a, b), 1e-9, "clamped to segment start")
	assert.InDelta(t, 5.0, PointSegmentDistance(V(3, 4), a, a), 1e-9, "degenerate segment")
}

func TestMoveToward(t *testing.T) {
	p := MoveToward(V(0, 0), V(10, 0), 3)
	assert.InDelta(t, 3.0, p.X, 1e-9)

	p = MoveToward(V(0, 0), V(10, 0), 30)
	assert.Equal(t, V(10, 0), p, "must not overshoot")

	p = MoveToward(V(2, 2), V(2, 2), 5)
	assert.Equal(t, V(2, 2), p)
}

func TestAngleCoincident(t *testing.T) {
	assert.Equal(t, 0.0, Angle(V(1, 1), V(1, 1)))
	assert.InDelta(t, math.Pi/2, Angle(V(0, 0), V(0, 1)), 1e-9)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 30))
	assert.False(t, r.Contains(31, 15))
}
