package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dragon-hunter/internal/interfaces"
)

func TestDiagonalMoveIsNotFaster(t *testing.T) {
	w := newWorld(t)
	move := NewMovementSystem(w.state)
	p := w.state.LivePlayer()
	x0, y0 := p.X, p.Y

	move.MovePlayer(0.1, map[interfaces.Key]bool{interfaces.KeyRight: true, interfaces.KeyDown: true})

	step := p.Speed * 0.1
	assert.InDelta(t, step/math.Sqrt2, p.X-x0, 1e-9)
	assert.InDelta(t, step/math.Sqrt2, p.Y-y0, 1e-9)
	assert.InDelta(t, step, math.Hypot(p.X-x0, p.Y-y0), 1e-9)
}

func TestOpposingKeysCancelAndArenaClamps(t *testing.T) {
	w := newWorld(t)
	move := NewMovementSystem(w.state)
	p := w.state.LivePlayer()
	x0, y0 := p.X, p.Y

	move.MovePlayer(0.1, map[interfaces.Key]bool{interfaces.KeyLeft: true, interfaces.KeyRight: true})
	assert.Equal(t, x0, p.X)
	assert.Equal(t, y0, p.Y)

	for i := 0; i < 100; i++ {
		move.MovePlayer(0.1, map[interfaces.Key]bool{interfaces.KeyUp: true})
	}
	assert.Equal(t, p.Radius, p.Y, "stops at the top edge")
}

func TestSimpleDragonsChasePlayer(t *testing.T) {
	w := newWorld(t)
	move := NewMovementSystem(w.state)
	p := w.state.LivePlayer()
	d := w.simpleDragon(p.X-200, p.Y, 30)

	move.Update(1)
	assert.InDelta(t, p.X-150, d.X, 1e-9, "moves Speed px per second")
	assert.InDelta(t, p.Y, d.Y, 1e-9)
}
