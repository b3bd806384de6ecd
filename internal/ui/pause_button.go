// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"

	"dragon-hunter/internal/interfaces"
)

// PauseButton рисует «паузу» (две полосы) или «play» (треугольник из линий).
type PauseButton struct {
	X, Y       float64
	Size       float64
	IsPaused   bool
	PauseColor color.Color
	PlayColor  color.Color
	sinceClick float64
}

func NewPauseButton(x, y, size float64, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
		sinceClick: math.Inf(1),
	}
}

func (b *PauseButton) Update(deltaTime float64) {
	b.sinceClick += deltaTime
}

func (b *PauseButton) Draw(c interfaces.Canvas) {
	s := b.Size * (1.0 + 0.3*math.Exp(-b.sinceClick*8))

	if b.IsPaused {
		// Треугольник (play)
		x1, y1 := b.X-s, b.Y-s*1.2
		x2, y2 := b.X-s, b.Y+s*1.2
		x3, y3 := b.X+s, b.Y
		c.StrokeLine(x1, y1, x2, y2, 3, b.PlayColor)
		c.StrokeLine(x2, y2, x3, y3, 3, b.PlayColor)
		c.StrokeLine(x3, y3, x1, y1, 3, b.PlayColor)
		return
	}
	// Две полосы (pause)
	width := s * 0.6
	height := s * 2.0
	spacing := s * 0.4
	c.FillRect(b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor)
	c.FillRect(b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor)
}

func (b *PauseButton) IsClicked(x, y float64) bool {
	return math.Hypot(x-b.X, y-b.Y) <= b.Size*1.5
}

func (b *PauseButton) TogglePause() {
	b.IsPaused = !b.IsPaused
	b.sinceClick = 0
}

func (b *PauseButton) SetPaused(paused bool) {
	b.IsPaused = paused
}
