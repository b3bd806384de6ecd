// internal/ui/button.go
package ui

import (
	"image/color"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/interfaces"
)

// Rect — прямоугольник в экранных координатах.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle (edges included).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the middle of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// TextWidth — ширина строки моноширинным шрифтом.
func TextWidth(s string) float64 {
	return float64(len(s) * config.TextCharWidth)
}

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       Rect
	Text       string
	TextColor  color.Color
	BgColor    color.Color
	HoverColor color.Color
}

// NewButton создает новую кнопку.
func NewButton(rect Rect, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  config.TextLightColor,
		BgColor:    color.RGBA{60, 60, 80, 255},
		HoverColor: color.RGBA{90, 90, 120, 255},
	}
}

// IsClicked проверяет, попал ли клик в кнопку.
func (b *Button) IsClicked(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw отрисовывает кнопку; hover подсвечивает фон.
func (b *Button) Draw(c interfaces.Canvas, mouseX, mouseY float64) {
	bg := b.BgColor
	if b.Rect.Contains(mouseX, mouseY) {
		bg = b.HoverColor
	}
	c.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, bg)
	strokeRect(c, b.Rect, 2, color.RGBA{200, 200, 220, 255})

	cx, cy := b.Rect.Center()
	c.Text(b.Text, cx-TextWidth(b.Text)/2, cy+config.TextOffsetY, b.TextColor)
}

func strokeRect(c interfaces.Canvas, r Rect, width float64, col color.Color) {
	c.StrokeLine(r.X, r.Y, r.X+r.W, r.Y, width, col)
	c.StrokeLine(r.X+r.W, r.Y, r.X+r.W, r.Y+r.H, width, col)
	c.StrokeLine(r.X+r.W, r.Y+r.H, r.X, r.Y+r.H, width, col)
	c.StrokeLine(r.X, r.Y+r.H, r.X, r.Y, width, col)
}
