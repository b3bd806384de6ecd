// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"

	"dragon-hunter/internal/interfaces"
)

// StateIndicator — кружок в углу: зелёный, пока игра идёт, красный на паузе.
// После клика он коротко «пульсирует».
type StateIndicator struct {
	X, Y      float64
	Radius    float64
	sinceTick float64
}

func NewStateIndicator(x, y, radius float64) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius, sinceTick: math.Inf(1)}
}

// Update двигает анимацию пульса.
func (i *StateIndicator) Update(deltaTime float64) {
	i.sinceTick += deltaTime
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(c interfaces.Canvas, stateColor color.Color) {
	r := i.Radius * i.scale()
	c.FillCircle(i.X, i.Y, r, stateColor)
	c.StrokeCircle(i.X, i.Y, r, 1, color.White)
}

func (i *StateIndicator) scale() float64 {
	return 1.0 + 0.3*math.Exp(-i.sinceTick*8)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y float64) bool {
	return math.Hypot(x-i.X, y-i.Y) <= i.Radius
}

// HandleClick запускает пульс.
func (i *StateIndicator) HandleClick() {
	i.sinceTick = 0
}
