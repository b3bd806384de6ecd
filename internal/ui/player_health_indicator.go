// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/interfaces"
)

const (
	barWidth         = 220
	barHeight        = 14
	barGap           = 6
	LifeCircleRadius = 6.0
	LifeCircleGap    = 4.0
)

// PlayerHealthIndicator рисует полосы здоровья и маны и жизни кружками под ними.
type PlayerHealthIndicator struct {
	X, Y float64
}

// NewPlayerHealthIndicator создает новый индикатор здоровья.
func NewPlayerHealthIndicator(x, y float64) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// Draw рисует обе полосы. shield > 0 дорисовывает поглощение поверх здоровья.
func (i *PlayerHealthIndicator) Draw(c interfaces.Canvas, health, maxHealth, mana, maxMana, shield float64, lives int) {
	drawBar(c, i.X, i.Y, health, maxHealth, config.HealthBarColor)
	if shield > 0 && maxHealth > 0 {
		w := barWidth * math.Min(1, shield/maxHealth)
		c.FillRect(i.X, i.Y, w, 4, config.ShieldColor)
	}
	c.Text(fmt.Sprintf("%d/%d", int(math.Max(0, math.Ceil(health))), int(maxHealth)),
		i.X+barWidth+8, i.Y+barHeight-2, config.TextLightColor)

	y := i.Y + barHeight + barGap
	drawBar(c, i.X, y, mana, maxMana, config.ManaBarColor)
	c.Text(fmt.Sprintf("%d/%d", int(mana), int(maxMana)), i.X+barWidth+8, y+barHeight-2, config.TextLightColor)

	// Жизни
	y += barHeight + barGap + LifeCircleRadius
	for j := 0; j < lives; j++ {
		x := i.X + LifeCircleRadius + float64(j)*(LifeCircleRadius*2+LifeCircleGap)
		c.FillCircle(x, y, LifeCircleRadius, config.HealthBarColor)
		c.StrokeCircle(x, y, LifeCircleRadius, 1, color.White)
	}
}

// GetHeight возвращает общую высоту индикатора.
func (i *PlayerHealthIndicator) GetHeight() float64 {
	return 2*(barHeight+barGap) + LifeCircleRadius*2
}

func drawBar(c interfaces.Canvas, x, y, value, maxValue float64, fill color.Color) {
	c.FillRect(x, y, barWidth, barHeight, config.BarBackColor)
	if maxValue > 0 && value > 0 {
		c.FillRect(x, y, barWidth*math.Min(1, value/maxValue), barHeight, fill)
	}
	strokeRect(c, Rect{X: x, Y: y, W: barWidth, H: barHeight}, 1, color.White)
}
