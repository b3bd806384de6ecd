// internal/ui/boss_health_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/interfaces"
)

const bossBarWidth = 360

// BossHealthIndicator — суммарное здоровье всех звеньев босса под номером волны.
type BossHealthIndicator struct {
	X, Y float64 // центр верхнего края
}

func NewBossHealthIndicator(x, y float64) *BossHealthIndicator {
	return &BossHealthIndicator{X: x, Y: y}
}

// Draw рисует полосу и число звеньев. Без здоровья ничего не рисует.
func (i *BossHealthIndicator) Draw(c interfaces.Canvas, health, maxHealth float64, segments int, fill color.Color) {
	if maxHealth <= 0 || segments <= 0 {
		return
	}
	x := i.X - bossBarWidth/2
	c.FillRect(x, i.Y, bossBarWidth, 8, config.BarBackColor)
	if health > 0 {
		c.FillRect(x, i.Y, bossBarWidth*math.Min(1, health/maxHealth), 8, fill)
	}
	c.Text(fmt.Sprintf("x%d", segments), x+bossBarWidth+6, i.Y+8, config.TextLightColor)
}
