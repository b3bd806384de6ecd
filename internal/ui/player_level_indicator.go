// internal/ui/player_level_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"dragon-hunter/internal/interfaces"
)

// PlayerLevelIndicator отображает уровень и опыт игрока.
type PlayerLevelIndicator struct {
	X, Y float64
}

const (
	xpBarWidth      = 118
	xpBarHeight     = 12
	levelRectWidth  = 16
	levelRectHeight = 12
	levelRectGap    = 9
	levelPips       = 5
	borderWidth     = 1
)

var (
	xpBarColorFill = color.RGBA{70, 100, 120, 220}
	borderColor    = color.White
)

// NewPlayerLevelIndicator создает новый индикатор уровня.
func NewPlayerLevelIndicator(x, y float64) *PlayerLevelIndicator {
	return &PlayerLevelIndicator{X: x, Y: y}
}

// Draw отрисовывает полосу опыта, пипсы уровня и номер уровня.
func (i *PlayerLevelIndicator) Draw(c interfaces.Canvas, level, currentXP, xpToNext int) {
	strokeRect(c, Rect{X: i.X, Y: i.Y, W: xpBarWidth, H: xpBarHeight}, borderWidth, borderColor)

	fillRatio := 0.0
	if xpToNext > 0 {
		fillRatio = float64(currentXP) / float64(xpToNext)
	}
	if fillRatio > 1.0 {
		fillRatio = 1.0
	}
	fillWidth := float64(xpBarWidth-borderWidth*2) * fillRatio
	if fillWidth > 0 {
		c.FillRect(i.X+borderWidth, i.Y+borderWidth, fillWidth, xpBarHeight-borderWidth*2, xpBarColorFill)
	}

	// пипсы показывают уровень внутри пятёрки: 6-й уровень снова один пипс
	filled := 0
	if level > 0 {
		filled = (level-1)%levelPips + 1
	}
	rectY := i.Y + xpBarHeight + 10
	for j := 0; j < levelPips; j++ {
		rectX := i.X + float64(j)*(levelRectWidth+levelRectGap)
		strokeRect(c, Rect{X: rectX, Y: rectY, W: levelRectWidth, H: levelRectHeight}, borderWidth, borderColor)
		if j < filled {
			c.FillRect(rectX+borderWidth, rectY+borderWidth, levelRectWidth-borderWidth*2, levelRectHeight-borderWidth*2, xpBarColorFill)
		}
	}
	c.Text("LV "+strconv.Itoa(level), i.X+xpBarWidth+8, i.Y+xpBarHeight-2, borderColor)
}
