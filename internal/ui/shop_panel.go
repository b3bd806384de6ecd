// internal/ui/shop_panel.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/interfaces"
)

const (
	panelHeight   = 150
	panelMargin   = 5
	panelSpeed    = 900.0 // px/s
	lineHeight    = 20
	columnSpacing = 280
	buyBtnWidth   = 110
	buyBtnHeight  = 26
)

// ShopOrder — порядок улучшений в магазине.
var ShopOrder = []defs.UpgradeKind{
	defs.UpgradeDamage, defs.UpgradeFireRate, defs.UpgradeMaxHealth, defs.UpgradeSpeed,
}

// UpgradeShop — то, что панели нужно знать о ценах.
type UpgradeShop interface {
	Level(kind defs.UpgradeKind) int
	Cost(kind defs.UpgradeKind) (int, bool)
	MaxedOut(kind defs.UpgradeKind) bool
}

// ShopPanel — выезжающая снизу панель улучшений.
type ShopPanel struct {
	IsVisible bool
	currentY  float64
	targetY   float64
	buttons   map[defs.UpgradeKind]Rect
}

func NewShopPanel() *ShopPanel {
	return &ShopPanel{
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
		buttons:  make(map[defs.UpgradeKind]Rect),
	}
}

// Toggle показывает или прячет панель.
func (p *ShopPanel) Toggle() {
	if p.targetY < config.ScreenHeight {
		p.Hide()
		return
	}
	p.Show()
}

func (p *ShopPanel) Show() {
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight - config.HotbarHeight
}

func (p *ShopPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update двигает анимацию панели.
func (p *ShopPanel) Update(deltaTime float64) {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	step := panelSpeed * deltaTime
	if math.Abs(diff) <= step {
		p.currentY = p.targetY
	} else {
		p.currentY += math.Copysign(step, diff)
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
	}
}

// Contains reports whether (x, y) is over the visible panel.
func (p *ShopPanel) Contains(x, y float64) bool {
	return p.IsVisible && y >= p.currentY && y <= p.currentY+panelHeight
}

// HitTest возвращает улучшение, по кнопке которого кликнули.
func (p *ShopPanel) HitTest(x, y float64) (defs.UpgradeKind, bool) {
	if !p.IsVisible {
		return "", false
	}
	for kind, r := range p.buttons {
		if r.Contains(x, y) {
			return kind, true
		}
	}
	return "", false
}

// Draw рисует панель. Кнопки раскладываются здесь же, поэтому HitTest
// работает по последнему кадру.
func (p *ShopPanel) Draw(c interfaces.Canvas, shop UpgradeShop, tokens int) {
	if !p.IsVisible {
		return
	}
	panel := Rect{
		X: panelMargin, Y: p.currentY + panelMargin,
		W: config.ScreenWidth - panelMargin*2, H: panelHeight - panelMargin*2,
	}
	c.FillRect(panel.X, panel.Y, panel.W, panel.H, color.RGBA{R: 25, G: 35, B: 45, A: 230})
	strokeRect(c, panel, 2, color.RGBA{R: 70, G: 130, B: 180, A: 255})

	x := panel.X + 15
	y := panel.Y + lineHeight
	c.Text(fmt.Sprintf("UPGRADES   tokens: %s", FormatScore(tokens)), x, y, config.TextLightColor)
	y += lineHeight

	for i, kind := range ShopOrder {
		col := float64(i % 2)
		row := float64(i / 2)
		bx := x + col*columnSpacing*2
		by := y + row*(buyBtnHeight+12)

		level := shop.Level(kind)
		c.Text(fmt.Sprintf("%-10s lv %d", kind, level), bx, by+buyBtnHeight/2+config.TextOffsetY, config.TextLightColor)

		btn := Rect{X: bx + columnSpacing/1.4, Y: by, W: buyBtnWidth, H: buyBtnHeight}
		p.buttons[kind] = btn

		cost, ok := shop.Cost(kind)
		label := "MAX"
		bg := color.RGBA{R: 60, G: 60, B: 60, A: 255}
		if ok && !shop.MaxedOut(kind) {
			label = fmt.Sprintf("BUY %d", cost)
			if tokens >= cost {
				bg = color.RGBA{R: 180, G: 140, B: 20, A: 255}
			}
		}
		c.FillRect(btn.X, btn.Y, btn.W, btn.H, bg)
		cx, cy := btn.Center()
		c.Text(label, cx-TextWidth(label)/2, cy+config.TextOffsetY, color.White)
	}
}
