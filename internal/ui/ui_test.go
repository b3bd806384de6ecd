package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

// canvas записывает вызовы рисования.
type canvas struct {
	texts  []string
	rects  int
	circle int
	lines  int
}

func (c *canvas) Clear(color.Color)                                     {}
func (c *canvas) FillCircle(x, y, r float64, col color.Color)           { c.circle++ }
func (c *canvas) StrokeCircle(x, y, r, w float64, col color.Color)      { c.circle++ }
func (c *canvas) FillRect(x, y, w, h float64, col color.Color)          { c.rects++ }
func (c *canvas) StrokeLine(x1, y1, x2, y2, w float64, col color.Color) { c.lines++ }
func (c *canvas) Text(s string, x, y float64, col color.Color)          { c.texts = append(c.texts, s) }
func (c *canvas) Save()                                                 {}
func (c *canvas) Restore()                                              {}
func (c *canvas) Translate(dx, dy float64)                              {}

type fakeShop map[defs.UpgradeKind]int

func (f fakeShop) Level(k defs.UpgradeKind) int        { return f[k] }
func (f fakeShop) Cost(k defs.UpgradeKind) (int, bool) { return 10 * (f[k] + 1), true }
func (f fakeShop) MaxedOut(k defs.UpgradeKind) bool    { return f[k] >= 3 }

func TestHotbarLayoutAndHitTest(t *testing.T) {
	abilities := defs.DefaultBalance().Abilities
	h := NewHotbar(abilities)
	slots := h.Slots()
	require.Len(t, slots, len(abilities))

	// ячейки идут слева направо без наложений и лежат в нижней панели
	for i, s := range slots {
		assert.Equal(t, abilities[i].ID, s.AbilityID)
		assert.GreaterOrEqual(t, s.Rect.Y, float64(config.ArenaHeight))
		if i > 0 {
			assert.Greater(t, s.Rect.X, slots[i-1].Rect.X+slots[i-1].Rect.W)
		}
	}
	left := slots[0].Rect.X
	right := config.ScreenWidth - (slots[len(slots)-1].Rect.X + slots[len(slots)-1].Rect.W)
	assert.InDelta(t, left, right, 1e-9, "centred")

	cx, cy := slots[2].Rect.Center()
	id, ok := h.HitTest(cx, cy)
	assert.True(t, ok)
	assert.Equal(t, abilities[2].ID, id)

	_, ok = h.HitTest(5, 5)
	assert.False(t, ok)

	id, ok = h.AbilityAt(0)
	assert.True(t, ok)
	assert.Equal(t, abilities[0].ID, id)
	_, ok = h.AbilityAt(9)
	assert.False(t, ok)
}

func TestHotbarDrawsCooldownOverlay(t *testing.T) {
	h := NewHotbar(defs.DefaultBalance().Abilities)
	ready := &canvas{}
	h.Draw(ready, nil, nil)

	cooling := &canvas{}
	h.Draw(cooling, []event.AbilityStatusEntry{{AbilityID: "power_surge", Remaining: 3, Cooldown: 12}}, nil)
	assert.Equal(t, ready.rects+1, cooling.rects)
	assert.Contains(t, ready.texts, "1")
}

func TestToRoman(t *testing.T) {
	tests := map[int]string{0: "", 1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range tests {
		assert.Equal(t, want, toRoman(n), "n=%d", n)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0", FormatScore(0))
	assert.Equal(t, "1,234,567", FormatScore(1234567))
}

func TestScoreIndicatorShowsCombo(t *testing.T) {
	c := &canvas{}
	NewScoreIndicator(10, 10).Draw(c, 1500, 9000, 3, color.White)
	assert.Equal(t, []string{"SCORE 1,500", "BEST  9,000", "COMBO x3"}, c.texts)
}

func TestShopPanel(t *testing.T) {
	p := NewShopPanel()
	c := &canvas{}
	shop := fakeShop{defs.UpgradeSpeed: 3}

	p.Draw(c, shop, 100)
	assert.Empty(t, c.texts, "hidden panel draws nothing")
	_, ok := p.HitTest(600, 700)
	assert.False(t, ok)

	p.Toggle()
	p.Update(1)
	require.True(t, p.IsVisible)
	p.Draw(c, shop, 100)
	assert.Contains(t, c.texts, "MAX")
	assert.Contains(t, c.texts, "BUY 10")

	for _, kind := range ShopOrder {
		r := p.buttons[kind]
		got, ok := p.HitTest(r.Center())
		require.True(t, ok)
		assert.Equal(t, kind, got)
	}

	p.Toggle()
	p.Update(1)
	assert.False(t, p.IsVisible)
}

func TestButtonsAndIndicators(t *testing.T) {
	b := NewButton(Rect{X: 10, Y: 10, W: 100, H: 30}, "Start")
	assert.True(t, b.IsClicked(50, 20))
	assert.False(t, b.IsClicked(5, 20))

	pb := NewPauseButton(100, 100, 10, color.White, color.White)
	assert.True(t, pb.IsClicked(105, 100))
	pb.TogglePause()
	assert.True(t, pb.IsPaused)
	c := &canvas{}
	pb.Draw(c)
	assert.Equal(t, 3, c.lines, "play triangle")

	si := NewStateIndicator(50, 50, 10)
	assert.InDelta(t, 1.0, si.scale(), 1e-9)
	si.HandleClick()
	assert.InDelta(t, 1.3, si.scale(), 1e-9)
	si.Update(1)
	assert.Less(t, si.scale(), 1.01)
}

func TestBossHealthIndicator(t *testing.T) {
	bar := NewBossHealthIndicator(640, 34)

	c := &canvas{}
	bar.Draw(c, 120, 300, 4, color.White)
	assert.Equal(t, 2, c.rects, "back and fill")
	assert.Equal(t, []string{"x4"}, c.texts)

	c = &canvas{}
	bar.Draw(c, 0, 300, 1, color.White)
	assert.Equal(t, 1, c.rects, "empty bar has no fill")

	c = &canvas{}
	bar.Draw(c, 0, 0, 0, color.White)
	assert.Zero(t, c.rects)
	assert.Empty(t, c.texts)
}
