// pkg/render/canvas.go
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type offset struct{ x, y float64 }

// EbitenCanvas рисует на *ebiten.Image. Текст — моноширинный basicfont 7x13,
// y в Text — базовая линия.
type EbitenCanvas struct {
	dst   *ebiten.Image
	face  font.Face
	off   offset
	stack []offset
}

func NewEbitenCanvas() *EbitenCanvas {
	return &EbitenCanvas{face: basicfont.Face7x13}
}

// Begin привязывает холст к кадру и сбрасывает смещения.
func (c *EbitenCanvas) Begin(dst *ebiten.Image) {
	c.dst = dst
	c.off = offset{}
	c.stack = c.stack[:0]
}

func (c *EbitenCanvas) pt(x, y float64) (float32, float32) {
	return float32(x + c.off.x), float32(y + c.off.y)
}

func (c *EbitenCanvas) Clear(col color.Color) {
	c.dst.Fill(col)
}

func (c *EbitenCanvas) FillCircle(x, y, r float64, col color.Color) {
	cx, cy := c.pt(x, y)
	vector.DrawFilledCircle(c.dst, cx, cy, float32(r), col, true)
}

func (c *EbitenCanvas) StrokeCircle(x, y, r, width float64, col color.Color) {
	cx, cy := c.pt(x, y)
	vector.StrokeCircle(c.dst, cx, cy, float32(r), float32(width), col, true)
}

func (c *EbitenCanvas) FillRect(x, y, w, h float64, col color.Color) {
	px, py := c.pt(x, y)
	vector.DrawFilledRect(c.dst, px, py, float32(w), float32(h), col, true)
}

func (c *EbitenCanvas) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	ax, ay := c.pt(x1, y1)
	bx, by := c.pt(x2, y2)
	vector.StrokeLine(c.dst, ax, ay, bx, by, float32(width), col, true)
}

func (c *EbitenCanvas) Text(s string, x, y float64, col color.Color) {
	if s == "" {
		return
	}
	px, py := c.pt(x, y)
	text.Draw(c.dst, s, c.face, int(px), int(py), col)
}

// Save запоминает текущее смещение; Restore возвращает его.
func (c *EbitenCanvas) Save() {
	c.stack = append(c.stack, c.off)
}

func (c *EbitenCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.off = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *EbitenCanvas) Translate(dx, dy float64) {
	c.off.x += dx
	c.off.y += dy
}
