// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/interfaces"
)

// WaveIndicator отображает номер текущей волны римскими цифрами
// цветом стихии текущего босса.
type WaveIndicator struct {
	X, Y         float64
	Color        color.Color
	OutlineColor color.Color
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y float64) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        color.RGBA{100, 160, 255, 255},
		OutlineColor: color.Black,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw рисует номер волны. Если босс есть, цвет берётся из его стихии.
func (i *WaveIndicator) Draw(c interfaces.Canvas, wave int, boss *defs.Element) {
	if wave <= 0 {
		return
	}
	text := toRoman(wave)
	textColor := i.Color
	if boss != nil {
		textColor = boss.Colors.Primary
	}
	x := i.X - TextWidth(text)/2

	// Обводка
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c.Text(text, x+d[0], i.Y+d[1], i.OutlineColor)
	}
	c.Text(text, x, i.Y, textColor)
}

// ScoreIndicator — счёт, рекорд и комбо в левом верхнем углу.
type ScoreIndicator struct {
	X, Y float64
}

func NewScoreIndicator(x, y float64) *ScoreIndicator {
	return &ScoreIndicator{X: x, Y: y}
}

// FormatScore печатает счёт с разделителями разрядов: 1,234,567.
func FormatScore(score int) string {
	return humanize.Comma(int64(score))
}

func (i *ScoreIndicator) Draw(c interfaces.Canvas, score, highScore, combo int, textColor color.Color) {
	c.Text("SCORE "+FormatScore(score), i.X, i.Y, textColor)
	c.Text("BEST  "+FormatScore(highScore), i.X, i.Y+16, textColor)
	if combo > 1 {
		c.Text("COMBO x"+humanize.Comma(int64(combo)), i.X, i.Y+32, color.RGBA{255, 200, 80, 255})
	}
}
