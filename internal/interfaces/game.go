package interfaces

import "image/color"

// Canvas — поверхность рисования. Ядро только пишет в неё и никогда не читает.
type Canvas interface {
	Clear(c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	StrokeCircle(x, y, r, width float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
	Save()
	Restore()
	Translate(dx, dy float64)
}

// Key — идентификатор клавиши движения или действия.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"

	KeyAbility1 Key = "ability1"
	KeyAbility2 Key = "ability2"
	KeyAbility3 Key = "ability3"
	KeyAbility4 Key = "ability4"

	KeyPause Key = "pause"
)

// AbilityKeys maps hotbar order to keys.
var AbilityKeys = []Key{KeyAbility1, KeyAbility2, KeyAbility3, KeyAbility4}

// InputSource опрашивается один раз за кадр.
type InputSource interface {
	HeldKeys() map[Key]bool
	PointerPosition() (x, y float64)
	PointerDown() bool
}

// StaticInput is an InputSource with fixed values, used by headless runs and tests.
type StaticInput struct {
	Keys    map[Key]bool
	X, Y    float64
	Pressed bool
}

func (s *StaticInput) HeldKeys() map[Key]bool {
	if s == nil {
		return nil
	}
	return s.Keys
}

func (s *StaticInput) PointerPosition() (float64, float64) {
	if s == nil {
		return 0, 0
	}
	return s.X, s.Y
}

func (s *StaticInput) PointerDown() bool { return s != nil && s.Pressed }
