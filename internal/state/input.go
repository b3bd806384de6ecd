// internal/state/input.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"dragon-hunter/internal/interfaces"
)

// keyBindings — какие клавиши ebiten соответствуют игровым.
var keyBindings = map[interfaces.Key][]ebiten.Key{
	interfaces.KeyUp:       {ebiten.KeyW, ebiten.KeyArrowUp},
	interfaces.KeyDown:     {ebiten.KeyS, ebiten.KeyArrowDown},
	interfaces.KeyLeft:     {ebiten.KeyA, ebiten.KeyArrowLeft},
	interfaces.KeyRight:    {ebiten.KeyD, ebiten.KeyArrowRight},
	interfaces.KeyAbility1: {ebiten.KeyDigit1},
	interfaces.KeyAbility2: {ebiten.KeyDigit2},
	interfaces.KeyAbility3: {ebiten.KeyDigit3},
	interfaces.KeyAbility4: {ebiten.KeyDigit4},
	interfaces.KeyPause:    {ebiten.KeyEscape, ebiten.KeyP},
}

// EbitenInput опрашивает клавиатуру и мышь ebiten.
type EbitenInput struct {
	held map[interfaces.Key]bool
}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{held: make(map[interfaces.Key]bool, len(keyBindings))}
}

func (in *EbitenInput) HeldKeys() map[interfaces.Key]bool {
	for key, bound := range keyBindings {
		pressed := false
		for _, k := range bound {
			if ebiten.IsKeyPressed(k) {
				pressed = true
				break
			}
		}
		in.held[key] = pressed
	}
	return in.held
}

func (in *EbitenInput) PointerPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (in *EbitenInput) PointerDown() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

var _ interfaces.InputSource = (*EbitenInput)(nil)
