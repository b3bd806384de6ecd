// internal/state/menu_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	game "dragon-hunter/internal/app"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/ui"
	"dragon-hunter/pkg/render"
)

const (
	menuButtonWidth  = 220
	menuButtonHeight = 44
)

// MenuState — стартовый экран: новая игра или продолжение сохранения.
type MenuState struct {
	sm      *StateMachine
	game    *game.Game
	canvas  *render.EbitenCanvas
	newGame *ui.Button
	resume  *ui.Button
	log     *logging.Logger
}

func NewMenuState(sm *StateMachine, g *game.Game) *MenuState {
	x := float64(config.ScreenWidth-menuButtonWidth) / 2
	y := float64(config.ScreenHeight) / 2
	return &MenuState{
		sm:      sm,
		game:    g,
		canvas:  render.NewEbitenCanvas(),
		newGame: ui.NewButton(ui.Rect{X: x, Y: y, W: menuButtonWidth, H: menuButtonHeight}, "NEW GAME"),
		resume:  ui.NewButton(ui.Rect{X: x, Y: y + menuButtonHeight + 16, W: menuButtonWidth, H: menuButtonHeight}, "CONTINUE"),
		log:     logging.For("menu"),
	}
}

func (m *MenuState) Enter() {
	// Ничего не делаем при входе
}

func (m *MenuState) Update(deltaTime float64) {
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	x, y := ebiten.CursorPosition()
	mx, my := float64(x), float64(y)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), clicked && m.newGame.IsClicked(mx, my):
		m.game.Restart()
		m.sm.SetState(NewGameState(m.sm, m.game))
	case inpututil.IsKeyJustPressed(ebiten.KeyC), clicked && m.resume.IsClicked(mx, my):
		if err := m.game.Load(); err != nil {
			m.log.Warnf("continue failed, starting fresh: %v", err)
		}
		m.sm.SetState(NewGameState(m.sm, m.game))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	c := m.canvas
	c.Begin(screen)
	c.Clear(config.BackgroundColor)

	title := "DRAGON HUNTER"
	c.Text(title, (config.ScreenWidth-ui.TextWidth(title))/2, config.ScreenHeight/2-80, color.RGBA{255, 200, 80, 255})
	best := "BEST " + ui.FormatScore(m.game.State.HighScore)
	c.Text(best, (config.ScreenWidth-ui.TextWidth(best))/2, config.ScreenHeight/2-50, config.TextLightColor)

	x, y := ebiten.CursorPosition()
	m.newGame.Draw(c, float64(x), float64(y))
	m.resume.Draw(c, float64(x), float64(y))
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
