// internal/state/pause_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dragon-hunter/internal/logging"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
	log           *logging.Logger
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		log:           logging.For("pause"),
	}
}

// Enter сохраняет партию: пауза — удобная точка для сохранения.
func (s *PauseState) Enter() {
	if err := s.previousState.Game().Save(); err != nil {
		s.log.Warnf("save on pause failed: %v", err)
	}
}

func (s *PauseState) Update(deltaTime float64) {
	g := s.previousState.Game()
	// Пауза снимается клавишей или кликом по кнопке паузы
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = unpause || g.PauseButton.IsClicked(float64(x), float64(y))
	}

	switch {
	case unpause:
		g.Resume()
		s.stateMachine.SetState(s.previousState)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		if err := g.Load(); err != nil {
			s.log.Warnf("load failed: %v", err)
		}
		s.stateMachine.SetState(s.previousState)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Restart()
		s.stateMachine.SetState(s.previousState)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		s.stateMachine.SetState(NewMenuState(s.stateMachine, g))
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)
	drawCenteredBanner(s.previousState.canvas, "PAUSED", "Esc - resume   L - load   R - restart   Q - menu")
}

func (s *PauseState) Exit() {}
