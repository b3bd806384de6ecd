// internal/state/state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"dragon-hunter/internal/logging"
)

// State — экран игры: меню, партия или пауза.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine держит активный экран. Переход вызывает Exit у старого
// экрана и Enter у нового.
type StateMachine struct {
	current State
	log     *logging.Logger
}

func NewStateMachine() *StateMachine {
	return &StateMachine{log: logging.For("screens")}
}

// SetState переключает экран. Повторная установка того же экрана
// заново вызывает Exit и Enter: пауза так возвращает партию.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.log.Debugf("screen %T -> %T", sm.current, newState)
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current возвращает активный экран.
func (sm *StateMachine) Current() State {
	return sm.current
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
