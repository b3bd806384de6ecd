// internal/system/state.go
package system

import (
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/interfaces"
	"dragon-hunter/internal/logging"
)

// StateSystem следит за комбо и исходом смерти игрока.
type StateSystem struct {
	state       *entity.State
	gameContext interfaces.GameContext
	effects     *ElementEffectSystem
	log         *logging.Logger
}

func NewStateSystem(state *entity.State, gameContext interfaces.GameContext, bus *event.Bus, effects *ElementEffectSystem) *StateSystem {
	ss := &StateSystem{
		state:       state,
		gameContext: gameContext,
		effects:     effects,
		log:         logging.For("state_system"),
	}
	bus.Subscribe(event.GameOver, ss)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	if e.Type != event.GameOver || s.gameContext == nil {
		return
	}
	// итог партии сохраняем сразу, чтобы рекорд пережил выход
	if err := s.gameContext.Save(); err != nil {
		s.log.Warnf("saving after game over: %v", err)
	}
}

// Update гасит комбо и проверяет смерть игрока. Возвращает true, если
// партия закончилась.
func (s *StateSystem) Update(deltaTime float64) bool {
	s.state.UpdateCombo(deltaTime)

	p := s.state.LivePlayer()
	if p == nil || p.Health > 0 {
		return s.state.IsOver()
	}
	if s.effects != nil {
		// новая жизнь начинается без горения и яда
		s.effects.RemoveEffectsFor(p.ID)
	}
	return s.state.HandlePlayerDeath()
}
