// internal/system/modifier.go
package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/entity"
)

// ModifierSystem тикает временные баффы, щит, неуязвимость и реген маны.
// Баффы снимаются по истечении Remaining, отложенных колбэков нет.
type ModifierSystem struct {
	state *entity.State
}

func NewModifierSystem(state *entity.State) *ModifierSystem {
	return &ModifierSystem{state: state}
}

// AddModifier вешает бафф на игрока. Бафф с тем же источником и видом
// обновляется, а не складывается.
func (s *ModifierSystem) AddModifier(kind component.ModifierKind, multiplier, duration float64, source string) {
	p := s.state.LivePlayer()
	if p == nil || duration <= 0 || multiplier <= 0 {
		return
	}
	for i := range p.Modifiers {
		m := &p.Modifiers[i]
		if m.Kind == kind && m.Source == source {
			m.Multiplier = multiplier
			m.Remaining = duration
			return
		}
	}
	p.Modifiers = append(p.Modifiers, component.TimedModifier{
		Kind: kind, Multiplier: multiplier, Remaining: duration, Source: source,
	})
}

// Update ведёт таймеры игрока.
func (s *ModifierSystem) Update(deltaTime float64) {
	p := s.state.LivePlayer()
	if p == nil {
		return
	}

	kept := p.Modifiers[:0]
	for _, m := range p.Modifiers {
		m.Remaining -= deltaTime
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	p.Modifiers = kept

	if p.Shield != nil {
		p.Shield.Remaining -= deltaTime
		if !p.Shield.Active() {
			p.Shield = nil
		}
	}
	if p.InvulnerableTimer > 0 {
		p.InvulnerableTimer = math.Max(0, p.InvulnerableTimer-deltaTime)
	}
	regen := s.state.Library().Balance.Player.ManaRegen
	if regen > 0 && p.Mana < p.MaxMana {
		p.Mana = math.Min(p.MaxMana, p.Mana+regen*deltaTime)
	}
}
