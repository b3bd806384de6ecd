// internal/system/ability_effects.go
package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
)

// AbilityEffectSystem применяет эффекты произнесённых умений. Само умение
// только списывает цену и ставит кулдаун, а эффект приходит сюда событием.
type AbilityEffectSystem struct {
	state     *entity.State
	bus       *event.Bus
	effects   *ElementEffectSystem
	modifiers *ModifierSystem
	abilities *AbilitySystem
	log       *logging.Logger
}

func NewAbilityEffectSystem(state *entity.State, bus *event.Bus, effects *ElementEffectSystem,
	modifiers *ModifierSystem, abilities *AbilitySystem) *AbilityEffectSystem {
	s := &AbilityEffectSystem{
		state:     state,
		bus:       bus,
		effects:   effects,
		modifiers: modifiers,
		abilities: abilities,
		log:       logging.For("ability_effects"),
	}
	bus.Subscribe(event.AbilityCast, s)
	bus.Subscribe(event.AbilityUpgradeCollected, s)
	return s
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *AbilityEffectSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.AbilityCast:
		if data, ok := e.Data.(event.AbilityCastData); ok {
			s.Apply(data.Definition)
		}
	case event.AbilityUpgradeCollected:
		s.abilities.ReduceCooldowns(s.state.Library().Balance.UpgradeCDCut)
	}
}

// Apply выполняет эффект умения.
func (s *AbilityEffectSystem) Apply(def defs.AbilityDefinition) {
	p := s.state.LivePlayer()
	if p == nil {
		return
	}
	s.state.LiveStatistics().AbilitiesCast++
	params := def.Params

	switch def.Effect {
	case defs.EffectAttackBuff:
		if params.DamageMultiplier > 0 {
			s.modifiers.AddModifier(component.ModDamage, params.DamageMultiplier, params.Duration, def.ID)
		}
		if params.FireRateMultiplier > 0 {
			s.modifiers.AddModifier(component.ModFireRate, params.FireRateMultiplier, params.Duration, def.ID)
		}
	case defs.EffectShield:
		p.Shield = &component.Shield{Absorb: params.Absorb, Remaining: params.Duration}
	case defs.EffectAoeDebuff:
		s.nova(p, def)
	case defs.EffectHeal:
		amount := math.Min(p.MaxHealth-p.Health, p.MaxHealth*params.HealPercent)
		if amount > 0 {
			p.Health += amount
			s.emit(event.PlayerHealed, event.HealData{Amount: amount, Source: def.ID})
		}
	default:
		s.log.Warnf("ability %s has unknown effect %q", def.ID, def.Effect)
		return
	}
	s.emit(event.SoundCue, event.SoundData{Name: def.ID})
}

// nova бьёт всё в радиусе стихией умения. Эффект стихии на босса
// накладывается один раз через голову, так как он общий для всех звеньев.
func (s *AbilityEffectSystem) nova(p *component.Player, def defs.AbilityDefinition) {
	params := def.Params
	element := params.Element
	if element == "" {
		element = defs.ElementNormal
	}
	center := p.Vec()

	if boss := s.state.LiveBoss(); boss.Alive() && !boss.Phased() {
		hit := false
		for _, seg := range boss.Segments {
			if seg.Alive() && seg.Vec().DistTo(center) <= params.Radius+seg.Radius {
				s.effects.DealElementalDamage(seg, params.Damage, element, def.ID)
				hit = true
			}
		}
		if head := boss.Head(); hit && head != nil && head.Alive() {
			s.effects.ApplyElementEffect(head, element, 1, def.ID)
		}
	}
	for _, d := range s.state.LiveDragons() {
		if d.Alive() && d.Vec().DistTo(center) <= params.Radius+d.Size {
			s.effects.DealElementalDamage(d, params.Damage, element, def.ID)
			if d.Alive() {
				s.effects.ApplyElementEffect(d, element, 1, def.ID)
			}
		}
	}
}

func (s *AbilityEffectSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
