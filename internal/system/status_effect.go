// internal/system/status_effect.go
package system

import (
	"math"
	"sort"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/types"
)

// TargetSource returns the candidates a chain can jump to from origin.
type TargetSource func(origin component.Target) []component.Target

// ElementEffectSystem управляет жизненным циклом стихийных эффектов
// (горение, заморозка, яд, фаза, цепная молния, броня).
type ElementEffectSystem struct {
	state   *entity.State
	table   *defs.ElementTable
	bus     *event.Bus
	targets TargetSource
	log     *logging.Logger

	effects map[types.EntityID]*component.StatusEffect
	order   []types.EntityID
	nextID  types.EntityID
}

func NewElementEffectSystem(state *entity.State, table *defs.ElementTable, bus *event.Bus) *ElementEffectSystem {
	return &ElementEffectSystem{
		state:   state,
		table:   table,
		bus:     bus,
		log:     logging.For("effects"),
		effects: make(map[types.EntityID]*component.StatusEffect),
	}
}

// SetTargetSource sets where chain lightning looks for its next hops.
func (s *ElementEffectSystem) SetTargetSource(src TargetSource) {
	s.targets = src
}

// ApplyElementEffect накладывает особый эффект стихии на цель.
// Нейтральная стихия и пустая цель ничего не делают.
func (s *ElementEffectSystem) ApplyElementEffect(target component.Target, element defs.ElementType, strength float64, source string) {
	if target == nil || !target.Alive() || element == defs.ElementNormal || element == "" {
		return
	}
	if strength <= 0 || math.IsNaN(strength) {
		strength = 1
	}
	ability := s.table.GetElement(element).SpecialAbility
	cfg := s.table.GetSpecialAbility(ability)
	flags := target.Status()

	switch ability {
	case defs.AbilityBurn:
		flags.Burning = true
		flags.BurnStacks++
		s.register(target, ability, element, strength, source, cfg)
	case defs.AbilityPoison:
		flags.Poisoned = true
		flags.PoisonStacks++
		s.register(target, ability, element, strength, source, cfg)
	case defs.AbilityFreeze:
		s.applyFreeze(target, strength, cfg)
		s.register(target, ability, element, strength, source, cfg)
	case defs.AbilityPhase:
		flags.Phased = true
		flags.PhaseStacks++
		s.register(target, ability, element, strength, source, cfg)
	case defs.AbilityArmor:
		limit := cfg.MaxReduction
		if limit <= 0 {
			limit = 1
		}
		flags.Armor = math.Min(limit, flags.Armor+cfg.DamageReduction*strength)
		s.emit(event.StatusEffectApplied, event.StatusEffectData{TargetID: target.TargetID(), Ability: ability, Source: source})
	case defs.AbilityChain:
		s.chain(target, element, strength, source, cfg)
	default:
		s.log.Debugf("element %s has no special ability", element)
	}
}

func (s *ElementEffectSystem) applyFreeze(target component.Target, strength float64, cfg defs.SpecialAbility) {
	flags := target.Status()
	if !flags.SpeedCached {
		flags.OriginalSpeed = target.CurrentSpeed()
		flags.SpeedCached = true
	}
	flags.Frozen = true
	flags.FreezeStacks++
	target.SetCurrentSpeed(target.CurrentSpeed() * freezeFactor(cfg, strength))
}

func freezeFactor(cfg defs.SpecialAbility, strength float64) float64 {
	f := 1 - cfg.SlowPercent*strength
	if f < 0.05 {
		f = 0.05
	}
	if f > 1 {
		f = 1
	}
	return f
}

// Повторное наложение создаёт отдельную запись, а не обновляет старую.
func (s *ElementEffectSystem) register(target component.Target, ability defs.AbilityType, element defs.ElementType,
	strength float64, source string, cfg defs.SpecialAbility) *component.StatusEffect {
	s.nextID++
	e := &component.StatusEffect{
		ID:        s.nextID,
		TargetID:  target.TargetID(),
		Target:    target,
		Ability:   ability,
		Strength:  strength,
		Source:    source,
		Element:   element,
		StartTime: s.state.GameTime,
		Config:    cfg,
	}
	s.effects[e.ID] = e
	s.order = append(s.order, e.ID)
	s.emit(event.StatusEffectApplied, event.StatusEffectData{EffectID: e.ID, TargetID: e.TargetID, Ability: ability, Source: source})
	return e
}

// chain бьёт цель сразу, затем прыгает к ближайшей ещё не задетой цели.
func (s *ElementEffectSystem) chain(first component.Target, element defs.ElementType, strength float64, source string, cfg defs.SpecialAbility) {
	base := cfg.Damage * strength
	hits := []types.EntityID{first.TargetID()}
	dealt := []float64{s.applyRaw(first, base, element, "chain")}
	chained := map[types.EntityID]bool{first.TargetID(): true}

	var candidates []component.Target
	if s.targets != nil {
		candidates = s.targets(first)
	}

	current := first
	for hop := 1; hop < cfg.MaxChains; hop++ {
		next := nearestUnchained(current, candidates, chained, cfg.ChainRange)
		if next == nil {
			break
		}
		dmg := base * math.Pow(cfg.ChainDamage, float64(hop))
		dealt = append(dealt, s.applyRaw(next, dmg, element, "chain"))
		hits = append(hits, next.TargetID())
		chained[next.TargetID()] = true
		current = next
	}
	s.emit(event.ChainLightning, event.ChainData{Targets: hits, Damage: dealt})
}

func nearestUnchained(from component.Target, candidates []component.Target, chained map[types.EntityID]bool, maxRange float64) component.Target {
	var best component.Target
	bestDist := math.Inf(1)
	origin := from.Center()
	for _, c := range candidates {
		if c == nil || !c.Alive() || chained[c.TargetID()] {
			continue
		}
		d := origin.DistTo(c.Center())
		if d <= maxRange && d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// UpdateActiveEffects двигает таймеры, наносит периодический урон и снимает
// истёкшие эффекты. Эффекты мёртвых целей удаляются.
func (s *ElementEffectSystem) UpdateActiveEffects(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	ids := append([]types.EntityID(nil), s.order...)
	for _, id := range ids {
		e, ok := s.effects[id]
		if !ok {
			continue
		}
		if e.Target == nil || !e.Target.Alive() {
			s.remove(e, false)
			continue
		}

		e.Elapsed += deltaTime
		if e.Config.TickInterval > 0 && (e.Ability == defs.AbilityBurn || e.Ability == defs.AbilityPoison) {
			limit := math.Min(e.Elapsed, e.Config.Duration)
			for e.LastTick+e.Config.TickInterval <= limit+1e-9 {
				e.LastTick += e.Config.TickInterval
				if e.Target.Status().Phased {
					continue
				}
				s.applyRaw(e.Target, e.Config.DPS*e.Config.TickInterval*e.Strength, e.Element, string(e.Ability))
			}
		}

		if e.Expired() {
			s.remove(e, true)
		}
	}
}

// Update — синоним UpdateActiveEffects, чтобы система вписывалась в общий цикл.
func (s *ElementEffectSystem) Update(deltaTime float64) {
	s.UpdateActiveEffects(deltaTime)
}

func (s *ElementEffectSystem) remove(e *component.StatusEffect, expired bool) {
	delete(s.effects, e.ID)
	for i, id := range s.order {
		if id == e.ID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	if e.Target != nil {
		s.revert(e)
	}
	if expired {
		s.emit(event.StatusEffectExpired, event.StatusEffectData{EffectID: e.ID, TargetID: e.TargetID, Ability: e.Ability, Source: e.Source})
	}
}

func (s *ElementEffectSystem) revert(e *component.StatusEffect) {
	flags := e.Target.Status()
	switch e.Ability {
	case defs.AbilityBurn:
		flags.BurnStacks = max(0, flags.BurnStacks-1)
		flags.Burning = flags.BurnStacks > 0
	case defs.AbilityPoison:
		flags.PoisonStacks = max(0, flags.PoisonStacks-1)
		flags.Poisoned = flags.PoisonStacks > 0
	case defs.AbilityPhase:
		flags.PhaseStacks = max(0, flags.PhaseStacks-1)
		flags.Phased = flags.PhaseStacks > 0
	case defs.AbilityFreeze:
		flags.FreezeStacks = max(0, flags.FreezeStacks-1)
		if flags.FreezeStacks == 0 {
			// последний снятый эффект возвращает исходную скорость точно
			if flags.SpeedCached {
				e.Target.SetCurrentSpeed(flags.OriginalSpeed)
			}
			flags.SpeedCached = false
			flags.OriginalSpeed = 0
			flags.Frozen = false
			return
		}
		if f := freezeFactor(e.Config, e.Strength); f > 0 {
			e.Target.SetCurrentSpeed(e.Target.CurrentSpeed() / f)
		}
	}
}

// RemoveEffectsFor drops every effect on a target and reverts its flags.
func (s *ElementEffectSystem) RemoveEffectsFor(targetID types.EntityID) {
	for _, id := range append([]types.EntityID(nil), s.order...) {
		if e := s.effects[id]; e != nil && e.TargetID == targetID {
			s.remove(e, false)
		}
	}
}

// Clear drops all effects without touching targets (used on restart).
func (s *ElementEffectSystem) Clear() {
	s.effects = make(map[types.EntityID]*component.StatusEffect)
	s.order = nil
}

// ActiveEffects returns copies of active effects in application order.
func (s *ElementEffectSystem) ActiveEffects() []component.StatusEffect {
	out := make([]component.StatusEffect, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.effects[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountOn returns the number of active effects of ability on a target.
func (s *ElementEffectSystem) CountOn(targetID types.EntityID, ability defs.AbilityType) int {
	n := 0
	for _, e := range s.effects {
		if e.TargetID == targetID && e.Ability == ability {
			n++
		}
	}
	return n
}

// GetEffectiveness delegates to the element table.
func (s *ElementEffectSystem) GetEffectiveness(attacker, defender defs.ElementType) float64 {
	return s.table.GetEffectiveness(attacker, defender)
}

// GetDamageMultiplier is effectiveness times the target's armor factor.
func (s *ElementEffectSystem) GetDamageMultiplier(attacker defs.ElementType, target component.Target) float64 {
	if target == nil {
		return 0
	}
	return s.table.GetEffectiveness(attacker, target.TargetElement()) * (1 - target.Status().Armor)
}

// DealElementalDamage наносит base × эффективность × (1 − броня).
// Здоровье может уйти в минус, смерть обрабатывает вызывающий.
func (s *ElementEffectSystem) DealElementalDamage(target component.Target, baseDamage float64, element defs.ElementType, source string) float64 {
	if target == nil || baseDamage <= 0 || math.IsNaN(baseDamage) {
		return 0
	}
	eff := s.table.GetEffectiveness(element, target.TargetElement())
	amount := baseDamage * eff * (1 - target.Status().Armor)
	if amount < 0 {
		amount = 0
	}
	s.subtract(target, amount, element, eff, source)
	return amount
}

// applyRaw наносит урон без множителей (тики и цепь).
func (s *ElementEffectSystem) applyRaw(target component.Target, amount float64, element defs.ElementType, source string) float64 {
	if target == nil || amount <= 0 {
		return 0
	}
	s.subtract(target, amount, element, 1, source)
	return amount
}

func (s *ElementEffectSystem) subtract(target component.Target, amount float64, element defs.ElementType, eff float64, source string) {
	target.SetCurrentHealth(target.CurrentHealth() - amount)

	isPlayer := s.state.LivePlayer() != nil && target.TargetID() == s.state.LivePlayer().ID
	s.state.RecordDamage(amount, !isPlayer)

	pos := target.Center()
	data := event.DamageData{
		TargetID: target.TargetID(), Amount: amount, Element: element,
		Effectiveness: eff, Source: source, X: pos.X, Y: pos.Y,
	}
	if isPlayer {
		s.emit(event.PlayerDamaged, data)
		return
	}
	s.emit(event.DamageDealt, data)
}

func (s *ElementEffectSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
