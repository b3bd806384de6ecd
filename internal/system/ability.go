package system

import (
	"math"
	"sort"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
)

// Причины отказа в активации умения.
const (
	ReasonUnknownAbility       = "unknown_ability"
	ReasonCooldown             = "cooldown"
	ReasonInsufficientResource = "insufficient_resource"
	ReasonSpendFailed          = "spend_failed"
)

// ActivationResult — результат проверки или активации умения.
type ActivationResult struct {
	Success  bool
	Reason   string
	Resource string // какого ресурса не хватило
}

// ResourcePool — кошелёк, из которого платят за умения.
type ResourcePool interface {
	Balance(resource string) int
	SpendResource(resource string, amount int) bool
	AddResource(resource string, amount int) bool
}

// AbilitySystem хранит определения умений, кулдауны и списывает ресурсы.
type AbilitySystem struct {
	pool ResourcePool
	bus  *event.Bus
	log  *logging.Logger

	defs      map[string]defs.AbilityDefinition
	order     []string
	cooldowns map[string]float64
	cdScale   map[string]float64 // множитель кулдауна от апгрейдов

	statusInterval float64
	statusTimer    float64
}

func NewAbilitySystem(lib *defs.Library, pool ResourcePool, bus *event.Bus) *AbilitySystem {
	s := &AbilitySystem{
		pool:           pool,
		bus:            bus,
		log:            logging.For("abilities"),
		defs:           make(map[string]defs.AbilityDefinition),
		cooldowns:      make(map[string]float64),
		cdScale:        make(map[string]float64),
		statusInterval: 0.25,
	}
	if lib != nil {
		if lib.Balance.StatusInterval > 0 {
			s.statusInterval = lib.Balance.StatusInterval
		}
		for _, d := range lib.Balance.Abilities {
			s.Register(d)
		}
	}
	return s
}

// Register adds or replaces an ability definition.
func (s *AbilitySystem) Register(def defs.AbilityDefinition) {
	if _, exists := s.defs[def.ID]; !exists {
		s.order = append(s.order, def.ID)
	}
	s.defs[def.ID] = def.Clone()
	if _, ok := s.cdScale[def.ID]; !ok {
		s.cdScale[def.ID] = 1
	}
}

// SetStatusInterval overrides how often AbilityStatus is broadcast.
func (s *AbilitySystem) SetStatusInterval(v float64) {
	if v > 0 {
		s.statusInterval = v
	}
}

// CanActivate проверяет, можно ли сейчас применить умение.
func (s *AbilitySystem) CanActivate(id string) ActivationResult {
	def, ok := s.defs[id]
	if !ok {
		return ActivationResult{Reason: ReasonUnknownAbility}
	}
	if s.cooldowns[id] > 0 {
		return ActivationResult{Reason: ReasonCooldown}
	}
	for _, res := range sortedCostKeys(def.Cost) {
		if s.pool == nil || s.pool.Balance(res) < def.Cost[res] {
			return ActivationResult{Reason: ReasonInsufficientResource, Resource: res}
		}
	}
	return ActivationResult{Success: true}
}

// Activate проверяет все стоимости до списания, затем списывает их. Если
// какое-то списание не прошло, уже списанное возвращается.
func (s *AbilitySystem) Activate(id string, ctx event.CastContext) ActivationResult {
	res := s.CanActivate(id)
	if !res.Success {
		s.emit(event.AbilityFailed, event.AbilityFailedData{AbilityID: id, Reason: res.Reason, Resource: res.Resource})
		return res
	}
	def := s.defs[id]

	spent := make(map[string]int, len(def.Cost))
	for _, r := range sortedCostKeys(def.Cost) {
		amount := def.Cost[r]
		if !s.pool.SpendResource(r, amount) {
			s.refund(spent)
			s.log.Warnf("spend of %d %s for %s failed after validation", amount, r, id)
			failed := ActivationResult{Reason: ReasonSpendFailed, Resource: r}
			s.emit(event.AbilityFailed, event.AbilityFailedData{AbilityID: id, Reason: failed.Reason, Resource: r})
			return failed
		}
		spent[r] = amount
	}

	cd := s.effectiveCooldown(id)
	s.cooldowns[id] = cd
	s.emit(event.AbilityCast, event.AbilityCastData{Definition: def.Clone(), Context: ctx})
	s.emit(event.AbilityCooldownStarted, event.AbilityCooldownData{AbilityID: id, Cooldown: cd})
	return ActivationResult{Success: true}
}

func (s *AbilitySystem) refund(spent map[string]int) {
	for r, amount := range spent {
		if amount > 0 {
			s.pool.AddResource(r, amount)
		}
	}
}

func (s *AbilitySystem) effectiveCooldown(id string) float64 {
	scale, ok := s.cdScale[id]
	if !ok {
		scale = 1
	}
	return s.defs[id].Cooldown * scale
}

// Update уменьшает кулдауны и раз в statusInterval рассылает их состояние.
func (s *AbilitySystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	for _, id := range s.order {
		cd := s.cooldowns[id]
		if cd <= 0 {
			continue
		}
		cd -= deltaTime
		if cd <= 0 {
			s.cooldowns[id] = 0
			s.emit(event.AbilityReady, event.AbilityCooldownData{AbilityID: id})
			continue
		}
		s.cooldowns[id] = cd
	}

	s.statusTimer += deltaTime
	if s.statusTimer >= s.statusInterval {
		s.statusTimer = math.Mod(s.statusTimer, s.statusInterval)
		s.emit(event.AbilityStatus, s.Status())
	}
}

// Reset clears all cooldowns and upgrade cuts, then broadcasts the status right away.
func (s *AbilitySystem) Reset() {
	for id := range s.cooldowns {
		s.cooldowns[id] = 0
	}
	for id := range s.cdScale {
		s.cdScale[id] = 1
	}
	s.statusTimer = 0
	s.emit(event.AbilityStatus, s.Status())
}

// ReduceCooldowns shortens every ability's configured cooldown by frac
// (capped so a cooldown never drops below 25% of its base) and trims running ones.
func (s *AbilitySystem) ReduceCooldowns(frac float64) {
	if frac <= 0 {
		return
	}
	for _, id := range s.order {
		scale := s.cdScale[id] * (1 - frac)
		if scale < 0.25 {
			scale = 0.25
		}
		s.cdScale[id] = scale
		if s.cooldowns[id] > 0 {
			s.cooldowns[id] *= 1 - frac
		}
	}
}

// Cooldown returns the remaining cooldown of an ability.
func (s *AbilitySystem) Cooldown(id string) float64 { return s.cooldowns[id] }

// Status returns one entry per ability in registration order.
func (s *AbilitySystem) Status() []event.AbilityStatusEntry {
	out := make([]event.AbilityStatusEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, event.AbilityStatusEntry{
			AbilityID: id,
			Remaining: s.cooldowns[id],
			Cooldown:  s.effectiveCooldown(id),
			Ready:     s.cooldowns[id] <= 0,
		})
	}
	return out
}

// Definitions returns copies of the definitions in hotbar order.
func (s *AbilitySystem) Definitions() []defs.AbilityDefinition {
	out := make([]defs.AbilityDefinition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.defs[id].Clone())
	}
	return out
}

func (s *AbilitySystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}

func sortedCostKeys(cost map[string]int) []string {
	keys := make([]string, 0, len(cost))
	for k := range cost {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
