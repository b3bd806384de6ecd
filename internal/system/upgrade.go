// internal/system/upgrade.go
package system

import (
	"math"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
)

// Причины отказа в покупке.
const (
	ReasonUnknownUpgrade = "unknown_upgrade"
	ReasonMaxLevel       = "max_level"
)

// PurchaseResult — итог покупки улучшения.
type PurchaseResult struct {
	Success bool
	Reason  string
	Cost    int
	Level   int
}

// UpgradeSystem — магазин улучшений за жетоны.
type UpgradeSystem struct {
	state *entity.State
	bus   *event.Bus
}

func NewUpgradeSystem(state *entity.State, bus *event.Bus) *UpgradeSystem {
	return &UpgradeSystem{state: state, bus: bus}
}

// Level returns the purchased level of an upgrade.
func (s *UpgradeSystem) Level(kind defs.UpgradeKind) int {
	p := s.state.LivePlayer()
	if p == nil {
		return 0
	}
	return p.Upgrades[kind]
}

// Cost — цена следующего уровня: BaseCost × CostGrowth^level.
func (s *UpgradeSystem) Cost(kind defs.UpgradeKind) (int, bool) {
	u, ok := s.state.Library().Balance.Upgrades[kind]
	if !ok {
		return 0, false
	}
	return int(math.Round(float64(u.BaseCost) * math.Pow(u.CostGrowth, float64(s.Level(kind))))), true
}

// MaxedOut reports whether the upgrade reached its max level.
func (s *UpgradeSystem) MaxedOut(kind defs.UpgradeKind) bool {
	u, ok := s.state.Library().Balance.Upgrades[kind]
	return ok && u.MaxLevel > 0 && s.Level(kind) >= u.MaxLevel
}

// Purchase списывает жетоны и повышает уровень улучшения.
func (s *UpgradeSystem) Purchase(kind defs.UpgradeKind) PurchaseResult {
	p := s.state.LivePlayer()
	u, ok := s.state.Library().Balance.Upgrades[kind]
	if !ok || p == nil {
		return PurchaseResult{Reason: ReasonUnknownUpgrade}
	}
	level := p.Upgrades[kind]
	if s.MaxedOut(kind) {
		return PurchaseResult{Reason: ReasonMaxLevel, Level: level}
	}
	cost, _ := s.Cost(kind)
	if !s.state.SpendResource(defs.ResourceTokens, cost) {
		return PurchaseResult{Reason: ReasonInsufficientResource, Cost: cost, Level: level}
	}

	if p.Upgrades == nil {
		p.Upgrades = make(map[defs.UpgradeKind]int)
	}
	level++
	p.Upgrades[kind] = level
	if kind == defs.UpgradeMaxHealth {
		p.MaxHealth += u.Step
		p.Health += u.Step
	}
	if s.bus != nil {
		s.bus.Emit(event.UpgradePurchased, event.UpgradeData{Kind: kind, Level: level, Cost: cost})
	}
	return PurchaseResult{Success: true, Cost: cost, Level: level}
}
