package entity

import (
	"math"

	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

// ArenaCenter — центр игрового поля.
func ArenaCenter() (float64, float64) {
	return config.ArenaWidth / 2, config.ArenaHeight / 2
}

// Statistics — накопленная статистика сессии, попадает в сохранение.
type Statistics struct {
	ShotsFired        int                      `json:"shotsFired"`
	Hits              int                      `json:"hits"`
	DamageDealt       float64                  `json:"damageDealt"`
	DamageTaken       float64                  `json:"damageTaken"`
	KillsByElement    map[defs.ElementType]int `json:"killsByElement"`
	BossesDefeated    int                      `json:"bossesDefeated"`
	SegmentsDestroyed int                      `json:"segmentsDestroyed"`
	LootCollected     int                      `json:"lootCollected"`
	TokensEarned      int                      `json:"tokensEarned"`
	AbilitiesCast     int                      `json:"abilitiesCast"`
	BestCombo         int                      `json:"bestCombo"`
	HighestWave       int                      `json:"highestWave"`
}

func newStatistics() Statistics {
	return Statistics{KillsByElement: make(map[defs.ElementType]int), HighestWave: 1}
}

func (st Statistics) clone() Statistics {
	c := st
	c.KillsByElement = make(map[defs.ElementType]int, len(st.KillsByElement))
	for k, v := range st.KillsByElement {
		c.KillsByElement[k] = v
	}
	return c
}

// Statistics returns a copy of the session statistics.
func (s *State) Statistics() Statistics { return s.stats.clone() }

// LiveStatistics gives systems direct access to counters.
func (s *State) LiveStatistics() *Statistics { return &s.stats }

// RecordKill counts a kill of the given element and bumps the combo.
func (s *State) RecordKill(element defs.ElementType) {
	s.Kills++
	if s.stats.KillsByElement == nil {
		s.stats.KillsByElement = make(map[defs.ElementType]int)
	}
	s.stats.KillsByElement[element]++

	s.Combo++
	s.ComboTimer = s.lib.Balance.Progression.ComboTimeout
	if s.Combo > s.stats.BestCombo {
		s.stats.BestCombo = s.Combo
	}
	s.emit(event.KillRecorded, event.KillData{Element: element, Kills: s.Kills, Combo: s.Combo})
	s.emit(event.ComboChanged, s.Combo)
}

// RecordDamage adds to dealt or taken damage.
func (s *State) RecordDamage(amount float64, dealt bool) {
	if amount <= 0 || math.IsNaN(amount) {
		return
	}
	if dealt {
		s.stats.DamageDealt += amount
		s.stats.Hits++
		return
	}
	s.stats.DamageTaken += amount
}

// SetWave sets the wave counter and tracks the highest wave.
func (s *State) SetWave(w int) {
	if w < 1 {
		w = 1
	}
	s.Wave = w
	if w > s.stats.HighestWave {
		s.stats.HighestWave = w
	}
}

// UnlockAchievement stores the achievement once. Returns false when it was
// already unlocked; in that case no event is emitted.
func (s *State) UnlockAchievement(id string, data map[string]interface{}) bool {
	if _, ok := s.achievements[id]; ok {
		return false
	}
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	s.achievements[id] = copied
	s.achOrder = append(s.achOrder, id)
	s.emit(event.AchievementUnlocked, event.AchievementData{ID: id, Data: copied})
	return true
}

// HasAchievement reports whether id is unlocked.
func (s *State) HasAchievement(id string) bool {
	_, ok := s.achievements[id]
	return ok
}

// Achievements returns unlocked achievements in unlock order.
func (s *State) Achievements() []AchievementEntry {
	out := make([]AchievementEntry, 0, len(s.achOrder))
	for _, id := range s.achOrder {
		data := make(map[string]interface{}, len(s.achievements[id]))
		for k, v := range s.achievements[id] {
			data[k] = v
		}
		out = append(out, AchievementEntry{ID: id, Data: data})
	}
	return out
}

// ---- resources ----

// Balance returns the whole-unit amount of a resource.
func (s *State) Balance(resource string) int {
	p := s.player
	switch resource {
	case defs.ResourceMana:
		return int(math.Floor(p.Mana))
	case defs.ResourceCrystals:
		return p.Crystals
	case defs.ResourceTokens:
		return p.Tokens
	case defs.ResourceHealth:
		return int(math.Floor(p.Health))
	}
	return 0
}

// AddResource credits a resource. Mana and health are capped at their maximum.
// Unknown resources are ignored.
func (s *State) AddResource(resource string, amount int) bool {
	if amount <= 0 {
		return false
	}
	p := s.player
	switch resource {
	case defs.ResourceMana:
		p.Mana = math.Min(p.MaxMana, p.Mana+float64(amount))
	case defs.ResourceCrystals:
		p.Crystals += amount
	case defs.ResourceTokens:
		p.Tokens += amount
		s.stats.TokensEarned += amount
	case defs.ResourceHealth:
		p.Health = math.Min(p.MaxHealth, p.Health+float64(amount))
	default:
		s.log.Debugf("ignoring unknown resource %q", resource)
		return false
	}
	s.emit(event.ResourceChanged, event.ResourceData{Resource: resource, Delta: amount, Balance: s.Balance(resource)})
	return true
}

// SpendResource removes amount if the whole amount is available; otherwise
// it changes nothing and returns false.
func (s *State) SpendResource(resource string, amount int) bool {
	if amount < 0 {
		return false
	}
	if amount == 0 {
		return true
	}
	if s.Balance(resource) < amount {
		return false
	}
	p := s.player
	switch resource {
	case defs.ResourceMana:
		p.Mana -= float64(amount)
	case defs.ResourceCrystals:
		p.Crystals -= amount
	case defs.ResourceTokens:
		p.Tokens -= amount
	case defs.ResourceHealth:
		p.Health -= float64(amount)
	default:
		return false
	}
	s.emit(event.ResourceChanged, event.ResourceData{Resource: resource, Delta: -amount, Balance: s.Balance(resource)})
	return true
}
