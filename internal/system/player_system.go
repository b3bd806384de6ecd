// internal/system/player_system.go
package system

import (
	"math"

	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
)

// Идентификаторы достижений.
const (
	AchFirstBlood   = "first_blood"
	AchDragonSlayer = "dragon_slayer"
	AchWave5        = "wave_5"
	AchWave10       = "wave_10"
	AchComboMaster  = "combo_master"
	AchHoarder      = "hoarder"
)

// PlayerSystem отвечает за логику, связанную с игроком: опыт, уровни и достижения.
type PlayerSystem struct {
	state *entity.State
	bus   *event.Bus
	log   *logging.Logger
}

func NewPlayerSystem(state *entity.State, bus *event.Bus) *PlayerSystem {
	s := &PlayerSystem{state: state, bus: bus, log: logging.For("player")}
	for _, t := range []event.EventType{
		event.KillRecorded, event.BossDefeated, event.WaveStarted,
		event.ComboChanged, event.ResourceChanged,
	} {
		bus.Subscribe(t, s)
	}
	return s
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *PlayerSystem) OnEvent(e event.Event) {
	prog := s.state.Library().Balance.Progression
	switch e.Type {
	case event.KillRecorded:
		data, _ := e.Data.(event.KillData)
		if data.Kills >= 1 {
			s.state.UnlockAchievement(AchFirstBlood, map[string]interface{}{"element": string(data.Element)})
		}
		s.AddExperience(prog.XPPerSegment)
	case event.BossDefeated:
		data, _ := e.Data.(event.BossDefeatedData)
		s.state.UnlockAchievement(AchDragonSlayer, map[string]interface{}{"wave": data.Wave, "element": string(data.Element)})
		s.AddExperience(prog.XPPerBoss)
	case event.WaveStarted:
		data, _ := e.Data.(event.WaveData)
		if data.Wave >= 5 {
			s.state.UnlockAchievement(AchWave5, map[string]interface{}{"wave": data.Wave})
		}
		if data.Wave >= 10 {
			s.state.UnlockAchievement(AchWave10, map[string]interface{}{"wave": data.Wave})
		}
	case event.ComboChanged:
		combo, _ := e.Data.(int)
		if prog.ComboMasterStreak > 0 && combo >= prog.ComboMasterStreak {
			s.state.UnlockAchievement(AchComboMaster, map[string]interface{}{"combo": combo})
		}
	case event.ResourceChanged:
		earned := s.state.LiveStatistics().TokensEarned
		if prog.HoarderTokens > 0 && earned >= prog.HoarderTokens {
			s.state.UnlockAchievement(AchHoarder, map[string]interface{}{"tokens": earned})
		}
	}
}

// XPForLevel — опыт, нужный чтобы перейти с level на level+1.
func XPForLevel(base int, growth float64, level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Round(float64(base) * math.Pow(growth, float64(level-1))))
}

// AddExperience начисляет опыт и поднимает уровень, пока хватает.
// Каждый уровень добавляет урон и максимум здоровья.
func (s *PlayerSystem) AddExperience(xp int) int {
	p := s.state.LivePlayer()
	if p == nil || xp <= 0 {
		return 0
	}
	prog := s.state.Library().Balance.Progression
	p.Experience += xp
	gained := 0
	for p.XPToNextLevel > 0 && p.Experience >= p.XPToNextLevel {
		p.Experience -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = XPForLevel(prog.XPBase, prog.XPGrowth, p.Level)
		p.BaseDamage += prog.DamagePerLevel
		p.MaxHealth += prog.HealthPerLevel
		p.Health = math.Min(p.MaxHealth, p.Health+prog.HealthPerLevel)
		gained++
		s.log.Debugf("player reached level %d", p.Level)
		if s.bus != nil {
			s.bus.Emit(event.LevelUp, event.LevelData{Level: p.Level})
		}
	}
	return gained
}
