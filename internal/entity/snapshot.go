package entity

import (
	"encoding/json"
	"fmt"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

// AchievementEntry is stored as a JSON pair [id, data].
type AchievementEntry struct {
	ID   string
	Data map[string]interface{}
}

func (a AchievementEntry) MarshalJSON() ([]byte, error) {
	data := a.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	return json.Marshal([]interface{}{a.ID, data})
}

func (a *AchievementEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("achievement entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("achievement entry: want [id, data], got %d items", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.ID); err != nil {
		return fmt.Errorf("achievement id: %w", err)
	}
	a.Data = map[string]interface{}{}
	if err := json.Unmarshal(pair[1], &a.Data); err != nil {
		return fmt.Errorf("achievement %s data: %w", a.ID, err)
	}
	return nil
}

// PlayerSnapshot — сохраняемая часть игрока.
type PlayerSnapshot struct {
	X             float64                  `json:"x"`
	Y             float64                  `json:"y"`
	Health        float64                  `json:"health"`
	MaxHealth     float64                  `json:"maxHealth"`
	BaseDamage    float64                  `json:"baseDamage"`
	Speed         float64                  `json:"speed"`
	Element       defs.ElementType         `json:"element"`
	Level         int                      `json:"level"`
	Experience    int                      `json:"experience"`
	XPToNextLevel int                      `json:"xpToNextLevel"`
	Mana          float64                  `json:"mana"`
	MaxMana       float64                  `json:"maxMana"`
	Crystals      int                      `json:"crystals"`
	Tokens        int                      `json:"tokens"`
	Upgrades      map[defs.UpgradeKind]int `json:"upgrades"`
}

// Snapshot is the serialisable subset of the state. Bullets, loot, particles
// and the boss are not part of it.
type Snapshot struct {
	GameStarted  bool               `json:"gameStarted"`
	GameOver     bool               `json:"gameOver"`
	IsPaused     bool               `json:"isPaused"`
	Score        int                `json:"score"`
	HighScore    int                `json:"highScore"`
	Lives        int                `json:"lives"`
	Wave         int                `json:"wave"`
	Kills        int                `json:"kills"`
	GameTime     float64            `json:"gameTime"`
	SessionID    string             `json:"sessionId"`
	Player       PlayerSnapshot     `json:"player"`
	Statistics   Statistics         `json:"statistics"`
	Achievements []AchievementEntry `json:"achievements"`
}

// GetSnapshot captures the persistent part of the state.
func (s *State) GetSnapshot() Snapshot {
	p := s.player
	upgrades := make(map[defs.UpgradeKind]int, len(p.Upgrades))
	for k, v := range p.Upgrades {
		upgrades[k] = v
	}
	return Snapshot{
		GameStarted: s.started,
		GameOver:    s.over,
		IsPaused:    s.paused,
		Score:       s.Score,
		HighScore:   s.HighScore,
		Lives:       s.Lives,
		Wave:        s.Wave,
		Kills:       s.Kills,
		GameTime:    s.GameTime,
		SessionID:   s.SessionID,
		Player: PlayerSnapshot{
			X: p.X, Y: p.Y,
			Health:        p.Health,
			MaxHealth:     p.MaxHealth,
			BaseDamage:    p.BaseDamage,
			Speed:         p.BaseSpeed,
			Element:       p.Element,
			Level:         p.Level,
			Experience:    p.Experience,
			XPToNextLevel: p.XPToNextLevel,
			Mana:          p.Mana,
			MaxMana:       p.MaxMana,
			Crystals:      p.Crystals,
			Tokens:        p.Tokens,
			Upgrades:      upgrades,
		},
		Statistics:   s.stats.clone(),
		Achievements: s.Achievements(),
	}
}

// RestoreFromSnapshot replaces scalars, player, statistics and achievements.
// Transient collections are emptied and the boss is cleared; a new boss
// spawns after the first-spawn delay.
func (s *State) RestoreFromSnapshot(snap Snapshot) {
	b := s.lib.Balance

	s.started, s.over, s.paused = snap.GameStarted, snap.GameOver, snap.IsPaused
	s.Score = snap.Score
	s.HighScore = snap.HighScore
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Lives = snap.Lives
	s.Wave = snap.Wave
	if s.Wave < 1 {
		s.Wave = 1
	}
	s.Kills = snap.Kills
	s.GameTime = snap.GameTime
	if snap.SessionID != "" {
		s.SessionID = snap.SessionID
	}
	s.Combo, s.ComboTimer = 0, 0

	p := NewPlayer(s.player.ID, b)
	ps := snap.Player
	p.X, p.Y = ps.X, ps.Y
	p.Health, p.MaxHealth = ps.Health, ps.MaxHealth
	p.BaseDamage = ps.BaseDamage
	if ps.Speed > 0 {
		p.Speed, p.BaseSpeed = ps.Speed, ps.Speed
	}
	if ps.Element != "" {
		p.Element = ps.Element
	}
	p.Level, p.Experience, p.XPToNextLevel = ps.Level, ps.Experience, ps.XPToNextLevel
	p.Mana, p.MaxMana = ps.Mana, ps.MaxMana
	p.Crystals, p.Tokens = ps.Crystals, ps.Tokens
	for k, v := range ps.Upgrades {
		p.Upgrades[k] = v
	}
	s.player = p

	s.stats = snap.Statistics.clone()
	s.achievements = make(map[string]map[string]interface{}, len(snap.Achievements))
	s.achOrder = s.achOrder[:0]
	for _, a := range snap.Achievements {
		if _, dup := s.achievements[a.ID]; dup {
			continue
		}
		data := make(map[string]interface{}, len(a.Data))
		for k, v := range a.Data {
			data[k] = v
		}
		s.achievements[a.ID] = data
		s.achOrder = append(s.achOrder, a.ID)
	}

	s.boss = nil
	s.RespawnTimer = b.Dragon.FirstSpawnDelay
	s.clearTransient()
	s.lifecycle.sync()
	s.emit(event.GameLoaded, s.SessionID)
}
