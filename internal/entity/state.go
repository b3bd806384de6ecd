// internal/entity/state.go
package entity

import (
	"github.com/google/uuid"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/types"
)

// State — единственный владелец изменяемых коллекций игры.
// Геттеры без префикса Live возвращают копии; Live* отдают указатели
// для систем, которые обновляют мир внутри кадра.
type State struct {
	GameTime float64
	NextID   types.EntityID

	Score        int
	HighScore    int
	Lives        int
	Wave         int
	Kills        int
	Combo        int
	ComboTimer   float64
	RespawnTimer float64 // > 0, пока ждём следующего босса
	SessionID    string

	player        *component.Player
	boss          *component.Dragon
	dragons       []*component.SimpleDragon
	bullets       []*component.Bullet
	loot          []*component.Loot
	particles     []*component.Particle
	damageNumbers []*component.DamageNumber

	stats        Statistics
	achievements map[string]map[string]interface{}
	achOrder     []string

	started, paused, over bool
	lifecycle             *Lifecycle

	lib *defs.Library
	bus *event.Bus
	log *logging.Logger
}

// NewState creates the state in the menu phase with a fresh player.
func NewState(lib *defs.Library, bus *event.Bus) *State {
	s := &State{
		NextID:       1,
		achievements: make(map[string]map[string]interface{}),
		lib:          lib,
		bus:          bus,
		log:          logging.For("state"),
	}
	s.lifecycle = newLifecycle(s)
	s.resetScalars()
	return s
}

// NewEntity выдаёт следующий идентификатор сущности.
func (s *State) NewEntity() types.EntityID {
	id := s.NextID
	s.NextID++
	return id
}

// Library returns the game data the state was built with.
func (s *State) Library() *defs.Library { return s.lib }

// Bus returns the event bus.
func (s *State) Bus() *event.Bus { return s.bus }

func (s *State) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}

func (s *State) resetScalars() {
	b := s.lib.Balance
	s.GameTime = 0
	s.Score = 0
	s.Lives = b.Player.StartLives
	s.Wave = 1
	s.Kills = 0
	s.Combo = 0
	s.ComboTimer = 0
	s.RespawnTimer = b.Dragon.FirstSpawnDelay
	s.SessionID = uuid.NewString()
	s.player = NewPlayer(s.NewEntity(), b)
	s.boss = nil
	s.clearTransient()
	s.stats = newStatistics()
}

func (s *State) clearTransient() {
	s.dragons = nil
	s.bullets = nil
	s.loot = nil
	s.particles = nil
	s.damageNumbers = nil
}

// NewPlayer builds a player from the balance, centred in the arena.
func NewPlayer(id types.EntityID, b *defs.Balance) *component.Player {
	p := &component.Player{
		ID:            id,
		Radius:        b.Player.Radius,
		Speed:         b.Player.Speed,
		BaseSpeed:     b.Player.Speed,
		BaseDamage:    b.Player.BaseDamage,
		Health:        b.Player.MaxHealth,
		MaxHealth:     b.Player.MaxHealth,
		Element:       b.Player.Element,
		Level:         1,
		XPToNextLevel: b.Progression.XPBase,
		Mana:          b.Player.MaxMana,
		MaxMana:       b.Player.MaxMana,
		Crystals:      b.Player.StartCrystals,
		Upgrades:      make(map[defs.UpgradeKind]int),
	}
	p.X, p.Y = ArenaCenter()
	return p
}

// ---- player ----

// Player returns a copy of the player.
func (s *State) Player() component.Player { return s.player.Clone() }

// LivePlayer returns the player for in-frame mutation.
func (s *State) LivePlayer() *component.Player { return s.player }

// ---- boss ----

// Boss returns a deep copy of the current boss, or nil.
func (s *State) Boss() *component.Dragon { return s.boss.Clone() }

// LiveBoss returns the current boss, or nil.
func (s *State) LiveBoss() *component.Dragon { return s.boss }

// SetBoss replaces the current boss.
func (s *State) SetBoss(d *component.Dragon) {
	if d != nil && d.ID == 0 {
		d.ID = s.NewEntity()
	}
	s.boss = d
}

// ClearBoss drops the boss reference.
func (s *State) ClearBoss() { s.boss = nil }

// ---- simple dragons ----

func (s *State) Dragons() []component.SimpleDragon {
	out := make([]component.SimpleDragon, len(s.dragons))
	for i, d := range s.dragons {
		out[i] = d.Clone()
	}
	return out
}

func (s *State) LiveDragons() []*component.SimpleDragon {
	return append([]*component.SimpleDragon(nil), s.dragons...)
}

func (s *State) AddDragon(d *component.SimpleDragon) types.EntityID {
	if d == nil {
		return 0
	}
	if d.ID == 0 {
		d.ID = s.NewEntity()
	}
	s.dragons = append(s.dragons, d)
	return d.ID
}

func (s *State) RemoveDragon(id types.EntityID) bool {
	for i, d := range s.dragons {
		if d.ID == id {
			s.dragons = append(s.dragons[:i:i], s.dragons[i+1:]...)
			return true
		}
	}
	return false
}

// ---- bullets ----

func (s *State) Bullets() []component.Bullet {
	out := make([]component.Bullet, len(s.bullets))
	for i, b := range s.bullets {
		out[i] = b.Clone()
	}
	return out
}

func (s *State) LiveBullets() []*component.Bullet {
	return append([]*component.Bullet(nil), s.bullets...)
}

func (s *State) AddBullet(b *component.Bullet) types.EntityID {
	if b == nil {
		return 0
	}
	if b.ID == 0 {
		b.ID = s.NewEntity()
	}
	s.bullets = append(s.bullets, b)
	return b.ID
}

func (s *State) RemoveBullet(id types.EntityID) bool {
	for i, b := range s.bullets {
		if b.ID == id {
			s.bullets = append(s.bullets[:i:i], s.bullets[i+1:]...)
			return true
		}
	}
	return false
}

// CleanupBullets removes bullets whose life ran out.
func (s *State) CleanupBullets() int {
	kept := s.bullets[:0:0]
	for _, b := range s.bullets {
		if b.Life > 0 {
			kept = append(kept, b)
		}
	}
	removed := len(s.bullets) - len(kept)
	s.bullets = kept
	return removed
}

// ---- loot ----

func (s *State) Loot() []component.Loot {
	out := make([]component.Loot, len(s.loot))
	for i, l := range s.loot {
		out[i] = *l
	}
	return out
}

func (s *State) LiveLoot() []*component.Loot {
	return append([]*component.Loot(nil), s.loot...)
}

func (s *State) AddLoot(l *component.Loot) types.EntityID {
	if l == nil {
		return 0
	}
	if l.ID == 0 {
		l.ID = s.NewEntity()
	}
	s.loot = append(s.loot, l)
	return l.ID
}

func (s *State) RemoveLoot(id types.EntityID) bool {
	for i, l := range s.loot {
		if l.ID == id {
			s.loot = append(s.loot[:i:i], s.loot[i+1:]...)
			return true
		}
	}
	return false
}

// ---- visuals ----

func (s *State) Particles() []component.Particle {
	out := make([]component.Particle, len(s.particles))
	for i, p := range s.particles {
		out[i] = *p
	}
	return out
}

func (s *State) LiveParticles() []*component.Particle {
	return append([]*component.Particle(nil), s.particles...)
}

func (s *State) AddParticle(p component.Particle) {
	s.particles = append(s.particles, &p)
}

func (s *State) DamageNumbers() []component.DamageNumber {
	out := make([]component.DamageNumber, len(s.damageNumbers))
	for i, n := range s.damageNumbers {
		out[i] = *n
	}
	return out
}

func (s *State) LiveDamageNumbers() []*component.DamageNumber {
	return append([]*component.DamageNumber(nil), s.damageNumbers...)
}

func (s *State) AddDamageNumber(n component.DamageNumber) {
	s.damageNumbers = append(s.damageNumbers, &n)
}

// CleanupParticles drops particles with Life <= 0.
func (s *State) CleanupParticles() int {
	kept := s.particles[:0:0]
	for _, p := range s.particles {
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	removed := len(s.particles) - len(kept)
	s.particles = kept
	return removed
}

// CleanupDamageNumbers drops damage numbers with Life <= 0.
func (s *State) CleanupDamageNumbers() int {
	kept := s.damageNumbers[:0:0]
	for _, n := range s.damageNumbers {
		if n.Life > 0 {
			kept = append(kept, n)
		}
	}
	removed := len(s.damageNumbers) - len(kept)
	s.damageNumbers = kept
	return removed
}

// ---- score / combo ----

// AddScore adds points and tracks the high score.
func (s *State) AddScore(points int) {
	if points <= 0 {
		return
	}
	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
}

// UpdateCombo decays the combo once no kill happened for ComboTimeout.
func (s *State) UpdateCombo(dt float64) {
	if s.Combo == 0 {
		return
	}
	s.ComboTimer -= dt
	if s.ComboTimer <= 0 {
		s.Combo = 0
		s.ComboTimer = 0
		s.emit(event.ComboChanged, 0)
	}
}
