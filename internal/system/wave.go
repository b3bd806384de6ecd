// internal/system/wave.go
package system

import (
	"math"

	"github.com/google/uuid"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/utils"
)

// WaveSystem отсчитывает паузу между боссами, создаёт нового дракона и
// закрывает волну, когда у дракона не осталось сегментов.
type WaveSystem struct {
	state   *entity.State
	bus     *event.Bus
	prng    *utils.PRNGService
	loot    *LootSystem
	effects *ElementEffectSystem
	log     *logging.Logger
}

func NewWaveSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService, loot *LootSystem, effects *ElementEffectSystem) *WaveSystem {
	return &WaveSystem{
		state:   state,
		bus:     bus,
		prng:    prng,
		loot:    loot,
		effects: effects,
		log:     logging.For("wave"),
	}
}

// Update ведёт таймер появления. Пока босс жив, таймер не идёт.
func (s *WaveSystem) Update(deltaTime float64) {
	if s.state.LiveBoss().Alive() {
		return
	}
	s.state.RespawnTimer -= deltaTime
	if s.state.RespawnTimer <= 0 {
		s.state.RespawnTimer = 0
		s.Spawn()
	}
}

// Spawn создаёт босса текущей волны со стихией по весам волны.
func (s *WaveSystem) Spawn() *component.Dragon {
	wave := s.state.Wave
	lib := s.state.Library()
	element := lib.Elements.ChooseElement(wave, s.prng.Rand())

	x := s.prng.Range(config.ArenaWidth*0.2, config.ArenaWidth*0.8)
	d := BuildDragon(s.state, element, wave, lib.Balance.Dragon.InitialSegments, x, lib.Balance.Dragon.HeadRadius*2)
	d.WobbleSeed = s.prng.Range(0, 1000)
	s.state.SetBoss(d)

	s.log.Infof("wave %d: %s dragon %s with %d segments", wave, element, d.SpawnID, len(d.Segments))
	data := event.WaveData{Wave: wave, Element: element, DragonID: d.SpawnID, Segments: len(d.Segments)}
	s.emit(event.WaveStarted, data)
	s.emit(event.BossSpawned, data)
	s.emit(event.SoundCue, event.SoundData{Name: "boss_roar"})
	return d
}

// BuildDragon собирает дракона из n сегментов; хвост уходит вверх от головы.
func BuildDragon(state *entity.State, element defs.ElementType, wave, n int, x, y float64) *component.Dragon {
	b := state.Library().Balance
	el := state.Library().Elements.GetElement(element)
	if n < 1 {
		n = 1
	}
	speed := b.Dragon.BaseSpeed * nonZero(el.SpeedMultiplier)
	d := &component.Dragon{
		SpawnID:   uuid.NewString(),
		Element:   element,
		Wave:      wave,
		Speed:     speed,
		BaseSpeed: speed,
	}
	d.SpecialTimer = b.Dragon.SpecialInterval
	d.AICheckTimer = b.Skills.AICheckInterval
	for i := 0; i < n; i++ {
		seg := NewSegment(state, d, i, wave)
		seg.X, seg.Y = x, y-float64(i)*b.Dragon.SegmentSpacing
		d.Attach(seg)
	}
	d.GrowthTimer = GrowthInterval(b.Dragon, len(d.Segments))
	return d
}

// NewSegment считает здоровье и урон звена по стихии, волне и индексу.
func NewSegment(state *entity.State, d *component.Dragon, index, wave int) *component.Segment {
	b := state.Library().Balance.Dragon
	el := state.Library().Elements.GetElement(d.Element)
	if wave < 1 {
		wave = 1
	}
	hp := el.BaseHealth * nonZero(el.HealthMultiplier) *
		math.Pow(b.HealthGrowth, float64(wave-1)) *
		(1 + b.IndexHealthScale*float64(index))
	radius := b.SegmentRadius
	if index == 0 {
		radius = b.HeadRadius
	}
	return &component.Segment{
		ID:        state.NewEntity(),
		Radius:    radius,
		Health:    hp,
		MaxHealth: hp,
		Damage:    b.BaseDamage * nonZero(el.DamageMultiplier) * (1 + b.IndexDamageScale*float64(index)),
	}
}

// GrowthInterval: чем длиннее дракон, тем чаще он растёт, но не чаще минимума.
func GrowthInterval(b defs.DragonBalance, segments int) float64 {
	return math.Max(b.MinGrowthInterval, b.GrowthInterval-b.GrowthShrink*float64(segments))
}

// Defeat закрывает волну: бонус, лут, следующая волна и таймер появления.
func (s *WaveSystem) Defeat(d *component.Dragon, x, y float64) {
	if d == nil {
		return
	}
	el := s.state.Library().Elements.GetElement(d.Element)
	wave := s.state.Wave
	bonus := el.DefeatBonus * wave

	s.state.AddScore(bonus)
	s.state.LiveStatistics().BossesDefeated++
	s.loot.HandleDragonDeath(d, DeathContext{Wave: wave, Combo: s.state.Combo, X: x, Y: y})

	for _, seg := range d.Segments {
		s.effects.RemoveEffectsFor(seg.ID)
	}
	if s.state.LiveBoss() == d {
		s.state.ClearBoss()
	}
	delay := el.RespawnDelay
	if delay <= 0 {
		delay = s.state.Library().Balance.Dragon.FirstSpawnDelay
	}
	s.state.RespawnTimer = delay
	s.state.SetWave(wave + 1)

	s.log.Infof("dragon %s defeated on wave %d, bonus %d", d.SpawnID, wave, bonus)
	s.emit(event.BossDefeated, event.BossDefeatedData{
		DragonID: d.SpawnID, Element: d.Element, Wave: wave, Bonus: bonus,
		RespawnDelay: delay, X: x, Y: y,
	})
	s.emit(event.SoundCue, event.SoundData{Name: "boss_defeated"})
}

func (s *WaveSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}

func nonZero(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return v
}
