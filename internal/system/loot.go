package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/types"
	"dragon-hunter/internal/utils"
	"dragon-hunter/pkg/geom"
)

// DeathContext — обстоятельства гибели дракона для расчёта награды.
type DeathContext struct {
	Wave  int
	Combo int
	X, Y  float64
}

// DifficultyModifiers масштабируют базовые константы лута. Нулевое поле = 1.
type DifficultyModifiers struct {
	TokenDrop       float64
	CrystalChance   float64
	LootValue       float64
	LootLifetime    float64
	MagnetRange     float64
	CollectRange    float64
	AutoMagnetDelay float64
}

func (m DifficultyModifiers) normalized() DifficultyModifiers {
	one := func(v float64) float64 {
		if v <= 0 || math.IsNaN(v) {
			return 1
		}
		return v
	}
	return DifficultyModifiers{
		TokenDrop:       one(m.TokenDrop),
		CrystalChance:   one(m.CrystalChance),
		LootValue:       one(m.LootValue),
		LootLifetime:    one(m.LootLifetime),
		MagnetRange:     one(m.MagnetRange),
		CollectRange:    one(m.CollectRange),
		AutoMagnetDelay: one(m.AutoMagnetDelay),
	}
}

// Нижние границы эффективных значений после модификаторов.
const (
	minLootLifetime     = 1.0
	minMagnetDistance   = 20.0
	minCollectDistance  = 6.0
	minAutoMagnetDelay  = 0.25
	minLootValue        = 1
	lootArenaFloorInset = 4.0
)

// LootSystem порождает лут, двигает его и выдаёт награду при подборе.
// Это единственный путь подбора лута в игре.
type LootSystem struct {
	state *entity.State
	bus   *event.Bus
	prng  *utils.PRNGService
	log   *logging.Logger

	base defs.LootBalance // неизменная база
	cfg  defs.LootBalance // эффективные значения
	mods DifficultyModifiers

	changed     bool
	changeTimer float64
}

func NewLootSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService) *LootSystem {
	base := state.Library().Balance.Loot
	base.CrystalWaveTiers = append([]int(nil), base.CrystalWaveTiers...)
	s := &LootSystem{
		state: state,
		bus:   bus,
		prng:  prng,
		log:   logging.For("loot"),
		base:  base,
	}
	s.SetDifficultyModifiers(DifficultyModifiers{})
	return s
}

// Config returns the effective loot constants.
func (s *LootSystem) Config() defs.LootBalance { return s.cfg }

// SetDifficultyModifiers пересчитывает константы от кэшированной базы,
// поэтому повторные вызовы не накапливаются.
func (s *LootSystem) SetDifficultyModifiers(m DifficultyModifiers) {
	m = m.normalized()
	s.mods = m
	c := s.base

	c.TokenMin = max(0, int(math.Round(float64(s.base.TokenMin)*m.TokenDrop)))
	c.TokenMax = max(c.TokenMin, int(math.Round(float64(s.base.TokenMax)*m.TokenDrop)))
	c.TokenWaveBonus = s.base.TokenWaveBonus * m.TokenDrop
	c.TokenComboBonus = s.base.TokenComboBonus * m.TokenDrop
	c.CrystalBaseChance = geom.Clamp(s.base.CrystalBaseChance*m.CrystalChance, 0, s.base.CrystalMaxChance)
	c.Lifetime = math.Max(minLootLifetime, s.base.Lifetime*m.LootLifetime)
	c.MagnetDistance = math.Max(minMagnetDistance, s.base.MagnetDistance*m.MagnetRange)
	c.CollectDistance = math.Max(minCollectDistance, s.base.CollectDistance*m.CollectRange)
	c.AutoMagnetDelay = math.Max(minAutoMagnetDelay, s.base.AutoMagnetDelay*m.AutoMagnetDelay)
	s.cfg = c
}

// TokenAmount — число жетонов за гибель дракона. Никогда не меньше нуля.
func (s *LootSystem) TokenAmount(wave, combo int) int {
	if wave < 1 {
		wave = 1
	}
	if combo < 0 {
		combo = 0
	}
	amount := float64(s.prng.IntRange(s.cfg.TokenMin, s.cfg.TokenMax)) +
		float64(wave-1)*s.cfg.TokenWaveBonus +
		float64(combo)*s.cfg.TokenComboBonus
	return max(0, int(math.Round(amount)))
}

// CrystalChance — шанс бонусного кристалла, не выше потолка.
func (s *LootSystem) CrystalChance(wave, combo int) float64 {
	chance := s.cfg.CrystalBaseChance + float64(wave)*s.cfg.CrystalWaveRate
	if combo >= s.cfg.CrystalComboThreshold {
		chance += s.cfg.CrystalComboBonus
	}
	return geom.Clamp(chance, 0, s.cfg.CrystalMaxChance)
}

// CrystalQuantity растёт ступенями по волне и комбо.
func (s *LootSystem) CrystalQuantity(wave, combo int) int {
	qty := 1
	for _, tier := range s.cfg.CrystalWaveTiers {
		if wave >= tier {
			qty++
		}
	}
	if s.cfg.CrystalComboTier > 0 && combo >= s.cfg.CrystalComboTier {
		qty++
	}
	return qty
}

// HandleDragonDeath выдаёт жетоны и, с некоторым шансом, кристаллы.
// dragon может быть nil; тогда позиция берётся из контекста.
func (s *LootSystem) HandleDragonDeath(dragon *component.Dragon, ctx DeathContext) []types.EntityID {
	x, y := ctx.X, ctx.Y
	if head := dragon.Head(); head != nil {
		x, y = head.X, head.Y
	}

	var spawned []types.EntityID
	if tokens := s.TokenAmount(ctx.Wave, ctx.Combo); tokens > 0 {
		spawned = append(spawned, s.SpawnLoot(defs.LootToken, tokens, x, y).ID)
	}
	if s.prng.Chance(s.CrystalChance(ctx.Wave, ctx.Combo)) {
		spawned = append(spawned, s.SpawnLoot(defs.LootCrystal, s.CrystalQuantity(ctx.Wave, ctx.Combo), x, y).ID)
	}
	return spawned
}

// RollSegmentDrop бросает шанс выпадения с сегмента и выбирает предмет
// из таблицы волны.
func (s *LootSystem) RollSegmentDrop(wave int, chance, x, y float64) *component.Loot {
	if !s.prng.Chance(chance) {
		return nil
	}
	table, ok := defs.TableForWave(s.cfg.SegmentDrops, wave)
	if !ok {
		return nil
	}
	entry, ok := s.prng.ChooseWeighted(table.Entries)
	if !ok {
		return nil
	}
	return s.SpawnLoot(entry.Type, entry.Value, x, y)
}

// SpawnLoot кладёт предмет в мир с начальным подбросом.
func (s *LootSystem) SpawnLoot(t defs.LootType, value int, x, y float64) *component.Loot {
	value = max(minLootValue, int(math.Round(float64(value)*s.mods.LootValue)))
	angle := s.prng.Range(-math.Pi, 0) // вверх по экрану
	speed := s.prng.Range(s.cfg.TossSpeed*0.5, s.cfg.TossSpeed)
	v := geom.FromAngle(angle).Scale(speed)

	l := &component.Loot{
		Position: component.Position{X: x, Y: y},
		Velocity: component.Velocity{VX: v.X, VY: v.Y},
		Type:     t,
		Value:    value,
		Lifetime: s.cfg.Lifetime,
	}
	s.state.AddLoot(l)
	s.changed = true
	s.emit(event.LootSpawned, event.LootData{LootID: l.ID, Type: t, Value: value, X: x, Y: y})
	return l
}

// Update старит лут, собирает близкий, удаляет просроченный, остальной
// либо падает, либо летит к игроку.
func (s *LootSystem) Update(deltaTime float64, player *component.Player) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	for _, l := range s.state.LiveLoot() {
		l.Age += deltaTime

		if player != nil {
			dist := l.Vec().DistTo(player.Vec())
			if dist <= s.cfg.CollectDistance {
				s.collect(l)
				continue
			}
			if l.Age >= l.Lifetime {
				s.expire(l)
				continue
			}
			if !l.Magnetized && (dist <= s.cfg.MagnetDistance || l.Age >= s.cfg.AutoMagnetDelay) {
				l.Magnetized = true
			}
			if l.Magnetized {
				s.seek(l, player, deltaTime)
				continue
			}
		} else if l.Age >= l.Lifetime {
			s.expire(l)
			continue
		}
		s.fall(l, deltaTime)
	}

	s.changeTimer += deltaTime
	if s.changed && s.changeTimer >= s.cfg.ChangeInterval {
		s.changed = false
		s.changeTimer = 0
		s.emit(event.LootChanged, len(s.state.LiveLoot()))
	}
}

func (s *LootSystem) seek(l *component.Loot, player *component.Player, dt float64) {
	target := player.Vec()
	dir := target.Sub(l.Vec()).Norm()
	l.VX, l.VY = dir.X*s.cfg.MagnetSpeed, dir.Y*s.cfg.MagnetSpeed
	l.SetVec(geom.MoveToward(l.Vec(), target, s.cfg.MagnetSpeed*dt))
}

func (s *LootSystem) fall(l *component.Loot, dt float64) {
	l.VY += s.cfg.Gravity * dt
	damp := math.Max(0, 1-s.cfg.Drag*dt)
	l.VX *= damp
	l.VY *= damp
	component.Step(&l.Position, l.Velocity, dt)

	floor := float64(config.ArenaHeight) - lootArenaFloorInset
	if l.Y > floor {
		l.Y = floor
		l.VY = 0
	}
	l.X = geom.Clamp(l.X, 0, config.ArenaWidth)
}

func (s *LootSystem) collect(l *component.Loot) {
	if !s.state.RemoveLoot(l.ID) {
		return
	}
	s.changed = true
	s.state.LiveStatistics().LootCollected++
	data := event.LootData{LootID: l.ID, Type: l.Type, Value: l.Value, X: l.X, Y: l.Y}

	switch l.Type {
	case defs.LootToken:
		s.state.AddResource(defs.ResourceTokens, l.Value)
		s.emit(event.CurrencyCollected, data)
	case defs.LootAbilityUpgrade:
		s.emit(event.AbilityUpgradeCollected, data)
	case defs.LootRewardBonus:
		s.state.AddScore(l.Value)
		s.emit(event.RewardBonusCollected, data)
	default:
		if res, ok := lootResource(l.Type); ok {
			s.state.AddResource(res, l.Value)
		} else {
			s.log.Warnf("collected loot of unknown type %q", l.Type)
		}
		s.emit(event.LootCollected, data)
	}
}

func lootResource(t defs.LootType) (string, bool) {
	switch t {
	case defs.LootCrystal:
		return defs.ResourceCrystals, true
	case defs.LootMana:
		return defs.ResourceMana, true
	case defs.LootHealth:
		return defs.ResourceHealth, true
	}
	return "", false
}

func (s *LootSystem) expire(l *component.Loot) {
	if s.state.RemoveLoot(l.ID) {
		s.changed = true
		s.emit(event.LootExpired, event.LootData{LootID: l.ID, Type: l.Type, Value: l.Value, X: l.X, Y: l.Y})
	}
}

func (s *LootSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
