// internal/system/boss.go
package system

import (
	"math"

	"github.com/aquilax/go-perlin"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/utils"
	"dragon-hunter/pkg/geom"
)

// Параметры шума для покачивания головы.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseN     = 3
)

// BossSystem ведёт голову к игроку, подтягивает хвост, выращивает новые
// сегменты и применяет особое умение стихии.
type BossSystem struct {
	state   *entity.State
	bus     *event.Bus
	prng    *utils.PRNGService
	effects *ElementEffectSystem
	waves   *WaveSystem
	loot    *LootSystem
	noise   *perlin.Perlin
	log     *logging.Logger
}

func NewBossSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService,
	effects *ElementEffectSystem, waves *WaveSystem, loot *LootSystem) *BossSystem {
	return &BossSystem{
		state:   state,
		bus:     bus,
		prng:    prng,
		effects: effects,
		waves:   waves,
		loot:    loot,
		noise:   perlin.NewPerlin(noiseAlpha, noiseBeta, noiseN, prng.Seed()),
		log:     logging.For("boss"),
	}
}

// Update двигает живого босса и ведёт его таймеры. Звенья, убитые
// эффектами после боя, убираются до движения и роста.
func (s *BossSystem) Update(deltaTime float64) {
	s.ReapDeadSegments()
	d := s.state.LiveBoss()
	if !d.Alive() {
		return
	}
	d.Age += deltaTime
	if d.ContactCooldown > 0 {
		d.ContactCooldown -= deltaTime
	}
	for _, seg := range d.Segments {
		if seg.AttackCooldown > 0 {
			seg.AttackCooldown -= deltaTime
		}
		if seg.Flash.Duration > 0 {
			seg.Flash.Timer += deltaTime
		}
	}

	s.steerHead(d, deltaTime)
	s.followChain(d)
	s.updateSpecial(d, deltaTime)
	s.updateGrowth(d, deltaTime)
}

// Wobble — отклонение курса головы в радианах.
func (s *BossSystem) Wobble(d *component.Dragon) float64 {
	b := s.state.Library().Balance.Dragon
	return s.noise.Noise1D(d.Age*b.WobbleFrequency+d.WobbleSeed) * b.WobbleAmplitude
}

func (s *BossSystem) steerHead(d *component.Dragon, dt float64) {
	if d.Charge.Busy() {
		return // рывком голову двигает BossSkillSystem
	}
	head := d.Head()
	p := s.state.LivePlayer()
	if head == nil || p == nil {
		return
	}
	to := p.Vec()
	if head.Vec().DistTo(to) < head.Radius {
		return
	}
	angle := geom.Angle(head.Vec(), to) + s.Wobble(d)
	head.SetVec(head.Vec().Add(geom.FromAngle(angle).Scale(d.Speed * dt)))
	ClampToArena(&head.Position, head.Radius)
}

// followChain тянет каждое звено к предыдущему, если оно отстало больше
// чем на SegmentSpacing.
func (s *BossSystem) followChain(d *component.Dragon) {
	b := s.state.Library().Balance.Dragon
	for i := 1; i < len(d.Segments); i++ {
		prev, seg := d.Segments[i-1], d.Segments[i]
		dist := seg.Vec().DistTo(prev.Vec())
		if dist <= b.SegmentSpacing || dist == 0 {
			continue
		}
		excess := (dist - b.SegmentSpacing) * b.FollowStiffness
		seg.SetVec(geom.MoveToward(seg.Vec(), prev.Vec(), excess))
	}
}

func (s *BossSystem) updateSpecial(d *component.Dragon, dt float64) {
	b := s.state.Library().Balance.Dragon
	d.SpecialTimer -= dt
	if d.SpecialTimer > 0 {
		return
	}
	d.SpecialTimer = b.SpecialInterval
	s.UseSpecial(d)
}

// UseSpecial применяет особое умение стихии босса. Фаза и броня действуют
// на самого дракона, остальное бьёт игрока в радиусе SpecialRange.
func (s *BossSystem) UseSpecial(d *component.Dragon) bool {
	head := d.Head()
	if head == nil {
		return false
	}
	ability := s.state.Library().Elements.GetElement(d.Element).SpecialAbility
	switch ability {
	case defs.AbilityNone:
		return false
	case defs.AbilityPhase, defs.AbilityArmor:
		s.effects.ApplyElementEffect(head, d.Element, 1, "dragon")
	default:
		p := s.state.LivePlayer()
		if p == nil || !p.Alive() || head.Vec().DistTo(p.Vec()) > s.state.Library().Balance.Dragon.SpecialRange {
			return false
		}
		s.effects.ApplyElementEffect(p, d.Element, 1, "dragon")
	}
	s.emit(event.SoundCue, event.SoundData{Name: "dragon_" + string(ability)})
	return true
}

func (s *BossSystem) updateGrowth(d *component.Dragon, dt float64) {
	b := s.state.Library().Balance.Dragon
	d.GrowthTimer -= dt
	if d.GrowthTimer > 0 {
		return
	}
	s.Grow(d)
	d.GrowthTimer = GrowthInterval(b, len(d.Segments))
}

// Grow добавляет звено в хвост. Возвращает nil, если достигнут предел.
func (s *BossSystem) Grow(d *component.Dragon) *component.Segment {
	b := s.state.Library().Balance.Dragon
	if !d.Alive() || len(d.Segments) >= b.MaxSegments {
		return nil
	}
	tail := d.Segments[len(d.Segments)-1]
	seg := NewSegment(s.state, d, len(d.Segments), d.Wave)
	seg.X, seg.Y = tail.X, tail.Y-b.SegmentSpacing*0.5
	d.Attach(seg)
	s.emit(event.SegmentAdded, event.SegmentData{
		DragonID: d.SpawnID, SegmentID: seg.ID, Index: seg.Index,
		Remaining: len(d.Segments), X: seg.X, Y: seg.Y,
	})
	return seg
}

// SegmentScore — очки за уничтожение звена; хвост дороже головы.
func SegmentScore(b defs.DragonBalance, seg *component.Segment) int {
	return int(math.Round(b.ScoreFactor * float64(seg.Index+1) * seg.MaxHealth))
}

// ReapDeadSegments убирает звенья с нулевым здоровьем: очки, убийство,
// шанс лута. Если звеньев не осталось, волна закрывается.
// Возвращает число убранных звеньев.
func (s *BossSystem) ReapDeadSegments() int {
	d := s.state.LiveBoss()
	if d == nil || len(d.Segments) == 0 {
		return 0
	}
	b := s.state.Library().Balance.Dragon

	alive := d.Segments[:0:0]
	var dead []*component.Segment
	for _, seg := range d.Segments {
		if seg.Health > 0 {
			alive = append(alive, seg)
			continue
		}
		dead = append(dead, seg)
	}
	if len(dead) == 0 {
		return 0
	}

	var lastX, lastY float64
	for _, seg := range dead {
		score := SegmentScore(b, seg)
		s.state.AddScore(score)
		s.state.RecordKill(d.Element)
		s.state.LiveStatistics().SegmentsDestroyed++
		s.effects.RemoveEffectsFor(seg.ID)
		s.loot.RollSegmentDrop(s.state.Wave, b.SegmentLootChance, seg.X, seg.Y)
		lastX, lastY = seg.X, seg.Y
		s.emit(event.SegmentDestroyed, event.SegmentData{
			DragonID: d.SpawnID, SegmentID: seg.ID, Index: seg.Index, Score: score,
			Remaining: len(alive), X: seg.X, Y: seg.Y,
		})
	}

	d.Segments = alive
	d.Reindex()
	if len(d.Segments) == 0 {
		s.waves.Defeat(d, lastX, lastY)
	}
	return len(dead)
}

func (s *BossSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
