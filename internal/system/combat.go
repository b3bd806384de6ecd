package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/utils"
)

// Длительность вспышки звена после попадания.
const hitFlashDuration = 0.12

// CombatSystem разрешает попадания пуль и контактный урон.
type CombatSystem struct {
	state   *entity.State
	bus     *event.Bus
	prng    *utils.PRNGService
	effects *ElementEffectSystem
	boss    *BossSystem
	loot    *LootSystem
	log     *logging.Logger
}

func NewCombatSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService,
	effects *ElementEffectSystem, boss *BossSystem, loot *LootSystem) *CombatSystem {
	return &CombatSystem{
		state:   state,
		bus:     bus,
		prng:    prng,
		effects: effects,
		boss:    boss,
		loot:    loot,
		log:     logging.For("combat"),
	}
}

// Update runs all collision passes in frame order.
func (s *CombatSystem) Update(deltaTime float64) {
	s.BulletsVsBoss()
	s.BulletsVsDragons()
	s.ContactDamage(deltaTime)
}

// BulletsVsBoss проверяет пули против звеньев босса. Фазированный босс
// поглощает пулю без урона. Пробивающая пуля задевает каждое звено один раз.
func (s *CombatSystem) BulletsVsBoss() {
	d := s.state.LiveBoss()
	if !d.Alive() {
		return
	}
	chance := s.state.Library().Balance.Player.ElementChance

	for _, b := range s.state.LiveBullets() {
		for _, seg := range d.Segments {
			if !seg.Alive() || b.Hit[seg.ID] {
				continue
			}
			if b.Vec().DistTo(seg.Vec()) > b.Radius+seg.Radius {
				continue
			}
			b.MarkHit(seg.ID)

			if d.Phased() {
				s.emit(event.NoEffect, event.DamageData{TargetID: seg.ID, Element: b.Element, Source: "bullet", X: seg.X, Y: seg.Y})
				s.state.RemoveBullet(b.ID)
				break
			}

			s.effects.DealElementalDamage(seg, b.Damage, b.Element, "bullet")
			seg.Flash = component.DamageFlash{Duration: hitFlashDuration}
			if seg.Alive() && s.prng.Chance(chance) {
				s.effects.ApplyElementEffect(seg, b.Element, 1, "bullet")
			}

			if b.Penetration > 0 {
				b.Penetration--
				continue
			}
			s.state.RemoveBullet(b.ID)
			break
		}
	}
	s.boss.ReapDeadSegments()
}

// BulletsVsDragons — то же для простых драконов; убитые удаляются сразу.
func (s *CombatSystem) BulletsVsDragons() {
	chance := s.state.Library().Balance.Player.ElementChance
	for _, b := range s.state.LiveBullets() {
		for _, d := range s.state.LiveDragons() {
			if !d.Alive() || b.Hit[d.ID] {
				continue
			}
			if b.Vec().DistTo(d.Vec()) > b.Radius+d.Size {
				continue
			}
			b.MarkHit(d.ID)
			s.effects.DealElementalDamage(d, b.Damage, b.Element, "bullet")
			if d.Alive() && s.prng.Chance(chance) {
				s.effects.ApplyElementEffect(d, b.Element, 1, "bullet")
			}
			if b.Penetration > 0 {
				b.Penetration--
				continue
			}
			s.state.RemoveBullet(b.ID)
			break
		}
	}
	// цепная молния могла добить и тех, в кого пуля не попала
	for _, d := range s.state.LiveDragons() {
		if !d.Alive() {
			s.killDragon(d)
		}
	}
}

func (s *CombatSystem) killDragon(d *component.SimpleDragon) {
	if !s.state.RemoveDragon(d.ID) {
		return
	}
	b := s.state.Library().Balance.Dragon
	s.effects.RemoveEffectsFor(d.ID)
	s.state.AddScore(int(math.Round(b.ScoreFactor * d.MaxHealth)))
	s.state.RecordKill(d.Element)
	s.loot.RollSegmentDrop(s.state.Wave, b.SegmentLootChance, d.X, d.Y)
	s.emit(event.EnemyDestroyed, event.SegmentData{SegmentID: d.ID, X: d.X, Y: d.Y})
}

// ContactDamage бьёт игрока при касании звеньев и простых драконов.
// У каждого атакующего своя случайная перезарядка.
func (s *CombatSystem) ContactDamage(deltaTime float64) {
	p := s.state.LivePlayer()
	if p == nil || !p.Alive() {
		return
	}
	b := s.state.Library().Balance
	iframes := b.Player.HitInvulnerable

	if boss := s.state.LiveBoss(); boss.Alive() {
		for _, seg := range boss.Segments {
			if !seg.Alive() || seg.AttackCooldown > 0 || seg.Vec().DistTo(p.Vec()) > seg.Radius+p.Radius {
				continue
			}
			DamagePlayer(s.state, s.bus, seg.Damage, "contact", iframes)
			seg.AttackCooldown = s.prng.Range(b.Dragon.ContactCooldownMin, b.Dragon.ContactCooldownMax)
		}
	}

	for _, d := range s.state.LiveDragons() {
		if d.ContactCooldown > 0 {
			d.ContactCooldown -= deltaTime
			continue
		}
		if d.Vec().DistTo(p.Vec()) > d.Size+p.Radius {
			continue
		}
		DamagePlayer(s.state, s.bus, d.Damage, "contact", iframes)
		d.ContactCooldown = s.prng.Range(b.Dragon.ContactCooldownMin, b.Dragon.ContactCooldownMax)
	}
}

func (s *CombatSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
