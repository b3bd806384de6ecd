// internal/system/boss_skill.go
package system

import (
	"dragon-hunter/internal/component"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
	"dragon-hunter/internal/utils"
	"dragon-hunter/pkg/geom"
)

const (
	SkillLaser  = "laser"
	SkillCharge = "charge"
)

// telegraphTracking — скорость доводки прицела лазера, доля за секунду.
const telegraphTracking = 8.0

// BossSkillSystem — ИИ умений босса: лазерный взмах и рывок.
// Каждое умение проходит стадии телеграф → действие → перезарядка.
type BossSkillSystem struct {
	state *entity.State
	bus   *event.Bus
	prng  *utils.PRNGService
	log   *logging.Logger
}

func NewBossSkillSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService) *BossSkillSystem {
	return &BossSkillSystem{state: state, bus: bus, prng: prng, log: logging.For("boss_skill")}
}

// Update: таймеры, проверка ИИ, затем продвижение активных умений.
// Мёртвая голова умения не ведёт: звено ждёт уборки.
func (s *BossSkillSystem) Update(deltaTime float64) {
	d := s.state.LiveBoss()
	if !d.Alive() || !d.Head().Alive() {
		return
	}
	d.Laser.Cooldown = utils.Approach(d.Laser.Cooldown, deltaTime)
	d.Laser.ImmunityTimer = utils.Approach(d.Laser.ImmunityTimer, deltaTime)
	d.Charge.Cooldown = utils.Approach(d.Charge.Cooldown, deltaTime)
	d.Charge.ImmunityTimer = utils.Approach(d.Charge.ImmunityTimer, deltaTime)

	d.AICheckTimer -= deltaTime
	if d.AICheckTimer <= 0 {
		d.AICheckTimer = s.state.Library().Balance.Skills.AICheckInterval
		s.Think(d)
	}

	s.updateLaser(d, deltaTime)
	s.updateCharge(d, deltaTime)
}

// Think бросает шансы лазера и рывка независимо. Каждое умение ждёт
// только свою перезарядку и свой уже идущий экземпляр.
// Возвращает начатые умения.
func (s *BossSkillSystem) Think(d *component.Dragon) []string {
	cfg := s.state.Library().Balance.Skills
	head := d.Head()
	p := s.state.LivePlayer()
	if head == nil || !head.Alive() || p == nil {
		return nil
	}
	if head.Vec().DistTo(p.Vec()) > cfg.TriggerDistance {
		return nil
	}
	var started []string
	if !d.Laser.Busy() && d.Laser.Cooldown <= 0 && s.prng.Chance(s.TriggerChance(d, cfg.Laser.Chance)) {
		s.StartLaser(d)
		started = append(started, SkillLaser)
	}
	if !d.Charge.Busy() && d.Charge.Cooldown <= 0 && s.prng.Chance(s.TriggerChance(d, cfg.Charge.Chance)) {
		s.StartCharge(d)
		started = append(started, SkillCharge)
	}
	return started
}

// TriggerChance — шанс умения с учётом здоровья головы.
func (s *BossSkillSystem) TriggerChance(d *component.Dragon, base float64) float64 {
	cfg := s.state.Library().Balance.Skills
	if d.HeadHealthRatio() < cfg.LowHealthThreshold {
		return base * cfg.LowHealthBoost
	}
	return base
}

// StartLaser начинает телеграф лазера.
func (s *BossSkillSystem) StartLaser(d *component.Dragon) {
	cfg := s.state.Library().Balance.Skills.Laser
	d.Laser.Telegraphing = true
	d.Laser.TelegraphLeft = cfg.Telegraph
	d.Laser.Direction = 1
	if s.prng.Chance(0.5) {
		d.Laser.Direction = -1
	}
	d.Laser.CurrentAngle = s.aimAngle(d)
	s.emitSkill(event.BossSkillTelegraph, d, SkillLaser, d.Laser.CurrentAngle)
}

// StartCharge запоминает позицию игрока и начинает телеграф рывка.
func (s *BossSkillSystem) StartCharge(d *component.Dragon) {
	cfg := s.state.Library().Balance.Skills.Charge
	d.Charge.Telegraphing = true
	d.Charge.TelegraphLeft = cfg.Telegraph
	if p := s.state.LivePlayer(); p != nil {
		d.Charge.Target = p.Vec()
	}
	s.emitSkill(event.BossSkillTelegraph, d, SkillCharge, s.aimAngle(d))
}

func (s *BossSkillSystem) aimAngle(d *component.Dragon) float64 {
	head := d.Head()
	p := s.state.LivePlayer()
	if head == nil || p == nil {
		return 0
	}
	return geom.Angle(head.Vec(), p.Vec())
}

// LaserEnds returns the start and end points of the beam.
func (s *BossSkillSystem) LaserEnds(d *component.Dragon) (geom.Vec2, geom.Vec2) {
	head := d.Head()
	if head == nil {
		return geom.Vec2{}, geom.Vec2{}
	}
	length := s.state.Library().Balance.Skills.Laser.Length
	from := head.Vec()
	return from, from.Add(geom.FromAngle(d.Laser.CurrentAngle).Scale(length))
}

func (s *BossSkillSystem) updateLaser(d *component.Dragon, dt float64) {
	cfg := s.state.Library().Balance.Skills.Laser
	l := &d.Laser

	if l.Telegraphing {
		// прицел догоняет игрока плавно, телеграф не дёргается
		l.CurrentAngle = utils.LerpAngle(l.CurrentAngle, s.aimAngle(d), utils.Clamp01(telegraphTracking*dt))
		l.TelegraphLeft -= dt
		if l.TelegraphLeft > 0 {
			return
		}
		l.Telegraphing = false
		l.Active = true
		l.ElapsedTime = 0
		l.StartAngle = s.aimAngle(d) - l.Direction*cfg.Arc/2
		l.CurrentAngle = l.StartAngle
		s.emitSkill(event.BossSkillStarted, d, SkillLaser, l.CurrentAngle)
		s.emit(event.SoundCue, event.SoundData{Name: "laser"})
	}
	if !l.Active {
		return
	}

	l.ElapsedTime += dt
	progress := utils.Clamp01(l.ElapsedTime / cfg.Duration)
	l.CurrentAngle = utils.Lerp(l.StartAngle, l.StartAngle+l.Direction*cfg.Arc, progress)

	if p := s.state.LivePlayer(); p != nil && l.ImmunityTimer <= 0 {
		from, to := s.LaserEnds(d)
		if geom.PointSegmentDistance(p.Vec(), from, to) <= cfg.Width/2+p.Radius {
			DamagePlayer(s.state, s.bus, cfg.Damage, SkillLaser, 0)
			l.ImmunityTimer = cfg.Immunity
		}
	}

	if l.ElapsedTime >= cfg.Duration {
		l.Active = false
		l.Cooldown = cfg.Cooldown
		s.emitSkill(event.BossSkillEnded, d, SkillLaser, l.CurrentAngle)
	}
}

func (s *BossSkillSystem) updateCharge(d *component.Dragon, dt float64) {
	cfg := s.state.Library().Balance.Skills.Charge
	c := &d.Charge
	head := d.Head()
	if head == nil {
		return
	}

	if c.Telegraphing {
		c.TelegraphLeft -= dt
		if c.TelegraphLeft > 0 {
			return
		}
		c.Telegraphing = false
		c.Charging = true
		c.ElapsedTime = 0
		s.emitSkill(event.BossSkillStarted, d, SkillCharge, geom.Angle(head.Vec(), c.Target))
		s.emit(event.SoundCue, event.SoundData{Name: "charge"})
	}
	if !c.Charging {
		return
	}

	c.ElapsedTime += dt
	head.SetVec(geom.MoveToward(head.Vec(), c.Target, d.Speed*cfg.SpeedMultiplier*dt))
	ClampToArena(&head.Position, head.Radius)

	if p := s.state.LivePlayer(); p != nil && c.ImmunityTimer <= 0 {
		if head.Vec().DistTo(p.Vec()) <= head.Radius+p.Radius {
			DamagePlayer(s.state, s.bus, cfg.Damage, SkillCharge, 0)
			s.knockback(head.Vec(), p, cfg.Knockback)
			c.ImmunityTimer = cfg.Immunity
		}
	}

	if head.Vec().DistTo(c.Target) <= cfg.ArriveDistance || c.ElapsedTime >= cfg.MaxDuration {
		c.Charging = false
		c.Cooldown = cfg.Cooldown
		s.shockwave(head)
		s.emitSkill(event.BossSkillEnded, d, SkillCharge, 0)
	}
}

func (s *BossSkillSystem) knockback(from geom.Vec2, p *component.Player, force float64) {
	dir := p.Vec().Sub(from).Norm()
	if dir.Len() == 0 {
		dir = geom.V(0, 1)
	}
	p.SetVec(p.Vec().Add(dir.Scale(force)))
	ClampToArena(&p.Position, p.Radius)
}

func (s *BossSkillSystem) shockwave(head *component.Segment) {
	cfg := s.state.Library().Balance.Skills.Charge
	s.emit(event.SoundCue, event.SoundData{Name: "shockwave"})
	p := s.state.LivePlayer()
	if p == nil || cfg.ShockwaveRadius <= 0 {
		return
	}
	if head.Vec().DistTo(p.Vec()) <= cfg.ShockwaveRadius+p.Radius {
		DamagePlayer(s.state, s.bus, cfg.ShockwaveDamage, "shockwave", 0)
	}
}

func (s *BossSkillSystem) emitSkill(t event.EventType, d *component.Dragon, skill string, angle float64) {
	head := d.Head()
	data := event.SkillData{DragonID: d.SpawnID, Skill: skill, Angle: angle}
	if head != nil {
		data.X, data.Y = head.X, head.Y
	}
	s.emit(t, data)
}

func (s *BossSkillSystem) emit(t event.EventType, data interface{}) {
	if s.bus != nil {
		s.bus.Emit(t, data)
	}
}
