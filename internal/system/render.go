// internal/system/render.go
package system

import (
	"image/color"
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/interfaces"
)

var (
	flashColor  = color.RGBA{255, 255, 255, 255}
	frozenColor = color.RGBA{150, 220, 255, 255}
	armorColor  = color.RGBA{160, 120, 70, 255}
	simpleColor = color.RGBA{200, 120, 60, 255}
)

// RenderSystem рисует мир через Canvas. Состояние не меняет.
type RenderSystem struct {
	state  *entity.State
	skills *BossSkillSystem
}

func NewRenderSystem(state *entity.State, skills *BossSkillSystem) *RenderSystem {
	return &RenderSystem{state: state, skills: skills}
}

// Draw рисует кадр снизу вверх: лут, босс, враги, пули, игрок, эффекты.
func (s *RenderSystem) Draw(c interfaces.Canvas) {
	if c == nil {
		return
	}
	c.Clear(config.BackgroundColor)
	c.StrokeLine(0, config.ArenaHeight, config.ArenaWidth, config.ArenaHeight, 2, config.ArenaBorderColor)

	for _, l := range s.state.LiveLoot() {
		col, ok := config.LootColors[string(l.Type)]
		if !ok {
			col = config.TextLightColor
		}
		c.FillCircle(l.X, l.Y, 6, col)
	}

	if boss := s.state.LiveBoss(); boss.Alive() {
		s.drawSkills(c, boss)
		s.drawBoss(c, boss)
	}

	for _, d := range s.state.LiveDragons() {
		c.FillCircle(d.X, d.Y, d.Size, simpleColor)
		if d.Effects.Frozen {
			c.StrokeCircle(d.X, d.Y, d.Size+2, 2, frozenColor)
		}
	}

	for _, b := range s.state.LiveBullets() {
		c.FillCircle(b.X, b.Y, b.Radius, config.BulletColor)
	}

	s.drawPlayer(c)

	for _, p := range s.state.LiveParticles() {
		col := p.Color
		if p.MaxLife > 0 {
			col.A = uint8(255 * math.Max(0, math.Min(1, p.Life/p.MaxLife)))
		}
		c.FillCircle(p.X, p.Y, p.Size, col)
	}
	for _, n := range s.state.LiveDamageNumbers() {
		c.Text(n.Text, n.X, n.Y, n.Color)
	}
}

func (s *RenderSystem) drawBoss(c interfaces.Canvas, d *component.Dragon) {
	el := s.state.Library().Elements.GetElement(d.Element)
	// с хвоста к голове, чтобы голова была сверху
	for i := len(d.Segments) - 1; i >= 0; i-- {
		seg := d.Segments[i]
		col := el.Colors.Primary
		if i == 0 {
			col = el.Colors.Secondary
		}
		if seg.Flash.Active() {
			col = flashColor
		}
		if d.Effects.Phased {
			col.A = 90
		}
		c.FillCircle(seg.X, seg.Y, seg.Radius, col)
		if d.Effects.Frozen {
			c.StrokeCircle(seg.X, seg.Y, seg.Radius+2, 2, frozenColor)
		} else if d.Effects.Armor > 0 {
			c.StrokeCircle(seg.X, seg.Y, seg.Radius+2, 1+4*d.Effects.Armor, armorColor)
		}
	}
}

func (s *RenderSystem) drawSkills(c interfaces.Canvas, d *component.Dragon) {
	head := d.Head()
	cfg := s.state.Library().Balance.Skills
	if s.skills != nil && (d.Laser.Telegraphing || d.Laser.Active) {
		from, to := s.skills.LaserEnds(d)
		if d.Laser.Telegraphing {
			c.StrokeLine(from.X, from.Y, to.X, to.Y, 2, config.LaserTelegraph)
		} else {
			c.StrokeLine(from.X, from.Y, to.X, to.Y, cfg.Laser.Width, config.LaserColor)
		}
	}
	if d.Charge.Telegraphing {
		t := d.Charge.Target
		c.StrokeLine(head.X, head.Y, t.X, t.Y, 3, config.ChargeTelegraph)
		c.StrokeCircle(t.X, t.Y, cfg.Charge.ShockwaveRadius, 2, config.ChargeTelegraph)
	}
}

func (s *RenderSystem) drawPlayer(c interfaces.Canvas) {
	p := s.state.LivePlayer()
	if p == nil {
		return
	}
	// мигание во время неуязвимости
	if p.InvulnerableTimer > 0 && math.Mod(s.state.GameTime*10, 2) < 1 {
		return
	}
	c.FillCircle(p.X, p.Y, p.Radius, config.PlayerColor)
	if p.Shield.Active() {
		c.FillCircle(p.X, p.Y, p.Radius+6, config.ShieldColor)
	}
	if p.Effects.Frozen {
		c.StrokeCircle(p.X, p.Y, p.Radius+2, 2, frozenColor)
	}
}
