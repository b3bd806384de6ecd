// internal/system/visual_effect.go
package system

import (
	"fmt"
	"image/color"
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/utils"
)

// Параметры всплесков частиц.
const (
	particleDrag      = 3.0
	segmentBurstCount = 10
	bossBurstCount    = 40
	burstSpeed        = 160.0
	burstLife         = 0.6
)

var (
	playerHitColor = color.RGBA{255, 80, 80, 255}
	healColor      = color.RGBA{120, 255, 140, 255}
	noEffectColor  = color.RGBA{170, 170, 200, 255}
)

// VisualEffectSystem управляет визуальными эффектами: цифры урона и частицы.
// Всё, что здесь создаётся, чисто декоративное.
type VisualEffectSystem struct {
	state *entity.State
	prng  *utils.PRNGService
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(state *entity.State, bus *event.Bus, prng *utils.PRNGService) *VisualEffectSystem {
	s := &VisualEffectSystem{state: state, prng: prng}
	for _, t := range []event.EventType{
		event.DamageDealt, event.NoEffect, event.PlayerDamaged, event.PlayerHealed,
		event.SegmentDestroyed, event.BossDefeated,
	} {
		bus.Subscribe(t, s)
	}
	return s
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *VisualEffectSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.DamageDealt:
		if d, ok := e.Data.(event.DamageData); ok {
			c := s.state.Library().Elements.GetElement(d.Element).Colors.Primary
			s.number(d.X, d.Y, fmt.Sprintf("%.0f", d.Amount), c)
		}
	case event.NoEffect:
		if d, ok := e.Data.(event.DamageData); ok {
			s.number(d.X, d.Y, config.NoEffectText, noEffectColor)
		}
	case event.PlayerDamaged:
		if d, ok := e.Data.(event.DamageData); ok && d.Amount > 0 {
			s.number(d.X, d.Y, fmt.Sprintf("-%.0f", d.Amount), playerHitColor)
		}
	case event.PlayerHealed:
		if d, ok := e.Data.(event.HealData); ok {
			if p := s.state.LivePlayer(); p != nil {
				s.number(p.X, p.Y, fmt.Sprintf("+%.0f", d.Amount), healColor)
			}
		}
	case event.SegmentDestroyed:
		if d, ok := e.Data.(event.SegmentData); ok {
			s.burst(d.X, d.Y, segmentBurstCount, s.bossColor())
		}
	case event.BossDefeated:
		if d, ok := e.Data.(event.BossDefeatedData); ok {
			c := s.state.Library().Elements.GetElement(d.Element).Colors.Glow
			s.burst(d.X, d.Y, bossBurstCount, c)
		}
	}
}

func (s *VisualEffectSystem) bossColor() color.RGBA {
	if boss := s.state.LiveBoss(); boss != nil {
		return s.state.Library().Elements.GetElement(boss.Element).Colors.Secondary
	}
	return config.TextLightColor
}

func (s *VisualEffectSystem) number(x, y float64, text string, c color.RGBA) {
	n := component.DamageNumber{Text: text, Life: config.DamageNumberLife, Color: c}
	n.X, n.Y = x+s.prng.Range(-8, 8), y
	s.state.AddDamageNumber(n)
}

func (s *VisualEffectSystem) burst(x, y float64, n int, c color.RGBA) {
	SpawnBurst(s.state, s.prng, x, y, n, burstSpeed, component.Particle{MaxLife: burstLife, Size: 3, Color: c})
}

// Update обновляет частицы и цифры, затем удаляет погасшие.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	damp := math.Max(0, 1-particleDrag*deltaTime)
	for _, p := range s.state.LiveParticles() {
		component.Step(&p.Position, p.Velocity, deltaTime)
		p.VX *= damp
		p.VY *= damp
		p.Life -= deltaTime
	}
	for _, n := range s.state.LiveDamageNumbers() {
		n.Y -= config.DamageNumberRise * deltaTime
		n.Life -= deltaTime
	}
	s.state.CleanupParticles()
	s.state.CleanupDamageNumbers()
}
