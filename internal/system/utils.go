// internal/system/utils.go
package system

import (
	"math"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/config"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/utils"
	"dragon-hunter/pkg/geom"
)

// DamagePlayer наносит урон игроку с учётом неуязвимости и щита.
// iframes > 0 включает короткую неуязвимость после попадания.
// Возвращает урон, дошедший до здоровья.
func DamagePlayer(state *entity.State, bus *event.Bus, amount float64, source string, iframes float64) float64 {
	p := state.LivePlayer()
	if p == nil || amount <= 0 || math.IsNaN(amount) || !state.Running() {
		return 0
	}
	if p.InvulnerableTimer > 0 {
		return 0
	}
	rest := p.Shield.Absorbs(amount)
	if rest > 0 {
		p.Health -= rest
		state.RecordDamage(rest, false)
	}
	if iframes > 0 {
		p.InvulnerableTimer = iframes
	}
	if bus != nil {
		bus.Emit(event.PlayerDamaged, event.DamageData{
			TargetID: p.ID, Amount: rest, Source: source, X: p.X, Y: p.Y, Effectiveness: 1,
		})
	}
	return rest
}

// EffectiveDamage — урон одного выстрела: база × апгрейды × активные баффы.
func EffectiveDamage(p *component.Player, b *defs.Balance) float64 {
	if p == nil {
		return 0
	}
	dmg := p.BaseDamage
	if u, ok := b.Upgrades[defs.UpgradeDamage]; ok {
		dmg *= math.Pow(u.Step, float64(p.Upgrades[defs.UpgradeDamage]))
	}
	return dmg * p.ModifierProduct(component.ModDamage)
}

// EffectiveFireRate — выстрелов в секунду с апгрейдами и баффами.
func EffectiveFireRate(p *component.Player, b *defs.Balance) float64 {
	if p == nil {
		return 0
	}
	rate := b.Player.FireRate
	if u, ok := b.Upgrades[defs.UpgradeFireRate]; ok {
		rate *= math.Pow(u.Step, float64(p.Upgrades[defs.UpgradeFireRate]))
	}
	return rate * p.ModifierProduct(component.ModFireRate)
}

// ClampToArena keeps a circle of radius r inside the arena.
func ClampToArena(pos *component.Position, r float64) {
	pos.X = geom.Clamp(pos.X, r, config.ArenaWidth-r)
	pos.Y = geom.Clamp(pos.Y, r, config.ArenaHeight-r)
}

// InArena reports whether a point lies inside the arena grown by margin.
func InArena(x, y, margin float64) bool {
	return x >= -margin && x <= config.ArenaWidth+margin && y >= -margin && y <= config.ArenaHeight+margin
}

// SpawnBurst adds n particles flying out of (x, y).
func SpawnBurst(state *entity.State, prng *utils.PRNGService, x, y float64, n int, speed float64, c component.Particle) {
	for i := 0; i < n; i++ {
		dir := geom.FromAngle(prng.Range(0, 2*math.Pi)).Scale(prng.Range(speed*0.3, speed))
		p := c
		p.X, p.Y = x, y
		p.VX, p.VY = dir.X, dir.Y
		p.Life = prng.Range(c.MaxLife*0.5, c.MaxLife)
		state.AddParticle(p)
	}
}
