package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/component"
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
	"dragon-hunter/internal/types"
)

func TestDealElementalDamageFormula(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(100, 100, 100)
	d.Element = defs.ElementIce

	dealt := w.effects.DealElementalDamage(d, 10, defs.ElementFire, "test")
	assert.Equal(t, 20.0, dealt)
	assert.Equal(t, 80.0, d.Health)

	d.Effects.Armor = 0.25
	dealt = w.effects.DealElementalDamage(d, 10, defs.ElementFire, "test")
	assert.Equal(t, 15.0, dealt)
	assert.Equal(t, 1.5, w.effects.GetDamageMultiplier(defs.ElementFire, d))
}

func TestDamageMayDriveHealthNegative(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(100, 100, 5)
	w.effects.DealElementalDamage(d, 50, defs.ElementNormal, "test")
	assert.Equal(t, -45.0, d.Health)
}

func TestPlayerDamageEmitsPlayerDamaged(t *testing.T) {
	w := newWorld(t)
	hits := record(w.bus, event.PlayerDamaged)
	dealt := record(w.bus, event.DamageDealt)

	w.effects.DealElementalDamage(w.state.LivePlayer(), 10, defs.ElementNormal, "test")
	assert.Len(t, *hits, 1)
	assert.Empty(t, *dealt)
	assert.Equal(t, 10.0, w.state.Statistics().DamageTaken)
}

func TestFreezeStacksAndRestoresSpeedExactly(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	original := p.Speed

	w.effects.ApplyElementEffect(p, defs.ElementIce, 1, "test")
	assert.Equal(t, original*0.5, p.Speed)
	assert.True(t, p.Effects.Frozen)

	w.effects.ApplyElementEffect(p, defs.ElementIce, 1, "test")
	assert.Equal(t, original*0.25, p.Speed)
	assert.Equal(t, 2, w.effects.CountOn(p.ID, defs.AbilityFreeze))

	w.effects.UpdateActiveEffects(2.1)
	assert.Equal(t, original, p.Speed)
	assert.False(t, p.Effects.Frozen)
	assert.Zero(t, w.effects.CountOn(p.ID, defs.AbilityFreeze))
}

func TestStaggeredFreezeExpiry(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	original := p.Speed

	w.effects.ApplyElementEffect(p, defs.ElementIce, 1, "test")
	w.effects.UpdateActiveEffects(1)
	w.effects.ApplyElementEffect(p, defs.ElementIce, 1, "test")

	w.effects.UpdateActiveEffects(1.05) // первая истекла
	assert.InDelta(t, original*0.5, p.Speed, 1e-9)
	assert.True(t, p.Effects.Frozen)

	w.effects.UpdateActiveEffects(1)
	assert.Equal(t, original, p.Speed)
}

func TestBurnTicksUntilExpiry(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(100, 100, 100)
	expired := record(w.bus, event.StatusEffectExpired)

	w.effects.ApplyElementEffect(d, defs.ElementFire, 1, "test")
	assert.True(t, d.Effects.Burning)

	w.effects.UpdateActiveEffects(1.0)
	assert.InDelta(t, 92.0, d.Health, 1e-9)

	w.effects.UpdateActiveEffects(2.5)
	assert.InDelta(t, 76.0, d.Health, 1e-9)
	assert.False(t, d.Effects.Burning)
	assert.Len(t, *expired, 1)
	assert.Empty(t, w.effects.ActiveEffects())
}

func TestEffectsOnDeadTargetAreDropped(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(100, 100, 100)
	w.effects.ApplyElementEffect(d, defs.ElementPoison, 1, "test")
	require.Len(t, w.effects.ActiveEffects(), 1)

	d.Health = 0
	w.effects.UpdateActiveEffects(0.1)
	assert.Empty(t, w.effects.ActiveEffects())
}

func TestPhasedTargetSkipsDamageTicks(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(100, 100, 100)
	w.effects.ApplyElementEffect(d, defs.ElementFire, 1, "test")
	w.effects.ApplyElementEffect(d, defs.ElementDark, 1, "test")
	assert.True(t, d.Effects.Phased)

	w.effects.UpdateActiveEffects(1.0)
	assert.Equal(t, 100.0, d.Health)

	w.effects.UpdateActiveEffects(0.6) // фаза кончилась на 1.5
	assert.False(t, d.Effects.Phased)
}

func TestArmorStacksUpToCap(t *testing.T) {
	w := newWorld(t)
	d := w.spawnBoss(defs.ElementEarth, 2, 400, 400)
	for i := 0; i < 3; i++ {
		w.effects.ApplyElementEffect(d.Head(), defs.ElementEarth, 1, "test")
	}
	assert.InDelta(t, 0.3, d.Effects.Armor, 1e-9)
	assert.InDelta(t, 0.3, d.Segments[1].Status().Armor, 1e-9, "armor is shared by the body")

	for i := 0; i < 20; i++ {
		w.effects.ApplyElementEffect(d.Head(), defs.ElementEarth, 1, "test")
	}
	assert.InDelta(t, 0.8, d.Effects.Armor, 1e-9)
}

func TestChainLightningJumpsWithDecay(t *testing.T) {
	w := newWorld(t)
	a := w.simpleDragon(0, 0, 100)
	b := w.simpleDragon(100, 0, 100)
	c := w.simpleDragon(200, 0, 100)
	far := w.simpleDragon(800, 0, 100)
	w.effects.SetTargetSource(func(component.Target) []component.Target {
		return []component.Target{far, c, b, a}
	})
	chains := record(w.bus, event.ChainLightning)

	w.effects.ApplyElementEffect(a, defs.ElementLightning, 1, "test")

	assert.InDelta(t, 80.0, a.Health, 1e-9)
	assert.InDelta(t, 88.0, b.Health, 1e-9)
	assert.InDelta(t, 92.8, c.Health, 1e-9)
	assert.Equal(t, 100.0, far.Health)

	require.Len(t, *chains, 1)
	data := (*chains)[0].Data.(event.ChainData)
	assert.Equal(t, []types.EntityID{a.ID, b.ID, c.ID}, data.Targets)
}

func TestChainWithoutSourceHitsOnlyFirst(t *testing.T) {
	w := newWorld(t)
	a := w.simpleDragon(0, 0, 100)
	b := w.simpleDragon(50, 0, 100)

	w.effects.ApplyElementEffect(a, defs.ElementLightning, 1, "test")
	assert.InDelta(t, 80.0, a.Health, 1e-9)
	assert.Equal(t, 100.0, b.Health)
}

func TestNormalElementHasNoEffect(t *testing.T) {
	w := newWorld(t)
	d := w.simpleDragon(0, 0, 100)
	w.effects.ApplyElementEffect(d, defs.ElementNormal, 1, "test")
	w.effects.ApplyElementEffect(nil, defs.ElementFire, 1, "test")
	assert.Empty(t, w.effects.ActiveEffects())
}
