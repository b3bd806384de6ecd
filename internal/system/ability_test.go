package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/entity"
	"dragon-hunter/internal/event"
)

// flakyPool отказывает в списании одного ресурса, хотя баланс достаточный.
type flakyPool struct {
	balances map[string]int
	failOn   string
}

func (p *flakyPool) Balance(r string) int { return p.balances[r] }

func (p *flakyPool) SpendResource(r string, amount int) bool {
	if r == p.failOn || p.balances[r] < amount {
		return false
	}
	p.balances[r] -= amount
	return true
}

func (p *flakyPool) AddResource(r string, amount int) bool {
	p.balances[r] += amount
	return true
}

func newAbilityWorld(t *testing.T) (*AbilitySystem, *entity.State, *event.Bus) {
	t.Helper()
	lib := defs.DefaultLibrary()
	bus := event.NewBus()
	st := entity.NewState(lib, bus)
	st.Start()
	return NewAbilitySystem(lib, st, bus), st, bus
}

func TestActivationFailsWithoutPartialSpend(t *testing.T) {
	abilities, st, bus := newAbilityWorld(t)
	abilities.Register(defs.AbilityDefinition{
		ID: "meteor", Cooldown: 5, Effect: defs.EffectAoeDebuff,
		Cost: map[string]int{defs.ResourceCrystals: 12, defs.ResourceMana: 10},
	})
	st.LivePlayer().Crystals = 10
	failed := record(bus, event.AbilityFailed)
	cast := record(bus, event.AbilityCast)

	res := abilities.Activate("meteor", event.CastContext{Source: "test"})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonInsufficientResource, res.Reason)
	assert.Equal(t, defs.ResourceCrystals, res.Resource)
	assert.Equal(t, 10, st.Balance(defs.ResourceCrystals))
	assert.Equal(t, 100, st.Balance(defs.ResourceMana))
	assert.Zero(t, abilities.Cooldown("meteor"))
	assert.Len(t, *failed, 1)
	assert.Empty(t, *cast)
}

func TestActivationRefundsWhenSpendFails(t *testing.T) {
	pool := &flakyPool{balances: map[string]int{defs.ResourceCrystals: 5, defs.ResourceMana: 50}, failOn: defs.ResourceMana}
	abilities := NewAbilitySystem(nil, pool, event.NewBus())
	abilities.Register(defs.AbilityDefinition{
		ID: "nova", Cost: map[string]int{defs.ResourceCrystals: 2, defs.ResourceMana: 10},
	})

	res := abilities.Activate("nova", event.CastContext{})
	assert.Equal(t, ReasonSpendFailed, res.Reason)
	assert.Equal(t, 5, pool.balances[defs.ResourceCrystals])
	assert.Equal(t, 50, pool.balances[defs.ResourceMana])
}

func TestActivateSpendsAndStartsCooldown(t *testing.T) {
	abilities, st, bus := newAbilityWorld(t)
	cast := record(bus, event.AbilityCast)
	started := record(bus, event.AbilityCooldownStarted)

	res := abilities.Activate("power_surge", event.CastContext{Source: "key"})
	require.True(t, res.Success)
	assert.Equal(t, 70, st.Balance(defs.ResourceMana))
	assert.Equal(t, 12.0, abilities.Cooldown("power_surge"))
	require.Len(t, *cast, 1)
	data := (*cast)[0].Data.(event.AbilityCastData)
	assert.Equal(t, "power_surge", data.Definition.ID)
	assert.Equal(t, "key", data.Context.Source)
	assert.Len(t, *started, 1)

	again := abilities.Activate("power_surge", event.CastContext{})
	assert.Equal(t, ReasonCooldown, again.Reason)
	assert.Equal(t, ReasonUnknownAbility, abilities.CanActivate("nope").Reason)
}

func TestCooldownReachesReady(t *testing.T) {
	abilities, _, bus := newAbilityWorld(t)
	ready := record(bus, event.AbilityReady)

	require.True(t, abilities.Activate("arcane_shield", event.CastContext{}).Success)
	abilities.Update(10)
	assert.Empty(t, *ready)
	abilities.Update(8)
	require.Len(t, *ready, 1)
	assert.Equal(t, "arcane_shield", (*ready)[0].Data.(event.AbilityCooldownData).AbilityID)
	assert.True(t, abilities.CanActivate("arcane_shield").Success)
}

func TestStatusBroadcastIsThrottled(t *testing.T) {
	abilities, _, bus := newAbilityWorld(t)
	status := record(bus, event.AbilityStatus)

	for i := 0; i < 4; i++ {
		abilities.Update(0.1)
	}
	require.Len(t, *status, 1)
	entries := (*status)[0].Data.([]event.AbilityStatusEntry)
	assert.Len(t, entries, 4)
	assert.True(t, entries[0].Ready)
}

func TestReduceCooldownsHasFloorAndResetClearsIt(t *testing.T) {
	abilities, _, _ := newAbilityWorld(t)
	for i := 0; i < 30; i++ {
		abilities.ReduceCooldowns(0.5)
	}
	require.True(t, abilities.Activate("power_surge", event.CastContext{}).Success)
	assert.InDelta(t, 12*0.25, abilities.Cooldown("power_surge"), 1e-9)

	abilities.Reset()
	assert.Zero(t, abilities.Cooldown("power_surge"))
	require.True(t, abilities.Activate("power_surge", event.CastContext{}).Success)
	assert.Equal(t, 12.0, abilities.Cooldown("power_surge"))
}

func TestAbilityEffects(t *testing.T) {
	w := newWorld(t)
	mods := NewModifierSystem(w.state)
	abilities := NewAbilitySystem(w.state.Library(), w.state, w.bus)
	NewAbilityEffectSystem(w.state, w.bus, w.effects, mods, abilities)
	p := w.state.LivePlayer()
	b := w.state.Library().Balance

	t.Run("attack buff", func(t *testing.T) {
		base := EffectiveDamage(p, b)
		require.True(t, abilities.Activate("power_surge", event.CastContext{}).Success)
		assert.InDelta(t, base*1.5, EffectiveDamage(p, b), 1e-9)
		mods.Update(6.1)
		assert.InDelta(t, base, EffectiveDamage(p, b), 1e-9)
	})

	t.Run("shield", func(t *testing.T) {
		require.True(t, abilities.Activate("arcane_shield", event.CastContext{}).Success)
		assert.True(t, p.Shield.Active())
	})

	t.Run("frost nova slows the dragon once", func(t *testing.T) {
		p.Crystals = 5
		p.Mana = p.MaxMana
		d := w.spawnBoss(defs.ElementNormal, 3, p.X+50, p.Y)
		speed := d.Speed
		require.True(t, abilities.Activate("frost_nova", event.CastContext{}).Success)
		assert.InDelta(t, speed*0.5, d.Speed, 1e-9)
		assert.Less(t, d.Head().Health, d.Head().MaxHealth)
	})

	t.Run("heal", func(t *testing.T) {
		p.Crystals = 5
		p.Mana = p.MaxMana
		p.Health = 10
		require.True(t, abilities.Activate("healing_light", event.CastContext{}).Success)
		assert.InDelta(t, 10+p.MaxHealth*0.4, p.Health, 1e-9)
	})

	assert.Equal(t, 4, w.state.Statistics().AbilitiesCast)
}

func TestModifierSystemRegeneratesManaAndExpiresShield(t *testing.T) {
	w := newWorld(t)
	mods := NewModifierSystem(w.state)
	p := w.state.LivePlayer()
	p.Mana = 0
	p.Shield = nil
	mods.Update(1)
	assert.InDelta(t, 4.0, p.Mana, 1e-9)

	mods.AddModifier("speed", 2, 1, "test")
	mods.AddModifier("speed", 3, 1, "test")
	require.Len(t, p.Modifiers, 1, "same source refreshes")
	assert.Equal(t, 3.0, p.ModifierProduct("speed"))
	mods.Update(1.1)
	assert.Empty(t, p.Modifiers)
}
