package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

func TestLootAtPlayerIsCollected(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	p.Mana = 50
	collected := record(w.bus, event.LootCollected)
	currency := record(w.bus, event.CurrencyCollected)

	w.loot.SpawnLoot(defs.LootMana, 20, p.X, p.Y)
	w.loot.SpawnLoot(defs.LootToken, 5, p.X, p.Y)
	w.loot.Update(0.016, p)

	assert.Empty(t, w.state.Loot())
	assert.InDelta(t, 70.0, p.Mana, 1e-9)
	assert.Equal(t, 5, p.Tokens)
	assert.Len(t, *collected, 1)
	assert.Len(t, *currency, 1)
	assert.Equal(t, 2, w.state.Statistics().LootCollected)
}

func TestRewardBonusAddsScore(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	bonus := record(w.bus, event.RewardBonusCollected)

	w.loot.SpawnLoot(defs.LootRewardBonus, 250, p.X, p.Y)
	w.loot.Update(0.016, p)
	assert.Equal(t, 250, w.state.Score)
	assert.Len(t, *bonus, 1)
}

func TestLootExpiresWithoutPlayer(t *testing.T) {
	w := newWorld(t)
	expired := record(w.bus, event.LootExpired)

	w.loot.SpawnLoot(defs.LootToken, 1, 300, 300)
	w.loot.Update(1, nil)
	require.Len(t, w.state.Loot(), 1)

	w.loot.Update(w.loot.Config().Lifetime, nil)
	assert.Empty(t, w.state.Loot())
	assert.Len(t, *expired, 1)
}

func TestLootMagnetizesNearPlayer(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	l := w.loot.SpawnLoot(defs.LootToken, 1, p.X+100, p.Y)

	w.loot.Update(0.05, p)
	assert.True(t, l.Magnetized)
	assert.Less(t, l.Vec().DistTo(p.Vec()), 100.0)

	for i := 0; i < 10; i++ {
		w.loot.Update(0.05, p)
	}
	assert.Empty(t, w.state.Loot())
	assert.Equal(t, 1, p.Tokens)
}

func TestFarLootAutoMagnetizesAfterDelay(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	l := w.loot.SpawnLoot(defs.LootCrystal, 1, p.X+400, p.Y)

	w.loot.Update(0.1, p)
	assert.False(t, l.Magnetized)
	w.loot.Update(w.loot.Config().AutoMagnetDelay, p)
	assert.True(t, l.Magnetized)
}

func TestDifficultyModifiersDoNotCompound(t *testing.T) {
	w := newWorld(t)
	base := w.state.Library().Balance.Loot

	w.loot.SetDifficultyModifiers(DifficultyModifiers{MagnetRange: 2, LootLifetime: 0.5})
	w.loot.SetDifficultyModifiers(DifficultyModifiers{MagnetRange: 2, LootLifetime: 0.5})
	assert.Equal(t, base.MagnetDistance*2, w.loot.Config().MagnetDistance)
	assert.Equal(t, base.Lifetime*0.5, w.loot.Config().Lifetime)

	w.loot.SetDifficultyModifiers(DifficultyModifiers{LootLifetime: 0.001, CollectRange: 0.001})
	assert.Equal(t, minLootLifetime, w.loot.Config().Lifetime)
	assert.Equal(t, minCollectDistance, w.loot.Config().CollectDistance)

	w.loot.SetDifficultyModifiers(DifficultyModifiers{})
	assert.Equal(t, base.MagnetDistance, w.loot.Config().MagnetDistance)
}

func TestTokenAndCrystalFormulas(t *testing.T) {
	w := newWorld(t)
	cfg := w.loot.Config()

	for i := 0; i < 50; i++ {
		n := w.loot.TokenAmount(1, 0)
		assert.GreaterOrEqual(t, n, cfg.TokenMin)
		assert.LessOrEqual(t, n, cfg.TokenMax)
	}
	assert.GreaterOrEqual(t, w.loot.TokenAmount(5, 2), cfg.TokenMin+8+2)

	assert.Equal(t, cfg.CrystalMaxChance, w.loot.CrystalChance(100, 50))
	assert.InDelta(t, 0.17, w.loot.CrystalChance(1, 0), 1e-9)
	assert.Equal(t, 1, w.loot.CrystalQuantity(1, 0))
	assert.Equal(t, 4, w.loot.CrystalQuantity(10, 8))
}

func TestHandleDragonDeathDropsTokens(t *testing.T) {
	w := newWorld(t)
	ids := w.loot.HandleDragonDeath(nil, DeathContext{Wave: 3, Combo: 1, X: 200, Y: 200})
	require.NotEmpty(t, ids)

	tokens := 0
	for _, l := range w.state.Loot() {
		if l.Type == defs.LootToken {
			tokens += l.Value
		}
	}
	assert.Positive(t, tokens)
}

func TestSegmentDropUsesWaveTable(t *testing.T) {
	w := newWorld(t)
	l := w.loot.RollSegmentDrop(1, 1, 100, 100)
	require.NotNil(t, l)
	assert.Contains(t, []defs.LootType{defs.LootToken, defs.LootMana, defs.LootHealth}, l.Type)

	assert.Nil(t, w.loot.RollSegmentDrop(1, 0, 100, 100))
}
