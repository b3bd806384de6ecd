package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/event"
)

func TestBuildDragonScalesHealthByWaveAndIndex(t *testing.T) {
	w := newWorld(t)
	d := BuildDragon(w.state, defs.ElementFire, 3, 4, 300, 300)

	require.Len(t, d.Segments, 4)
	want := 70 * 1.0 * math.Pow(1.15, 2) * (1 + 0.08*2)
	assert.InDelta(t, want, d.Segments[2].MaxHealth, 1e-9)
	assert.Equal(t, 26.0, d.Head().Radius)
	assert.Equal(t, 20.0, d.Segments[3].Radius)
	assert.NotEmpty(t, d.SpawnID)
	for i, s := range d.Segments {
		assert.Equal(t, i, s.Index)
		assert.Same(t, d, s.Owner())
	}
}

func TestGrowthIntervalHasFloor(t *testing.T) {
	b := defs.DefaultBalance().Dragon
	assert.Equal(t, 7.0, GrowthInterval(b, 4))
	assert.Equal(t, b.MinGrowthInterval, GrowthInterval(b, 24))
}

func TestGrowStopsAtMaxSegments(t *testing.T) {
	w := newWorld(t)
	limit := w.state.Library().Balance.Dragon.MaxSegments
	d := w.spawnBoss(defs.ElementNormal, limit-1, 300, 300)
	added := record(w.bus, event.SegmentAdded)

	require.NotNil(t, w.boss.Grow(d))
	assert.Nil(t, w.boss.Grow(d))
	assert.Len(t, d.Segments, limit)
	assert.Len(t, *added, 1)
	assert.Equal(t, limit-1, d.Segments[limit-1].Index)
}

func TestWaveSystemSpawnsAfterDelay(t *testing.T) {
	w := newWorld(t)
	spawned := record(w.bus, event.BossSpawned)

	w.waves.Update(0.5)
	assert.Nil(t, w.state.Boss())
	w.waves.Update(0.6)
	require.NotNil(t, w.state.Boss())
	assert.Len(t, w.state.Boss().Segments, w.state.Library().Balance.Dragon.InitialSegments)
	require.Len(t, *spawned, 1)
	assert.Equal(t, 1, (*spawned)[0].Data.(event.WaveData).Wave)

	// пока босс жив, новый не появляется
	w.waves.Update(10)
	assert.Len(t, *spawned, 1)
}

func TestDarkBossRespawnsLater(t *testing.T) {
	w := newWorld(t)
	w.movePlayerAway()
	d := w.spawnBoss(defs.ElementDark, 1, 600, 400)
	d.Head().Health = 0
	segScore := SegmentScore(w.state.Library().Balance.Dragon, d.Head())

	assert.Equal(t, 1, w.boss.ReapDeadSegments())
	assert.Nil(t, w.state.Boss())
	assert.Equal(t, 6.0, w.state.RespawnTimer)
	assert.Equal(t, 500+segScore, w.state.Score)
	assert.Equal(t, 2, w.state.Wave)
}

func TestHeadMovesTowardPlayerAndTailFollows(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 3, p.X, p.Y-300)
	d.SpecialTimer, d.GrowthTimer = 100, 100
	startDist := d.Head().Vec().DistTo(p.Vec())

	for i := 0; i < 30; i++ {
		w.boss.Update(1.0 / 60)
	}
	assert.Less(t, d.Head().Vec().DistTo(p.Vec()), startDist)

	spacing := w.state.Library().Balance.Dragon.SegmentSpacing
	for i := 1; i < len(d.Segments); i++ {
		gap := d.Segments[i].Vec().DistTo(d.Segments[i-1].Vec())
		assert.LessOrEqual(t, gap, spacing*2, "segment %d lags too far", i)
	}
}

func TestSpecialAbilityTargets(t *testing.T) {
	t.Run("fire burns the player in range", func(t *testing.T) {
		w := newWorld(t)
		p := w.state.LivePlayer()
		d := w.spawnBoss(defs.ElementFire, 2, p.X+100, p.Y)
		assert.True(t, w.boss.UseSpecial(d))
		assert.True(t, p.Effects.Burning)
	})
	t.Run("fire misses a distant player", func(t *testing.T) {
		w := newWorld(t)
		p := w.movePlayerAway()
		d := w.spawnBoss(defs.ElementFire, 2, 1100, 700)
		assert.False(t, w.boss.UseSpecial(d))
		assert.False(t, p.Effects.Burning)
	})
	t.Run("dark phases itself", func(t *testing.T) {
		w := newWorld(t)
		d := w.spawnBoss(defs.ElementDark, 2, 300, 300)
		assert.True(t, w.boss.UseSpecial(d))
		assert.True(t, d.Phased())
	})
	t.Run("normal has nothing", func(t *testing.T) {
		w := newWorld(t)
		d := w.spawnBoss(defs.ElementNormal, 2, 300, 300)
		assert.False(t, w.boss.UseSpecial(d))
	})
}

func TestLaserSweepHitsPlayer(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 1, p.X-150, p.Y)
	d.Charge.Cooldown = 100
	hits := record(w.bus, event.PlayerDamaged)

	w.skills.StartLaser(d)
	require.True(t, d.Laser.Telegraphing)

	cfg := w.state.Library().Balance.Skills.Laser
	steps := int((cfg.Telegraph + cfg.Duration) * 60)
	for i := 0; i < steps+2; i++ {
		w.skills.Update(1.0 / 60)
	}

	assert.False(t, d.Laser.Busy())
	assert.Positive(t, d.Laser.Cooldown)
	require.NotEmpty(t, *hits)
	assert.Equal(t, SkillLaser, (*hits)[0].Data.(event.DamageData).Source)
	assert.Less(t, p.Health, p.MaxHealth)
}

func TestChargeRushesToCapturedTarget(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 1, p.X-200, p.Y)
	d.Laser.Cooldown = 100
	target := p.Vec()

	w.skills.StartCharge(d)
	assert.Equal(t, target, d.Charge.Target)

	for i := 0; i < 180 && d.Charge.Busy(); i++ {
		w.skills.Update(1.0 / 60)
	}
	assert.False(t, d.Charge.Busy())
	assert.Equal(t, w.state.Library().Balance.Skills.Charge.Cooldown, d.Charge.Cooldown)
	assert.Less(t, p.Health, p.MaxHealth)
	assert.Greater(t, p.Vec().DistTo(target), 0.0, "impact knocks the player back")
}

func TestThinkIgnoresDistantPlayer(t *testing.T) {
	w := newWorld(t)
	w.movePlayerAway()
	d := w.spawnBoss(defs.ElementNormal, 1, 1150, 780)
	assert.Empty(t, w.skills.Think(d))
}

// alwaysTrigger ставит шансы умений в 1.
func alwaysTrigger(w *world) {
	cfg := &w.state.Library().Balance.Skills
	cfg.Laser.Chance = 1
	cfg.Charge.Chance = 1
}

func TestThinkRollsSkillsIndependently(t *testing.T) {
	t.Run("both start on one check", func(t *testing.T) {
		w := newWorld(t)
		alwaysTrigger(w)
		p := w.state.LivePlayer()
		d := w.spawnBoss(defs.ElementNormal, 2, p.X-150, p.Y)

		assert.Equal(t, []string{SkillLaser, SkillCharge}, w.skills.Think(d))
		assert.True(t, d.Laser.Telegraphing)
		assert.True(t, d.Charge.Telegraphing)
	})
	t.Run("active laser does not block charge", func(t *testing.T) {
		w := newWorld(t)
		alwaysTrigger(w)
		p := w.state.LivePlayer()
		d := w.spawnBoss(defs.ElementNormal, 2, p.X-150, p.Y)
		d.Laser.Active = true
		d.Charge.Cooldown = 0

		assert.Equal(t, []string{SkillCharge}, w.skills.Think(d))
		assert.True(t, d.Charge.Busy())
	})
	t.Run("each skill waits for its own cooldown", func(t *testing.T) {
		w := newWorld(t)
		alwaysTrigger(w)
		p := w.state.LivePlayer()
		d := w.spawnBoss(defs.ElementNormal, 2, p.X-150, p.Y)
		d.Charge.Cooldown = 5

		assert.Equal(t, []string{SkillLaser}, w.skills.Think(d))
		assert.False(t, d.Charge.Busy())
	})
	t.Run("dead head casts nothing", func(t *testing.T) {
		w := newWorld(t)
		alwaysTrigger(w)
		p := w.state.LivePlayer()
		d := w.spawnBoss(defs.ElementNormal, 1, p.X-150, p.Y)
		d.Head().Health = 0

		assert.Empty(t, w.skills.Think(d))
	})
}

func TestTriggerChanceLowHealthBoost(t *testing.T) {
	w := newWorld(t)
	cfg := w.state.Library().Balance.Skills
	d := w.spawnBoss(defs.ElementNormal, 1, 300, 300)
	head := d.Head()

	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"full health", 1, 0.2},
		{"just above threshold", cfg.LowHealthThreshold + 0.01, 0.2},
		{"below threshold", cfg.LowHealthThreshold / 2, 0.2 * cfg.LowHealthBoost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head.Health = head.MaxHealth * tt.ratio
			assert.InDelta(t, tt.want, w.skills.TriggerChance(d, 0.2), 1e-9)
		})
	}
}

func TestLowHealthBoostGuaranteesTrigger(t *testing.T) {
	w := newWorld(t)
	cfg := &w.state.Library().Balance.Skills
	cfg.Laser.Chance = 0.6
	cfg.Charge.Chance = 0
	require.GreaterOrEqual(t, cfg.Laser.Chance*cfg.LowHealthBoost, 1.0)
	p := w.state.LivePlayer()

	for i := 0; i < 10; i++ {
		d := w.spawnBoss(defs.ElementNormal, 1, p.X-150, p.Y)
		d.Head().Health = d.Head().MaxHealth * 0.1
		assert.Equal(t, []string{SkillLaser}, w.skills.Think(d))
	}
}

func TestAICheckRunsOnInterval(t *testing.T) {
	w := newWorld(t)
	alwaysTrigger(w)
	interval := w.state.Library().Balance.Skills.AICheckInterval
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 2, p.X-150, p.Y)
	d.AICheckTimer = interval
	telegraphs := record(w.bus, event.BossSkillTelegraph)

	w.skills.Update(interval * 0.6)
	assert.False(t, d.Laser.Busy())
	assert.False(t, d.Charge.Busy())
	assert.Empty(t, *telegraphs)

	w.skills.Update(interval * 0.6)
	assert.True(t, d.Laser.Busy())
	assert.True(t, d.Charge.Busy())
	assert.Len(t, *telegraphs, 2)
	assert.InDelta(t, interval, d.AICheckTimer, 1e-9)
}

func TestDeadHeadDealsNoSkillDamage(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 1, p.X-150, p.Y)
	d.Charge.Cooldown = 100
	hits := record(w.bus, event.PlayerDamaged)

	w.skills.StartLaser(d)
	d.Head().Health = -1
	for i := 0; i < 120; i++ {
		w.skills.Update(1.0 / 60)
	}
	assert.Empty(t, *hits)
	assert.Equal(t, p.MaxHealth, p.Health)
}

func TestBossUpdateGrowsOnTimer(t *testing.T) {
	w := newWorld(t)
	w.movePlayerAway()
	d := w.spawnBoss(defs.ElementNormal, 3, 600, 400)
	d.SpecialTimer = 100
	d.GrowthTimer = 0.01
	added := record(w.bus, event.SegmentAdded)

	w.boss.Update(1.0 / 60)
	require.Len(t, d.Segments, 4)
	assert.Len(t, *added, 1)
	b := w.state.Library().Balance.Dragon
	assert.Equal(t, GrowthInterval(b, 4), d.GrowthTimer)

	w.boss.Update(1.0 / 60)
	assert.Len(t, d.Segments, 4, "timer restarted")
}

func TestBossUpdateReapsEffectKillBeforeGrowth(t *testing.T) {
	w := newWorld(t)
	w.movePlayerAway()
	d := w.spawnBoss(defs.ElementNormal, 1, 600, 400)
	d.Head().Health = -1
	d.GrowthTimer = 0
	added := record(w.bus, event.SegmentAdded)
	defeated := record(w.bus, event.BossDefeated)

	w.boss.Update(1.0 / 60)
	assert.Nil(t, w.state.LiveBoss())
	assert.Empty(t, *added)
	assert.Len(t, *defeated, 1)
}

func TestLaserTelegraphTracksPlayerSmoothly(t *testing.T) {
	w := newWorld(t)
	p := w.state.LivePlayer()
	d := w.spawnBoss(defs.ElementNormal, 1, p.X-150, p.Y)
	d.Charge.Cooldown = 100

	w.skills.StartLaser(d)
	start := d.Laser.CurrentAngle
	p.X, p.Y = d.Head().X, d.Head().Y+150
	target := w.skills.aimAngle(d)

	w.skills.Update(1.0 / 60)
	turned := math.Abs(d.Laser.CurrentAngle - start)
	assert.Greater(t, turned, 0.0)
	assert.Less(t, turned, math.Abs(target-start), "aim eases toward the player")
}
