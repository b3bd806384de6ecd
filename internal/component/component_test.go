package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-hunter/internal/defs"
)

func TestShieldAbsorbs(t *testing.T) {
	s := &Shield{Absorb: 30, Remaining: 5}
	assert.Equal(t, 0.0, s.Absorbs(20))
	assert.Equal(t, 10.0, s.Absorb)
	assert.Equal(t, 15.0, s.Absorbs(25))
	assert.False(t, s.Active())

	var none *Shield
	assert.Equal(t, 12.0, none.Absorbs(12))
}

func TestDragonAttachAndClone(t *testing.T) {
	d := &Dragon{Element: defs.ElementIce, Speed: 70}
	for i := 0; i < 3; i++ {
		d.Attach(&Segment{Health: 10, MaxHealth: 10})
	}
	require.Len(t, d.Segments, 3)
	assert.Equal(t, 2, d.Segments[2].Index)
	assert.Same(t, d, d.Segments[1].Owner())

	c := d.Clone()
	assert.Same(t, c, c.Segments[0].Owner())
	c.Segments[0].SetCurrentSpeed(10)
	assert.Equal(t, 10.0, c.Speed)
	assert.Equal(t, 70.0, d.Speed)

	d.Segments = d.Segments[1:]
	d.Reindex()
	assert.Equal(t, 0, d.Segments[0].Index)
	assert.Equal(t, defs.ElementIce, d.Segments[0].TargetElement())
}

func TestSegmentSharesDragonEffects(t *testing.T) {
	d := &Dragon{}
	a, b := &Segment{}, &Segment{}
	d.Attach(a)
	d.Attach(b)
	a.Status().Phased = true
	assert.True(t, b.Status().Phased)
	assert.True(t, d.Phased())

	lone := &Segment{}
	assert.Equal(t, 0.0, lone.CurrentSpeed())
	assert.Equal(t, defs.ElementNormal, lone.TargetElement())
}

func TestHeadAndHealth(t *testing.T) {
	var nilDragon *Dragon
	assert.Nil(t, nilDragon.Head())
	assert.False(t, nilDragon.Alive())

	d := &Dragon{}
	d.Attach(&Segment{Health: 25, MaxHealth: 100})
	d.Attach(&Segment{Health: 50, MaxHealth: 50})
	assert.Equal(t, 0.25, d.HeadHealthRatio())
	cur, max := d.TotalHealth()
	assert.Equal(t, 75.0, cur)
	assert.Equal(t, 150.0, max)
}

func TestPlayerModifiersAndClone(t *testing.T) {
	p := &Player{Shield: &Shield{Absorb: 5}, Upgrades: map[defs.UpgradeKind]int{defs.UpgradeSpeed: 1}}
	p.Modifiers = []TimedModifier{
		{Kind: ModDamage, Multiplier: 1.5, Remaining: 2},
		{Kind: ModDamage, Multiplier: 2, Remaining: 0},
		{Kind: ModFireRate, Multiplier: 1.3, Remaining: 1},
	}
	assert.Equal(t, 1.5, p.ModifierProduct(ModDamage))
	assert.Equal(t, 1.0, p.ModifierProduct(ModSpeed))

	c := p.Clone()
	c.Shield.Absorb = 0
	c.Modifiers[0].Multiplier = 9
	c.Upgrades[defs.UpgradeSpeed] = 3
	assert.Equal(t, 5.0, p.Shield.Absorb)
	assert.Equal(t, 1.5, p.Modifiers[0].Multiplier)
	assert.Equal(t, 1, p.Upgrades[defs.UpgradeSpeed])
}
