package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBalanceIsValid(t *testing.T) {
	require.NoError(t, DefaultBalance().Validate())
}

func TestParseBalanceOverlaysDefaults(t *testing.T) {
	data := []byte(`
player:
  fire_rate: 5
dragon:
  max_segments: 30
loot:
  collect_distance: 40
`)
	b, err := ParseBalance(data)
	require.NoError(t, err)

	assert.Equal(t, 5.0, b.Player.FireRate)
	assert.Equal(t, 30, b.Dragon.MaxSegments)
	assert.Equal(t, 40.0, b.Loot.CollectDistance)

	// остальное берётся из значений по умолчанию
	def := DefaultBalance()
	assert.Equal(t, def.Player.MaxHealth, b.Player.MaxHealth)
	assert.Equal(t, def.Dragon.InitialSegments, b.Dragon.InitialSegments)
	assert.Len(t, b.Abilities, len(def.Abilities))
}

func TestParseBalanceRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero fire rate", "player:\n  fire_rate: 0\n"},
		{"max below initial", "dragon:\n  max_segments: 2\n"},
		{"token range", "loot:\n  token_min: 9\n  token_max: 1\n"},
		{"duplicate ability", "abilities:\n  - id: a\n  - id: a\n"},
		{"malformed", "player: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBalance([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadBalanceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("status_interval: 0.5\n"), 0o644))

	b, err := LoadBalance(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.StatusInterval)

	_, err = LoadBalance(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLibraryAbilityReturnsCopy(t *testing.T) {
	lib := DefaultLibrary()

	def, ok := lib.Ability("frost_nova")
	require.True(t, ok)
	def.Cost[ResourceMana] = 0

	again, _ := lib.Ability("frost_nova")
	assert.Equal(t, 40, again.Cost[ResourceMana])

	_, ok = lib.Ability("nope")
	assert.False(t, ok)
}

func TestTableForWave(t *testing.T) {
	tables := DefaultBalance().Loot.SegmentDrops

	tbl, ok := TableForWave(tables, 1)
	require.True(t, ok)
	assert.Equal(t, 1, tbl.MinWave)

	tbl, _ = TableForWave(tables, 4)
	assert.Equal(t, 3, tbl.MinWave)

	tbl, _ = TableForWave(tables, 50)
	assert.Equal(t, 6, tbl.MinWave)
	assert.Positive(t, tbl.TotalWeight())

	_, ok = TableForWave(tables, 0)
	assert.False(t, ok)
}
