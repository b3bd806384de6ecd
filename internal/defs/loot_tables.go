// internal/defs/loot_tables.go
package defs

// LootEntry представляет одну запись в таблице выпадения.
// Type — что выпадет, Value — сколько, Weight — относительный шанс.
type LootEntry struct {
	Type   LootType `yaml:"type"`
	Value  int      `yaml:"value"`
	Weight int      `yaml:"weight"`
}

// LootTable определяет выпадение с сегментов дракона начиная с волны MinWave.
type LootTable struct {
	MinWave int         `yaml:"min_wave"`
	Entries []LootEntry `yaml:"entries"`
}

// TotalWeight returns the sum of positive weights.
func (t LootTable) TotalWeight() int {
	total := 0
	for _, e := range t.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// TableForWave picks the table with the highest MinWave not above wave.
// Returns false when no table applies.
func TableForWave(tables []LootTable, wave int) (LootTable, bool) {
	best := -1
	for i, t := range tables {
		if t.MinWave > wave {
			continue
		}
		if best < 0 || t.MinWave > tables[best].MinWave {
			best = i
		}
	}
	if best < 0 {
		return LootTable{}, false
	}
	return tables[best], true
}
