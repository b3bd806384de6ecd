// internal/defs/elements.go
package defs

import (
	"image/color"
	"math/rand"
	"sort"
)

// ElementColors holds the palette used to draw an element.
type ElementColors struct {
	Primary   color.RGBA `yaml:"primary"`
	Secondary color.RGBA `yaml:"secondary"`
	Glow      color.RGBA `yaml:"glow"`
}

// Element holds all the static data for one element.
type Element struct {
	Name             string        `yaml:"name"`
	Colors           ElementColors `yaml:"colors"`
	BaseHealth       float64       `yaml:"base_health"`
	HealthMultiplier float64       `yaml:"health_multiplier"`
	DamageMultiplier float64       `yaml:"damage_multiplier"`
	SpeedMultiplier  float64       `yaml:"speed_multiplier"`
	SpecialAbility   AbilityType   `yaml:"special_ability"`
	Weight           float64       `yaml:"weight"`
	DefeatBonus      int           `yaml:"defeat_bonus"`  // разовый бонус очков за победу
	RespawnDelay     float64       `yaml:"respawn_delay"` // пауза перед следующим боссом
}

// SpecialAbility describes the parameters of one status-effect family.
// Only the fields relevant to the ability are set.
type SpecialAbility struct {
	DPS             float64 `yaml:"dps"`
	Duration        float64 `yaml:"duration"`
	TickInterval    float64 `yaml:"tick_interval"`
	SlowPercent     float64 `yaml:"slow_percent"`
	DamageReduction float64 `yaml:"damage_reduction"`
	MaxReduction    float64 `yaml:"max_reduction"`
	ChainRange      float64 `yaml:"chain_range"`
	ChainDamage     float64 `yaml:"chain_damage"`
	MaxChains       int     `yaml:"max_chains"`
	Damage          float64 `yaml:"damage"`
}

// ElementsConfig is the YAML shape of the element tables.
type ElementsConfig struct {
	Elements      map[ElementType]Element                 `yaml:"elements"`
	Effectiveness map[ElementType]map[ElementType]float64 `yaml:"effectiveness"`
	Specials      map[AbilityType]SpecialAbility          `yaml:"specials"`
	WaveGrowth    map[ElementType]float64                 `yaml:"wave_growth"` // прибавка веса за волну
}

// ElementTable — неизменяемая таблица стихий, собранная из ElementsConfig.
type ElementTable struct {
	elements      map[ElementType]Element
	effectiveness map[ElementType]map[ElementType]float64
	specials      map[AbilityType]SpecialAbility
	waveGrowth    map[ElementType]float64
}

// NewElementTable copies the config so later edits to it cannot leak into the table.
func NewElementTable(cfg ElementsConfig) *ElementTable {
	t := &ElementTable{
		elements:      make(map[ElementType]Element, len(cfg.Elements)),
		effectiveness: make(map[ElementType]map[ElementType]float64, len(cfg.Effectiveness)),
		specials:      make(map[AbilityType]SpecialAbility, len(cfg.Specials)),
		waveGrowth:    make(map[ElementType]float64, len(cfg.WaveGrowth)),
	}
	for k, v := range cfg.Elements {
		t.elements[k] = v
	}
	for atk, row := range cfg.Effectiveness {
		copied := make(map[ElementType]float64, len(row))
		for def, m := range row {
			copied[def] = m
		}
		t.effectiveness[atk] = copied
	}
	for k, v := range cfg.Specials {
		t.specials[k] = v
	}
	for k, v := range cfg.WaveGrowth {
		t.waveGrowth[k] = v
	}
	if _, ok := t.elements[ElementNormal]; !ok {
		t.elements[ElementNormal] = neutralElement()
	}
	return t
}

func neutralElement() Element {
	return Element{
		Name:             "Normal",
		Colors:           ElementColors{Primary: color.RGBA{200, 200, 200, 255}, Secondary: color.RGBA{140, 140, 140, 255}, Glow: color.RGBA{255, 255, 255, 80}},
		BaseHealth:       60,
		HealthMultiplier: 1,
		DamageMultiplier: 1,
		SpeedMultiplier:  1,
		Weight:           1,
		DefeatBonus:      100,
		RespawnDelay:     3,
	}
}

// GetElement returns the element data, or the neutral element when unknown.
func (t *ElementTable) GetElement(et ElementType) Element {
	if el, ok := t.elements[et]; ok {
		return el
	}
	return t.elements[ElementNormal]
}

// HasElement reports whether the element is defined.
func (t *ElementTable) HasElement(et ElementType) bool {
	_, ok := t.elements[et]
	return ok
}

// GetEffectiveness returns the multiplier for attacker striking defender.
// The table is directional; missing pairs are 1.0.
func (t *ElementTable) GetEffectiveness(attacker, defender ElementType) float64 {
	if row, ok := t.effectiveness[attacker]; ok {
		if m, ok := row[defender]; ok {
			return m
		}
	}
	return 1.0
}

// GetSpecialAbility returns parameters for an ability tag (zero value when unknown).
func (t *ElementTable) GetSpecialAbility(at AbilityType) SpecialAbility {
	return t.specials[at]
}

// GetWaveElementWeights returns the weighted-random table for a wave.
// Weights grow linearly with the wave for elements that have a growth entry.
func (t *ElementTable) GetWaveElementWeights(wave int) map[ElementType]float64 {
	if wave < 1 {
		wave = 1
	}
	weights := make(map[ElementType]float64, len(t.elements))
	for et, el := range t.elements {
		w := el.Weight + t.waveGrowth[et]*float64(wave-1)
		if w < 0 {
			w = 0
		}
		weights[et] = w
	}
	return weights
}

// ChooseElement выбирает стихию босса по весам волны.
func (t *ElementTable) ChooseElement(wave int, rng *rand.Rand) ElementType {
	weights := t.GetWaveElementWeights(wave)
	keys := make([]ElementType, 0, len(weights))
	total := 0.0
	for et, w := range weights {
		keys = append(keys, et)
		total += w
	}
	// Фиксированный порядок, чтобы при одном сиде выбор был воспроизводим
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if total <= 0 || rng == nil {
		return ElementNormal
	}
	r := rng.Float64() * total
	upto := 0.0
	for _, et := range keys {
		upto += weights[et]
		if r < upto {
			return et
		}
	}
	return keys[len(keys)-1]
}

// Elements returns the defined element identifiers, sorted.
func (t *ElementTable) Elements() []ElementType {
	out := make([]ElementType, 0, len(t.elements))
	for et := range t.elements {
		out = append(out, et)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func defaultElements() ElementsConfig {
	rgba := func(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 255} }
	glow := func(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 90} }

	return ElementsConfig{
		Elements: map[ElementType]Element{
			ElementNormal: neutralElement(),
			ElementFire: {
				Name: "Fire", Colors: ElementColors{rgba(255, 90, 40), rgba(255, 180, 60), glow(255, 120, 40)},
				BaseHealth: 70, HealthMultiplier: 1.0, DamageMultiplier: 1.2, SpeedMultiplier: 1.05,
				SpecialAbility: AbilityBurn, Weight: 3, DefeatBonus: 150, RespawnDelay: 3,
			},
			ElementIce: {
				Name: "Ice", Colors: ElementColors{rgba(120, 200, 255), rgba(220, 240, 255), glow(150, 220, 255)},
				BaseHealth: 80, HealthMultiplier: 1.1, DamageMultiplier: 0.9, SpeedMultiplier: 0.9,
				SpecialAbility: AbilityFreeze, Weight: 3, DefeatBonus: 150, RespawnDelay: 3,
			},
			ElementLightning: {
				Name: "Lightning", Colors: ElementColors{rgba(255, 240, 90), rgba(255, 255, 200), glow(255, 255, 120)},
				BaseHealth: 60, HealthMultiplier: 0.9, DamageMultiplier: 1.1, SpeedMultiplier: 1.3,
				SpecialAbility: AbilityChain, Weight: 2, DefeatBonus: 200, RespawnDelay: 3,
			},
			ElementPoison: {
				Name: "Poison", Colors: ElementColors{rgba(120, 220, 80), rgba(60, 140, 40), glow(140, 255, 90)},
				BaseHealth: 75, HealthMultiplier: 1.0, DamageMultiplier: 1.0, SpeedMultiplier: 1.0,
				SpecialAbility: AbilityPoison, Weight: 2, DefeatBonus: 180, RespawnDelay: 3,
			},
			ElementEarth: {
				Name: "Earth", Colors: ElementColors{rgba(160, 120, 70), rgba(110, 80, 50), glow(190, 150, 90)},
				BaseHealth: 110, HealthMultiplier: 1.3, DamageMultiplier: 1.0, SpeedMultiplier: 0.75,
				SpecialAbility: AbilityArmor, Weight: 2, DefeatBonus: 220, RespawnDelay: 3.5,
			},
			ElementDark: {
				Name: "Dark", Colors: ElementColors{rgba(110, 40, 160), rgba(30, 10, 50), glow(170, 60, 255)},
				BaseHealth: 100, HealthMultiplier: 1.5, DamageMultiplier: 1.4, SpeedMultiplier: 1.1,
				SpecialAbility: AbilityPhase, Weight: 0.2, DefeatBonus: 500, RespawnDelay: 6,
			},
		},
		Effectiveness: map[ElementType]map[ElementType]float64{
			ElementFire:      {ElementFire: 0.5, ElementIce: 2.0, ElementPoison: 1.5, ElementEarth: 0.75},
			ElementIce:       {ElementIce: 0.5, ElementFire: 0.5, ElementEarth: 1.5, ElementLightning: 1.25},
			ElementLightning: {ElementLightning: 0.5, ElementIce: 1.5, ElementEarth: 0.5, ElementDark: 1.25},
			ElementPoison:    {ElementPoison: 0.5, ElementEarth: 1.5, ElementFire: 0.75, ElementDark: 0.75},
			ElementEarth:     {ElementEarth: 0.5, ElementLightning: 2.0, ElementFire: 1.25, ElementPoison: 0.75},
			ElementDark: {
				ElementDark: 0.5, ElementFire: 1.25, ElementIce: 1.25, ElementLightning: 1.25,
				ElementPoison: 1.25, ElementEarth: 1.25,
			},
		},
		Specials: map[AbilityType]SpecialAbility{
			AbilityBurn:   {DPS: 8, Duration: 3, TickInterval: 0.5},
			AbilityFreeze: {SlowPercent: 0.5, Duration: 2},
			AbilityPoison: {DPS: 5, Duration: 5, TickInterval: 1},
			AbilityChain:  {ChainRange: 150, ChainDamage: 0.6, MaxChains: 3, Damage: 20},
			AbilityPhase:  {Duration: 1.5},
			AbilityArmor:  {DamageReduction: 0.1, MaxReduction: 0.8},
		},
		WaveGrowth: map[ElementType]float64{
			ElementDark:      0.15,
			ElementLightning: 0.05,
			ElementEarth:     0.05,
		},
	}
}
