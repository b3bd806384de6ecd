// internal/defs/abilities.go
package defs

// AbilityParams — параметры эффекта. Заполняются только нужные поля.
type AbilityParams struct {
	DamageMultiplier   float64     `yaml:"damage_multiplier"`
	FireRateMultiplier float64     `yaml:"fire_rate_multiplier"`
	Duration           float64     `yaml:"duration"`
	Absorb             float64     `yaml:"absorb"`
	Radius             float64     `yaml:"radius"`
	Damage             float64     `yaml:"damage"`
	Element            ElementType `yaml:"element"`
	HealPercent        float64     `yaml:"heal_percent"`
}

// AbilityDefinition describes a castable ability. Runtime cooldowns are tracked
// by the ability system, never on the definition.
type AbilityDefinition struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Hotkey   string         `yaml:"hotkey"`
	Cost     map[string]int `yaml:"cost"`
	Cooldown float64        `yaml:"cooldown"`
	Effect   EffectType     `yaml:"effect"`
	Params   AbilityParams  `yaml:"params"`
}

// Clone returns a deep copy so listeners cannot edit the registered definition.
func (d AbilityDefinition) Clone() AbilityDefinition {
	c := d
	c.Cost = make(map[string]int, len(d.Cost))
	for k, v := range d.Cost {
		c.Cost[k] = v
	}
	return c
}

func defaultAbilities() []AbilityDefinition {
	return []AbilityDefinition{
		{
			ID: "power_surge", Name: "Power Surge", Hotkey: "1",
			Cost: map[string]int{ResourceMana: 30}, Cooldown: 12, Effect: EffectAttackBuff,
			Params: AbilityParams{DamageMultiplier: 1.5, FireRateMultiplier: 1.3, Duration: 6},
		},
		{
			ID: "arcane_shield", Name: "Arcane Shield", Hotkey: "2",
			Cost: map[string]int{ResourceMana: 25}, Cooldown: 18, Effect: EffectShield,
			Params: AbilityParams{Absorb: 60, Duration: 8},
		},
		{
			ID: "frost_nova", Name: "Frost Nova", Hotkey: "3",
			Cost: map[string]int{ResourceMana: 40, ResourceCrystals: 1}, Cooldown: 15, Effect: EffectAoeDebuff,
			Params: AbilityParams{Radius: 320, Damage: 25, Element: ElementIce},
		},
		{
			ID: "healing_light", Name: "Healing Light", Hotkey: "4",
			Cost: map[string]int{ResourceMana: 20, ResourceCrystals: 2}, Cooldown: 20, Effect: EffectHeal,
			Params: AbilityParams{HealPercent: 0.4},
		},
	}
}
