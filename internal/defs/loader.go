// internal/defs/loader.go
package defs

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Library is the loaded, read-only game data handed to every system.
type Library struct {
	Balance   *Balance
	Elements  *ElementTable
	abilities map[string]AbilityDefinition
}

// NewLibrary validates a balance and builds the lookup tables for it.
func NewLibrary(b *Balance) (*Library, error) {
	if b == nil {
		return nil, errors.New("balance is nil")
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	lib := &Library{
		Balance:   b,
		Elements:  NewElementTable(b.Elements),
		abilities: make(map[string]AbilityDefinition, len(b.Abilities)),
	}
	for _, def := range b.Abilities {
		lib.abilities[def.ID] = def.Clone()
	}
	return lib, nil
}

// DefaultLibrary builds the library from DefaultBalance. The built-in data is always valid.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(DefaultBalance())
	if err != nil {
		panic(err)
	}
	return lib
}

// Ability returns an ability definition by id.
func (l *Library) Ability(id string) (AbilityDefinition, bool) {
	def, ok := l.abilities[id]
	if !ok {
		return AbilityDefinition{}, false
	}
	return def.Clone(), true
}

// LoadBalance reads a YAML file and overlays it onto DefaultBalance, so a file
// only needs the values it changes.
func LoadBalance(path string) (*Balance, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file: %w", err)
	}
	return ParseBalance(file)
}

// ParseBalance overlays YAML data onto DefaultBalance and validates the result.
func ParseBalance(data []byte) (*Balance, error) {
	b := DefaultBalance()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	return b, nil
}

// Validate checks the numbers the simulation divides by or loops on.
func (b *Balance) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(b.Player.FireRate > 0, "player.fire_rate must be > 0, got %v", b.Player.FireRate)
	check(b.Player.MaxHealth > 0, "player.max_health must be > 0, got %v", b.Player.MaxHealth)
	check(b.Player.Radius > 0, "player.radius must be > 0, got %v", b.Player.Radius)
	check(b.Player.StartLives >= 0, "player.start_lives must be >= 0, got %d", b.Player.StartLives)

	check(b.Dragon.InitialSegments >= 1, "dragon.initial_segments must be >= 1, got %d", b.Dragon.InitialSegments)
	check(b.Dragon.MaxSegments >= b.Dragon.InitialSegments,
		"dragon.max_segments (%d) must be >= initial_segments (%d)", b.Dragon.MaxSegments, b.Dragon.InitialSegments)
	check(b.Dragon.MinGrowthInterval > 0, "dragon.min_growth_interval must be > 0, got %v", b.Dragon.MinGrowthInterval)
	check(b.Dragon.FollowStiffness > 0 && b.Dragon.FollowStiffness <= 1,
		"dragon.follow_stiffness must be in (0,1], got %v", b.Dragon.FollowStiffness)
	check(b.Dragon.ContactCooldownMax >= b.Dragon.ContactCooldownMin,
		"dragon.contact_cooldown_max must be >= contact_cooldown_min")

	check(b.Skills.AICheckInterval > 0, "skills.ai_check_interval must be > 0, got %v", b.Skills.AICheckInterval)
	check(b.Skills.Laser.Duration > 0, "skills.laser.duration must be > 0")
	check(b.Skills.Charge.MaxDuration > 0, "skills.charge.max_duration must be > 0")

	check(b.Loot.TokenMax >= b.Loot.TokenMin, "loot.token_max (%d) must be >= token_min (%d)", b.Loot.TokenMax, b.Loot.TokenMin)
	check(b.Loot.CrystalMaxChance >= 0 && b.Loot.CrystalMaxChance <= 1, "loot.crystal_max_chance must be in [0,1]")
	check(b.Loot.Lifetime > 0, "loot.lifetime must be > 0")

	check(b.StatusInterval > 0, "status_interval must be > 0, got %v", b.StatusInterval)

	seen := make(map[string]bool, len(b.Abilities))
	for i, a := range b.Abilities {
		check(a.ID != "", "abilities[%d] has empty id", i)
		check(!seen[a.ID], "duplicate ability id %q", a.ID)
		seen[a.ID] = true
		check(a.Cooldown >= 0, "ability %q has negative cooldown", a.ID)
		for res, amount := range a.Cost {
			check(amount >= 0, "ability %q has negative %s cost", a.ID, res)
		}
	}

	for kind, u := range b.Upgrades {
		check(u.BaseCost > 0, "upgrade %q base_cost must be > 0", kind)
		check(u.CostGrowth >= 1, "upgrade %q cost_growth must be >= 1", kind)
	}

	for et, el := range b.Elements.Elements {
		check(el.Weight >= 0, "element %q has negative weight", et)
	}

	return errors.Join(errs...)
}
