// internal/defs/types.go
package defs

// ElementType identifies an element (weapon element of the player or a dragon's type).
type ElementType string

const (
	ElementNormal    ElementType = "normal"
	ElementFire      ElementType = "fire"
	ElementIce       ElementType = "ice"
	ElementLightning ElementType = "lightning"
	ElementPoison    ElementType = "poison"
	ElementEarth     ElementType = "earth"
	ElementDark      ElementType = "dark"
)

// AllElements lists elements in table order.
var AllElements = []ElementType{
	ElementNormal, ElementFire, ElementIce, ElementLightning, ElementPoison, ElementEarth, ElementDark,
}

// AbilityType is the special-ability tag an element carries (burn, freeze, ...).
type AbilityType string

const (
	AbilityNone   AbilityType = ""
	AbilityBurn   AbilityType = "burn"
	AbilityFreeze AbilityType = "freeze"
	AbilityPoison AbilityType = "poison"
	AbilityChain  AbilityType = "chain"
	AbilityPhase  AbilityType = "phase"
	AbilityArmor  AbilityType = "armor"
)

// EffectType — что делает активное умение игрока.
type EffectType string

const (
	EffectAttackBuff EffectType = "attack_buff"
	EffectShield     EffectType = "shield"
	EffectAoeDebuff  EffectType = "aoe_debuff"
	EffectHeal       EffectType = "heal"
)

// Resource names used in ability costs and loot payouts.
const (
	ResourceMana     = "mana"
	ResourceCrystals = "crystals"
	ResourceTokens   = "tokens"
	ResourceHealth   = "health"
)

// LootType — тип выпадающего предмета
type LootType string

const (
	LootToken          LootType = "token"
	LootCrystal        LootType = "crystal"
	LootMana           LootType = "mana"
	LootHealth         LootType = "health"
	LootAbilityUpgrade LootType = "ability_upgrade"
	LootRewardBonus    LootType = "reward_bonus"
)
