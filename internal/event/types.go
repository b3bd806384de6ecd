// internal/event/types.go
package event

import (
	"dragon-hunter/internal/defs"
	"dragon-hunter/internal/types"
)

const (
	GameStateChanged EventType = "GameStateChanged" // started/paused/over изменились
	GameStarted      EventType = "GameStarted"
	GameRestarted    EventType = "GameRestarted"
	GameOver         EventType = "GameOver"
	GameSaved        EventType = "GameSaved"
	GameLoaded       EventType = "GameLoaded"

	WaveStarted      EventType = "WaveStarted"
	BossSpawned      EventType = "BossSpawned"
	BossDefeated     EventType = "BossDefeated"
	SegmentAdded     EventType = "SegmentAdded"     // хвост вырос
	SegmentDestroyed EventType = "SegmentDestroyed" // сегмент уничтожен
	EnemyDestroyed   EventType = "EnemyDestroyed"   // простой дракон уничтожен

	DamageDealt   EventType = "DamageDealt"
	NoEffect      EventType = "NoEffect" // попадание по неуязвимой цели
	PlayerDamaged EventType = "PlayerDamaged"
	PlayerHealed  EventType = "PlayerHealed"
	LifeLost      EventType = "LifeLost"
	BulletFired   EventType = "BulletFired"

	StatusEffectApplied EventType = "StatusEffectApplied"
	StatusEffectExpired EventType = "StatusEffectExpired"
	ChainLightning      EventType = "ChainLightning"

	AbilityCast            EventType = "AbilityCast"
	AbilityCooldownStarted EventType = "AbilityCooldownStarted"
	AbilityReady           EventType = "AbilityReady"
	AbilityStatus          EventType = "AbilityStatus"
	AbilityFailed          EventType = "AbilityFailed"

	LootSpawned             EventType = "LootSpawned"
	LootCollected           EventType = "LootCollected"
	LootExpired             EventType = "LootExpired"
	LootChanged             EventType = "LootChanged"
	CurrencyCollected       EventType = "CurrencyCollected"
	AbilityUpgradeCollected EventType = "AbilityUpgradeCollected"
	RewardBonusCollected    EventType = "RewardBonusCollected"
	ResourceChanged         EventType = "ResourceChanged"

	KillRecorded        EventType = "KillRecorded"
	ComboChanged        EventType = "ComboChanged"
	AchievementUnlocked EventType = "AchievementUnlocked"
	LevelUp             EventType = "LevelUp"
	UpgradePurchased    EventType = "UpgradePurchased"

	BossSkillTelegraph EventType = "BossSkillTelegraph"
	BossSkillStarted   EventType = "BossSkillStarted"
	BossSkillEnded     EventType = "BossSkillEnded"
	SoundCue           EventType = "SoundCue"
)

// GameStateData — payload of GameStateChanged.
type GameStateData struct {
	Flag  string
	Value bool
}

// WaveData — payload of WaveStarted and BossSpawned.
type WaveData struct {
	Wave     int
	Element  defs.ElementType
	DragonID string
	Segments int
}

// BossDefeatedData — payload of BossDefeated.
type BossDefeatedData struct {
	DragonID     string
	Element      defs.ElementType
	Wave         int // волна, на которой босс был побеждён
	Bonus        int
	RespawnDelay float64
	X, Y         float64
}

// SegmentData — payload of SegmentAdded and SegmentDestroyed.
type SegmentData struct {
	DragonID  string
	SegmentID types.EntityID
	Index     int
	Score     int
	Remaining int
	X, Y      float64
}

// DamageData — payload of DamageDealt / PlayerDamaged.
type DamageData struct {
	TargetID      types.EntityID
	Amount        float64
	Element       defs.ElementType
	Effectiveness float64
	Source        string
	X, Y          float64
}

// HealData — payload of PlayerHealed.
type HealData struct {
	Amount float64
	Source string
}

// LifeLostData — payload of LifeLost.
type LifeLostData struct {
	LivesLeft int
}

// StatusEffectData — payload of StatusEffectApplied / StatusEffectExpired.
type StatusEffectData struct {
	EffectID types.EntityID
	TargetID types.EntityID
	Ability  defs.AbilityType
	Source   string
}

// ChainData — payload of ChainLightning: targets in hit order with the damage each took.
type ChainData struct {
	Targets []types.EntityID
	Damage  []float64
}

// AbilityCastData — payload of AbilityCast; Definition is a copy.
type AbilityCastData struct {
	Definition defs.AbilityDefinition
	Context    CastContext
}

// CastContext — откуда и чем было вызвано умение.
type CastContext struct {
	Source string // "hotbar", "key", "ai", "test"
	X, Y   float64
	Time   float64
}

// AbilityCooldownData — payload of AbilityCooldownStarted / AbilityReady.
type AbilityCooldownData struct {
	AbilityID string
	Cooldown  float64
}

// AbilityFailedData — payload of AbilityFailed.
type AbilityFailedData struct {
	AbilityID string
	Reason    string
	Resource  string
}

// AbilityStatusEntry is one row of the throttled status broadcast.
type AbilityStatusEntry struct {
	AbilityID string
	Remaining float64
	Cooldown  float64
	Ready     bool
}

// LootData — payload of loot events.
type LootData struct {
	LootID types.EntityID
	Type   defs.LootType
	Value  int
	X, Y   float64
}

// ResourceData — payload of ResourceChanged.
type ResourceData struct {
	Resource string
	Delta    int
	Balance  int
}

// KillData — payload of KillRecorded.
type KillData struct {
	Element defs.ElementType
	Kills   int
	Combo   int
}

// AchievementData — payload of AchievementUnlocked.
type AchievementData struct {
	ID   string
	Data map[string]interface{}
}

// LevelData — payload of LevelUp.
type LevelData struct {
	Level int
}

// UpgradeData — payload of UpgradePurchased.
type UpgradeData struct {
	Kind  defs.UpgradeKind
	Level int
	Cost  int
}

// SkillData — payload of boss skill events.
type SkillData struct {
	DragonID string
	Skill    string // "laser" or "charge"
	X, Y     float64
	Angle    float64
}

// SoundData — payload of SoundCue.
type SoundData struct {
	Name string
}
