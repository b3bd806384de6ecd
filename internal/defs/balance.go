// internal/defs/balance.go
package defs

// PlayerBalance — стартовые параметры игрока.
type PlayerBalance struct {
	Radius            float64     `yaml:"radius"`
	Speed             float64     `yaml:"speed"`
	BaseDamage        float64     `yaml:"base_damage"`
	MaxHealth         float64     `yaml:"max_health"`
	MaxMana           float64     `yaml:"max_mana"`
	ManaRegen         float64     `yaml:"mana_regen"` // per second
	StartCrystals     int         `yaml:"start_crystals"`
	StartLives        int         `yaml:"start_lives"`
	Element           ElementType `yaml:"element"`
	FireRate          float64     `yaml:"fire_rate"` // shots per second
	BulletSpeed       float64     `yaml:"bullet_speed"`
	BulletRadius      float64     `yaml:"bullet_radius"`
	BulletLife        float64     `yaml:"bullet_life"`
	BulletPenetration int         `yaml:"bullet_penetration"`
	HitInvulnerable   float64     `yaml:"hit_invulnerable"` // i-frames after a contact hit
	ElementChance     float64     `yaml:"element_chance"`   // chance a hit applies the weapon element
}

// DragonBalance covers the segmented boss body, its growth and contact damage.
type DragonBalance struct {
	InitialSegments    int     `yaml:"initial_segments"`
	MaxSegments        int     `yaml:"max_segments"`
	BaseSpeed          float64 `yaml:"base_speed"`
	SegmentSpacing     float64 `yaml:"segment_spacing"`
	FollowStiffness    float64 `yaml:"follow_stiffness"` // доля лишнего расстояния, которую хвост догоняет за тик
	HeadRadius         float64 `yaml:"head_radius"`
	SegmentRadius      float64 `yaml:"segment_radius"`
	HealthGrowth       float64 `yaml:"health_growth"` // compounding per wave
	IndexHealthScale   float64 `yaml:"index_health_scale"`
	BaseDamage         float64 `yaml:"base_damage"`
	IndexDamageScale   float64 `yaml:"index_damage_scale"`
	GrowthInterval     float64 `yaml:"growth_interval"`
	GrowthShrink       float64 `yaml:"growth_shrink"` // seconds removed from the interval per segment
	MinGrowthInterval  float64 `yaml:"min_growth_interval"`
	ScoreFactor        float64 `yaml:"score_factor"`
	SegmentLootChance  float64 `yaml:"segment_loot_chance"`
	SpecialInterval    float64 `yaml:"special_interval"`
	SpecialRange       float64 `yaml:"special_range"`
	ContactCooldownMin float64 `yaml:"contact_cooldown_min"`
	ContactCooldownMax float64 `yaml:"contact_cooldown_max"`
	WobbleAmplitude    float64 `yaml:"wobble_amplitude"` // radians
	WobbleFrequency    float64 `yaml:"wobble_frequency"`
	SimpleDragonSize   float64 `yaml:"simple_dragon_size"`
	SimpleDragonSpeed  float64 `yaml:"simple_dragon_speed"`
	SimpleDragonDamage float64 `yaml:"simple_dragon_damage"`
	FirstSpawnDelay    float64 `yaml:"first_spawn_delay"`
}

// LaserBalance — параметры лазерного удара босса.
type LaserBalance struct {
	Chance    float64 `yaml:"chance"`
	Cooldown  float64 `yaml:"cooldown"`
	Telegraph float64 `yaml:"telegraph"`
	Duration  float64 `yaml:"duration"`
	Arc       float64 `yaml:"arc"` // radians swept over Duration
	Length    float64 `yaml:"length"`
	Width     float64 `yaml:"width"`
	Damage    float64 `yaml:"damage"`
	Immunity  float64 `yaml:"immunity"`
}

// ChargeBalance — параметры рывка босса.
type ChargeBalance struct {
	Chance          float64 `yaml:"chance"`
	Cooldown        float64 `yaml:"cooldown"`
	Telegraph       float64 `yaml:"telegraph"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	MaxDuration     float64 `yaml:"max_duration"`
	Damage          float64 `yaml:"damage"`
	Knockback       float64 `yaml:"knockback"`
	Immunity        float64 `yaml:"immunity"`
	ArriveDistance  float64 `yaml:"arrive_distance"`
	ShockwaveRadius float64 `yaml:"shockwave_radius"`
	ShockwaveDamage float64 `yaml:"shockwave_damage"`
}

// SkillBalance is the boss skill AI.
type SkillBalance struct {
	AICheckInterval    float64       `yaml:"ai_check_interval"`
	TriggerDistance    float64       `yaml:"trigger_distance"`
	LowHealthThreshold float64       `yaml:"low_health_threshold"`
	LowHealthBoost     float64       `yaml:"low_health_boost"`
	Laser              LaserBalance  `yaml:"laser"`
	Charge             ChargeBalance `yaml:"charge"`
}

// LootBalance — экономика выпадения лута.
type LootBalance struct {
	TokenMin              int         `yaml:"token_min"`
	TokenMax              int         `yaml:"token_max"`
	TokenWaveBonus        float64     `yaml:"token_wave_bonus"`
	TokenComboBonus       float64     `yaml:"token_combo_bonus"`
	CrystalBaseChance     float64     `yaml:"crystal_base_chance"`
	CrystalComboThreshold int         `yaml:"crystal_combo_threshold"`
	CrystalComboBonus     float64     `yaml:"crystal_combo_bonus"`
	CrystalWaveRate       float64     `yaml:"crystal_wave_rate"`
	CrystalMaxChance      float64     `yaml:"crystal_max_chance"`
	CrystalWaveTiers      []int       `yaml:"crystal_wave_tiers"` // +1 crystal at each wave reached
	CrystalComboTier      int         `yaml:"crystal_combo_tier"`
	Lifetime              float64     `yaml:"lifetime"`
	MagnetDistance        float64     `yaml:"magnet_distance"`
	CollectDistance       float64     `yaml:"collect_distance"`
	AutoMagnetDelay       float64     `yaml:"auto_magnet_delay"`
	MagnetSpeed           float64     `yaml:"magnet_speed"`
	Gravity               float64     `yaml:"gravity"`
	Drag                  float64     `yaml:"drag"`
	TossSpeed             float64     `yaml:"toss_speed"`
	ChangeInterval        float64     `yaml:"change_interval"`
	SegmentDrops          []LootTable `yaml:"segment_drops"`
}

// ProgressionBalance covers combo, XP, levels and the score bonus per wave.
type ProgressionBalance struct {
	ComboTimeout      float64 `yaml:"combo_timeout"`
	XPPerSegment      int     `yaml:"xp_per_segment"`
	XPPerBoss         int     `yaml:"xp_per_boss"`
	XPBase            int     `yaml:"xp_base"`
	XPGrowth          float64 `yaml:"xp_growth"`
	DamagePerLevel    float64 `yaml:"damage_per_level"`
	HealthPerLevel    float64 `yaml:"health_per_level"`
	HoarderTokens     int     `yaml:"hoarder_tokens"`
	ComboMasterStreak int     `yaml:"combo_master_streak"`
}

// UpgradeKind — улучшение из магазина.
type UpgradeKind string

const (
	UpgradeDamage    UpgradeKind = "damage"
	UpgradeFireRate  UpgradeKind = "fire_rate"
	UpgradeMaxHealth UpgradeKind = "max_health"
	UpgradeSpeed     UpgradeKind = "speed"
)

// UpgradeBalance — цена и шаг одного улучшения.
type UpgradeBalance struct {
	BaseCost   int     `yaml:"base_cost"`
	CostGrowth float64 `yaml:"cost_growth"`
	Step       float64 `yaml:"step"` // multiplicative for damage/fire_rate/speed, flat HP for max_health
	MaxLevel   int     `yaml:"max_level"`
}

// Balance is the full set of gameplay numbers. It is built once at startup
// and passed by pointer; nothing mutates it afterwards.
type Balance struct {
	Player         PlayerBalance                  `yaml:"player"`
	Dragon         DragonBalance                  `yaml:"dragon"`
	Skills         SkillBalance                   `yaml:"skills"`
	Loot           LootBalance                    `yaml:"loot"`
	Progression    ProgressionBalance             `yaml:"progression"`
	Upgrades       map[UpgradeKind]UpgradeBalance `yaml:"upgrades"`
	Abilities      []AbilityDefinition            `yaml:"abilities"`
	StatusInterval float64                        `yaml:"status_interval"`
	UpgradeCDCut   float64                        `yaml:"upgrade_cooldown_cut"` // доля кулдауна, снимаемая апгрейдом умений
	Elements       ElementsConfig                 `yaml:"elements"`
}

// DefaultBalance returns the built-in tuning.
func DefaultBalance() *Balance {
	return &Balance{
		Player: PlayerBalance{
			Radius:            16,
			Speed:             260,
			BaseDamage:        30,
			MaxHealth:         100,
			MaxMana:           100,
			ManaRegen:         4,
			StartCrystals:     2,
			StartLives:        3,
			Element:           ElementFire,
			FireRate:          3,
			BulletSpeed:       620,
			BulletRadius:      5,
			BulletLife:        2.0,
			BulletPenetration: 0,
			HitInvulnerable:   0.4,
			ElementChance:     0.35,
		},
		Dragon: DragonBalance{
			InitialSegments:    4,
			MaxSegments:        24,
			BaseSpeed:          70,
			SegmentSpacing:     34,
			FollowStiffness:    0.5,
			HeadRadius:         26,
			SegmentRadius:      20,
			HealthGrowth:       1.15,
			IndexHealthScale:   0.08,
			BaseDamage:         10,
			IndexDamageScale:   0.05,
			GrowthInterval:     8,
			GrowthShrink:       0.25,
			MinGrowthInterval:  3,
			ScoreFactor:        0.1,
			SegmentLootChance:  0.25,
			SpecialInterval:    5,
			SpecialRange:       400,
			ContactCooldownMin: 0.8,
			ContactCooldownMax: 1.4,
			WobbleAmplitude:    0.6,
			WobbleFrequency:    0.35,
			SimpleDragonSize:   30,
			SimpleDragonSpeed:  60,
			SimpleDragonDamage: 8,
			FirstSpawnDelay:    1,
		},
		Skills: SkillBalance{
			AICheckInterval:    0.5,
			TriggerDistance:    550,
			LowHealthThreshold: 0.3,
			LowHealthBoost:     1.75,
			Laser: LaserBalance{
				Chance: 0.25, Cooldown: 9, Telegraph: 0.8, Duration: 2.2,
				Arc: 1.6, Length: 700, Width: 18, Damage: 18, Immunity: 0.5,
			},
			Charge: ChargeBalance{
				Chance: 0.2, Cooldown: 11, Telegraph: 0.6, SpeedMultiplier: 4.5,
				MaxDuration: 1.6, Damage: 22, Knockback: 120, Immunity: 0.6,
				ArriveDistance: 12, ShockwaveRadius: 140, ShockwaveDamage: 12,
			},
		},
		Loot: LootBalance{
			TokenMin:              3,
			TokenMax:              7,
			TokenWaveBonus:        2,
			TokenComboBonus:       1,
			CrystalBaseChance:     0.15,
			CrystalComboThreshold: 4,
			CrystalComboBonus:     0.1,
			CrystalWaveRate:       0.02,
			CrystalMaxChance:      0.6,
			CrystalWaveTiers:      []int{5, 10},
			CrystalComboTier:      8,
			Lifetime:              12,
			MagnetDistance:        160,
			CollectDistance:       24,
			AutoMagnetDelay:       4,
			MagnetSpeed:           520,
			Gravity:               380,
			Drag:                  2.5,
			TossSpeed:             180,
			ChangeInterval:        0.25,
			SegmentDrops: []LootTable{
				{MinWave: 1, Entries: []LootEntry{
					{Type: LootToken, Value: 1, Weight: 60},
					{Type: LootMana, Value: 15, Weight: 25},
					{Type: LootHealth, Value: 10, Weight: 15},
				}},
				{MinWave: 3, Entries: []LootEntry{
					{Type: LootToken, Value: 2, Weight: 50},
					{Type: LootMana, Value: 20, Weight: 20},
					{Type: LootHealth, Value: 15, Weight: 15},
					{Type: LootCrystal, Value: 1, Weight: 10},
					{Type: LootAbilityUpgrade, Value: 1, Weight: 5},
				}},
				{MinWave: 6, Entries: []LootEntry{
					{Type: LootToken, Value: 3, Weight: 40},
					{Type: LootMana, Value: 25, Weight: 20},
					{Type: LootHealth, Value: 20, Weight: 15},
					{Type: LootCrystal, Value: 1, Weight: 12},
					{Type: LootAbilityUpgrade, Value: 1, Weight: 8},
					{Type: LootRewardBonus, Value: 250, Weight: 5},
				}},
			},
		},
		Progression: ProgressionBalance{
			ComboTimeout:      3,
			XPPerSegment:      10,
			XPPerBoss:         60,
			XPBase:            100,
			XPGrowth:          1.4,
			DamagePerLevel:    3,
			HealthPerLevel:    10,
			HoarderTokens:     500,
			ComboMasterStreak: 10,
		},
		Upgrades: map[UpgradeKind]UpgradeBalance{
			UpgradeDamage:    {BaseCost: 20, CostGrowth: 1.5, Step: 1.15, MaxLevel: 10},
			UpgradeFireRate:  {BaseCost: 25, CostGrowth: 1.6, Step: 1.1, MaxLevel: 10},
			UpgradeMaxHealth: {BaseCost: 15, CostGrowth: 1.4, Step: 20, MaxLevel: 10},
			UpgradeSpeed:     {BaseCost: 15, CostGrowth: 1.5, Step: 1.08, MaxLevel: 5},
		},
		Abilities:      defaultAbilities(),
		StatusInterval: 0.25,
		UpgradeCDCut:   0.1,
		Elements:       defaultElements(),
	}
}
