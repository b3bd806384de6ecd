// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900

	// Арена занимает весь экран, кроме нижней панели умений
	ArenaWidth  = ScreenWidth
	ArenaHeight = ScreenHeight - HotbarHeight

	MaxDeltaTime = 1.0 / 30.0 // не даём шагу симуляции разрастись после лагов

	HotbarHeight    = 90
	HotbarSlotSize  = 64
	HotbarSlotGap   = 12
	HotbarMarginBot = 13

	IndicatorOffsetX = 30
	IndicatorRadius  = 10.0

	SaveKey = "dragon_hunter_save"

	DamageNumberLife = 0.8
	DamageNumberRise = 40.0 // pixels per second
	NoEffectText     = "IMMUNE"

	TextCharWidth = 7
	TextOffsetY   = 4
)

var (
	BackgroundColor  = color.RGBA{18, 16, 28, 255}
	ArenaBorderColor = color.RGBA{60, 60, 90, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	PlayerColor      = color.RGBA{90, 200, 255, 255}
	ShieldColor      = color.RGBA{120, 180, 255, 120}
	BulletColor      = color.RGBA{255, 240, 140, 255}
	LaserTelegraph   = color.RGBA{255, 80, 80, 90}
	LaserColor       = color.RGBA{255, 40, 40, 220}
	ChargeTelegraph  = color.RGBA{255, 160, 40, 120}
	HealthBarColor   = color.RGBA{220, 60, 60, 255}
	ManaBarColor     = color.RGBA{70, 110, 240, 255}
	BarBackColor     = color.RGBA{40, 40, 50, 255}
	HotbarBackColor  = color.RGBA{30, 30, 44, 255}
	HotbarReadyColor = color.RGBA{70, 130, 180, 220}
	HotbarCoolColor  = color.RGBA{0, 0, 0, 150}
	PausedOverlay    = color.RGBA{0, 0, 0, 128}
	RunningColor     = color.RGBA{70, 180, 90, 220}
	PausedColor      = color.RGBA{220, 60, 60, 220}

	LootColors = map[string]color.RGBA{
		"token":           {255, 215, 0, 255},
		"crystal":         {180, 90, 255, 255},
		"mana":            {80, 140, 255, 255},
		"health":          {255, 90, 90, 255},
		"ability_upgrade": {90, 255, 170, 255},
		"reward_bonus":    {255, 255, 255, 255},
	}
)
