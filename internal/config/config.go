// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 480

	// Lane geometry, in world pixels.
	LaneLength  = 1600.0
	GroundY     = 320.0
	BaseWidth   = 96.0
	BaseHeight  = 160.0
	UnitWidth   = 32.0
	UnitHeight  = 48.0
	LaneGap     = 4.0  // free space a walker needs ahead of its body
	SpawnMargin = 12.0 // distance between a base and the spawn cell in front of it

	MaxDeltaTime = 60.0 // ms; larger frame gaps are clamped

	ProjectileSpeed     = 0.6  // px per ms
	ProjectileRadius    = 5.0  // px
	ProjectileOffsetY   = 12.0 // aim above the target's centre
	ProjectileMaxFlight = 4000.0
	ImpactDelay         = 250.0 // ms before a delayed-despawn projectile is recycled

	DefaultQueueCapacity = 10
	HumanQueueCapacity   = 1
	SpawnMinTicks        = 3

	StrategyInterval = 5000.0 // ms
	DesperateRatio   = 0.5
	AttackThreshold  = 300.0
	DefendUnitCap    = 4

	UnitPoolSize       = 32 // slots per unit type
	ProjectilePoolSize = 256

	StartingMoney  = 200.0
	IncomeRate     = 0.02 // money per ms
	BountyFraction = 0.5
	XPToFirstLevel = 200
	XPGrowth       = 1.5

	SlowFactor    = 0.5
	SlowDuration  = 2000.0
	HasteFactor   = 1.3
	HasteDuration = 3000.0

	MatchRewardCoins = 25

	ClickCooldown = 200 * time.Millisecond
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GroundColor     = color.RGBA{70, 100, 120, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	HealthBarColor  = color.RGBA{50, 205, 50, 255}
	HealthBackColor = color.RGBA{60, 20, 20, 255}
	ProjectileColor = color.RGBA{255, 215, 0, 255}
	StrokeWidth     = 2.0
	FactionColors   = []color.RGBA{
		{220, 60, 60, 255},  // Red
		{70, 130, 180, 255}, // Blue
	}
	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4
	}
	SpeedMultipliers = []float64{1, 2, 4}
)
