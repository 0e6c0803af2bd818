// internal/component/player.go
package component

import (
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

// PlayerStateComponent is the economy and progression of one controller.
type PlayerStateComponent struct {
	Faction types.Faction
	Human   bool

	Money float64
	Kills int

	Level         int     // current level, starting at 1
	CurrentXP     float64 // experience towards the next level
	XPToNextLevel float64 // experience needed for the next level

	Loadout  stats.Loadout
	Stats    stats.PlayerStats
	Unlocked map[string]bool // nil means every unit type is available
	Queue    SpawnQueue
}

// CanField reports whether the controller may queue unitType.
func (p *PlayerStateComponent) CanField(unitType string) bool {
	return p.Unlocked == nil || p.Unlocked[unitType]
}
