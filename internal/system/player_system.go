// internal/system/player_system.go
package system

import (
	"math"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

// PlayerSystem pays kill bounties and tracks experience and levels.
type PlayerSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewPlayerSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *PlayerSystem {
	return &PlayerSystem{ecs: ecs, eventDispatcher: eventDispatcher}
}

// OnKill pays the killer floor(cost * bounty fraction) and experience equal
// to the victim's cost. Self-destructs pay nothing.
func (s *PlayerSystem) OnKill(victim *component.Unit, killer types.Faction) {
	if killer == victim.Faction {
		return
	}
	playerState := s.ecs.Players[killer]
	if playerState == nil {
		return
	}
	playerState.Kills++
	playerState.Money += math.Floor(victim.Stats.Cost * playerState.Stats.BountyFraction)
	playerState.CurrentXP += victim.Stats.Cost

	for playerState.XPToNextLevel > 0 && playerState.CurrentXP >= playerState.XPToNextLevel {
		playerState.CurrentXP -= playerState.XPToNextLevel
		playerState.Level++
		playerState.XPToNextLevel = XPForNextLevel(playerState.XPToNextLevel)
		s.eventDispatcher.Dispatch(event.Event{Type: event.LevelUp, Data: event.LevelUpData{
			Faction: killer,
			Level:   playerState.Level,
		}})
	}
}

// XPForNextLevel grows the previous threshold geometrically.
func XPForNextLevel(previous float64) float64 {
	return math.Floor(previous * config.XPGrowth)
}
