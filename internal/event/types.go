// internal/event/types.go
package event

import "go-lane-defense/internal/types"

const (
	UnitSpawned   EventType = "UnitSpawned"
	UnitDied      EventType = "UnitDied"
	BaseDestroyed EventType = "BaseDestroyed"
	DamageDealt   EventType = "DamageDealt"
	LevelUp       EventType = "LevelUp"
	MatchOver     EventType = "MatchOver"
)

// UnitSpawnedData is the payload of UnitSpawned.
type UnitSpawnedData struct {
	ID      types.EntityID
	Type    string
	Faction types.Faction
	X       float64
}

// UnitDiedData is the payload of UnitDied and BaseDestroyed. Killer equals
// Faction for a self-destruct.
type UnitDiedData struct {
	ID      types.EntityID
	Type    string
	Faction types.Faction
	Killer  types.Faction
	Cost    float64
}

// DamageData is the payload of DamageDealt. A negative Amount is a heal.
type DamageData struct {
	Source  types.EntityID
	Target  types.EntityID
	Faction types.Faction // faction of the target
	Amount  float64
	Health  float64 // target health after the change
}

// LevelUpData is the payload of LevelUp.
type LevelUpData struct {
	Faction types.Faction
	Level   int
}

// MatchOverData is the payload of MatchOver.
type MatchOverData struct {
	MatchID  string
	Winner   types.Faction
	Duration float64 // ms of game time
}
