package stats

import (
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
)

// Player stat names understood by PlayerStats.
const (
	PlayerStartingMoney  = "startingMoney"
	PlayerIncomeRate     = "incomeRate"
	PlayerQueueBonus     = "queueBonus"
	PlayerBaseHealth     = "baseHealth"
	PlayerBountyFraction = "bountyFraction"
)

// PlayerStats are the economy numbers of one controller after player-target
// constructions are applied.
type PlayerStats struct {
	StartingMoney  float64
	IncomeRate     float64 // money per ms
	QueueBonus     int     // extra queue slots on top of the controller default
	BaseHealth     float64 // added to the base's resolved health
	BountyFraction float64
}

// PlayerStats resolves the player baseline plus owned player-target
// constructions and the active potion.
func (e *Engine) PlayerStats(owned []string, potion string) (PlayerStats, error) {
	agg, err := e.Aggregate(owned, defs.TargetPlayer, potion)
	if err != nil {
		return PlayerStats{}, err
	}
	value := func(name string, def float64, integer bool) float64 {
		base, ok := e.lib.Player[name]
		if !ok {
			base = def
		}
		m, ok := agg[name]
		if !ok {
			return base
		}
		return stackValue(base, m, integer)
	}
	return PlayerStats{
		StartingMoney:  value(PlayerStartingMoney, config.StartingMoney, true),
		IncomeRate:     value(PlayerIncomeRate, config.IncomeRate, false),
		QueueBonus:     int(value(PlayerQueueBonus, 0, true)),
		BaseHealth:     value(PlayerBaseHealth, 0, true),
		BountyFraction: value(PlayerBountyFraction, config.BountyFraction, false),
	}, nil
}
