// internal/strategy/observe.go
package strategy

import (
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/types"
)

// Observe summarises the lane from f's point of view.
func Observe(ecs *entity.ECS, f types.Faction) Observation {
	obs := Observation{
		EnemyCount:  ecs.CountUnits(f.Opponent()),
		ActiveUnits: ecs.CountUnits(f),
	}
	if b := ecs.Bases[f]; b != nil {
		obs.OwnHealth = b.HealthFraction()
	}
	if b := ecs.Bases[f.Opponent()]; b != nil {
		obs.EnemyHealth = b.HealthFraction()
	}
	if p := ecs.Players[f]; p != nil {
		obs.QueueLen = p.Queue.Len()
		obs.QueueCap = p.Queue.Capacity
	}
	return obs
}
