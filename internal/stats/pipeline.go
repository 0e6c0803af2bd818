package stats

import "go-lane-defense/internal/defs"

// Loadout is what a controller owns going into a match.
type Loadout struct {
	Owned  []string // upgrade and construction ids
	Potion string   // active potion id, empty when none
}

// Pipeline composes the resolver and the upgrade engine into final stats.
type Pipeline struct {
	Resolver *Resolver
	Engine   *Engine
}

// Unit returns fresh, fully upgraded stats for one spawn of unitType.
func (p Pipeline) Unit(unitType string, loadout Loadout) (Resolved, error) {
	base, err := p.Resolver.Resolve(unitType)
	if err != nil {
		return Resolved{}, err
	}
	agg, err := p.Engine.AggregateForTags(loadout.Owned, defs.TargetUnit, loadout.Potion, base.Tags)
	if err != nil {
		return Resolved{}, err
	}
	return agg.Apply(base), nil
}

// Player returns the controller's economy stats.
func (p Pipeline) Player(loadout Loadout) (PlayerStats, error) {
	return p.Engine.PlayerStats(loadout.Owned, loadout.Potion)
}
