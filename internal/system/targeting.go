// internal/system/targeting.go
package system

import (
	"sort"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/spatial"
	"go-lane-defense/internal/types"
)

// TargetingSystem answers proximity questions for units and bases. Every
// query runs against the current groups; nothing is cached between ticks.
type TargetingSystem struct {
	ecs *entity.ECS
}

func NewTargetingSystem(ecs *entity.ECS) *TargetingSystem {
	return &TargetingSystem{ecs: ecs}
}

// ahead is the box from the back of u's body to length pixels past its
// front, in the direction of travel.
func ahead(u *component.Unit, length float64) spatial.Rect {
	back := u.Pos.X - u.Direction*u.Width/2
	return strip(back, u.Front()+u.Direction*length)
}

// DetectionVolume is where u looks for targets. Support units look both
// ways; everything else looks ahead.
func (s *TargetingSystem) DetectionVolume(u *component.Unit) spatial.Rect {
	if u.Profile.Allies {
		reach := u.Profile.Reach
		return strip(u.Pos.X-u.Width/2-reach, u.Pos.X+u.Width/2+reach)
	}
	return ahead(u, u.Profile.Reach)
}

// BaseVolume is the second volume that reports the enemy base.
func (s *TargetingSystem) BaseVolume(u *component.Unit) spatial.Rect {
	return ahead(u, u.Profile.BaseReach)
}

// Refresh rebuilds u's target list from a fresh overlap query: opposite
// faction units, or allies for support units, ordered nearest in the
// direction of travel first. Because the list is rebuilt, dead and pooled
// ids cannot survive a refresh. It also recomputes BaseInRange.
func (s *TargetingSystem) Refresh(u *component.Unit) {
	group := s.ecs.UnitGroups[u.Faction.Opponent()]
	if u.Profile.Allies {
		group = s.ecs.UnitGroups[u.Faction]
	}

	u.Targets = u.Targets[:0]
	spatial.Overlap(s.DetectionVolume(u), group, func(b spatial.Body) {
		if b.EntityID() != u.ID {
			u.Targets = append(u.Targets, b.EntityID())
		}
	})
	s.sortTargets(u)

	u.BaseInRange = false
	if u.Profile.BaseReach > 0 {
		spatial.Overlap(s.BaseVolume(u), s.ecs.BaseGroups[u.Faction.Opponent()], func(spatial.Body) {
			u.BaseInRange = true
		})
	}
}

func (s *TargetingSystem) sortTargets(u *component.Unit) {
	type entry struct {
		id types.EntityID
		x  float64
	}
	entries := make([]entry, 0, len(u.Targets))
	for _, id := range u.Targets {
		if t, ok := s.ecs.Unit(id); ok {
			entries = append(entries, entry{id: id, x: t.Pos.X})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].x != entries[j].x {
			if u.Direction >= 0 {
				return entries[i].x < entries[j].x
			}
			return entries[i].x > entries[j].x
		}
		return entries[i].id < entries[j].id
	})
	u.Targets = u.Targets[:0]
	for _, e := range entries {
		u.Targets = append(u.Targets, e.id)
	}
}

// NextTarget returns what a ranged unit or base should shoot now. The enemy
// base wins when it is in range; otherwise stale heads of the list are
// discarded until a live target is found.
func (s *TargetingSystem) NextTarget(u *component.Unit) (*component.Unit, bool) {
	if u.BaseInRange {
		if b := s.ecs.Bases[u.Faction.Opponent()]; b != nil && b.Alive() {
			return b, true
		}
		u.BaseInRange = false
	}
	for len(u.Targets) > 0 {
		if t, ok := s.ecs.Unit(u.Targets[0]); ok && t.Alive() {
			return t, true
		}
		u.Targets = append(u.Targets[:0], u.Targets[1:]...)
	}
	return nil, false
}

// Contact returns the nearest enemy unit or base touching u's body plus its
// reach.
func (s *TargetingSystem) Contact(u *component.Unit) (*component.Unit, bool) {
	region := ahead(u, u.Profile.Reach)
	opp := u.Faction.Opponent()

	var best *component.Unit
	bestDist := 0.0
	consider := func(b spatial.Body) {
		t, ok := b.(*component.Unit)
		if !ok {
			return
		}
		d := (t.Pos.X - u.Pos.X) * u.Direction
		if best == nil || d < bestDist || (d == bestDist && t.ID < best.ID) {
			best, bestDist = t, d
		}
	}
	spatial.Overlap(region, s.ecs.UnitGroups[opp], consider)
	spatial.Overlap(region, s.ecs.BaseGroups[opp], consider)
	return best, best != nil
}

// Touching reports whether t is still within u's melee reach.
func (s *TargetingSystem) Touching(u, t *component.Unit) bool {
	return t.Alive() && ahead(u, u.Profile.Reach).Overlaps(t.Bounds())
}

// InRange reports whether t is still inside u's detection volume.
func (s *TargetingSystem) InRange(u, t *component.Unit) bool {
	return t.Alive() && s.DetectionVolume(u).Overlaps(t.Bounds())
}

// Ahead reports whether the lane directly in front of u is occupied by any
// live body other than u itself.
func (s *TargetingSystem) Ahead(u *component.Unit) bool {
	probe := strip(u.Front(), u.Front()+u.Direction*config.LaneGap)
	for _, f := range types.Factions {
		if spatial.Any(probe, s.ecs.UnitGroups[f], u.ID) || spatial.Any(probe, s.ecs.BaseGroups[f], u.ID) {
			return true
		}
	}
	return false
}

// LaneBlocked reports whether the spawn cell in front of f's base is
// occupied.
func (s *TargetingSystem) LaneBlocked(f types.Faction) bool {
	cell := spatial.RectAround(SpawnX(f), config.GroundY, config.UnitWidth, config.UnitHeight)
	for _, g := range types.Factions {
		if spatial.Any(cell, s.ecs.UnitGroups[g], 0) {
			return true
		}
	}
	return false
}
