// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/spatial"
	"go-lane-defense/internal/types"
)

// UnitPool and ProjectilePool are the arenas the simulation draws from.
type (
	UnitPool       = Pool[component.Unit, *component.Unit]
	ProjectilePool = Pool[component.Projectile, *component.Projectile]
)

type unitRef struct {
	unitType string
	slot     int
}

// ECS owns every entity of one match.
type ECS struct {
	GameTime float64
	NextID   types.EntityID

	UnitPools   map[string]*UnitPool // one arena per unit type
	Projectiles *ProjectilePool
	Bases       [2]*component.Unit // indexed by faction
	Players     [2]*component.PlayerStateComponent

	UnitGroups       [2]*spatial.Group
	BaseGroups       [2]*spatial.Group
	ProjectileGroups [2]*spatial.Group

	poolSize    int
	units       map[types.EntityID]unitRef
	projectiles map[types.EntityID]int
}

func NewECS() *ECS {
	return NewECSWithPools(config.UnitPoolSize, config.ProjectilePoolSize)
}

// NewECSWithPools sizes the arenas explicitly.
func NewECSWithPools(unitsPerType, projectiles int) *ECS {
	ecs := &ECS{
		NextID:      1,
		UnitPools:   make(map[string]*UnitPool),
		Projectiles: NewPool[component.Projectile](projectiles),
		poolSize:    unitsPerType,
		units:       make(map[types.EntityID]unitRef),
		projectiles: make(map[types.EntityID]int),
	}
	for _, f := range types.Factions {
		ecs.UnitGroups[f] = spatial.NewGroup(f.String() + "-units")
		ecs.BaseGroups[f] = spatial.NewGroup(f.String() + "-base")
		ecs.ProjectileGroups[f] = spatial.NewGroup(f.String() + "-projectiles")
	}
	return ecs
}

// NewEntity issues the next identity. Identities are never reused within a
// match.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Pool returns the arena for unitType, creating it on first use.
func (ecs *ECS) Pool(unitType string) *UnitPool {
	p, ok := ecs.UnitPools[unitType]
	if !ok {
		p = NewPool[component.Unit](ecs.poolSize)
		ecs.UnitPools[unitType] = p
	}
	return p
}

// AcquireUnit draws a reset unit of unitType with a fresh identity.
func (ecs *ECS) AcquireUnit(unitType string) (*component.Unit, bool) {
	u, slot, ok := ecs.Pool(unitType).Acquire()
	if !ok {
		return nil, false
	}
	u.ID = ecs.NewEntity()
	u.Type = unitType
	ecs.units[u.ID] = unitRef{unitType: unitType, slot: slot}
	return u, true
}

// ReleaseUnit detaches u from every group and returns its slot. Bases are
// only detached.
func (ecs *ECS) ReleaseUnit(u *component.Unit) {
	for _, f := range types.Factions {
		ecs.UnitGroups[f].Remove(u.ID)
		ecs.BaseGroups[f].Remove(u.ID)
	}
	ref, ok := ecs.units[u.ID]
	if !ok {
		return
	}
	delete(ecs.units, u.ID)
	ecs.Pool(ref.unitType).Release(ref.slot)
}

// Unit finds a live pooled unit or base by identity.
func (ecs *ECS) Unit(id types.EntityID) (*component.Unit, bool) {
	if ref, ok := ecs.units[id]; ok {
		u, ok := ecs.Pool(ref.unitType).Get(ref.slot)
		if ok && u.ID == id {
			return u, true
		}
		return nil, false
	}
	for _, b := range ecs.Bases {
		if b != nil && b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// EachUnit visits the pooled units in use, ordered by identity so a tick is
// deterministic regardless of pool layout.
func (ecs *ECS) EachUnit(fn func(u *component.Unit)) {
	ids := make([]types.EntityID, 0, len(ecs.units))
	for id := range ecs.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if u, ok := ecs.Unit(id); ok {
			fn(u)
		}
	}
}

// CountUnits is the number of live pooled units of faction f.
func (ecs *ECS) CountUnits(f types.Faction) int {
	return ecs.UnitGroups[f].Len()
}

// AcquireProjectile draws a reset projectile with a fresh identity.
func (ecs *ECS) AcquireProjectile() (*component.Projectile, bool) {
	p, slot, ok := ecs.Projectiles.Acquire()
	if !ok {
		return nil, false
	}
	p.ID = ecs.NewEntity()
	ecs.projectiles[p.ID] = slot
	return p, true
}

// ReleaseProjectile detaches p from its group and recycles the slot.
func (ecs *ECS) ReleaseProjectile(p *component.Projectile) {
	for _, f := range types.Factions {
		ecs.ProjectileGroups[f].Remove(p.ID)
	}
	slot, ok := ecs.projectiles[p.ID]
	if !ok {
		return
	}
	delete(ecs.projectiles, p.ID)
	ecs.Projectiles.Release(slot)
}

// EachProjectile visits the projectiles in flight in slot order.
func (ecs *ECS) EachProjectile(fn func(p *component.Projectile)) {
	ecs.Projectiles.Each(func(_ int, p *component.Projectile) { fn(p) })
}
