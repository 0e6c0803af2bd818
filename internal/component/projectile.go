// internal/component/projectile.go
package component

import (
	"slices"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/spatial"
	"go-lane-defense/internal/types"
)

// Projectile is a pooled shot in flight.
type Projectile struct {
	ID        types.EntityID
	Faction   types.Faction
	Source    types.EntityID
	Kind      string
	Pos       Position
	Velocity  Velocity
	Damage    float64
	Pierce    int // remaining distinct targets
	HitList   []types.EntityID
	Flight    float64 // ms since launch
	Impacting bool    // waiting for a delayed despawn
	Active    bool
	Timers    TimerSet
}

func (p *Projectile) EntityID() types.EntityID { return p.ID }

func (p *Projectile) Alive() bool { return p.Active && !p.Impacting }

func (p *Projectile) Bounds() spatial.Rect {
	r := config.ProjectileRadius
	return spatial.Rect{X: p.Pos.X - r, Y: p.Pos.Y - r, W: 2 * r, H: 2 * r}
}

// HasHit reports whether id was already damaged by this flight.
func (p *Projectile) HasHit(id types.EntityID) bool {
	return slices.Contains(p.HitList, id)
}

// Reset clears every field touched during a flight.
func (p *Projectile) Reset() {
	p.Timers.Reset()
	hits := p.HitList[:0]
	*p = Projectile{HitList: hits, Timers: p.Timers}
}
