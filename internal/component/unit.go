// internal/component/unit.go
package component

import (
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/spatial"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

// UnitState is the behavioural state of a unit or base.
type UnitState int

const (
	StateWaiting UnitState = iota
	StateWalking
	StateIdle
	StateShooting
	StateAttacking
	StateSupporting
	StateDead
)

func (s UnitState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateWalking:
		return "walking"
	case StateIdle:
		return "idle"
	case StateShooting:
		return "shooting"
	case StateAttacking:
		return "attacking"
	case StateSupporting:
		return "supporting"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit is a live unit or base. Slots are reused through a pool, so every
// field written during a lifetime must be cleared by Reset.
type Unit struct {
	ID        types.EntityID
	Type      string
	Faction   types.Faction
	Direction float64 // +1 or -1, fixed at spawn
	Stats     stats.Resolved
	Health    float64
	Pos       Position
	Width     float64
	Height    float64
	State     UnitState
	Profile   Profile
	Active    bool

	Targets     []types.EntityID // sorted nearest-in-travel-direction first
	Target      types.EntityID   // current melee or support target
	BaseInRange bool
	Action      TimerHandle // repeating timer of the current active state

	Buffs  []Buff
	Timers TimerSet
}

func (u *Unit) EntityID() types.EntityID { return u.ID }

func (u *Unit) Alive() bool { return u.Active && u.Health > 0 }

// Bounds is the collision body.
func (u *Unit) Bounds() spatial.Rect {
	return spatial.RectAround(u.Pos.X, u.Pos.Y, u.Width, u.Height)
}

// Front is the x coordinate of the body edge facing the direction of travel.
func (u *Unit) Front() float64 {
	return u.Pos.X + u.Direction*u.Width/2
}

// HealthFraction is live health over max health, 0 when max health is unset.
func (u *Unit) HealthFraction() float64 {
	if u.Stats.MaxHealth <= 0 {
		return 0
	}
	return u.Health / u.Stats.MaxHealth
}

// Wounded reports whether the unit can be healed.
func (u *Unit) Wounded() bool {
	return u.Alive() && u.Health < u.Stats.MaxHealth
}

// IsBase reports whether the unit is a faction's base.
func (u *Unit) IsBase() bool {
	return u.Profile.Variant == VariantBase
}

// Reset zeroes every transient field so a pooled slot can be reused. The
// target list and buff slices keep their capacity.
func (u *Unit) Reset() {
	u.Timers.Reset()
	targets := u.Targets[:0]
	buffs := u.Buffs[:0]
	*u = Unit{
		Targets: targets,
		Buffs:   buffs,
		Timers:  u.Timers,
		Width:   config.UnitWidth,
		Height:  config.UnitHeight,
	}
}

// Buff looks up an active buff by kind.
func (u *Unit) Buff(kind BuffKind) (*Buff, bool) {
	for i := range u.Buffs {
		if u.Buffs[i].Kind == kind {
			return &u.Buffs[i], true
		}
	}
	return nil, false
}

// RemoveBuff drops a buff without touching its timer.
func (u *Unit) RemoveBuff(kind BuffKind) {
	for i := range u.Buffs {
		if u.Buffs[i].Kind == kind {
			u.Buffs = append(u.Buffs[:i], u.Buffs[i+1:]...)
			return
		}
	}
}

// SpeedMultiplier is the product of every active buff's speed factor.
func (u *Unit) SpeedMultiplier() float64 {
	m := 1.0
	for _, b := range u.Buffs {
		m *= b.SpeedFactor
	}
	return m
}

// DamageMultiplier is the product of every active buff's damage factor.
func (u *Unit) DamageMultiplier() float64 {
	m := 1.0
	for _, b := range u.Buffs {
		m *= b.DamageFactor
	}
	return m
}
