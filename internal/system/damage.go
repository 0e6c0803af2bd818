// internal/system/damage.go
package system

import (
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

// KillObserver is told about a death before the victim's slot is recycled.
type KillObserver interface {
	OnKill(victim *component.Unit, killer types.Faction)
}

// DamageSystem changes health and handles death.
type DamageSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	animator        Animator
	logger          *zap.Logger
	observers       []KillObserver
}

func NewDamageSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, animator Animator, logger *zap.Logger) *DamageSystem {
	return &DamageSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		animator:        animator,
		logger:          logger,
	}
}

func (s *DamageSystem) AddKillObserver(o KillObserver) {
	s.observers = append(s.observers, o)
}

// Apply subtracts amount from target's health. It reports whether the hit
// was lethal.
func (s *DamageSystem) Apply(source types.EntityID, by types.Faction, target *component.Unit, amount float64) bool {
	if !target.Alive() || amount <= 0 {
		return false
	}
	target.Health -= amount
	if target.Health < 0 {
		target.Health = 0
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.DamageDealt, Data: event.DamageData{
		Source:  source,
		Target:  target.ID,
		Faction: target.Faction,
		Amount:  amount,
		Health:  target.Health,
	}})
	if target.Health <= 0 {
		s.Kill(target, by)
		return true
	}
	return false
}

// Heal restores up to amount, never above max health, and returns the
// amount actually restored.
func (s *DamageSystem) Heal(source types.EntityID, target *component.Unit, amount float64) float64 {
	if !target.Alive() || amount <= 0 {
		return 0
	}
	healed := min(amount, target.Stats.MaxHealth-target.Health)
	if healed <= 0 {
		return 0
	}
	target.Health += healed
	s.eventDispatcher.Dispatch(event.Event{Type: event.DamageDealt, Data: event.DamageData{
		Source:  source,
		Target:  target.ID,
		Faction: target.Faction,
		Amount:  -healed,
		Health:  target.Health,
	}})
	return healed
}

// Kill moves u to Dead. Every timer it owns is cancelled before anything
// else happens, so none of its callbacks can run again. The unit leaves all
// groups and pooled units return to their arena.
func (s *DamageSystem) Kill(u *component.Unit, killer types.Faction) {
	if !u.Active || u.State == component.StateDead {
		return
	}
	u.Timers.CancelAll()
	u.Action = 0
	u.Health = 0
	transition(s.animator, u, component.StateDead)
	u.Active = false

	for _, o := range s.observers {
		o.OnKill(u, killer)
	}

	eventType := event.UnitDied
	if u.IsBase() {
		eventType = event.BaseDestroyed
	}
	s.eventDispatcher.Dispatch(event.Event{Type: eventType, Data: event.UnitDiedData{
		ID:      u.ID,
		Type:    u.Type,
		Faction: u.Faction,
		Killer:  killer,
		Cost:    u.Stats.Cost,
	}})
	s.logger.Debug("unit died",
		zap.Uint64("id", uint64(u.ID)),
		zap.String("type", u.Type),
		zap.Stringer("faction", u.Faction),
		zap.Stringer("killer", killer))

	s.ecs.ReleaseUnit(u)
}
