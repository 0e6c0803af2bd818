// internal/system/behavior.go
package system

import (
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/stats"
)

// Support effect names understood by support units.
const (
	SupportHeal  = "heal"
	SupportHaste = "haste"
)

// ProfileFor derives the behaviour data of a unit from its resolved stats.
// An unknown behavior name falls back to melee and reports false.
func ProfileFor(r stats.Resolved) (component.Profile, bool) {
	variant, ok := component.ParseVariant(r.Behavior)
	p := component.Profile{Variant: variant}
	switch variant {
	case component.VariantMelee, component.VariantSelfDestruct:
		p.Reach = r.AttackRange
		p.Contact = true
	case component.VariantRanged:
		p.Reach = r.AttackRange
		p.BaseReach = r.AttackRange
		p.Fires = true
	case component.VariantSupport:
		p.Reach = r.SpecialRange
		p.Allies = true
	case component.VariantBase:
		p.Reach = r.AttackRange
		p.Fires = true
		p.Stationary = true
	}
	return p, ok
}

// BehaviorSystem is the single state machine driver shared by every unit
// variant and both bases.
type BehaviorSystem struct {
	ecs         *entity.ECS
	targeting   *TargetingSystem
	damage      *DamageSystem
	projectiles *ProjectileSystem
	effects     *StatusEffectSystem
	animator    Animator
	logger      *zap.Logger
}

func NewBehaviorSystem(ecs *entity.ECS, targeting *TargetingSystem, damage *DamageSystem,
	projectiles *ProjectileSystem, effects *StatusEffectSystem, animator Animator, logger *zap.Logger) *BehaviorSystem {
	return &BehaviorSystem{
		ecs:         ecs,
		targeting:   targeting,
		damage:      damage,
		projectiles: projectiles,
		effects:     effects,
		animator:    animator,
		logger:      logger,
	}
}

// Activate moves a freshly spawned unit out of Waiting.
func (s *BehaviorSystem) Activate(u *component.Unit) {
	if u.Profile.Stationary {
		transition(s.animator, u, component.StateIdle)
		return
	}
	transition(s.animator, u, component.StateWalking)
}

// Update runs due timers, then the per-state step, for every live unit and
// both bases.
func (s *BehaviorSystem) Update(deltaTime float64) {
	s.ecs.EachUnit(func(u *component.Unit) {
		s.updateUnit(u, deltaTime)
	})
	for _, b := range s.ecs.Bases {
		if b != nil {
			s.updateUnit(b, deltaTime)
		}
	}
}

func (s *BehaviorSystem) updateUnit(u *component.Unit, deltaTime float64) {
	if !u.Alive() {
		return
	}
	u.Timers.Update(deltaTime)
	if !u.Alive() {
		return
	}

	switch u.State {
	case component.StateWalking, component.StateIdle:
		s.seek(u, deltaTime)
	case component.StateShooting, component.StateSupporting:
		s.targeting.Refresh(u)
	}
}

// seek looks for something to do and otherwise walks, or waits when the
// lane ahead is blocked.
func (s *BehaviorSystem) seek(u *component.Unit, deltaTime float64) {
	if s.acquire(u) {
		return
	}
	if u.Profile.Stationary || s.targeting.Ahead(u) {
		transition(s.animator, u, component.StateIdle)
		return
	}
	transition(s.animator, u, component.StateWalking)
	u.Pos.X = clampLane(u.Pos.X + u.Stats.Speed*u.SpeedMultiplier()*deltaTime*u.Direction)
}

func (s *BehaviorSystem) acquire(u *component.Unit) bool {
	switch {
	case u.Profile.Contact:
		t, ok := s.targeting.Contact(u)
		if !ok {
			return false
		}
		if u.Profile.Variant == component.VariantSelfDestruct {
			s.detonate(u, t)
			return true
		}
		u.Target = t.ID
		s.engage(u, component.StateAttacking)
	case u.Profile.Allies:
		s.targeting.Refresh(u)
		t, ok := s.supportTarget(u)
		if !ok {
			return false
		}
		u.Target = t.ID
		s.engage(u, component.StateSupporting)
	default:
		s.targeting.Refresh(u)
		if _, ok := s.targeting.NextTarget(u); !ok {
			return false
		}
		s.engage(u, component.StateShooting)
	}
	return true
}

// engage enters an active state and starts its one repeating timer.
func (s *BehaviorSystem) engage(u *component.Unit, st component.UnitState) {
	transition(s.animator, u, st)
	u.Timers.Cancel(u.Action)
	id := u.ID
	cadence := u.Profile.Cadence(u.Stats.AttackSpeed, u.Stats.SpecialSpeed)
	u.Action = u.Timers.Every(cadence, func() {
		if !u.Active || u.ID != id {
			return
		}
		s.act(u)
	})
}

// disengage cancels the active timer and goes back to walking.
func (s *BehaviorSystem) disengage(u *component.Unit) {
	u.Timers.Cancel(u.Action)
	u.Action = 0
	u.Target = 0
	if u.Profile.Stationary {
		transition(s.animator, u, component.StateIdle)
		return
	}
	transition(s.animator, u, component.StateWalking)
}

// act is the body of the repeating timer. A stale target is discarded and
// the next candidate is tried in the same call.
func (s *BehaviorSystem) act(u *component.Unit) {
	target, ok := s.currentTarget(u)
	if !ok {
		s.disengage(u)
		return
	}
	switch {
	case u.Profile.Allies:
		s.support(u, target)
	case u.Profile.Fires:
		s.projectiles.Fire(u, target, s.attackDamage(u))
	default:
		s.damage.Apply(u.ID, u.Faction, target, s.attackDamage(u))
	}
}

func (s *BehaviorSystem) currentTarget(u *component.Unit) (*component.Unit, bool) {
	switch {
	case u.Profile.Contact:
		if t, ok := s.ecs.Unit(u.Target); ok && s.targeting.Touching(u, t) {
			return t, true
		}
		u.Target = 0
		t, ok := s.targeting.Contact(u)
		if ok {
			u.Target = t.ID
		}
		return t, ok
	case u.Profile.Allies:
		if t, ok := s.ecs.Unit(u.Target); ok && s.targeting.InRange(u, t) && s.needsSupport(u, t) {
			return t, true
		}
		u.Target = 0
		t, ok := s.supportTarget(u)
		if ok {
			u.Target = t.ID
		}
		return t, ok
	default:
		return s.targeting.NextTarget(u)
	}
}

// supportTarget walks the ally list, discarding entries that are gone or do
// not need the effect.
func (s *BehaviorSystem) supportTarget(u *component.Unit) (*component.Unit, bool) {
	for len(u.Targets) > 0 {
		t, ok := s.ecs.Unit(u.Targets[0])
		if ok && s.needsSupport(u, t) {
			return t, true
		}
		u.Targets = append(u.Targets[:0], u.Targets[1:]...)
	}
	return nil, false
}

func (s *BehaviorSystem) needsSupport(u, t *component.Unit) bool {
	if !t.Alive() || t.ID == u.ID {
		return false
	}
	if u.Stats.SupportEffect == SupportHaste {
		return true
	}
	return t.Wounded()
}

func (s *BehaviorSystem) support(u, t *component.Unit) {
	switch u.Stats.SupportEffect {
	case SupportHaste:
		s.effects.Apply(t, component.BuffHaste, config.HasteFactor, 1, config.HasteDuration)
	case SupportHeal:
		s.damage.Heal(u.ID, t, u.Stats.SpecialDamage)
	default:
		s.logger.Debug("unknown support effect, healing instead",
			zap.String("type", u.Type), zap.String("effect", u.Stats.SupportEffect))
		s.damage.Heal(u.ID, t, u.Stats.SpecialDamage)
	}
}

// detonate spends a self-destruct unit on its contact target.
func (s *BehaviorSystem) detonate(u, t *component.Unit) {
	s.effects.Apply(t, component.BuffSlow, config.SlowFactor, 1, config.SlowDuration)
	dmg := u.Stats.SpecialDamage
	if dmg == 0 {
		dmg = u.Stats.AttackDamage
	}
	s.damage.Apply(u.ID, u.Faction, t, dmg*u.DamageMultiplier())
	s.damage.Kill(u, u.Faction)
}

func (s *BehaviorSystem) attackDamage(u *component.Unit) float64 {
	return u.Stats.AttackDamage * u.DamageMultiplier()
}
