// internal/system/projectile.go
package system

import (
	"math"

	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/spatial"
)

// delayedDespawn lists projectile kinds that linger for an impact effect
// after their last hit.
var delayedDespawn = map[string]bool{
	"bomb": true,
}

// ProjectileSystem launches, moves and resolves projectiles.
type ProjectileSystem struct {
	ecs      *entity.ECS
	damage   *DamageSystem
	animator Animator
	logger   *zap.Logger
}

func NewProjectileSystem(ecs *entity.ECS, damage *DamageSystem, animator Animator, logger *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:      ecs,
		damage:   damage,
		animator: animator,
		logger:   logger,
	}
}

// Fire launches a projectile from attacker's muzzle toward target's current
// centre, offset upwards. It returns nil when the pool is exhausted; the
// shot is skipped.
func (s *ProjectileSystem) Fire(attacker, target *component.Unit, damage float64) *component.Projectile {
	p, ok := s.ecs.AcquireProjectile()
	if !ok {
		s.logger.Debug("projectile pool exhausted, shot skipped",
			zap.Uint64("attacker", uint64(attacker.ID)))
		return nil
	}

	from := attacker.Bounds()
	muzzleX, muzzleY := attacker.Front(), from.CenterY()
	to := target.Bounds()
	dx := to.CenterX() - muzzleX
	dy := to.CenterY() - config.ProjectileOffsetY - muzzleY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dist = attacker.Direction, 1
	}

	p.Faction = attacker.Faction
	p.Source = attacker.ID
	p.Kind = attacker.Stats.Projectile
	p.Pos = component.Position{X: muzzleX, Y: muzzleY}
	p.Velocity = component.Velocity{
		X: dx / dist * config.ProjectileSpeed,
		Y: dy / dist * config.ProjectileSpeed,
	}
	p.Damage = damage
	p.Pierce = max(1, int(attacker.Stats.Pierce))
	p.Active = true

	s.ecs.ProjectileGroups[p.Faction].Add(p)
	s.animator.Play(p.ID, p.Kind, "fly")
	return p
}

// Update moves every projectile and resolves its overlaps with the
// opposing faction's units and base.
func (s *ProjectileSystem) Update(deltaTime float64) {
	s.ecs.EachProjectile(func(p *component.Projectile) {
		p.Timers.Update(deltaTime)
		if !p.Alive() {
			return
		}

		p.Pos.X += p.Velocity.X * deltaTime
		p.Pos.Y += p.Velocity.Y * deltaTime
		p.Flight += deltaTime
		if p.Pos.X < 0 || p.Pos.X > config.LaneLength || p.Pos.Y > config.GroundY ||
			p.Pos.Y < 0 || p.Flight > config.ProjectileMaxFlight {
			s.Despawn(p)
			return
		}

		opp := p.Faction.Opponent()
		hit := func(b spatial.Body) {
			if t, ok := b.(*component.Unit); ok {
				s.OnHit(p, t)
			}
		}
		spatial.Overlap(p.Bounds(), s.ecs.UnitGroups[opp], hit)
		if p.Alive() {
			spatial.Overlap(p.Bounds(), s.ecs.BaseGroups[opp], hit)
		}
	})
}

// OnHit resolves one contact. A target already in the hit list is ignored,
// so repeated overlap reports within a flight damage it once. It reports
// whether damage was applied.
func (s *ProjectileSystem) OnHit(p *component.Projectile, target *component.Unit) bool {
	if !p.Alive() || !target.Alive() || p.HasHit(target.ID) {
		return false
	}
	p.HitList = append(p.HitList, target.ID)
	p.Pierce--
	s.damage.Apply(p.Source, p.Faction, target, p.Damage)
	if p.Pierce <= 0 {
		s.finish(p)
	}
	return true
}

func (s *ProjectileSystem) finish(p *component.Projectile) {
	if !delayedDespawn[p.Kind] {
		s.Despawn(p)
		return
	}
	p.Impacting = true
	p.Velocity = component.Velocity{}
	s.ecs.ProjectileGroups[p.Faction].Remove(p.ID)
	s.animator.Play(p.ID, p.Kind, "impact")
	id := p.ID
	p.Timers.After(config.ImpactDelay, func() {
		if p.Active && p.ID == id {
			s.Despawn(p)
		}
	})
}

// Despawn detaches p and returns it to the pool, clearing its hit list and
// counters.
func (s *ProjectileSystem) Despawn(p *component.Projectile) {
	if !p.Active {
		return
	}
	s.ecs.ReleaseProjectile(p)
}
