// internal/system/status_effect.go
package system

import (
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
)

// StatusEffectSystem applies timed buffs and debuffs. Expiry runs on a
// one-shot timer owned by the affected unit, so a buff dies with its unit.
type StatusEffectSystem struct {
	logger *zap.Logger
}

func NewStatusEffectSystem(logger *zap.Logger) *StatusEffectSystem {
	return &StatusEffectSystem{logger: logger}
}

// Apply adds a buff of kind to u for duration ms. Reapplying the same kind
// replaces the factors and restarts the clock.
func (s *StatusEffectSystem) Apply(u *component.Unit, kind component.BuffKind, speed, damage, duration float64) {
	if !u.Alive() {
		return
	}
	if old, ok := u.Buff(kind); ok {
		u.Timers.Cancel(old.Expiry)
		u.RemoveBuff(kind)
	}
	id := u.ID
	expiry := u.Timers.After(duration, func() {
		if !u.Active || u.ID != id {
			return
		}
		u.RemoveBuff(kind)
	})
	u.Buffs = append(u.Buffs, component.Buff{
		Kind:         kind,
		SpeedFactor:  speed,
		DamageFactor: damage,
		Expiry:       expiry,
	})
	s.logger.Debug("buff applied",
		zap.Uint64("id", uint64(id)),
		zap.String("kind", string(kind)),
		zap.Float64("duration", duration))
}
