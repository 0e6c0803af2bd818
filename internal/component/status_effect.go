// internal/component/status_effect.go
package component

// BuffKind names a timed modifier. A unit carries at most one buff per kind.
type BuffKind string

const (
	BuffSlow  BuffKind = "slow"
	BuffHaste BuffKind = "haste"
)

// Buff is a timed multiplier on speed and damage. It is removed by a one-shot
// timer owned by the buffed unit, so it disappears with the unit.
type Buff struct {
	Kind         BuffKind
	SpeedFactor  float64
	DamageFactor float64
	Expiry       TimerHandle
}
