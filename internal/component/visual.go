// internal/component/visual.go
package component

// DamageFlash marks an entity that was just hit or healed.
type DamageFlash struct {
	Start    float64 // game time of the hit, ms
	Duration float64
	Heal     bool
}

// Intensity fades from 1 at Start to 0 after Duration.
func (f DamageFlash) Intensity(now float64) float64 {
	if f.Duration <= 0 || now < f.Start {
		return 0
	}
	t := 1 - (now-f.Start)/f.Duration
	if t < 0 {
		return 0
	}
	return t
}
