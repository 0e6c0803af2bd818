// internal/ui/policy_indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-lane-defense/internal/strategy"
)

var policyColors = map[strategy.Policy]color.RGBA{
	strategy.PolicyIdle:      {120, 120, 120, 255},
	strategy.PolicyAttack:    {220, 60, 60, 255},
	strategy.PolicyDefend:    {70, 130, 180, 255},
	strategy.PolicyDesperate: {194, 120, 40, 255},
}

// PolicyIndicator is a circle colored by the opponent's current posture.
// It pulses briefly whenever the posture changes.
type PolicyIndicator struct {
	X, Y       float32
	Radius     float32
	last       strategy.Policy
	lastChange time.Time
}

func NewPolicyIndicator(x, y, radius float32) *PolicyIndicator {
	return &PolicyIndicator{X: x, Y: y, Radius: radius}
}

func (i *PolicyIndicator) Draw(screen *ebiten.Image, p strategy.Policy) {
	if p != i.last {
		i.last = p
		i.lastChange = time.Now()
	}
	elapsed := time.Since(i.lastChange).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, r, policyColors[p], true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
