// internal/render/animation.go
package render

import "go-lane-defense/internal/types"

// Animation is the clip an entity is currently playing.
type Animation struct {
	UnitType string
	State    string
	Since    float64 // game time the clip started, ms
}

// AnimationTracker remembers the latest clip per entity. It is the animator
// handed to the simulation when a window is open.
type AnimationTracker struct {
	clock func() float64
	clips map[types.EntityID]Animation
}

// NewAnimationTracker stamps clips with clock, usually the game time.
func NewAnimationTracker(clock func() float64) *AnimationTracker {
	return &AnimationTracker{clock: clock, clips: make(map[types.EntityID]Animation)}
}

// SetClock replaces the time source, for trackers created before the game.
func (t *AnimationTracker) SetClock(clock func() float64) {
	t.clock = clock
}

func (t *AnimationTracker) Play(id types.EntityID, unitType, state string) {
	now := 0.0
	if t.clock != nil {
		now = t.clock()
	}
	t.clips[id] = Animation{UnitType: unitType, State: state, Since: now}
}

// Clip returns the clip of id, if any.
func (t *AnimationTracker) Clip(id types.EntityID) (Animation, bool) {
	a, ok := t.clips[id]
	return a, ok
}

// Sweep forgets every entity keep rejects.
func (t *AnimationTracker) Sweep(keep func(id types.EntityID) bool) {
	for id := range t.clips {
		if !keep(id) {
			delete(t.clips, id)
		}
	}
}

func (t *AnimationTracker) Len() int {
	return len(t.clips)
}
