// internal/render/flash.go
package render

import (
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

const flashDuration = 120.0 // ms

// FlashTracker remembers recent hits so bodies can blink when struck.
type FlashTracker struct {
	clock   func() float64
	flashes map[types.EntityID]component.DamageFlash
}

func NewFlashTracker(clock func() float64) *FlashTracker {
	return &FlashTracker{clock: clock, flashes: make(map[types.EntityID]component.DamageFlash)}
}

// Attach listens for damage on d.
func (t *FlashTracker) Attach(d *event.Dispatcher) {
	d.Subscribe(event.DamageDealt, t)
}

func (t *FlashTracker) OnEvent(e event.Event) {
	data, ok := e.Data.(event.DamageData)
	if !ok || data.Amount == 0 {
		return
	}
	t.flashes[data.Target] = component.DamageFlash{
		Start:    t.clock(),
		Duration: flashDuration,
		Heal:     data.Amount < 0,
	}
}

// Flash returns the live flash on id, if any.
func (t *FlashTracker) Flash(id types.EntityID) (component.DamageFlash, bool) {
	f, ok := t.flashes[id]
	if !ok || f.Intensity(t.clock()) <= 0 {
		return component.DamageFlash{}, false
	}
	return f, true
}

// Sweep drops finished flashes.
func (t *FlashTracker) Sweep() {
	now := t.clock()
	for id, f := range t.flashes {
		if f.Intensity(now) <= 0 {
			delete(t.flashes, id)
		}
	}
}

func (t *FlashTracker) Len() int {
	return len(t.flashes)
}
