package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

func TestAnimationTrackerKeepsLatestClip(t *testing.T) {
	now := 100.0
	tracker := NewAnimationTracker(func() float64 { return now })

	tracker.Play(types.EntityID(1), "knight", "walking")
	now = 250
	tracker.Play(types.EntityID(1), "knight", "attacking")

	clip, ok := tracker.Clip(1)
	assert.True(t, ok)
	assert.Equal(t, Animation{UnitType: "knight", State: "attacking", Since: 250}, clip)
}

func TestAnimationTrackerSweep(t *testing.T) {
	tracker := NewAnimationTracker(nil)
	tracker.Play(1, "knight", "walking")
	tracker.Play(2, "archer", "shooting")

	tracker.Sweep(func(id types.EntityID) bool { return id == 2 })
	assert.Equal(t, 1, tracker.Len())
	_, ok := tracker.Clip(1)
	assert.False(t, ok)
}

func TestCameraFitsLane(t *testing.T) {
	c := NewCamera(config.LaneLength, 1280, 480, 60)

	x, y := c.ToScreen(config.LaneLength, config.GroundY)
	assert.InDelta(t, 1280, x, 1e-3)
	assert.InDelta(t, 420, y, 1e-3)

	wx, wy := c.ToWorld(float64(x), float64(y))
	assert.InDelta(t, config.LaneLength, wx, 1e-3)
	assert.InDelta(t, config.GroundY, wy, 1e-3)
}

func TestFade(t *testing.T) {
	assert.Equal(t, color.RGBA{50, 25, 10, 127}, Fade(color.RGBA{100, 50, 20, 255}, 0.5))
	assert.Equal(t, color.RGBA{}, Fade(color.RGBA{100, 50, 20, 255}, -1))
}

func TestBlend(t *testing.T) {
	a := color.RGBA{0, 100, 200, 255}
	b := color.RGBA{100, 100, 0, 255}
	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 2))
	assert.Equal(t, color.RGBA{50, 100, 100, 255}, Blend(a, b, 0.5))
}

func TestFlashTracker(t *testing.T) {
	now := 1000.0
	flashes := NewFlashTracker(func() float64 { return now })
	d := event.NewDispatcher()
	flashes.Attach(d)

	d.Dispatch(event.Event{Type: event.DamageDealt, Data: event.DamageData{Target: 4, Amount: 12}})
	d.Dispatch(event.Event{Type: event.DamageDealt, Data: event.DamageData{Target: 5, Amount: -6}})
	d.Dispatch(event.Event{Type: event.DamageDealt, Data: event.DamageData{Target: 6}})
	assert.Equal(t, 2, flashes.Len())

	hit, ok := flashes.Flash(4)
	assert.True(t, ok)
	assert.False(t, hit.Heal)
	assert.Equal(t, 1.0, hit.Intensity(now))
	heal, ok := flashes.Flash(5)
	assert.True(t, ok)
	assert.True(t, heal.Heal)

	now += flashDuration / 2
	assert.InDelta(t, 0.5, hit.Intensity(now), 1e-9)

	now += flashDuration
	_, ok = flashes.Flash(4)
	assert.False(t, ok)
	flashes.Sweep()
	assert.Zero(t, flashes.Len())
}
