package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-lane-defense/internal/component"
)

func TestToRoman(t *testing.T) {
	tests := map[int]string{0: "", 1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range tests {
		assert.Equal(t, want, toRoman(n), "n=%d", n)
	}
}

func TestHeadProgress(t *testing.T) {
	q := &component.SpawnQueue{Capacity: 3}
	assert.Zero(t, HeadProgress(q))

	q.Push(component.QueueEntry{Type: "knight", SpawnTime: 1000})
	assert.Zero(t, HeadProgress(q), "timer not started")

	q.Started, q.Timer = true, 250
	assert.InDelta(t, 0.75, HeadProgress(q), 1e-9)

	q.Timer = -40
	assert.Equal(t, 1.0, HeadProgress(q))
}

func TestUnitBarHitTesting(t *testing.T) {
	bar := NewUnitBar(10, 10, []string{"archer", "knight"}, nil)

	got, ok := bar.At(20, 20)
	assert.True(t, ok)
	assert.Equal(t, "archer", got)

	got, ok = bar.At(10+unitButtonWidth+unitButtonGap+1, 20)
	assert.True(t, ok)
	assert.Equal(t, "knight", got)

	_, ok = bar.At(5, 5)
	assert.False(t, ok)

	got, ok = bar.ByHotkey(2)
	assert.True(t, ok)
	assert.Equal(t, "knight", got)
}

func TestButtonsHitCircle(t *testing.T) {
	speed := NewSpeedButton(100, 100, 10, nil)
	assert.True(t, speed.Contains(110, 105))
	assert.False(t, speed.Contains(130, 100))

	pause := NewPauseButton(200, 100, 10, nil, nil)
	pause.TogglePause()
	assert.True(t, pause.IsPaused)
	assert.True(t, pause.Contains(200, 110))
}

func TestHealthFraction(t *testing.T) {
	assert.Zero(t, healthFraction(10, 0))
	assert.Zero(t, healthFraction(-5, 100))
	assert.Equal(t, 1.0, healthFraction(150, 100))
	assert.Equal(t, 0.25, healthFraction(25, 100))
}
