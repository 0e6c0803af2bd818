package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 10.0, Lerp(10, 20, 0))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 1.0, Clamp01(3))
	assert.Equal(t, 0.0, Clamp01(-1))
}

func TestChooseWeighted(t *testing.T) {
	rng := NewPRNGService(3)
	assert.Equal(t, "", rng.ChooseWeighted(nil))
	assert.Equal(t, "a", rng.ChooseWeighted([]WeightedChoice{{ID: "a"}, {ID: "b"}}))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		seen[rng.ChooseWeighted([]WeightedChoice{{ID: "x", Weight: 1}, {ID: "skip", Weight: 0}, {ID: "y", Weight: 3}})]++
	}
	assert.Zero(t, seen["skip"])
	assert.Positive(t, seen["x"])
	assert.Greater(t, seen["y"], seen["x"])
}
