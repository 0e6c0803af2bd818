package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

func TestKillPaysBountyAndExperience(t *testing.T) {
	h := newHarness(t)
	victim := h.place(types.FactionRed, "grunt", 700)
	victim.Stats.Cost = 300

	h.damage.Kill(victim, types.FactionBlue)

	p := h.ecs.Players[types.FactionBlue]
	assert.Equal(t, 1150.0, p.Money)
	assert.Equal(t, 1, p.Kills)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 100.0, p.CurrentXP)
	assert.Equal(t, 300.0, p.XPToNextLevel)

	ups := h.eventsOf(event.LevelUp)
	require.Len(t, ups, 1)
	assert.Equal(t, event.LevelUpData{Faction: types.FactionBlue, Level: 2}, ups[0].Data)
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 300.0, XPForNextLevel(200))
	assert.Equal(t, 450.0, XPForNextLevel(300))
}

func TestMatchOverOnce(t *testing.T) {
	h := newHarness(t)
	h.spawnBases()
	s := NewStateSystem(h.ecs, h.dispatcher, "match-1", zap.NewNop())

	s.Update(16)
	assert.Equal(t, component.PhasePlaying, s.Current())

	h.damage.Apply(0, types.FactionBlue, h.ecs.Bases[types.FactionRed], 5000)
	require.Len(t, h.eventsOf(event.BaseDestroyed), 1)

	s.Update(16)
	s.Update(16)
	assert.Equal(t, component.PhaseOver, s.Current())
	assert.Equal(t, types.FactionBlue, s.Winner())

	over := h.eventsOf(event.MatchOver)
	require.Len(t, over, 1)
	assert.Equal(t, "match-1", over[0].Data.(event.MatchOverData).MatchID)
}
