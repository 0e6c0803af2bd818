package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

func TestUnitResetClearsLifetimeState(t *testing.T) {
	u := &Unit{
		ID:          7,
		Type:        "knight",
		Faction:     types.FactionRed,
		Direction:   -1,
		Stats:       stats.Resolved{Type: "knight", MaxHealth: 100},
		Health:      40,
		State:       StateAttacking,
		Active:      true,
		Targets:     []types.EntityID{1, 2, 3},
		Target:      2,
		BaseInRange: true,
		Buffs:       []Buff{{Kind: BuffSlow, SpeedFactor: 0.5, DamageFactor: 1}},
	}
	fired := false
	u.Action = u.Timers.Every(10, func() { fired = true })

	u.Reset()
	u.Timers.Update(100)

	assert.False(t, fired, "timers from the previous lifetime are dropped")
	assert.Zero(t, u.ID)
	assert.Zero(t, u.Direction)
	assert.Empty(t, u.Targets)
	assert.Zero(t, u.Target)
	assert.False(t, u.BaseInRange)
	assert.Empty(t, u.Buffs)
	assert.Equal(t, StateWaiting, u.State)
	assert.False(t, u.Active)
	assert.True(t, u.Stats.IsZero())
	assert.Equal(t, 1.0, u.SpeedMultiplier())
}

func TestUnitBuffMultipliers(t *testing.T) {
	u := &Unit{Buffs: []Buff{
		{Kind: BuffSlow, SpeedFactor: 0.5, DamageFactor: 1},
		{Kind: BuffHaste, SpeedFactor: 1.5, DamageFactor: 2},
	}}
	assert.Equal(t, 0.75, u.SpeedMultiplier())
	assert.Equal(t, 2.0, u.DamageMultiplier())

	u.RemoveBuff(BuffSlow)
	_, ok := u.Buff(BuffSlow)
	assert.False(t, ok)
	assert.Equal(t, 1.5, u.SpeedMultiplier())
}

func TestProjectileResetClearsHitList(t *testing.T) {
	p := &Projectile{ID: 3, Pierce: 2, HitList: []types.EntityID{4, 5}, Active: true, Impacting: true}
	assert.True(t, p.HasHit(5))

	p.Reset()
	assert.False(t, p.HasHit(5))
	assert.Zero(t, p.Pierce)
	assert.False(t, p.Active)
	assert.False(t, p.Impacting)
}

func TestSpawnQueueBounds(t *testing.T) {
	q := SpawnQueue{Capacity: 2}
	assert.True(t, q.Push(QueueEntry{Type: "a"}))
	assert.True(t, q.Push(QueueEntry{Type: "b"}))
	assert.False(t, q.Push(QueueEntry{Type: "c"}))
	assert.Equal(t, 0, q.Space())

	q.Started, q.Ticks = true, 2
	e, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", e.Type)
	assert.False(t, q.Started)
	assert.Zero(t, q.Ticks)

	head, _ := q.Head()
	assert.Equal(t, "b", head.Type)
}
