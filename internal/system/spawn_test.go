package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

func TestEnqueueDeductsFullCostUpFront(t *testing.T) {
	h := newHarness(t)
	p := h.ecs.Players[types.FactionBlue]

	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))
	assert.Equal(t, 950.0, p.Money)
	assert.Equal(t, 1, p.Queue.Len())

	_, err := h.spawn.Seat(types.FactionRed, Seat{Loadout: stats.Loadout{Owned: []string{"discount"}}})
	require.NoError(t, err)
	require.NoError(t, h.spawn.Enqueue(types.FactionRed, "grunt"))
	assert.Equal(t, 960.0, h.ecs.Players[types.FactionRed].Money, "upgraded cost")
}

func TestEnqueueRejections(t *testing.T) {
	h := newHarness(t)
	_, err := h.spawn.Seat(types.FactionBlue, Seat{Human: true, Unlocked: map[string]bool{"grunt": true}})
	require.NoError(t, err)
	p := h.ecs.Players[types.FactionBlue]
	require.Equal(t, config.HumanQueueCapacity, p.Queue.Capacity)

	assert.ErrorIs(t, h.spawn.Enqueue(types.FactionBlue, "dragon"), ErrUnknownUnitType)
	assert.ErrorIs(t, h.spawn.Enqueue(types.FactionBlue, "base"), ErrUnknownUnitType, "bases cannot be queued")
	assert.ErrorIs(t, h.spawn.Enqueue(types.FactionBlue, "archer"), ErrLocked)

	p.Money = 10
	assert.ErrorIs(t, h.spawn.Enqueue(types.FactionBlue, "grunt"), ErrInsufficientFunds)
	assert.Equal(t, 10.0, p.Money)
	assert.Equal(t, 0, p.Queue.Len())

	p.Money = 1000
	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))
	assert.ErrorIs(t, h.spawn.Enqueue(types.FactionBlue, "grunt"), ErrQueueFull)
	assert.Equal(t, 950.0, p.Money)
	assert.Equal(t, 1, p.Queue.Len())
}

func TestReleaseWaitsMinimumTicks(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))

	h.spawn.Update(1000)
	h.spawn.Update(1000)
	assert.Equal(t, 0, h.ecs.CountUnits(types.FactionBlue))

	h.spawn.Update(1000)
	assert.Equal(t, 1, h.ecs.CountUnits(types.FactionBlue))
	assert.Equal(t, 0, h.ecs.Players[types.FactionBlue].Queue.Len())

	spawned := h.eventsOf(event.UnitSpawned)
	require.Len(t, spawned, 1)
	data := spawned[0].Data.(event.UnitSpawnedData)
	assert.Equal(t, "grunt", data.Type)
	assert.Equal(t, SpawnX(types.FactionBlue), data.X)

	u, ok := h.ecs.Unit(data.ID)
	require.True(t, ok)
	assert.Equal(t, component.StateWalking, u.State)
	assert.Equal(t, 1.0, u.Direction)
	assert.Equal(t, 100.0, u.Health)
}

func TestReleaseWaitsForSpawnTime(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.spawn.Enqueue(types.FactionRed, "slowpoke"))

	for i := 0; i < 6; i++ {
		h.spawn.Update(16)
	}
	assert.Equal(t, 0, h.ecs.CountUnits(types.FactionRed), "96 of 100 ms elapsed")

	h.spawn.Update(16)
	assert.Equal(t, 1, h.ecs.CountUnits(types.FactionRed))
}

func TestBlockedLaneWithholdsRelease(t *testing.T) {
	h := newHarness(t)
	blocker := h.place(types.FactionBlue, "grunt", SpawnX(types.FactionBlue))
	p := h.ecs.Players[types.FactionBlue]
	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))
	require.Equal(t, 950.0, p.Money)

	for i := 0; i < 10; i++ {
		h.spawn.Update(100)
	}
	assert.Equal(t, 1, p.Queue.Len(), "not released")
	assert.Equal(t, 950.0, p.Money, "not charged twice")
	assert.Equal(t, 1, h.ecs.CountUnits(types.FactionBlue))

	blocker.Pos.X += 200
	h.spawn.Update(100)
	assert.Equal(t, 0, p.Queue.Len())
	assert.Equal(t, 2, h.ecs.CountUnits(types.FactionBlue))
	assert.Equal(t, 950.0, p.Money)
}

func TestPoolExhaustionRetriesNextTick(t *testing.T) {
	h := newHarnessWithPools(t, 1, config.ProjectilePoolSize)
	p := h.ecs.Players[types.FactionBlue]
	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))
	require.NoError(t, h.spawn.Enqueue(types.FactionBlue, "grunt"))

	for i := 0; i < 3; i++ {
		h.spawn.Update(100)
	}
	require.Equal(t, 1, h.ecs.CountUnits(types.FactionBlue))
	spawned := h.eventsOf(event.UnitSpawned)[0].Data.(event.UnitSpawnedData)
	first, ok := h.ecs.Unit(spawned.ID)
	require.True(t, ok)
	first.Pos.X = 800

	for i := 0; i < 5; i++ {
		h.spawn.Update(100)
	}
	assert.Equal(t, 1, p.Queue.Len(), "still waiting for a free slot")

	h.damage.Kill(first, types.FactionRed)
	h.spawn.Update(100)
	assert.Equal(t, 0, p.Queue.Len())
	assert.Equal(t, 1, h.ecs.CountUnits(types.FactionBlue))
}

func TestPassiveIncome(t *testing.T) {
	h := newHarness(t)
	p := h.ecs.Players[types.FactionBlue]
	p.Stats.IncomeRate = 0.5

	h.spawn.Update(100)
	assert.Equal(t, 1050.0, p.Money)
}

func TestSpawnBaseAddsHealthBonus(t *testing.T) {
	h := newHarness(t)
	h.ecs.Players[types.FactionRed].Stats.BaseHealth = 500

	b, err := h.spawn.SpawnBase(types.FactionRed)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, b.Health)
	assert.Equal(t, 1500.0, b.Stats.MaxHealth)
	assert.True(t, b.IsBase())
	assert.Equal(t, BaseX(types.FactionRed), b.Pos.X)
	assert.True(t, h.ecs.BaseGroups[types.FactionRed].Has(b.ID))
}
