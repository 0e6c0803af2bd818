package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

func TestProfileForVariants(t *testing.T) {
	ranged, ok := ProfileFor(stats.Resolved{Behavior: "ranged", AttackRange: 200})
	assert.True(t, ok)
	assert.Equal(t, component.Profile{Variant: component.VariantRanged, Reach: 200, BaseReach: 200, Fires: true}, ranged)

	support, _ := ProfileFor(stats.Resolved{Behavior: "support", SpecialRange: 80})
	assert.True(t, support.Allies)
	assert.Equal(t, 80.0, support.Reach)

	unknown, ok := ProfileFor(stats.Resolved{Behavior: "dance", AttackRange: 6})
	assert.False(t, ok)
	assert.Equal(t, component.VariantMelee, unknown.Variant)
	assert.True(t, unknown.Contact)
}

func TestWalkingAdvancesAlongDirection(t *testing.T) {
	h := newHarness(t)
	blue := h.place(types.FactionBlue, "grunt", 600)
	red := h.place(types.FactionRed, "grunt", 1000)

	h.behavior.Update(100)

	assert.InDelta(t, 610, blue.Pos.X, 1e-9)
	assert.InDelta(t, 990, red.Pos.X, 1e-9)
	assert.Equal(t, component.StateWalking, blue.State)
	assert.Equal(t, []string{"walking"}, h.animator.plays[blue.ID])
}

func TestBlockedUnitIdles(t *testing.T) {
	h := newHarness(t)
	follower := h.place(types.FactionBlue, "grunt", 566)
	h.place(types.FactionBlue, "grunt", 600)

	h.behavior.Update(1)

	assert.Equal(t, component.StateIdle, follower.State)
	assert.Equal(t, 566.0, follower.Pos.X)
}

func TestMeleeFightKillsAndReturnsToWalking(t *testing.T) {
	h := newHarness(t)
	blue := h.place(types.FactionBlue, "grunt", 600)
	red := h.place(types.FactionRed, "grunt", 634)
	red.Health = 10
	redID := red.ID

	h.behavior.Update(1)
	assert.Equal(t, component.StateAttacking, blue.State)
	assert.Equal(t, component.StateAttacking, red.State)
	assert.True(t, blue.Timers.Active(blue.Action))

	h.behavior.Update(100)
	assert.False(t, red.Active)
	assert.Equal(t, 100.0, blue.Health, "the victim's timer never fired")

	died := h.eventsOf(event.UnitDied)
	require.Len(t, died, 1)
	data := died[0].Data.(event.UnitDiedData)
	assert.Equal(t, redID, data.ID)
	assert.Equal(t, types.FactionRed, data.Faction)
	assert.Equal(t, types.FactionBlue, data.Killer)

	h.behavior.Update(100)
	assert.Equal(t, component.StateWalking, blue.State, "no target left")
	assert.False(t, blue.Timers.Active(blue.Action))
	assert.Zero(t, blue.Action)
}

func TestKilledMidCadenceNeverActsAgain(t *testing.T) {
	h := newHarness(t)
	blue := h.place(types.FactionBlue, "grunt", 600)
	red := h.place(types.FactionRed, "grunt", 634)
	// A damage-over-time tick scheduled ahead of red's attack timer.
	red.Timers.After(50, func() { h.damage.Kill(red, types.FactionBlue) })

	h.behavior.Update(1)
	require.Equal(t, component.StateAttacking, red.State)

	h.behavior.Update(100)
	assert.False(t, red.Active)
	assert.Equal(t, 100.0, blue.Health, "red's attack was due in the same tick but was cancelled")

	h.behavior.Update(100)
	h.behavior.Update(100)
	assert.Equal(t, 100.0, blue.Health)
}

func TestSelfDestructConsumesItself(t *testing.T) {
	h := newHarness(t)
	bomber := h.place(types.FactionBlue, "bomber", 600)
	target := h.place(types.FactionRed, "grunt", 634)
	bomberID := bomber.ID

	h.behavior.Update(1)

	assert.False(t, bomber.Active)
	assert.Equal(t, 20.0, target.Health)
	slow, ok := target.Buff(component.BuffSlow)
	require.True(t, ok)
	assert.Equal(t, 0.5, slow.SpeedFactor)
	assert.Equal(t, 1000.0, h.ecs.Players[types.FactionRed].Money, "no bounty for a self-destruct")
	assert.Equal(t, 1000.0, h.ecs.Players[types.FactionBlue].Money)
	assert.NotContains(t, h.animator.plays[bomberID], "attacking", "no attack timer was scheduled")
	assert.Contains(t, h.animator.plays[bomberID], "dead")
}

func TestSlowExpiresWithTimer(t *testing.T) {
	h := newHarness(t)
	u := h.place(types.FactionBlue, "grunt", 600)

	h.effects.Apply(u, component.BuffSlow, 0.5, 1, 200)
	h.behavior.Update(100)
	assert.InDelta(t, 605, u.Pos.X, 1e-9, "half speed")

	// Expiry runs before movement in the tick it falls due.
	h.behavior.Update(100)
	_, ok := u.Buff(component.BuffSlow)
	assert.False(t, ok)
	assert.InDelta(t, 615, u.Pos.X, 1e-9)
}

func TestHealerRestoresWoundedAlly(t *testing.T) {
	h := newHarness(t)
	healer := h.place(types.FactionBlue, "healer", 600)
	ally := h.place(types.FactionBlue, "grunt", 640)
	ally.Health = 50

	h.behavior.Update(1)
	assert.Equal(t, component.StateSupporting, healer.State)

	h.behavior.Update(100)
	assert.Equal(t, 70.0, ally.Health)

	ally.Health = 95
	h.behavior.Update(100)
	assert.Equal(t, 100.0, ally.Health, "capped at max health")

	h.behavior.Update(100)
	assert.Equal(t, component.StateWalking, healer.State, "nobody left to heal")
}

func TestDrummerHastesAllies(t *testing.T) {
	h := newHarness(t)
	drummer := h.place(types.FactionBlue, "drummer", 600)
	ally := h.place(types.FactionBlue, "grunt", 640)

	h.behavior.Update(1)
	require.Equal(t, component.StateSupporting, drummer.State)
	h.behavior.Update(100)

	haste, ok := ally.Buff(component.BuffHaste)
	require.True(t, ok)
	assert.Greater(t, haste.SpeedFactor, 1.0)
}

func TestArcherShootsApproachingEnemy(t *testing.T) {
	h := newHarness(t)
	archer := h.place(types.FactionBlue, "archer", 500)
	enemy := h.place(types.FactionRed, "grunt", 800)

	h.behavior.Update(1)
	require.Equal(t, component.StateShooting, archer.State)

	for i := 0; i < 50; i++ {
		h.behavior.Update(16)
		h.projectiles.Update(16)
	}
	assert.Less(t, enemy.Health, 100.0)
	assert.NotEmpty(t, h.eventsOf(event.DamageDealt))
}

func TestBaseShootsUnitsInRange(t *testing.T) {
	h := newHarness(t)
	h.spawnBases()
	base := h.ecs.Bases[types.FactionBlue]
	require.Equal(t, component.StateIdle, base.State)

	h.place(types.FactionRed, "grunt", 180)
	h.behavior.Update(1)
	assert.Equal(t, component.StateShooting, base.State)
	assert.Equal(t, 48.0, base.Pos.X, "bases never move")
}
