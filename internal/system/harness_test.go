package system

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

const laneConfig = `
baseType: base
baseline:
  health: 100
  maxHealth: 100
  attackDamage: 10
  attackRange: 6
  attackSpeed: 100
  specialDamage: 0
  specialRange: 0
  specialSpeed: 100
  speed: 0.1
  cost: 50
  spawnTime: 0
  pierce: 1
  behavior: melee
  projectile: arrow
  supportEffect: heal
types:
  base:
    behavior: base
    health: 1000
    maxHealth: 1000
    attackRange: 100
    speed: 0
    cost: 0
  grunt: {}
  slowpoke:
    spawnTime: 100
  archer:
    behavior: ranged
    attackRange: 400
  mage:
    behavior: ranged
    attackRange: 400
    projectile: bomb
    pierce: 2
  healer:
    behavior: support
    attackDamage: 0
    specialRange: 100
    specialDamage: 20
  drummer:
    behavior: support
    supportEffect: haste
    specialRange: 100
  bomber:
    behavior: selfdestruct
    specialDamage: 80
player:
  startingMoney: 1000
  incomeRate: 0
  bountyFraction: 0.5
upgrades:
  - id: discount
    effects:
      - {stat: cost, kind: flat, value: -10}
`

type recordingAnimator struct {
	plays map[types.EntityID][]string
}

func (a *recordingAnimator) Play(id types.EntityID, _ string, state string) {
	a.plays[id] = append(a.plays[id], state)
}

type harness struct {
	t           *testing.T
	ecs         *entity.ECS
	pipeline    stats.Pipeline
	dispatcher  *event.Dispatcher
	animator    *recordingAnimator
	targeting   *TargetingSystem
	damage      *DamageSystem
	effects     *StatusEffectSystem
	projectiles *ProjectileSystem
	behavior    *BehaviorSystem
	spawn       *SpawnSystem
	players     *PlayerSystem
	events      []event.Event
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithPools(t, config.UnitPoolSize, config.ProjectilePoolSize)
}

func newHarnessWithPools(t *testing.T, units, projectiles int) *harness {
	t.Helper()
	lib, err := defs.Parse([]byte(laneConfig))
	require.NoError(t, err)
	logger := zap.NewNop()

	h := &harness{
		t:          t,
		ecs:        entity.NewECSWithPools(units, projectiles),
		pipeline:   stats.Pipeline{Resolver: stats.NewResolver(lib, logger), Engine: stats.NewEngine(lib, logger)},
		dispatcher: event.NewDispatcher(),
		animator:   &recordingAnimator{plays: make(map[types.EntityID][]string)},
	}
	h.dispatcher.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		h.events = append(h.events, e)
	}))
	h.targeting = NewTargetingSystem(h.ecs)
	h.damage = NewDamageSystem(h.ecs, h.dispatcher, h.animator, logger)
	h.effects = NewStatusEffectSystem(logger)
	h.projectiles = NewProjectileSystem(h.ecs, h.damage, h.animator, logger)
	h.behavior = NewBehaviorSystem(h.ecs, h.targeting, h.damage, h.projectiles, h.effects, h.animator, logger)
	h.spawn = NewSpawnSystem(h.ecs, h.pipeline, h.targeting, h.behavior, h.dispatcher, logger)
	h.players = NewPlayerSystem(h.ecs, h.dispatcher)
	h.damage.AddKillObserver(h.players)

	for _, f := range types.Factions {
		_, err := h.spawn.Seat(f, Seat{})
		require.NoError(t, err)
	}
	return h
}

// place puts a live unit on the lane without going through the queue.
func (h *harness) place(f types.Faction, unitType string, x float64) *component.Unit {
	h.t.Helper()
	r, err := h.pipeline.Unit(unitType, stats.Loadout{})
	require.NoError(h.t, err)
	u, ok := h.ecs.AcquireUnit(unitType)
	require.True(h.t, ok)
	u.Faction = f
	u.Direction = f.Direction()
	u.Stats = r
	u.Health = r.Health
	u.Pos = component.Position{X: x, Y: config.GroundY}
	u.Profile, _ = ProfileFor(r)
	u.Active = true
	h.ecs.UnitGroups[f].Add(u)
	h.behavior.Activate(u)
	return u
}

func (h *harness) spawnBases() {
	h.t.Helper()
	for _, f := range types.Factions {
		_, err := h.spawn.SpawnBase(f)
		require.NoError(h.t, err)
	}
}

func (h *harness) eventsOf(eventType event.EventType) []event.Event {
	var out []event.Event
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
