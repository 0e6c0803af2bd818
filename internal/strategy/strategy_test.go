package strategy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

const catalogConfig = `
baseType: base
baseline:
  health: 100
  maxHealth: 100
  cost: 50
  behavior: melee
types:
  base:
    behavior: base
  grunt: {}
  brute:
    cost: 80
  archer:
    behavior: ranged
    cost: 70
  mage:
    behavior: ranged
    cost: 120
  healer:
    behavior: support
    cost: 60
  bomber:
    behavior: selfdestruct
    cost: 10
`

type fakeEconomy struct {
	money  float64
	space  int
	costs  map[string]float64
	queued []string
}

func (e *fakeEconomy) Enqueue(_ types.Faction, unitType string) error {
	cost, ok := e.costs[unitType]
	switch {
	case !ok:
		return errors.New("unknown")
	case e.space <= 0:
		return errors.New("full")
	case e.money < cost:
		return errors.New("broke")
	}
	e.money -= cost
	e.space--
	e.queued = append(e.queued, unitType)
	return nil
}

func (e *fakeEconomy) Cost(_ types.Faction, unitType string) (float64, error) {
	cost, ok := e.costs[unitType]
	if !ok {
		return 0, errors.New("unknown")
	}
	return cost, nil
}

func (e *fakeEconomy) Money(types.Faction) float64 { return e.money }

func (e *fakeEconomy) QueueSpace(types.Faction) int { return e.space }

func newCatalog(t *testing.T) (*Catalog, map[string]float64) {
	t.Helper()
	lib, err := defs.Parse([]byte(catalogConfig))
	require.NoError(t, err)
	resolver := stats.NewResolver(lib, zap.NewNop())
	catalog, err := NewCatalog(resolver)
	require.NoError(t, err)

	costs := make(map[string]float64)
	for _, name := range lib.UnitTypes() {
		r, err := resolver.Resolve(name)
		require.NoError(t, err)
		costs[name] = r.Cost
	}
	return catalog, costs
}

func newController(t *testing.T, money float64, space int, opts Options) (*Controller, *fakeEconomy) {
	t.Helper()
	catalog, costs := newCatalog(t)
	engine, err := NewEngine(DefaultRules(), zap.NewNop())
	require.NoError(t, err)
	economy := &fakeEconomy{money: money, space: space, costs: costs}
	return NewController(types.FactionRed, engine, catalog, economy, opts, zap.NewNop()), economy
}

func TestCatalogRoles(t *testing.T) {
	catalog, _ := newCatalog(t)
	assert.Equal(t, []string{"brute", "grunt"}, catalog.Types(RoleMelee))
	assert.Equal(t, []string{"archer", "mage"}, catalog.Types(RoleRanged))
	assert.Equal(t, []string{"healer"}, catalog.Types(RoleSupport))
}

func TestDefaultRuleLadder(t *testing.T) {
	engine, err := NewEngine(DefaultRules(), zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name string
		env  Env
		want Policy
	}{
		{"losing badly", Env{EnemyCount: 2, HealthRatio: 0.4, Money: 1000, AttackThreshold: 300}, PolicyDesperate},
		{"under pressure", Env{EnemyCount: 2, HealthRatio: 0.5, Money: 1000, AttackThreshold: 300}, PolicyDefend},
		{"single enemy is no pressure", Env{EnemyCount: 1, HealthRatio: 0.1, Money: 1000, AttackThreshold: 300}, PolicyAttack},
		{"rich", Env{EnemyCount: 0, HealthRatio: 1, Money: 301, AttackThreshold: 300}, PolicyAttack},
		{"saving", Env{EnemyCount: 0, HealthRatio: 1, Money: 300, AttackThreshold: 300}, PolicyIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Evaluate(tt.env))
		})
	}
}

func TestRulesFromDefOverrides(t *testing.T) {
	rules, err := RulesFromDef(defs.StrategyDef{Rules: map[string]string{"attack": "Money > 100 && QueueLen < QueueCap"}})
	require.NoError(t, err)
	engine, err := NewEngine(rules, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, PolicyAttack, engine.Evaluate(Env{Money: 150, AttackThreshold: 300, QueueCap: 10}))
	assert.Equal(t, PolicyIdle, engine.Evaluate(Env{Money: 150, QueueLen: 10, QueueCap: 10}))

	_, err = RulesFromDef(defs.StrategyDef{Rules: map[string]string{"retreat": "true"}})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNewEngineRejectsBadConditions(t *testing.T) {
	_, err := NewEngine([]*Rule{{Policy: PolicyAttack, ConditionSrc: "Money >"}}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewEngine([]*Rule{{Policy: PolicyAttack, ConditionSrc: "Money"}}, zap.NewNop())
	assert.Error(t, err, "conditions must be boolean")

	_, err = NewEngine([]*Rule{{Policy: PolicyAttack, ConditionSrc: "Gold > 1"}}, zap.NewNop())
	assert.Error(t, err, "unknown identifiers fail at compile time")
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyIdle, PolicyAttack, PolicyDefend, PolicyDesperate} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestDesperateFillsQueue(t *testing.T) {
	c, economy := newController(t, 1000, 10, Options{})
	c.Update(16, Observation{EnemyCount: 3, OwnHealth: 0.2, EnemyHealth: 0.8})

	assert.Equal(t, PolicyDesperate, c.Policy())
	require.Len(t, economy.queued, 10)
	for i, unitType := range economy.queued {
		if i%2 == 0 {
			assert.Equal(t, "grunt", unitType)
		} else {
			assert.Equal(t, "healer", unitType)
		}
	}
	assert.Equal(t, 450.0, economy.money)
}

func TestDesperateStopsWhenBroke(t *testing.T) {
	c, economy := newController(t, 120, 10, Options{})
	c.Update(16, Observation{EnemyCount: 3, OwnHealth: 0.2, EnemyHealth: 0.8})
	assert.Equal(t, []string{"grunt", "healer"}, economy.queued)
}

func TestDefendBuysOnePairBelowCap(t *testing.T) {
	c, economy := newController(t, 1000, 10, Options{})
	obs := Observation{EnemyCount: 2, ActiveUnits: 1, OwnHealth: 1, EnemyHealth: 1}
	c.Update(16, obs)
	assert.Equal(t, PolicyDefend, c.Policy())
	assert.Equal(t, []string{"grunt", "healer"}, economy.queued)

	obs.QueueLen = 2
	c.Update(16, obs)
	assert.Len(t, economy.queued, 4, "one and two queued stay below four")

	obs.ActiveUnits, obs.QueueLen = 3, 2
	c.Update(16, obs)
	assert.Len(t, economy.queued, 4)
}

func TestAttackBuysMeleeAndWeightedRanged(t *testing.T) {
	c, economy := newController(t, 500, 10, Options{Weights: map[string]int{"mage": 1}})
	c.Update(16, Observation{OwnHealth: 1, EnemyHealth: 1})

	assert.Equal(t, PolicyAttack, c.Policy())
	assert.Equal(t, []string{"grunt", "mage"}, economy.queued)
	assert.Equal(t, 330.0, economy.money)
}

func TestAttackNeedsRoomForThePair(t *testing.T) {
	c, economy := newController(t, 500, 1, Options{})
	c.Update(16, Observation{OwnHealth: 1, EnemyHealth: 1})
	assert.Equal(t, PolicyAttack, c.Policy())
	assert.Empty(t, economy.queued)
}

func TestPolicyHeldBetweenEvaluations(t *testing.T) {
	c, economy := newController(t, 100, 10, Options{})
	c.Update(16, Observation{OwnHealth: 1, EnemyHealth: 1})
	require.Equal(t, PolicyIdle, c.Policy())

	economy.money = 500
	c.Update(4000, Observation{OwnHealth: 1, EnemyHealth: 1})
	assert.Equal(t, PolicyIdle, c.Policy())
	assert.Empty(t, economy.queued)

	c.Update(1000, Observation{OwnHealth: 1, EnemyHealth: 1})
	assert.Equal(t, PolicyAttack, c.Policy())
	assert.Len(t, economy.queued, 2)
}

func TestHealthRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Observation{OwnHealth: 0.4, EnemyHealth: 0.8}.HealthRatio(), 1e-9)
	assert.True(t, math.IsInf(Observation{OwnHealth: 0.4}.HealthRatio(), 1))
}

func TestObserve(t *testing.T) {
	ecs := entity.NewECS()
	for _, f := range types.Factions {
		b := &component.Unit{ID: ecs.NewEntity(), Faction: f, Active: true}
		b.Stats.MaxHealth = 1000
		b.Health = 1000
		ecs.Bases[f] = b
	}
	ecs.Bases[types.FactionRed].Health = 250
	for i := 0; i < 3; i++ {
		u, ok := ecs.AcquireUnit("grunt")
		require.True(t, ok)
		u.Faction = types.FactionBlue
		u.Active = true
		u.Health = 10
		ecs.UnitGroups[types.FactionBlue].Add(u)
	}
	ecs.Players[types.FactionRed] = &component.PlayerStateComponent{
		Queue: component.SpawnQueue{Capacity: 10, Entries: []component.QueueEntry{{Type: "grunt"}}},
	}

	obs := Observe(ecs, types.FactionRed)
	assert.Equal(t, 3, obs.EnemyCount)
	assert.Equal(t, 0, obs.ActiveUnits)
	assert.Equal(t, 1, obs.QueueLen)
	assert.Equal(t, 10, obs.QueueCap)
	assert.InDelta(t, 0.25, obs.HealthRatio(), 1e-9)
}
