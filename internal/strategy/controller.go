// internal/strategy/controller.go
package strategy

import (
	"math"

	"go.uber.org/zap"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
	"go-lane-defense/internal/utils"
)

// Economy is the buying side of the spawn system as the controller sees it.
type Economy interface {
	Enqueue(f types.Faction, unitType string) error
	Cost(f types.Faction, unitType string) (float64, error)
	Money(f types.Faction) float64
	QueueSpace(f types.Faction) int
}

// Observation is the aggregate lane state handed to the controller each
// tick.
type Observation struct {
	EnemyCount  int
	ActiveUnits int
	QueueLen    int
	QueueCap    int
	OwnHealth   float64 // own base health fraction
	EnemyHealth float64 // enemy base health fraction
}

// HealthRatio compares the two bases. A fallen enemy base gives +Inf.
func (o Observation) HealthRatio() float64 {
	if o.EnemyHealth <= 0 {
		return math.Inf(1)
	}
	return o.OwnHealth / o.EnemyHealth
}

// Options tune a controller. Zero fields take the defaults from config.
type Options struct {
	Interval        float64
	AttackThreshold float64
	DefendUnitCap   int
	Weights         map[string]int
	Seed            int64
}

// OptionsFromDef reads the strategy section of the configuration.
func OptionsFromDef(def defs.StrategyDef) Options {
	return Options{
		Interval:        def.Interval,
		AttackThreshold: def.AttackThreshold,
		DefendUnitCap:   def.DefendUnitCap,
		Weights:         def.Weights,
	}
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = config.StrategyInterval
	}
	if o.AttackThreshold <= 0 {
		o.AttackThreshold = config.AttackThreshold
	}
	if o.DefendUnitCap <= 0 {
		o.DefendUnitCap = config.DefendUnitCap
	}
	return o
}

// Controller drives the queue of one computer-controlled faction.
type Controller struct {
	faction types.Faction
	engine  *Engine
	catalog *Catalog
	economy Economy
	opts    Options
	rng     *utils.PRNGService
	ranged  []utils.WeightedChoice
	logger  *zap.Logger

	policy    Policy
	sinceEval float64
	evaluated bool
}

func NewController(f types.Faction, engine *Engine, catalog *Catalog, economy Economy, opts Options, logger *zap.Logger) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		faction: f,
		engine:  engine,
		catalog: catalog,
		economy: economy,
		opts:    opts,
		rng:     utils.NewPRNGService(opts.Seed),
		logger:  logger.With(zap.Stringer("faction", f)),
	}
	for _, name := range catalog.Types(RoleRanged) {
		if w := opts.Weights[name]; w > 0 {
			c.ranged = append(c.ranged, utils.WeightedChoice{ID: name, Weight: w})
		}
	}
	return c
}

// Policy is the currently adopted posture.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Update re-evaluates the posture on the first call and then once per
// interval. The adopted posture's buying action runs on every call.
func (c *Controller) Update(deltaTime float64, obs Observation) {
	c.sinceEval += deltaTime
	if !c.evaluated || c.sinceEval >= c.opts.Interval {
		c.evaluated = true
		c.sinceEval = 0
		next := c.engine.Evaluate(c.env(obs))
		if next != c.policy {
			c.logger.Info("strategy changed",
				zap.Stringer("from", c.policy),
				zap.Stringer("to", next),
				zap.Int("enemies", obs.EnemyCount),
				zap.Float64("healthRatio", obs.HealthRatio()))
		}
		c.policy = next
	}
	c.act(obs)
}

func (c *Controller) env(obs Observation) Env {
	return Env{
		EnemyCount:      obs.EnemyCount,
		ActiveUnits:     obs.ActiveUnits,
		HealthRatio:     obs.HealthRatio(),
		Money:           c.economy.Money(c.faction),
		AttackThreshold: c.opts.AttackThreshold,
		QueueLen:        obs.QueueLen,
		QueueCap:        obs.QueueCap,
	}
}

func (c *Controller) act(obs Observation) {
	switch c.policy {
	case PolicyDesperate:
		c.spam()
	case PolicyDefend:
		// Queued units count against the cap.
		if obs.ActiveUnits+obs.QueueLen >= c.opts.DefendUnitCap {
			return
		}
		melee, ok := c.cheapest(RoleMelee)
		if !ok {
			return
		}
		support, _ := c.cheapest(RoleSupport)
		c.buy(melee, support)
	case PolicyAttack:
		melee, ok := c.cheapest(RoleMelee)
		if !ok {
			return
		}
		c.buy(melee, c.pickRanged())
	}
}

// spam buys cheap melee and support units until the queue or the purse
// runs out.
func (c *Controller) spam() {
	melee, ok := c.cheapest(RoleMelee)
	if !ok {
		return
	}
	support, hasSupport := c.cheapest(RoleSupport)
	for c.economy.QueueSpace(c.faction) > 0 {
		if !c.enqueue(melee) {
			return
		}
		if hasSupport && !c.enqueue(support) {
			return
		}
	}
}

// buy enqueues the given types as one group, only when the queue has room
// and the purse covers all of them.
func (c *Controller) buy(unitTypes ...string) {
	var group []string
	total := 0.0
	for _, t := range unitTypes {
		if t == "" {
			continue
		}
		cost, err := c.economy.Cost(c.faction, t)
		if err != nil {
			c.logger.Warn("cannot price unit", zap.String("type", t), zap.Error(err))
			return
		}
		total += cost
		group = append(group, t)
	}
	if len(group) == 0 || c.economy.QueueSpace(c.faction) < len(group) || c.economy.Money(c.faction) < total {
		return
	}
	for _, t := range group {
		if !c.enqueue(t) {
			return
		}
	}
}

func (c *Controller) enqueue(unitType string) bool {
	if err := c.economy.Enqueue(c.faction, unitType); err != nil {
		c.logger.Debug("enqueue refused", zap.String("type", unitType), zap.Error(err))
		return false
	}
	return true
}

// cheapest is the lowest current cost in role, ties broken by name.
func (c *Controller) cheapest(role Role) (string, bool) {
	best, bestCost := "", math.Inf(1)
	for _, t := range c.catalog.Types(role) {
		cost, err := c.economy.Cost(c.faction, t)
		if err != nil {
			continue
		}
		if cost < bestCost {
			best, bestCost = t, cost
		}
	}
	return best, best != ""
}

func (c *Controller) pickRanged() string {
	if len(c.ranged) > 0 {
		return c.rng.ChooseWeighted(c.ranged)
	}
	t, _ := c.cheapest(RoleRanged)
	return t
}
