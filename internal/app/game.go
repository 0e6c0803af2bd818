// internal/app/game.go
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/registry"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/strategy"
	"go-lane-defense/internal/system"
	"go-lane-defense/internal/types"
)

// HumanFaction is the side a human player controls.
const HumanFaction = types.FactionBlue

var ErrNoHuman = errors.New("no human player in this match")

// Options configure one match.
type Options struct {
	Library  *defs.Library
	MatchID  string // empty draws a random id
	Seed     int64  // strategy randomness, 0 seeds from the clock
	Human    bool   // blue is played by a human
	Profile  registry.Profile
	Loadouts [2]stats.Loadout // loadouts of computer-controlled seats
	Store    registry.Store   // nil disables rewards
	Animator system.Animator  // nil plays nothing
}

// Game holds the simulation and advances it one tick at a time.
type Game struct {
	MatchID         string
	Library         *defs.Library
	Pipeline        stats.Pipeline
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher

	TargetingSystem    *system.TargetingSystem
	DamageSystem       *system.DamageSystem
	StatusEffectSystem *system.StatusEffectSystem
	ProjectileSystem   *system.ProjectileSystem
	BehaviorSystem     *system.BehaviorSystem
	SpawnSystem        *system.SpawnSystem
	PlayerSystem       *system.PlayerSystem
	StateSystem        *system.StateSystem
	Controllers        [2]*strategy.Controller

	SpeedMultiplier float64
	speedIndex      int
	isPaused        bool
	human           bool
	store           registry.Store
	lastReward      Reward
	logger          *zap.Logger
}

// Reward is what the human side took home from a won match.
type Reward struct {
	Coins    float64 // stored balance after the award
	Unlocked string  // unit type opened by the win, empty when none
}

// NewGame validates the configuration, wires every system, seats both
// sides and places the bases.
func NewGame(opts Options, logger *zap.Logger) (*Game, error) {
	if opts.Library == nil {
		return nil, errors.New("game needs a configuration library")
	}
	matchID := opts.MatchID
	if matchID == "" {
		matchID = uuid.NewString()
	}
	logger = logger.With(zap.String("match", matchID))

	pipeline := stats.Pipeline{
		Resolver: stats.NewResolver(opts.Library, logger),
		Engine:   stats.NewEngine(opts.Library, logger),
	}
	if err := pipeline.Resolver.Validate(); err != nil {
		return nil, fmt.Errorf("invalid unit configuration: %w", err)
	}

	animator := opts.Animator
	if animator == nil {
		animator = system.NopAnimator{}
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	g := &Game{
		MatchID:         matchID,
		Library:         opts.Library,
		Pipeline:        pipeline,
		ECS:             ecs,
		EventDispatcher: eventDispatcher,
		SpeedMultiplier: config.SpeedMultipliers[0],
		human:           opts.Human,
		store:           opts.Store,
		logger:          logger,
	}
	g.TargetingSystem = system.NewTargetingSystem(ecs)
	g.DamageSystem = system.NewDamageSystem(ecs, eventDispatcher, animator, logger)
	g.StatusEffectSystem = system.NewStatusEffectSystem(logger)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, g.DamageSystem, animator, logger)
	g.BehaviorSystem = system.NewBehaviorSystem(ecs, g.TargetingSystem, g.DamageSystem,
		g.ProjectileSystem, g.StatusEffectSystem, animator, logger)
	g.SpawnSystem = system.NewSpawnSystem(ecs, pipeline, g.TargetingSystem, g.BehaviorSystem, eventDispatcher, logger)
	g.PlayerSystem = system.NewPlayerSystem(ecs, eventDispatcher)
	g.StateSystem = system.NewStateSystem(ecs, eventDispatcher, matchID, logger)
	g.DamageSystem.AddKillObserver(g.PlayerSystem)

	for _, f := range types.Factions {
		seat := system.Seat{Loadout: opts.Loadouts[f]}
		if opts.Human && f == HumanFaction {
			seat = system.Seat{
				Human:    true,
				Loadout:  stats.Loadout{Owned: opts.Profile.Owned()},
				Unlocked: unlockedFor(opts.Library, opts.Profile),
			}
		}
		if _, err := g.SpawnSystem.Seat(f, seat); err != nil {
			return nil, err
		}
		if _, err := g.SpawnSystem.SpawnBase(f); err != nil {
			return nil, err
		}
		if seat.Human {
			continue
		}
		c, err := g.newController(f, opts.Seed)
		if err != nil {
			return nil, err
		}
		g.Controllers[f] = c
	}

	eventDispatcher.Subscribe(event.MatchOver, &GameEventListener{game: g})
	logger.Info("match started", zap.Bool("human", opts.Human))
	return g, nil
}

// unlockedFor adds the library's starter units to what the profile has
// unlocked. Without starter units the profile alone decides.
func unlockedFor(lib *defs.Library, p registry.Profile) map[string]bool {
	if len(lib.StarterUnits) == 0 {
		return p.Unlocked
	}
	unlocked := make(map[string]bool, len(lib.StarterUnits)+len(p.Unlocked))
	for _, t := range lib.StarterUnits {
		unlocked[t] = true
	}
	for t := range p.Unlocked {
		unlocked[t] = true
	}
	return unlocked
}

func (g *Game) newController(f types.Faction, seed int64) (*strategy.Controller, error) {
	rules, err := strategy.RulesFromDef(g.Library.Strategy)
	if err != nil {
		return nil, err
	}
	engine, err := strategy.NewEngine(rules, g.logger)
	if err != nil {
		return nil, err
	}
	catalog, err := strategy.NewCatalog(g.Pipeline.Resolver)
	if err != nil {
		return nil, err
	}
	opts := strategy.OptionsFromDef(g.Library.Strategy)
	if seed != 0 {
		opts.Seed = seed + int64(f)
	}
	return strategy.NewController(f, engine, catalog, g.SpawnSystem, opts, g.logger), nil
}

// Update advances the match by deltaTime milliseconds of wall time. Large
// gaps are clamped and the speed multiplier is applied after clamping.
func (g *Game) Update(deltaTime float64) {
	if g.isPaused || g.Over() {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	dt := deltaTime * g.SpeedMultiplier
	g.ECS.GameTime += dt

	g.SpawnSystem.Update(dt)
	for _, f := range types.Factions {
		if c := g.Controllers[f]; c != nil {
			c.Update(dt, strategy.Observe(g.ECS, f))
		}
	}
	g.BehaviorSystem.Update(dt)
	g.ProjectileSystem.Update(dt)
	g.StateSystem.Update(dt)
}

// Enqueue buys unitType for the human player.
func (g *Game) Enqueue(unitType string) error {
	if !g.human {
		return ErrNoHuman
	}
	return g.SpawnSystem.Enqueue(HumanFaction, unitType)
}

// BuyConstruction pays for a construction out of the stored coins. It takes
// effect from the next match.
func (g *Game) BuyConstruction(ctx context.Context, id string) error {
	if g.store == nil {
		return ErrNoHuman
	}
	c, ok := g.Library.Construction(id)
	if !ok {
		return fmt.Errorf("unknown construction %q", id)
	}
	if err := registry.BuyConstruction(ctx, g.store, c); err != nil {
		return err
	}
	g.logger.Info("construction bought", zap.String("id", id), zap.Int("cost", c.Cost))
	return nil
}

// Shop lists the constructions the stored profile can buy next.
func (g *Game) Shop(ctx context.Context) ([]defs.Construction, error) {
	if g.store == nil {
		return nil, ErrNoHuman
	}
	owned, err := g.store.Members(ctx, registry.SetConstructions)
	if err != nil {
		return nil, err
	}
	return g.Pipeline.Engine.Available(owned), nil
}

// Coins reads the stored balance the shop spends from.
func (g *Game) Coins(ctx context.Context) (float64, error) {
	if g.store == nil {
		return 0, ErrNoHuman
	}
	return g.store.Scalar(ctx, registry.KeyCoins)
}

func (g *Game) HandleSpeedClick() {
	g.speedIndex = (g.speedIndex + 1) % len(config.SpeedMultipliers)
	g.SpeedMultiplier = config.SpeedMultipliers[g.speedIndex]
}

// SpeedIndex is the position of the current multiplier in the speed cycle.
func (g *Game) SpeedIndex() int {
	return g.speedIndex
}

func (g *Game) HandlePauseClick() {
	g.isPaused = !g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

// Over reports whether a base has fallen.
func (g *Game) Over() bool {
	return g.StateSystem.Current() == component.PhaseOver
}

func (g *Game) Winner() types.Faction {
	return g.StateSystem.Winner()
}

func (g *Game) GameTime() float64 {
	return g.ECS.GameTime
}

// Player returns the economy and progression of f.
func (g *Game) Player(f types.Faction) *component.PlayerStateComponent {
	return g.ECS.Players[f]
}

// GameEventListener handles the events that matter to the match as a whole.
type GameEventListener struct {
	game *Game
}

func (l *GameEventListener) OnEvent(e event.Event) {
	if e.Type != event.MatchOver {
		return
	}
	data, ok := e.Data.(event.MatchOverData)
	if !ok {
		return
	}
	l.game.reward(data)
}

// reward credits the stored profile when the human side wins and opens
// the cheapest unit type the human could not field this match.
func (g *Game) reward(data event.MatchOverData) {
	if g.store == nil || !g.human || data.Winner != HumanFaction {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	coins, err := registry.AwardCoins(ctx, g.store, config.MatchRewardCoins)
	if err != nil {
		g.logger.Error("failed to award coins", zap.Error(err))
		return
	}
	g.lastReward = Reward{Coins: coins}
	g.logger.Info("coins awarded", zap.Float64("total", coins))

	unitType, ok := g.nextUnlock()
	if !ok {
		return
	}
	if err := registry.Unlock(ctx, g.store, unitType); err != nil {
		g.logger.Error("failed to unlock unit type", zap.String("type", unitType), zap.Error(err))
		return
	}
	g.lastReward.Unlocked = unitType
	g.logger.Info("unit type unlocked", zap.String("type", unitType))
}

// nextUnlock picks the cheapest unit type locked for the human seat. Ties
// go to the first name in sorted order.
func (g *Game) nextUnlock() (string, bool) {
	player := g.Player(HumanFaction)
	best, bestCost := "", math.Inf(1)
	for _, t := range g.Library.UnitTypes() {
		if player.CanField(t) {
			continue
		}
		r, err := g.Pipeline.Resolver.Resolve(t)
		if err != nil {
			continue
		}
		if r.Cost < bestCost {
			best, bestCost = t, r.Cost
		}
	}
	return best, best != ""
}

// LastReward reports what the last match paid out. It is zero until the
// human side wins with a store attached.
func (g *Game) LastReward() Reward {
	return g.lastReward
}
