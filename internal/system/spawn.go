// internal/system/spawn.go
package system

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/stats"
	"go-lane-defense/internal/types"
)

var (
	ErrQueueFull         = errors.New("spawn queue is full")
	ErrUnknownUnitType   = stats.ErrUnknownUnitType
	ErrLocked            = errors.New("unit type is locked")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPoolExhausted     = errors.New("unit pool exhausted")
	ErrNoController      = errors.New("faction has no controller")
)

// LaneProbe answers whether a faction's spawn cell is occupied.
type LaneProbe interface {
	LaneBlocked(f types.Faction) bool
}

// Seat describes one controller at match start.
type Seat struct {
	Human    bool
	Loadout  stats.Loadout
	Unlocked map[string]bool // nil unlocks every unit type
}

// SpawnSystem owns the economy: money, production queues and the release
// gate.
type SpawnSystem struct {
	ecs             *entity.ECS
	pipeline        stats.Pipeline
	lane            LaneProbe
	behavior        *BehaviorSystem
	eventDispatcher *event.Dispatcher
	logger          *zap.Logger
}

func NewSpawnSystem(ecs *entity.ECS, pipeline stats.Pipeline, lane LaneProbe, behavior *BehaviorSystem,
	eventDispatcher *event.Dispatcher, logger *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		ecs:             ecs,
		pipeline:        pipeline,
		lane:            lane,
		behavior:        behavior,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

// Seat registers the controller of faction f and resolves its economy.
func (s *SpawnSystem) Seat(f types.Faction, seat Seat) (*component.PlayerStateComponent, error) {
	ps, err := s.pipeline.Player(seat.Loadout)
	if err != nil {
		return nil, fmt.Errorf("player stats for %s: %w", f, err)
	}
	capacity := config.DefaultQueueCapacity
	if seat.Human {
		capacity = config.HumanQueueCapacity
	}
	p := &component.PlayerStateComponent{
		Faction:       f,
		Human:         seat.Human,
		Money:         ps.StartingMoney,
		Level:         1,
		XPToNextLevel: config.XPToFirstLevel,
		Loadout:       seat.Loadout,
		Stats:         ps,
		Unlocked:      seat.Unlocked,
		Queue:         component.SpawnQueue{Capacity: capacity + ps.QueueBonus},
	}
	s.ecs.Players[f] = p
	return p, nil
}

// SpawnBase places f's base. Bases are not pooled and stay until destroyed.
func (s *SpawnSystem) SpawnBase(f types.Faction) (*component.Unit, error) {
	p := s.ecs.Players[f]
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoController, f)
	}
	baseType := s.pipeline.Resolver.Library().BaseType
	r, err := s.pipeline.Unit(baseType, p.Loadout)
	if err != nil {
		return nil, fmt.Errorf("base for %s: %w", f, err)
	}
	r.MaxHealth += p.Stats.BaseHealth
	r.Health = r.MaxHealth

	b := &component.Unit{}
	b.Reset()
	b.ID = s.ecs.NewEntity()
	b.Type = baseType
	b.Faction = f
	b.Direction = f.Direction()
	b.Stats = r
	b.Health = r.Health
	b.Width, b.Height = config.BaseWidth, config.BaseHeight
	b.Pos = component.Position{X: BaseX(f), Y: config.GroundY}
	b.Profile, _ = ProfileFor(r)
	b.Profile.Variant = component.VariantBase
	b.Profile.Stationary = true
	b.Active = true

	s.ecs.Bases[f] = b
	s.ecs.BaseGroups[f].Add(b)
	s.behavior.Activate(b)
	s.dispatchSpawned(b)
	return b, nil
}

// Enqueue buys one unitType for f. The full upgraded cost is paid now and
// is not refunded. On any error the queue and money are unchanged.
func (s *SpawnSystem) Enqueue(f types.Faction, unitType string) error {
	p := s.ecs.Players[f]
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNoController, f)
	}
	if p.Queue.Full() {
		return ErrQueueFull
	}
	if !s.pipeline.Resolver.Library().IsUnitType(unitType) {
		return fmt.Errorf("%w: %q", ErrUnknownUnitType, unitType)
	}
	if !p.CanField(unitType) {
		return fmt.Errorf("%w: %q", ErrLocked, unitType)
	}
	r, err := s.pipeline.Unit(unitType, p.Loadout)
	if err != nil {
		return err
	}
	if p.Money < r.Cost {
		return fmt.Errorf("%w: %q costs %.0f, have %.0f", ErrInsufficientFunds, unitType, r.Cost, p.Money)
	}
	p.Money -= r.Cost
	p.Queue.Push(component.QueueEntry{Type: unitType, SpawnTime: r.SpawnTime})
	s.logger.Debug("unit queued",
		zap.Stringer("faction", f),
		zap.String("type", unitType),
		zap.Float64("cost", r.Cost),
		zap.Int("queued", p.Queue.Len()))
	return nil
}

// Cost is what unitType currently costs f.
func (s *SpawnSystem) Cost(f types.Faction, unitType string) (float64, error) {
	p := s.ecs.Players[f]
	if p == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoController, f)
	}
	r, err := s.pipeline.Unit(unitType, p.Loadout)
	if err != nil {
		return 0, err
	}
	return r.Cost, nil
}

// Money is f's current balance.
func (s *SpawnSystem) Money(f types.Faction) float64 {
	if p := s.ecs.Players[f]; p != nil {
		return p.Money
	}
	return 0
}

// QueueSpace is the number of free slots in f's queue.
func (s *SpawnSystem) QueueSpace(f types.Faction) int {
	if p := s.ecs.Players[f]; p != nil {
		return p.Queue.Space()
	}
	return 0
}

// Update accrues income and runs the release gate of both queues.
func (s *SpawnSystem) Update(deltaTime float64) {
	for _, f := range types.Factions {
		p := s.ecs.Players[f]
		if p == nil {
			continue
		}
		p.Money += p.Stats.IncomeRate * deltaTime
		s.gate(p, deltaTime)
	}
}

// gate releases the head of the queue once its spawn time has run down, at
// least SpawnMinTicks ticks have passed since the timer started and the
// spawn cell is free.
func (s *SpawnSystem) gate(p *component.PlayerStateComponent, deltaTime float64) {
	q := &p.Queue
	head, ok := q.Head()
	if !ok {
		return
	}
	if !q.Started {
		q.Started = true
		q.Timer = head.SpawnTime
		q.Ticks = 0
	}
	q.Timer -= deltaTime
	q.Ticks++
	if q.Timer > 0 || q.Ticks < config.SpawnMinTicks {
		return
	}
	if s.lane.LaneBlocked(p.Faction) {
		return
	}

	_, err := s.release(p, head)
	switch {
	case errors.Is(err, ErrPoolExhausted):
		s.logger.Debug("unit pool exhausted, retrying next tick",
			zap.Stringer("faction", p.Faction), zap.String("type", head.Type))
		return
	case err != nil:
		s.logger.Error("dropping queued unit", zap.String("type", head.Type), zap.Error(err))
	}
	q.Pop()
}

func (s *SpawnSystem) release(p *component.PlayerStateComponent, entry component.QueueEntry) (*component.Unit, error) {
	r, err := s.pipeline.Unit(entry.Type, p.Loadout)
	if err != nil {
		return nil, err
	}
	u, ok := s.ecs.AcquireUnit(entry.Type)
	if !ok {
		return nil, ErrPoolExhausted
	}
	profile, known := ProfileFor(r)
	if !known {
		s.logger.Warn("unknown behavior, spawning as melee",
			zap.String("type", entry.Type), zap.String("behavior", r.Behavior))
	}

	u.Faction = p.Faction
	u.Direction = p.Faction.Direction()
	u.Stats = r
	u.Health = r.Health
	u.Pos = component.Position{X: SpawnX(p.Faction), Y: config.GroundY}
	u.Profile = profile
	u.Active = true

	s.ecs.UnitGroups[p.Faction].Add(u)
	s.behavior.Activate(u)
	s.dispatchSpawned(u)
	return u, nil
}

func (s *SpawnSystem) dispatchSpawned(u *component.Unit) {
	s.eventDispatcher.Dispatch(event.Event{Type: event.UnitSpawned, Data: event.UnitSpawnedData{
		ID:      u.ID,
		Type:    u.Type,
		Faction: u.Faction,
		X:       u.Pos.X,
	}})
}
