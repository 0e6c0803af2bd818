// internal/system/state.go
package system

import (
	"go.uber.org/zap"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

// StateSystem watches both bases and ends the match when one falls.
type StateSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	logger          *zap.Logger
	matchID         string
	phase           component.MatchPhase
	winner          types.Faction
}

func NewStateSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, matchID string, logger *zap.Logger) *StateSystem {
	return &StateSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		matchID:         matchID,
		phase:           component.PhasePlaying,
	}
}

// Update emits MatchOver once, on the tick a base is found destroyed.
func (s *StateSystem) Update(deltaTime float64) {
	if s.phase != component.PhasePlaying {
		return
	}
	for _, f := range types.Factions {
		b := s.ecs.Bases[f]
		if b == nil || b.Alive() {
			continue
		}
		s.phase = component.PhaseOver
		s.winner = f.Opponent()
		s.logger.Info("match over",
			zap.String("match", s.matchID),
			zap.Stringer("winner", s.winner),
			zap.Float64("gameTime", s.ecs.GameTime))
		s.eventDispatcher.Dispatch(event.Event{Type: event.MatchOver, Data: event.MatchOverData{
			MatchID:  s.matchID,
			Winner:   s.winner,
			Duration: s.ecs.GameTime,
		}})
		return
	}
}

func (s *StateSystem) Current() component.MatchPhase {
	return s.phase
}

// Winner is meaningful once Current reports PhaseOver.
func (s *StateSystem) Winner() types.Faction {
	return s.winner
}
