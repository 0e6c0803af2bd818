// internal/component/game_state.go
package component

// MatchPhase is the coarse state of a match.
type MatchPhase int

const (
	PhasePlaying MatchPhase = iota
	PhaseOver
)

func (p MatchPhase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "playing"
}
