// internal/types/types.go
package types

// EntityID identifies a live entity for one lifetime. Pooled entities get a
// fresh id every time they are reactivated.
type EntityID uint64

// Faction is one of the two opposing sides.
type Faction int

const (
	FactionRed Faction = iota
	FactionBlue
)

// Factions lists both sides in a stable order.
var Factions = [2]Faction{FactionRed, FactionBlue}

// Opponent returns the other side.
func (f Faction) Opponent() Faction {
	if f == FactionRed {
		return FactionBlue
	}
	return FactionRed
}

// Direction is the travel sign along the lane: blue starts on the left and
// walks right, red starts on the right and walks left.
func (f Faction) Direction() float64 {
	if f == FactionBlue {
		return 1
	}
	return -1
}

func (f Faction) String() string {
	switch f {
	case FactionRed:
		return "red"
	case FactionBlue:
		return "blue"
	default:
		return "unknown"
	}
}
