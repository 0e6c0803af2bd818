// internal/system/lane.go
package system

import (
	"math"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/spatial"
	"go-lane-defense/internal/types"
)

// BaseX is the centre of faction f's base. Blue holds the left end of the
// lane, red the right end.
func BaseX(f types.Faction) float64 {
	if f == types.FactionBlue {
		return config.BaseWidth / 2
	}
	return config.LaneLength - config.BaseWidth/2
}

// SpawnX is the centre of the cell in front of f's base where units appear.
func SpawnX(f types.Faction) float64 {
	return BaseX(f) + f.Direction()*(config.BaseWidth/2+config.SpawnMargin+config.UnitWidth/2)
}

// laneBand covers everything standing on the lane, bases included.
func laneBand() (top, height float64) {
	return config.GroundY - config.BaseHeight, config.BaseHeight
}

// strip is the box between two x coordinates across the lane band.
func strip(x1, x2 float64) spatial.Rect {
	top, h := laneBand()
	return spatial.Rect{X: math.Min(x1, x2), Y: top, W: math.Abs(x2 - x1), H: h}
}

func clampLane(x float64) float64 {
	return math.Max(0, math.Min(config.LaneLength, x))
}
