// internal/component/movement.go
package component

// Position is a point on the lane. X runs along the lane, Y is the ground
// line the entity stands on.
type Position struct {
	X, Y float64
}

// Velocity is a per-millisecond displacement.
type Velocity struct {
	X, Y float64
}
