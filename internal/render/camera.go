// internal/render/camera.go
package render

import "go-lane-defense/internal/config"

// Camera maps lane coordinates onto the screen. The whole lane always fits
// the window width.
type Camera struct {
	Scale   float64
	OffsetY float64
}

// NewCamera fits a lane of laneLength into a screen of the given size with
// the ground line groundMargin pixels above the bottom edge.
func NewCamera(laneLength float64, screenWidth, screenHeight int, groundMargin float64) Camera {
	scale := float64(screenWidth) / laneLength
	return Camera{
		Scale:   scale,
		OffsetY: float64(screenHeight) - groundMargin - config.GroundY*scale,
	}
}

// ToScreen converts a lane point.
func (c Camera) ToScreen(x, y float64) (float32, float32) {
	return float32(x * c.Scale), float32(y*c.Scale + c.OffsetY)
}

// ToWorld converts a screen point back onto the lane.
func (c Camera) ToWorld(sx, sy float64) (float64, float64) {
	return sx / c.Scale, (sy - c.OffsetY) / c.Scale
}

// Length scales a distance.
func (c Camera) Length(d float64) float32 {
	return float32(d * c.Scale)
}
