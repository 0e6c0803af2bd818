// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpeedButton cycles the game speed. It is drawn as two triangles whose
// color follows the current speed.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)

	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	c := b.StateColors[b.CurrentState]
	drawTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, c)
	drawTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, c)
}

// Contains uses a circle for hit testing because the shape is irregular.
func (b *SpeedButton) Contains(x, y float32) bool {
	return insideCircle(x, y, b.X, b.Y, b.Size*1.5)
}

// SetState shows speed step state without animating.
func (b *SpeedButton) SetState(state int) {
	if len(b.StateColors) > 0 {
		b.CurrentState = state % len(b.StateColors)
	}
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.StateColors)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}
