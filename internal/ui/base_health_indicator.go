// internal/ui/base_health_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	baseBarWidth  = 220
	baseBarHeight = 14
)

// BaseHealthIndicator shows one base's health as a bar with the exact
// numbers above it. The bar turns red below half.
type BaseHealthIndicator struct {
	X, Y      float32
	Color     color.Color
	fontFace  font.Face
	AlignLeft bool
}

func NewBaseHealthIndicator(x, y float32, c color.Color, alignLeft bool, fontFace font.Face) *BaseHealthIndicator {
	return &BaseHealthIndicator{X: x, Y: y, Color: c, AlignLeft: alignLeft, fontFace: fontFace}
}

func (i *BaseHealthIndicator) Draw(screen *ebiten.Image, health, maxHealth float64) {
	fraction := healthFraction(health, maxHealth)
	fill := i.Color
	if fraction < 0.5 {
		fill = color.RGBA{220, 60, 60, 255}
	}

	vector.DrawFilledRect(screen, i.X, i.Y, baseBarWidth, baseBarHeight, color.Black, false)
	w := float32(baseBarWidth * fraction)
	x := i.X
	if !i.AlignLeft {
		x = i.X + baseBarWidth - w
	}
	if w > 0 {
		vector.DrawFilledRect(screen, x, i.Y, w, baseBarHeight, fill, false)
	}
	vector.StrokeRect(screen, i.X, i.Y, baseBarWidth, baseBarHeight, borderWidth, borderColor, false)

	if i.fontFace != nil {
		label := fmt.Sprintf("%.0f/%.0f", health, maxHealth)
		bound := text.BoundString(i.fontFace, label)
		text.Draw(screen, label, i.fontFace, int(i.X)+(baseBarWidth-bound.Dx())/2, int(i.Y)-4, borderColor)
	}
}

func healthFraction(health, maxHealth float64) float64 {
	if maxHealth <= 0 || health <= 0 {
		return 0
	}
	if health >= maxHealth {
		return 1
	}
	return health / maxHealth
}
