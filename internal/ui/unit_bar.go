// internal/ui/unit_bar.go
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
	unitButtonWidth  = 96
	unitButtonHeight = 36
	unitButtonGap    = 6
)

var (
	buttonColor       = color.RGBA{60, 60, 80, 230}
	buttonHoverColor  = color.RGBA{90, 90, 120, 230}
	buttonLockedColor = color.RGBA{40, 40, 40, 200}
)

// UnitButton buys one unit type.
type UnitButton struct {
	X, Y, W, H float32
	UnitType   string
	Hotkey     int // 1-based, 0 when the button has no key
}

// UnitBar is the row of unit buttons along the top of the window.
type UnitBar struct {
	Buttons  []UnitButton
	fontFace font.Face
}

// NewUnitBar lays out one button per unit type starting at x, y.
func NewUnitBar(x, y float32, unitTypes []string, fontFace font.Face) *UnitBar {
	bar := &UnitBar{fontFace: fontFace}
	for j, t := range unitTypes {
		hotkey := 0
		if j < 9 {
			hotkey = j + 1
		}
		bar.Buttons = append(bar.Buttons, UnitButton{
			X:        x + float32(j)*(unitButtonWidth+unitButtonGap),
			Y:        y,
			W:        unitButtonWidth,
			H:        unitButtonHeight,
			UnitType: t,
			Hotkey:   hotkey,
		})
	}
	return bar
}

// At returns the unit type under the point.
func (b *UnitBar) At(x, y float32) (string, bool) {
	for _, btn := range b.Buttons {
		if insideRect(x, y, btn.X, btn.Y, btn.W, btn.H) {
			return btn.UnitType, true
		}
	}
	return "", false
}

// ByHotkey returns the unit type bound to number key n.
func (b *UnitBar) ByHotkey(n int) (string, bool) {
	for _, btn := range b.Buttons {
		if btn.Hotkey == n {
			return btn.UnitType, true
		}
	}
	return "", false
}

// Draw renders every button. cost prices a type; usable tells whether the
// player may buy it right now.
func (b *UnitBar) Draw(screen *ebiten.Image, mouseX, mouseY float32, cost func(string) float64, usable func(string) bool) {
	for _, btn := range b.Buttons {
		bg := buttonColor
		switch {
		case !usable(btn.UnitType):
			bg = buttonLockedColor
		case insideRect(mouseX, mouseY, btn.X, btn.Y, btn.W, btn.H):
			bg = buttonHoverColor
		}
		vector.DrawFilledRect(screen, btn.X, btn.Y, btn.W, btn.H, bg, false)
		vector.StrokeRect(screen, btn.X, btn.Y, btn.W, btn.H, borderWidth, borderColor, false)
		if b.fontFace == nil {
			continue
		}
		name := btn.UnitType
		if btn.Hotkey > 0 {
			name = fmt.Sprintf("%d %s", btn.Hotkey, btn.UnitType)
		}
		text.Draw(screen, name, b.fontFace, int(btn.X)+6, int(btn.Y)+15, borderColor)
		text.Draw(screen, fmt.Sprintf("%.0f", cost(btn.UnitType)), b.fontFace, int(btn.X)+6, int(btn.Y)+30, queueFillColor)
	}
}
