// internal/ui/level_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	xpBarWidth  = 118
	xpBarHeight = 12
	borderWidth = 1
)

var (
	xpBarColorFill = color.RGBA{70, 100, 120, 220}
	borderColor    = color.White
)

// LevelIndicator shows the player level in roman numerals above an
// experience bar.
type LevelIndicator struct {
	X, Y     float32
	fontFace font.Face
}

func NewLevelIndicator(x, y float32, fontFace font.Face) *LevelIndicator {
	return &LevelIndicator{X: x, Y: y, fontFace: fontFace}
}

func (i *LevelIndicator) Draw(screen *ebiten.Image, level int, currentXP, xpToNext float64) {
	if label := toRoman(level); label != "" && i.fontFace != nil {
		text.Draw(screen, label, i.fontFace, int(i.X), int(i.Y)-4, borderColor)
	}

	vector.StrokeRect(screen, i.X, i.Y, xpBarWidth, xpBarHeight, borderWidth, borderColor, true)
	fillRatio := 0.0
	if xpToNext > 0 {
		fillRatio = currentXP / xpToNext
	}
	if fillRatio > 1.0 {
		fillRatio = 1.0
	}
	fillWidth := float32(float64(xpBarWidth-borderWidth*2) * fillRatio)
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fillWidth, xpBarHeight-borderWidth*2, xpBarColorFill, true)
	}
}

// toRoman converts a positive integer to roman numerals.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}
