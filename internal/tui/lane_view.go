// internal/tui/lane_view.go
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/types"
)

var factionStyles = [2]tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorSteelBlue),
}

var (
	groundStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	shotStyle   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	textStyle   = tcell.StyleDefault
)

// LaneView draws a match as one row of glyphs per lane layer.
type LaneView struct {
	screen tcell.Screen
	game   *app.Game
	types  []string
	flash  string
}

func NewLaneView(screen tcell.Screen, game *app.Game) *LaneView {
	return &LaneView{screen: screen, game: game, types: game.Library.UnitTypes()}
}

// SetGame swaps in a new match.
func (v *LaneView) SetGame(game *app.Game) {
	v.game = game
	v.flash = ""
}

// Column maps a lane coordinate to a terminal column.
func Column(x float64, width int) int {
	if width <= 1 {
		return 0
	}
	col := int(math.Round(x / config.LaneLength * float64(width-1)))
	return max(0, min(width-1, col))
}

// HandleKey applies one key press and reports whether the viewer should quit.
func (v *LaneView) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch r := ev.Rune(); {
	case r == 'q':
		return true
	case r == 'p':
		v.game.HandlePauseClick()
	case r == 'f':
		v.game.HandleSpeedClick()
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i >= len(v.types) {
			return false
		}
		if err := v.game.Enqueue(v.types[i]); err != nil {
			v.flash = fmt.Sprintf("%s: %v", v.types[i], err)
		} else {
			v.flash = ""
		}
	}
	return false
}

func (v *LaneView) Draw() {
	s := v.screen
	s.Clear()
	width, height := s.Size()
	if width < 20 || height < 10 {
		v.text(0, 0, "terminal too small", textStyle)
		s.Show()
		return
	}
	g := v.game

	status := fmt.Sprintf("match %s  t=%.1fs  x%.0f", shortID(g.MatchID), g.GameTime()/1000, g.SpeedMultiplier)
	if g.IsPaused() {
		status += "  [paused]"
	}
	if g.Over() {
		status += fmt.Sprintf("  %s wins (q to quit)", g.Winner())
	}
	v.text(0, 0, status, textStyle)

	for i, f := range types.Factions {
		v.text(0, 1+i, v.playerLine(f), factionStyles[f])
	}

	ground := height - 3
	v.text(0, ground, strings.Repeat("=", width), groundStyle)

	g.ECS.EachProjectile(func(p *component.Projectile) {
		if p.Alive() {
			s.SetContent(Column(p.Pos.X, width), ground-2, '*', nil, shotStyle)
		}
	})
	g.ECS.EachUnit(func(u *component.Unit) {
		if !u.Alive() {
			return
		}
		style := factionStyles[u.Faction]
		if u.State == component.StateIdle {
			style = style.Dim(true)
		}
		s.SetContent(Column(u.Pos.X, width), ground-1, unitGlyph(u), nil, style)
	})
	for _, f := range types.Factions {
		b := g.ECS.Bases[f]
		if b == nil {
			continue
		}
		col := Column(b.Pos.X, width)
		s.SetContent(col, ground-1, '#', nil, factionStyles[f].Bold(true))
		label := fmt.Sprintf("%.0f", math.Max(0, b.Health))
		if f == types.FactionRed {
			col -= len(label) - 1
		}
		v.text(max(0, col), ground+1, label, factionStyles[f])
	}

	v.text(0, height-1, v.hint(), textStyle)
	s.Show()
}

func (v *LaneView) playerLine(f types.Faction) string {
	p := v.game.Player(f)
	if p == nil {
		return ""
	}
	line := fmt.Sprintf("%-4s money %6.0f  lvl %d  kills %d  queue %d/%d",
		f, p.Money, p.Level, p.Kills, p.Queue.Len(), p.Queue.Capacity)
	if c := v.game.Controllers[f]; c != nil {
		line += "  " + c.Policy().String()
	} else if p.Human {
		line += "  (you)"
	}
	return line
}

func (v *LaneView) hint() string {
	if v.flash != "" {
		return v.flash
	}
	if v.game.Controllers[app.HumanFaction] != nil {
		return "p pause  f speed  q quit"
	}
	parts := make([]string, 0, len(v.types))
	for i, t := range v.types {
		if i >= 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i+1, t))
	}
	return strings.Join(parts, " ") + "  p pause  f speed  q quit"
}

func (v *LaneView) text(x, y int, str string, style tcell.Style) {
	for _, r := range str {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// unitGlyph is the first letter of the type, upper case for blue.
func unitGlyph(u *component.Unit) rune {
	if u.Type == "" {
		return '?'
	}
	r := rune(u.Type[0])
	if u.Faction == types.FactionBlue {
		return []rune(strings.ToUpper(string(r)))[0]
	}
	return r
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
