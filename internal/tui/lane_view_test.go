package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/system"
	"go-lane-defense/internal/types"
)

func newView(t *testing.T, human bool) (*LaneView, tcell.SimulationScreen) {
	t.Helper()
	lib, err := defs.LoadDefault()
	require.NoError(t, err)
	g, err := app.NewGame(app.Options{Library: lib, MatchID: "tui-match-1", Seed: 5, Human: human}, zap.NewNop())
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return NewLaneView(screen, g), screen
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestColumn(t *testing.T) {
	assert.Equal(t, 0, Column(0, 80))
	assert.Equal(t, 79, Column(1600, 80))
	assert.Equal(t, 40, Column(810, 80))
	assert.Equal(t, 79, Column(5000, 80))
	assert.Equal(t, 0, Column(-5, 80))
	assert.Equal(t, 0, Column(700, 1))
}

func TestDrawShowsBasesAndStatus(t *testing.T) {
	v, screen := newView(t, false)
	v.Draw()

	assert.Contains(t, row(screen, 0), "match tui-matc")
	assert.Contains(t, row(screen, 1), "red")
	assert.Contains(t, row(screen, 2), "blue")

	lane := row(screen, 24-4)
	assert.Equal(t, '#', rune(lane[Column(system.BaseX(types.FactionBlue), 80)]))
	assert.Equal(t, '#', rune(lane[Column(system.BaseX(types.FactionRed), 80)]))
	assert.Equal(t, strings.Repeat("=", 80), row(screen, 24-3))
}

func TestDrawShowsUnits(t *testing.T) {
	v, screen := newView(t, true)
	require.NoError(t, v.game.Enqueue("spearman"))
	var found *component.Unit
	for i := 0; i < 200 && found == nil; i++ {
		v.game.Update(16)
		v.game.ECS.EachUnit(func(u *component.Unit) {
			if u.Faction == types.FactionBlue && u.Alive() {
				found = u
			}
		})
	}
	require.NotNil(t, found)

	v.Draw()
	lane := row(screen, 24-4)
	assert.Equal(t, 'S', rune(lane[Column(found.Pos.X, 80)]))
}

func TestHandleKey(t *testing.T) {
	v, screen := newView(t, true)

	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.True(t, v.game.IsPaused())
	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)))
	assert.Equal(t, 2.0, v.game.SpeedMultiplier)

	idx := -1
	for i, name := range v.types {
		if name == "spearman" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	key := rune('1' + idx)
	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, key, tcell.ModNone)))
	assert.Equal(t, 1, v.game.Player(app.HumanFaction).Queue.Len())

	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, key, tcell.ModNone))
	v.Draw()
	assert.Contains(t, row(screen, 23), "spearman:")

	assert.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}
