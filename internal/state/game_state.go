// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/render"
	"go-lane-defense/internal/system"
	"go-lane-defense/internal/types"
	"go-lane-defense/internal/ui"
)

// NewMatchFunc starts a fresh match with tracker as its animator.
type NewMatchFunc func(tracker *render.AnimationTracker) (*app.Game, error)

// GameState runs and draws one match.
type GameState struct {
	sm       *StateMachine
	game     *app.Game
	newMatch NewMatchFunc
	logger   *zap.Logger
	fontFace font.Face

	renderer    *render.LaneRenderer
	unitBar     *ui.UnitBar
	queue       *ui.QueueIndicator
	level       *ui.LevelIndicator
	health      [2]*ui.BaseHealthIndicator
	policy      *ui.PolicyIndicator
	speedButton *ui.SpeedButton
	pauseButton *ui.PauseButton

	message     string
	messageTime time.Time
}

// NewGameState starts a match through newMatch.
func NewGameState(sm *StateMachine, newMatch NewMatchFunc, fontFace font.Face, logger *zap.Logger) (*GameState, error) {
	tracker := render.NewAnimationTracker(nil)
	g, err := newMatch(tracker)
	if err != nil {
		return nil, err
	}
	tracker.SetClock(g.GameTime)
	flashes := render.NewFlashTracker(g.GameTime)
	flashes.Attach(g.EventDispatcher)
	renderer := render.NewLaneRenderer(g.ECS, tracker, fontFace)
	renderer.SetFlashes(flashes)

	gs := &GameState{
		sm:          sm,
		game:        g,
		newMatch:    newMatch,
		logger:      logger,
		fontFace:    fontFace,
		renderer:    renderer,
		unitBar:     ui.NewUnitBar(12, 12, g.Library.UnitTypes(), fontFace),
		queue:       ui.NewQueueIndicator(12, 64),
		level:       ui.NewLevelIndicator(12, 104, fontFace),
		policy:      ui.NewPolicyIndicator(float32(config.ScreenWidth-36), 100, 10),
		speedButton: ui.NewSpeedButton(float32(config.ScreenWidth-90), 30, 10, config.SpeedButtonColors),
		pauseButton: ui.NewPauseButton(float32(config.ScreenWidth-40), 30, 10, config.FactionColors[types.FactionBlue], config.FactionColors[types.FactionRed]),
	}
	gs.health[types.FactionBlue] = ui.NewBaseHealthIndicator(12, float32(config.ScreenHeight-30), config.FactionColors[types.FactionBlue], true, fontFace)
	gs.health[types.FactionRed] = ui.NewBaseHealthIndicator(float32(config.ScreenWidth-232), float32(config.ScreenHeight-30), config.FactionColors[types.FactionRed], false, fontFace)
	return gs, nil
}

func (g *GameState) Game() *app.Game {
	return g.game
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	g.pauseButton.SetPaused(g.game.IsPaused())

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.togglePause()
		return
	}
	for n := 1; n <= 9; n++ {
		if inpututil.IsKeyJustPressed(ebiten.Key0 + ebiten.Key(n)) {
			if unitType, ok := g.unitBar.ByHotkey(n); ok {
				g.enqueue(unitType)
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.handleClick(float32(x), float32(y))
	}

	g.game.Update(deltaTime)
	if g.game.Over() {
		g.sm.SetState(NewResultState(g.sm, g))
	}
}

func (g *GameState) handleClick(x, y float32) {
	switch {
	case g.speedButton.Contains(x, y):
		if time.Since(g.speedButton.LastToggleTime) >= config.ClickCooldown {
			g.game.HandleSpeedClick()
			g.speedButton.ToggleState()
		}
	case g.pauseButton.Contains(x, y):
		if time.Since(g.pauseButton.LastToggleTime) >= config.ClickCooldown {
			g.togglePause()
		}
	default:
		if unitType, ok := g.unitBar.At(x, y); ok {
			g.enqueue(unitType)
		}
	}
}

func (g *GameState) togglePause() {
	g.game.HandlePauseClick()
	g.pauseButton.TogglePause()
	if g.game.IsPaused() {
		g.sm.SetState(NewPauseState(g.sm, g))
	}
}

func (g *GameState) enqueue(unitType string) {
	err := g.game.Enqueue(unitType)
	switch {
	case err == nil:
		return
	case errors.Is(err, system.ErrInsufficientFunds):
		g.flash("not enough money for " + unitType)
	case errors.Is(err, system.ErrQueueFull):
		g.flash("training queue is full")
	case errors.Is(err, system.ErrLocked):
		g.flash(unitType + " is locked")
	default:
		g.logger.Warn("enqueue failed", zap.String("type", unitType), zap.Error(err))
		g.flash(err.Error())
	}
}

func (g *GameState) flash(msg string) {
	g.message = msg
	g.messageTime = time.Now()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.game.GameTime())

	human := g.game.Player(app.HumanFaction)
	mx, my := ebiten.CursorPosition()
	g.unitBar.Draw(screen, float32(mx), float32(my),
		func(t string) float64 {
			c, _ := g.game.SpawnSystem.Cost(app.HumanFaction, t)
			return c
		},
		func(t string) bool { return human != nil && human.Human && human.CanField(t) },
	)
	if human != nil {
		g.queue.Draw(screen, &human.Queue)
		g.level.Draw(screen, human.Level, human.CurrentXP, human.XPToNextLevel)
	}
	for _, f := range types.Factions {
		if b := g.game.ECS.Bases[f]; b != nil {
			g.health[f].Draw(screen, b.Health, b.Stats.MaxHealth)
		}
	}
	if c := g.game.Controllers[app.HumanFaction.Opponent()]; c != nil {
		g.policy.Draw(screen, c.Policy())
	}
	g.speedButton.SetState(g.game.SpeedIndex())
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)

	money := 0.0
	if human != nil {
		money = human.Money
	}
	status := fmt.Sprintf("money %.0f  time %.0fs", money, g.game.GameTime()/1000)
	if g.message != "" && time.Since(g.messageTime) < 2*time.Second {
		status += "  " + g.message
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 124)
}

func (g *GameState) Exit() {}
