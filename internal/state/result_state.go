// internal/state/result_state.go
package state

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"go-lane-defense/internal/config"
)

// ResultState shows the winner over the final frame along with the
// construction shop. Number keys buy, space starts a new match.
type ResultState struct {
	sm       *StateMachine
	finished *GameState
	shop     *shopMenu
}

func NewResultState(sm *StateMachine, finished *GameState) *ResultState {
	return &ResultState{
		sm:       sm,
		finished: finished,
		shop:     newShopMenu(finished.game, finished.logger),
	}
}

func (s *ResultState) Enter() {
	ctx, cancel := context.WithTimeout(context.Background(), shopTimeout)
	defer cancel()
	s.shop.refresh(ctx)
}

func (s *ResultState) Update(deltaTime float64) {
	for i := range shopHotkeys {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			ctx, cancel := context.WithTimeout(context.Background(), shopTimeout)
			s.shop.buy(ctx, i)
			cancel()
		}
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return
	}
	next, err := NewGameState(s.sm, s.finished.newMatch, s.finished.fontFace, s.finished.logger)
	if err != nil {
		s.finished.logger.Error("failed to start a new match", zap.Error(err))
		return
	}
	s.sm.SetState(next)
}

func (s *ResultState) Draw(screen *ebiten.Image) {
	s.finished.renderer.Draw(screen, s.finished.game.GameTime())
	vector.DrawFilledRect(screen, 0, 0, float32(config.ScreenWidth), float32(config.ScreenHeight), color.RGBA{0, 0, 0, 160}, false)

	face := s.finished.fontFace
	if face == nil {
		return
	}
	g := s.finished.game
	lines := []string{fmt.Sprintf("%s wins after %.0fs", g.Winner(), g.GameTime()/1000)}
	if r := g.LastReward(); r.Coins > 0 {
		line := fmt.Sprintf("reward: %d coins", config.MatchRewardCoins)
		if r.Unlocked != "" {
			line += ", " + r.Unlocked + " unlocked"
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	lines = append(lines, s.shop.lines()...)
	lines = append(lines, "", "press space for a new match")
	top := config.ScreenHeight/2 - len(lines)*10
	for j, line := range lines {
		bound := text.BoundString(face, line)
		text.Draw(screen, line, face, (config.ScreenWidth-bound.Dx())/2, top+j*20, color.White)
	}
}

func (s *ResultState) Exit() {}
