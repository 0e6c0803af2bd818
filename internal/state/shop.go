// internal/state/shop.go
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/defs"
)

const (
	shopTimeout = 2 * time.Second
	shopHotkeys = 9
)

// shopMenu offers constructions for the stored profile between matches.
// Items are numbered from 1 in the order the engine lists them.
type shopMenu struct {
	game    *app.Game
	logger  *zap.Logger
	items   []defs.Construction
	coins   float64
	open    bool
	message string
}

func newShopMenu(g *app.Game, logger *zap.Logger) *shopMenu {
	return &shopMenu{game: g, logger: logger}
}

// refresh reloads the offer and the balance. A match without a store
// leaves the menu closed.
func (m *shopMenu) refresh(ctx context.Context) {
	items, err := m.game.Shop(ctx)
	if errors.Is(err, app.ErrNoHuman) {
		m.open = false
		return
	}
	if err != nil {
		m.logger.Error("failed to list the shop", zap.Error(err))
		m.message = "shop unavailable"
		return
	}
	coins, err := m.game.Coins(ctx)
	if err != nil {
		m.logger.Error("failed to read coins", zap.Error(err))
		m.message = "shop unavailable"
		return
	}
	m.items, m.coins, m.open = items, coins, true
	if len(m.items) > shopHotkeys {
		m.items = m.items[:shopHotkeys]
	}
}

// buy purchases the item at index and refreshes the offer.
func (m *shopMenu) buy(ctx context.Context, index int) {
	if !m.open || index < 0 || index >= len(m.items) {
		return
	}
	c := m.items[index]
	if err := m.game.BuyConstruction(ctx, c.ID); err != nil {
		m.message = err.Error()
		m.refresh(ctx)
		return
	}
	m.message = fmt.Sprintf("%s built", c.Name)
	m.refresh(ctx)
}

// lines renders the menu as text, one entry per line.
func (m *shopMenu) lines() []string {
	if !m.open {
		return nil
	}
	out := []string{fmt.Sprintf("shop: %.0f coins", m.coins)}
	for i, c := range m.items {
		out = append(out, fmt.Sprintf("%d  %s  %d", i+1, c.Name, c.Cost))
	}
	if len(m.items) == 0 {
		out = append(out, "nothing left to build")
	}
	if m.message != "" {
		out = append(out, m.message)
	}
	return out
}
