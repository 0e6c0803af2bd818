package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/app"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/registry"
)

func newShopGame(t *testing.T, store registry.Store) *app.Game {
	t.Helper()
	lib, err := defs.LoadDefault()
	require.NoError(t, err)
	g, err := app.NewGame(app.Options{Library: lib, Seed: 3, Human: true, Store: store}, zap.NewNop())
	require.NoError(t, err)
	return g
}

func shopIDs(m *shopMenu) []string {
	var ids []string
	for _, c := range m.items {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestShopMenuBuysByIndex(t *testing.T) {
	ctx := context.Background()
	store := registry.NewMemoryStore()
	require.NoError(t, store.SetScalar(ctx, registry.KeyCoins, 400))
	m := newShopMenu(newShopGame(t, store), zap.NewNop())

	m.refresh(ctx)
	require.True(t, m.open)
	assert.Equal(t, 400.0, m.coins)
	require.Contains(t, shopIDs(m), "forge")
	assert.NotContains(t, shopIDs(m), "armory", "armory needs a forge first")

	forge := -1
	for i, c := range m.items {
		if c.ID == "forge" {
			forge = i
		}
	}
	m.buy(ctx, forge)

	assert.Equal(t, "Forge built", m.message)
	assert.Equal(t, 250.0, m.coins)
	assert.NotContains(t, shopIDs(m), "forge")
	assert.Contains(t, shopIDs(m), "armory")
	owned, err := store.Members(ctx, registry.SetConstructions)
	require.NoError(t, err)
	assert.Equal(t, []string{"forge"}, owned)

	lines := m.lines()
	assert.Equal(t, "shop: 250 coins", lines[0])
	assert.Equal(t, "Forge built", lines[len(lines)-1])
}

func TestShopMenuReportsRefusal(t *testing.T) {
	ctx := context.Background()
	store := registry.NewMemoryStore()
	m := newShopMenu(newShopGame(t, store), zap.NewNop())

	m.refresh(ctx)
	require.NotEmpty(t, m.items)
	m.buy(ctx, 0)

	assert.Contains(t, m.message, registry.ErrInsufficientCoins.Error())
	owned, err := store.Members(ctx, registry.SetConstructions)
	require.NoError(t, err)
	assert.Empty(t, owned)

	m.buy(ctx, len(m.items))
	assert.Contains(t, m.message, registry.ErrInsufficientCoins.Error(), "out of range keys are ignored")
}

func TestShopMenuClosedWithoutStore(t *testing.T) {
	m := newShopMenu(newShopGame(t, nil), zap.NewNop())
	m.refresh(context.Background())
	assert.False(t, m.open)
	assert.Nil(t, m.lines())
}
