// internal/registry/store.go
package registry

import (
	"context"
	"errors"
)

// Well-known names read and written by the game.
const (
	KeyCoins         = "coins"
	SetUnlocked      = "unlocked"
	SetConstructions = "constructions"
	SetUpgrades      = "upgrades"
)

var (
	ErrInsufficientCoins   = errors.New("not enough coins")
	ErrAlreadyOwned        = errors.New("already owned")
	ErrMissingPrerequisite = errors.New("missing prerequisite")
)

// Store persists the player's progress between matches as named scalars
// and named string sets. Missing names read as zero or empty.
type Store interface {
	Scalar(ctx context.Context, name string) (float64, error)
	SetScalar(ctx context.Context, name string, value float64) error
	// AddScalar adds delta atomically and returns the new value.
	AddScalar(ctx context.Context, name string, delta float64) (float64, error)
	// Members returns the set in sorted order.
	Members(ctx context.Context, set string) ([]string, error)
	AddMember(ctx context.Context, set, member string) error
	// Purchase adds member to set and takes cost from KeyCoins as one
	// step. It fails with ErrAlreadyOwned, ErrMissingPrerequisite or
	// ErrInsufficientCoins and then changes nothing.
	Purchase(ctx context.Context, set, member string, cost float64, requires []string) error
	Close() error
}
