// internal/registry/profile.go
package registry

import (
	"context"

	"go-lane-defense/internal/defs"
)

// Profile is the persisted progress a human seat brings into a match.
type Profile struct {
	Coins         float64
	Unlocked      map[string]bool // nil when nothing was ever recorded
	Constructions []string
	Upgrades      []string
}

// Owned lists every upgrade and construction id the profile holds.
func (p Profile) Owned() []string {
	owned := make([]string, 0, len(p.Upgrades)+len(p.Constructions))
	owned = append(owned, p.Upgrades...)
	return append(owned, p.Constructions...)
}

// LoadProfile reads the human player's progress once, at match start.
func LoadProfile(ctx context.Context, s Store) (Profile, error) {
	coins, err := s.Scalar(ctx, KeyCoins)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Coins: coins}

	unlocked, err := s.Members(ctx, SetUnlocked)
	if err != nil {
		return Profile{}, err
	}
	if len(unlocked) > 0 {
		p.Unlocked = make(map[string]bool, len(unlocked))
		for _, u := range unlocked {
			p.Unlocked[u] = true
		}
	}
	if p.Constructions, err = s.Members(ctx, SetConstructions); err != nil {
		return Profile{}, err
	}
	if p.Upgrades, err = s.Members(ctx, SetUpgrades); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// BuyConstruction pays for c out of the stored coins and records it.
// Prerequisites must already be owned. Either both happen or neither does.
func BuyConstruction(ctx context.Context, s Store, c defs.Construction) error {
	return s.Purchase(ctx, SetConstructions, c.ID, float64(c.Cost), c.Prerequisites)
}

// Unlock records unitType as available to the human seat.
func Unlock(ctx context.Context, s Store, unitType string) error {
	return s.AddMember(ctx, SetUnlocked, unitType)
}

// AwardCoins credits the end-of-match reward.
func AwardCoins(ctx context.Context, s Store, amount float64) (float64, error) {
	return s.AddScalar(ctx, KeyCoins, amount)
}
