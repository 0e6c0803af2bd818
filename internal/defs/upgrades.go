// internal/defs/upgrades.go
package defs

import (
	"fmt"
	"strings"
)

// EffectKind is how an effect stacks onto a stat.
type EffectKind string

const (
	EffectFlat    EffectKind = "flat"
	EffectPercent EffectKind = "percent"
)

// Target says which side of the game a construction upgrades.
type Target string

const (
	TargetUnit   Target = "unit"
	TargetPlayer Target = "player"
)

// ParseTarget validates a target name from the configuration.
func ParseTarget(raw string) (Target, error) {
	switch t := Target(strings.ToLower(strings.TrimSpace(raw))); t {
	case TargetUnit, TargetPlayer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, raw)
	}
}

// Effect is one stat change carried by an upgrade. Percent values are
// fractions, so 0.5 means +50%. Kinds other than flat and percent carry an
// override marker in Override that callers interpret.
type Effect struct {
	Stat     string     `yaml:"stat"`
	Kind     EffectKind `yaml:"kind"`
	Value    float64    `yaml:"value"`
	Override string     `yaml:"override,omitempty"`
}

// Upgrade is an owned unit-scoped improvement.
type Upgrade struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Rarity      string   `yaml:"rarity"`
	Tags        []string `yaml:"tags"`
	Effects     []Effect `yaml:"effects"`
}

// Construction is a purchasable upgrade with prerequisites and a level.
type Construction struct {
	Upgrade       `yaml:",inline"`
	Target        Target   `yaml:"target"`
	Cost          int      `yaml:"cost"`
	Prerequisites []string `yaml:"prerequisites"`
	Level         int      `yaml:"level"`
}

// Potion is a single consumable whose effects are applied last.
type Potion struct {
	Upgrade `yaml:",inline"`
}
