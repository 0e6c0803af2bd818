// internal/defs/library.go
package defs

import "sort"

// StrategyDef tunes the computer-controlled side.
type StrategyDef struct {
	Interval        float64           `yaml:"interval"`
	AttackThreshold float64           `yaml:"attackThreshold"`
	DefendUnitCap   int               `yaml:"defendUnitCap"`
	Rules           map[string]string `yaml:"rules"`
	Weights         map[string]int    `yaml:"weights"`
}

// Library is the whole immutable configuration tree for a session. It is
// built once at startup and passed by reference to everything that reads it.
type Library struct {
	BaseType      string                `yaml:"baseType"`
	Baseline      UnitConfig            `yaml:"baseline"`
	Classes       map[string]UnitConfig `yaml:"classes"`
	Types         map[string]UnitConfig `yaml:"types"`
	Player        map[string]float64    `yaml:"player"`
	Upgrades      []Upgrade             `yaml:"upgrades"`
	Constructions []Construction        `yaml:"constructions"`
	Potions       []Potion              `yaml:"potions"`
	Strategy      StrategyDef           `yaml:"strategy"`
	// StarterUnits are fielded by a fresh profile. Empty means every type.
	StarterUnits []string `yaml:"starterUnits"`
}

// Lookup finds a unit type or class by name. The two namespaces are
// disjoint once the library is validated.
func (l *Library) Lookup(name string) (UnitConfig, bool) {
	if c, ok := l.Types[name]; ok {
		return c, true
	}
	c, ok := l.Classes[name]
	return c, ok
}

// IsUnitType reports whether name is a concrete, spawnable unit type.
func (l *Library) IsUnitType(name string) bool {
	_, ok := l.Types[name]
	return ok && name != l.BaseType
}

// UnitTypes returns the spawnable unit type names in sorted order.
func (l *Library) UnitTypes() []string {
	names := make([]string, 0, len(l.Types))
	for name := range l.Types {
		if name == l.BaseType {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) Upgrade(id string) (Upgrade, bool) {
	for _, u := range l.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

func (l *Library) Construction(id string) (Construction, bool) {
	for _, c := range l.Constructions {
		if c.ID == id {
			return c, true
		}
	}
	return Construction{}, false
}

func (l *Library) Potion(id string) (Potion, bool) {
	for _, p := range l.Potions {
		if p.ID == id {
			return p, true
		}
	}
	return Potion{}, false
}
