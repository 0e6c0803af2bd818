// internal/defs/units.go
package defs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Names of the stat fields every resolved unit carries.
const (
	FieldHealth        = "health"
	FieldMaxHealth     = "maxHealth"
	FieldAttackDamage  = "attackDamage"
	FieldAttackRange   = "attackRange"
	FieldAttackSpeed   = "attackSpeed"
	FieldSpecialDamage = "specialDamage"
	FieldSpecialRange  = "specialRange"
	FieldSpecialSpeed  = "specialSpeed"
	FieldSpeed         = "speed"
	FieldCost          = "cost"
	FieldSpawnTime     = "spawnTime"
	FieldPierce        = "pierce"

	FieldBehavior      = "behavior"
	FieldProjectile    = "projectile"
	FieldSupportEffect = "supportEffect"
)

// BaselineName is the implicit root of every extends chain.
const BaselineName = "baseline"

// UnitConfig is one node of the unit inheritance tree: the baseline, a unit
// class or a concrete unit type.
type UnitConfig struct {
	Extends string
	Tags    []string
	Fields  map[string]Value
}

// UnmarshalYAML splits the reserved keys from the stat fields.
func (c *UnitConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: unit config must be a mapping", node.Line)
	}
	c.Fields = make(map[string]Value)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch key {
		case "extends":
			if err := val.Decode(&c.Extends); err != nil {
				return fmt.Errorf("extends: %w", err)
			}
		case "tags":
			if err := val.Decode(&c.Tags); err != nil {
				return fmt.Errorf("tags: %w", err)
			}
		default:
			var v Value
			if err := val.Decode(&v); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			c.Fields[key] = v
		}
	}
	return nil
}
