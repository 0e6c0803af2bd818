// internal/strategy/catalog.go
package strategy

import (
	"fmt"

	"go-lane-defense/internal/stats"
)

// Role groups unit types by what the controller buys them for.
type Role string

const (
	RoleMelee   Role = "melee"
	RoleRanged  Role = "ranged"
	RoleSupport Role = "support"
)

// Catalog lists spawnable unit types per role, in name order.
type Catalog struct {
	roles map[Role][]string
}

// NewCatalog sorts every spawnable type of the library into a role by its
// resolved behavior. Types with any other behavior are never bought.
func NewCatalog(resolver *stats.Resolver) (*Catalog, error) {
	c := &Catalog{roles: make(map[Role][]string)}
	for _, name := range resolver.Library().UnitTypes() {
		r, err := resolver.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", name, err)
		}
		switch Role(r.Behavior) {
		case RoleMelee, RoleRanged, RoleSupport:
			c.roles[Role(r.Behavior)] = append(c.roles[Role(r.Behavior)], name)
		}
	}
	return c, nil
}

// Types returns the unit types filling role.
func (c *Catalog) Types(role Role) []string {
	return c.roles[role]
}
