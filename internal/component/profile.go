// internal/component/profile.go
package component

// Variant is the closed set of behaviours a unit can have.
type Variant int

const (
	VariantMelee Variant = iota
	VariantRanged
	VariantSupport
	VariantSelfDestruct
	VariantBase
)

func (v Variant) String() string {
	switch v {
	case VariantMelee:
		return "melee"
	case VariantRanged:
		return "ranged"
	case VariantSupport:
		return "support"
	case VariantSelfDestruct:
		return "selfdestruct"
	case VariantBase:
		return "base"
	default:
		return "unknown"
	}
}

// ParseVariant maps a configured behavior name to its variant.
func ParseVariant(behavior string) (Variant, bool) {
	switch behavior {
	case "melee":
		return VariantMelee, true
	case "ranged":
		return VariantRanged, true
	case "support":
		return VariantSupport, true
	case "selfdestruct":
		return VariantSelfDestruct, true
	case "base":
		return VariantBase, true
	default:
		return VariantMelee, false
	}
}

// Profile is the per-variant data the behaviour driver needs. It is derived
// once at spawn from the resolved stats.
type Profile struct {
	Variant    Variant
	Reach      float64 // detection volume length ahead of the body
	BaseReach  float64 // length of the base-in-range volume, 0 for none
	Contact    bool    // acquires on touch instead of proximity
	Fires      bool    // attacks through projectiles
	Allies     bool    // targets its own faction
	Stationary bool
}

// Cadence returns the repeating timer interval for the active state.
func (p Profile) Cadence(attackSpeed, specialSpeed float64) float64 {
	if p.Allies {
		return specialSpeed
	}
	return attackSpeed
}
