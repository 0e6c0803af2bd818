package stats

import (
	"maps"
	"math"
	"slices"

	"go-lane-defense/internal/defs"
)

// Resolved is the flattened numeric result for one unit type. A fresh value
// is produced for every spawn; only the live health on the entity changes
// afterwards.
type Resolved struct {
	Type string

	Health        float64
	MaxHealth     float64
	AttackDamage  float64
	AttackRange   float64
	AttackSpeed   float64 // cooldown between attacks, ms
	SpecialDamage float64
	SpecialRange  float64
	SpecialSpeed  float64 // cooldown between special actions, ms
	Speed         float64 // px per ms
	Cost          float64
	SpawnTime     float64 // ms
	Pierce        float64 // targets a projectile may hit before despawning

	Behavior      string
	Projectile    string
	SupportEffect string

	Tags    []string
	Strings map[string]string  // pass-through fields without a dedicated slot
	Extra   map[string]float64 // numeric fields without a dedicated slot
}

// integerStats are floored when modified by upgrades. Speeds and cadences
// stay continuous.
var integerStats = map[string]bool{
	defs.FieldHealth:        true,
	defs.FieldMaxHealth:     true,
	defs.FieldAttackDamage:  true,
	defs.FieldAttackRange:   true,
	defs.FieldSpecialDamage: true,
	defs.FieldSpecialRange:  true,
	defs.FieldCost:          true,
	defs.FieldSpawnTime:     true,
	defs.FieldPierce:        true,
}

// IsZero reports whether r is the empty result returned on failure.
func (r Resolved) IsZero() bool {
	return r.Type == ""
}

// HasTag reports whether the unit carries tag.
func (r Resolved) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Number returns a numeric stat by configuration name.
func (r *Resolved) Number(name string) (float64, bool) {
	if p := r.numberField(name); p != nil {
		return *p, true
	}
	v, ok := r.Extra[name]
	return v, ok
}

func (r *Resolved) numberField(name string) *float64 {
	switch name {
	case defs.FieldHealth:
		return &r.Health
	case defs.FieldMaxHealth:
		return &r.MaxHealth
	case defs.FieldAttackDamage:
		return &r.AttackDamage
	case defs.FieldAttackRange:
		return &r.AttackRange
	case defs.FieldAttackSpeed:
		return &r.AttackSpeed
	case defs.FieldSpecialDamage:
		return &r.SpecialDamage
	case defs.FieldSpecialRange:
		return &r.SpecialRange
	case defs.FieldSpecialSpeed:
		return &r.SpecialSpeed
	case defs.FieldSpeed:
		return &r.Speed
	case defs.FieldCost:
		return &r.Cost
	case defs.FieldSpawnTime:
		return &r.SpawnTime
	case defs.FieldPierce:
		return &r.Pierce
	}
	return nil
}

func (r *Resolved) stringField(name string) *string {
	switch name {
	case defs.FieldBehavior:
		return &r.Behavior
	case defs.FieldProjectile:
		return &r.Projectile
	case defs.FieldSupportEffect:
		return &r.SupportEffect
	}
	return nil
}

func (r *Resolved) setNumber(name string, v float64) {
	if p := r.numberField(name); p != nil {
		*p = v
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]float64)
	}
	r.Extra[name] = v
}

func (r *Resolved) setString(name, v string) {
	if p := r.stringField(name); p != nil {
		*p = v
		return
	}
	if r.Strings == nil {
		r.Strings = make(map[string]string)
	}
	r.Strings[name] = v
}

// Clone returns a deep copy so callers can modify the result freely.
func (r Resolved) Clone() Resolved {
	out := r
	out.Tags = slices.Clone(r.Tags)
	out.Strings = maps.Clone(r.Strings)
	out.Extra = maps.Clone(r.Extra)
	return out
}

func stackValue(base float64, m Modifier, integer bool) float64 {
	v := (base + m.Flat) * (1 + m.Percent)
	if integer {
		v = math.Floor(v)
	}
	return v
}
