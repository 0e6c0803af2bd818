package stats

import (
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"go-lane-defense/internal/defs"
)

// Modifier is the aggregated effect on one stat.
type Modifier struct {
	Flat     float64
	Percent  float64
	Override string // last non-flat, non-percent marker; empty when none
}

// Aggregate maps stat names to their combined modifier.
type Aggregate map[string]Modifier

func (a Aggregate) add(e defs.Effect) {
	m := a[e.Stat]
	switch e.Kind {
	case defs.EffectFlat:
		m.Flat += e.Value
	case defs.EffectPercent:
		m.Percent += e.Value
	default:
		m.Override = e.Override
		if m.Override == "" {
			m.Override = string(e.Kind)
		}
	}
	a[e.Stat] = m
}

// Apply layers the aggregate onto resolved stats: each present numeric stat
// becomes (base + flat) * (1 + percent), floored for integer-valued stats.
// Overrides replace pass-through string fields.
func (a Aggregate) Apply(r Resolved) Resolved {
	out := r.Clone()
	for stat, m := range a {
		if p := out.stringField(stat); p != nil {
			if m.Override != "" {
				*p = m.Override
			}
			continue
		}
		if m.Flat == 0 && m.Percent == 0 {
			if m.Override != "" {
				out.setString(stat, m.Override)
			}
			continue
		}
		base, _ := out.Number(stat)
		out.setNumber(stat, stackValue(base, m, integerStats[stat]))
	}
	if _, ok := a[defs.FieldMaxHealth]; ok {
		if _, healthToo := a[defs.FieldHealth]; !healthToo {
			out.Health = out.MaxHealth
		}
	}
	if out.Health > out.MaxHealth {
		out.MaxHealth = out.Health
	}
	return out
}

// Engine collects upgrade, construction and potion effects.
type Engine struct {
	lib    *defs.Library
	logger *zap.Logger
}

func NewEngine(lib *defs.Library, logger *zap.Logger) *Engine {
	return &Engine{lib: lib, logger: logger}
}

// Aggregate combines every owned effect for target without tag filtering.
func (e *Engine) Aggregate(owned []string, target defs.Target, potion string) (Aggregate, error) {
	return e.aggregate(owned, target, potion, nil, false)
}

// AggregateForTags is Aggregate for one unit: tagged upgrades only apply to
// units sharing at least one of their tags.
func (e *Engine) AggregateForTags(owned []string, target defs.Target, potion string, tags []string) (Aggregate, error) {
	return e.aggregate(owned, target, potion, tags, true)
}

func (e *Engine) aggregate(owned []string, target defs.Target, potion string, tags []string, filter bool) (Aggregate, error) {
	if target != defs.TargetUnit && target != defs.TargetPlayer {
		return nil, fmt.Errorf("%w: %q", defs.ErrUnknownTarget, target)
	}
	applies := func(upTags []string) bool {
		if !filter || len(upTags) == 0 {
			return true
		}
		for _, t := range upTags {
			if slices.Contains(tags, t) {
				return true
			}
		}
		return false
	}

	agg := make(Aggregate)
	var upgrades []defs.Upgrade
	var constructions []defs.Construction
	for _, id := range owned {
		if u, ok := e.lib.Upgrade(id); ok {
			upgrades = append(upgrades, u)
			continue
		}
		if c, ok := e.lib.Construction(id); ok {
			constructions = append(constructions, c)
			continue
		}
		e.logger.Debug("owned id matches no upgrade", zap.String("id", id))
	}

	if target == defs.TargetUnit {
		sort.Slice(upgrades, func(i, j int) bool { return upgrades[i].ID < upgrades[j].ID })
		for _, u := range upgrades {
			if !applies(u.Tags) {
				continue
			}
			for _, eff := range u.Effects {
				agg.add(eff)
			}
		}
	}

	sort.Slice(constructions, func(i, j int) bool {
		if constructions[i].Level != constructions[j].Level {
			return constructions[i].Level < constructions[j].Level
		}
		return constructions[i].ID < constructions[j].ID
	})
	for _, c := range constructions {
		if c.Target != target || !applies(c.Tags) {
			continue
		}
		for _, eff := range c.Effects {
			agg.add(eff)
		}
	}

	if potion != "" {
		p, ok := e.lib.Potion(potion)
		if !ok {
			e.logger.Debug("active potion is not configured", zap.String("potion", potion))
		} else {
			for _, eff := range p.Effects {
				agg.add(eff)
			}
		}
	}
	return agg, nil
}

// Available lists constructions that can be bought next: not owned yet and
// with every prerequisite owned. Sorted by level, then id.
func (e *Engine) Available(owned []string) []defs.Construction {
	var out []defs.Construction
	for _, c := range e.lib.Constructions {
		if slices.Contains(owned, c.ID) {
			continue
		}
		ready := true
		for _, pre := range c.Prerequisites {
			if !slices.Contains(owned, pre) {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out
}
