package stats

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"go.uber.org/zap"

	"go-lane-defense/internal/defs"
)

var (
	ErrUnknownUnitType = errors.New("unknown unit type")
	ErrInvalidBaseline = errors.New("multiplier has no numeric baseline")
	ErrNotNumeric      = errors.New("stat is not numeric")
)

// Resolver flattens the unit inheritance tree into Resolved stats.
// Resolution is a pure function of the library.
type Resolver struct {
	lib    *defs.Library
	logger *zap.Logger
}

func NewResolver(lib *defs.Library, logger *zap.Logger) *Resolver {
	return &Resolver{lib: lib, logger: logger}
}

// Library returns the configuration the resolver reads.
func (r *Resolver) Library() *defs.Library {
	return r.lib
}

// Resolve walks the extends chain of unitType, merges overrides child-first,
// unions tags and resolves multiplier expressions against the baseline.
// On failure it logs and returns the empty Resolved along with the error.
func (r *Resolver) Resolve(unitType string) (Resolved, error) {
	fields, tags, err := r.merge(unitType)
	if err != nil {
		r.logger.Warn("stat resolution failed", zap.String("unitType", unitType), zap.Error(err))
		return Resolved{}, err
	}

	out := Resolved{Type: unitType, Tags: tags}
	for name, v := range fields {
		switch v.Kind {
		case defs.ValueNumber:
			out.setNumber(name, v.Number)
		case defs.ValueString:
			if out.numberField(name) != nil {
				err := fmt.Errorf("%w: %s.%s = %q", ErrNotNumeric, unitType, name, v.Text)
				r.logger.Warn("stat resolution failed", zap.String("unitType", unitType), zap.Error(err))
				return Resolved{}, err
			}
			out.setString(name, v.Text)
		}
	}
	if out.Pierce < 1 {
		out.Pierce = 1
	}
	if out.MaxHealth == 0 {
		out.MaxHealth = out.Health
	}
	return out, nil
}

// Validate resolves every configured type once so configuration errors
// surface at load time instead of mid-match.
func (r *Resolver) Validate() error {
	names := make([]string, 0, len(r.lib.Types))
	for name := range r.lib.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := r.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) merge(unitType string) (map[string]defs.Value, []string, error) {
	cfg, ok := r.lib.Lookup(unitType)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownUnitType, unitType)
	}

	chain := []defs.UnitConfig{cfg}
	visited := map[string]bool{unitType: true}
	for parent := cfg.Extends; parent != "" && parent != defs.BaselineName; {
		if visited[parent] {
			r.logger.Warn("extends cycle, merging against baseline",
				zap.String("unitType", unitType), zap.String("parent", parent))
			break
		}
		pc, ok := r.lib.Lookup(parent)
		if !ok {
			r.logger.Warn("missing parent, merging against baseline",
				zap.String("unitType", unitType), zap.String("parent", parent))
			break
		}
		visited[parent] = true
		chain = append(chain, pc)
		parent = pc.Extends
	}

	fields := maps.Clone(r.lib.Baseline.Fields)
	if fields == nil {
		fields = make(map[string]defs.Value)
	}
	tagSet := make(map[string]struct{})
	for _, t := range r.lib.Baseline.Tags {
		tagSet[t] = struct{}{}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Fields {
			fields[k] = v
		}
		for _, t := range chain[i].Tags {
			tagSet[t] = struct{}{}
		}
	}

	for name, v := range fields {
		if v.Kind != defs.ValueMultiplier {
			continue
		}
		base, ok := r.lib.Baseline.Fields[name]
		if !ok || !base.IsNumber() {
			return nil, nil, fmt.Errorf("%w: %s.%s = %q", ErrInvalidBaseline, unitType, name, v.Text)
		}
		fields[name] = defs.Num(v.Number * base.Number)
	}

	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return fields, tags, nil
}
