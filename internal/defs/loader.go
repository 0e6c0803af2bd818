// internal/defs/loader.go
package defs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid unit configuration")
	ErrUnknownTarget = errors.New("unknown upgrade target")
)

//go:embed default.yaml
var defaultConfig []byte

// LoadDefault parses the configuration shipped with the binary.
func LoadDefault() (*Library, error) {
	return Parse(defaultConfig)
}

// Load reads a configuration file from disk.
func Load(path string) (*Library, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit configuration file: %w", err)
	}
	return Parse(file)
}

// Parse decodes and structurally validates a configuration document.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unit configuration: %w", err)
	}
	if lib.Classes == nil {
		lib.Classes = make(map[string]UnitConfig)
	}
	if lib.Types == nil {
		lib.Types = make(map[string]UnitConfig)
	}
	if lib.Player == nil {
		lib.Player = make(map[string]float64)
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (l *Library) validate() error {
	for field, v := range l.Baseline.Fields {
		if v.Kind == ValueMultiplier {
			return fmt.Errorf("%w: baseline field %q must be a literal, got %q", ErrInvalidConfig, field, v.Text)
		}
	}
	for name := range l.Types {
		if _, ok := l.Classes[name]; ok {
			return fmt.Errorf("%w: %q is both a unit type and a class", ErrInvalidConfig, name)
		}
	}
	if l.BaseType != "" {
		if _, ok := l.Types[l.BaseType]; !ok {
			return fmt.Errorf("%w: base type %q is not defined", ErrInvalidConfig, l.BaseType)
		}
	}
	for i, c := range l.Constructions {
		t, err := ParseTarget(string(c.Target))
		if err != nil {
			return fmt.Errorf("construction %q: %w", c.ID, err)
		}
		l.Constructions[i].Target = t
		for _, pre := range c.Prerequisites {
			if _, ok := l.Construction(pre); !ok {
				return fmt.Errorf("%w: construction %q requires unknown %q", ErrInvalidConfig, c.ID, pre)
			}
		}
	}
	for _, name := range l.StarterUnits {
		if !l.IsUnitType(name) {
			return fmt.Errorf("%w: starter unit %q is not a unit type", ErrInvalidConfig, name)
		}
	}
	for name := range l.Strategy.Weights {
		if !l.IsUnitType(name) {
			return fmt.Errorf("%w: strategy weight for unknown unit type %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
