// internal/defs/types.go
package defs

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind tells how a configured field must be interpreted.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueMultiplier
	ValueString
)

// Value is one configured stat field: a literal number, a multiplier
// expression such as "1.5x" resolved against the baseline, or a plain string
// that passes through resolution unchanged.
type Value struct {
	Kind   ValueKind
	Number float64 // literal value, or the factor for ValueMultiplier
	Text   string
}

// Num builds a literal numeric value.
func Num(v float64) Value { return Value{Kind: ValueNumber, Number: v} }

// Mul builds a multiplier expression value.
func Mul(factor float64) Value {
	return Value{Kind: ValueMultiplier, Number: factor, Text: strconv.FormatFloat(factor, 'g', -1, 64) + "x"}
}

// Str builds a pass-through string value.
func Str(s string) Value { return Value{Kind: ValueString, Text: s} }

// ParseValue interprets a raw scalar from the configuration.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Num(n)
	}
	if factor, ok := parseMultiplier(raw); ok {
		return Value{Kind: ValueMultiplier, Number: factor, Text: raw}
	}
	return Str(raw)
}

func parseMultiplier(raw string) (float64, bool) {
	if len(raw) < 2 || !strings.HasSuffix(raw, "x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumber reports whether the value is a literal number.
func (v Value) IsNumber() bool { return v.Kind == ValueNumber }

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	default:
		return v.Text
	}
}

// UnmarshalYAML accepts any scalar node.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: stat value must be a scalar", node.Line)
	}
	// Quoted numbers stay numbers; "2x" becomes a multiplier.
	*v = ParseValue(node.Value)
	return nil
}

// MarshalYAML writes the value back in its configured form.
func (v Value) MarshalYAML() (interface{}, error) {
	if v.Kind == ValueNumber {
		return v.Number, nil
	}
	return v.Text, nil
}
