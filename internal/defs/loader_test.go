package defs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsTypeNamedLikeClass(t *testing.T) {
	_, err := Parse([]byte(`
baseline:
  health: 100
classes:
  ranged:
    attackRange: 200
  archer:
    attackRange: 300
types:
  archer:
    extends: ranged
`))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), `"archer"`)
}

func TestParseRejectsUnknownStarterUnit(t *testing.T) {
	_, err := Parse([]byte(`
baseType: base
baseline:
  health: 100
types:
  base: {}
  archer: {}
starterUnits: [archer, base]
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultLibraryNamespaces(t *testing.T) {
	lib, err := LoadDefault()
	require.NoError(t, err)
	for name := range lib.Types {
		_, clash := lib.Classes[name]
		assert.False(t, clash, name)
	}
	for _, name := range lib.StarterUnits {
		assert.True(t, lib.IsUnitType(name), name)
	}

	c, ok := lib.Lookup("melee")
	require.True(t, ok)
	assert.Equal(t, "infantry", c.Extends)
}
