package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-lane-defense/internal/defs"
)

const testConfig = `
baseline:
  health: 100
  maxHealth: 100
  attackDamage: 50
  attackRange: 6
  attackSpeed: 1000
  speed: 0.05
  cost: 50
  spawnTime: 1000
  behavior: melee
  sprite: default
classes:
  melee:
    tags: [melee, ground]
    attackDamage: "2x"
  heavy:
    extends: melee
    tags: [ground, armored]
    health: "1.5x"
    speed: 0.03
types:
  knight:
    extends: heavy
    tags: [armored, elite]
    cost: 80
  orphan:
    extends: nowhere
    attackDamage: "3x"
  loop_a:
    extends: loop_b
  loop_b:
    extends: loop_a
    cost: 10
  ranger:
    behavior: ranged
    attackRange: 200
`

func newTestResolver(t *testing.T, doc string) *Resolver {
	t.Helper()
	lib, err := defs.Parse([]byte(doc))
	require.NoError(t, err)
	return NewResolver(lib, zap.NewNop())
}

func TestResolveInheritanceMerge(t *testing.T) {
	r := newTestResolver(t, testConfig)

	knight, err := r.Resolve("knight")
	require.NoError(t, err)

	assert.Equal(t, 100.0, knight.AttackDamage, "class multiplier resolves against baseline")
	assert.Equal(t, 150.0, knight.Health)
	assert.Equal(t, 0.03, knight.Speed, "nearest ancestor override wins")
	assert.Equal(t, 80.0, knight.Cost, "own field wins")
	assert.Equal(t, 6.0, knight.AttackRange, "untouched field falls through to baseline")
	assert.Equal(t, "melee", knight.Behavior)
	assert.Equal(t, []string{"armored", "elite", "ground", "melee"}, knight.Tags)
}

func TestResolveMultiplierAgainstBaseline(t *testing.T) {
	r := newTestResolver(t, testConfig)

	melee, err := r.Resolve("melee")
	require.NoError(t, err)
	assert.Equal(t, 100.0, melee.AttackDamage, `"2x" against 50`)
}

func TestResolveStringsPassThrough(t *testing.T) {
	r := newTestResolver(t, testConfig)

	ranger, err := r.Resolve("ranger")
	require.NoError(t, err)
	assert.Equal(t, "ranged", ranger.Behavior)
	assert.Equal(t, "default", ranger.Strings["sprite"])
	assert.Equal(t, 200.0, ranger.AttackRange)
	assert.Equal(t, 1.0, ranger.Pierce, "pierce defaults to one target")
}

func TestResolveUnknownType(t *testing.T) {
	r := newTestResolver(t, testConfig)

	got, err := r.Resolve("dragon")
	require.ErrorIs(t, err, ErrUnknownUnitType)
	assert.True(t, got.IsZero())
}

func TestResolveMissingParentMergesAgainstBaseline(t *testing.T) {
	r := newTestResolver(t, testConfig)

	orphan, err := r.Resolve("orphan")
	require.NoError(t, err)
	assert.Equal(t, 150.0, orphan.AttackDamage)
	assert.Equal(t, 100.0, orphan.Health)
}

func TestResolveCycleTerminates(t *testing.T) {
	r := newTestResolver(t, testConfig)

	a, err := r.Resolve("loop_a")
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.Cost, "parent in the cycle still merges once")
}

func TestResolveInvalidBaselineFails(t *testing.T) {
	r := newTestResolver(t, `
baseline:
  health: 100
  behavior: melee
types:
  odd:
    behavior: "2x"
  ghost:
    mana: "3x"
`)

	_, err := r.Resolve("odd")
	require.ErrorIs(t, err, ErrInvalidBaseline, "multiplier against a string baseline")

	_, err = r.Resolve("ghost")
	require.ErrorIs(t, err, ErrInvalidBaseline, "multiplier without a baseline entry")

	require.Error(t, r.Validate())
}

func TestResolveNonNumericStat(t *testing.T) {
	r := newTestResolver(t, `
baseline:
  health: 100
types:
  bad:
    health: lots
`)
	_, err := r.Resolve("bad")
	require.ErrorIs(t, err, ErrNotNumeric)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newTestResolver(t, testConfig)

	first, err := r.Resolve("knight")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.Resolve("knight")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDefaultLibraryValidates(t *testing.T) {
	lib, err := defs.LoadDefault()
	require.NoError(t, err)

	r := NewResolver(lib, zap.NewNop())
	require.NoError(t, r.Validate())

	archer, err := r.Resolve("archer")
	require.NoError(t, err)
	assert.Equal(t, "ranged", archer.Behavior)
	assert.Equal(t, 1500.0, archer.AttackSpeed)
	assert.InDelta(t, 70.0, archer.Cost, 1e-9)
}
