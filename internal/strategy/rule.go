// internal/strategy/rule.go
package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"go-lane-defense/internal/defs"
)

var ErrUnknownPolicy = errors.New("unknown strategy policy")

// Env is what rule conditions can see. Field names are the identifiers
// usable inside a condition.
type Env struct {
	EnemyCount      int     // live enemy units on the lane, bases excluded
	ActiveUnits     int     // live own units on the lane
	HealthRatio     float64 // own base health fraction over the enemy's
	Money           float64
	AttackThreshold float64
	QueueLen        int
	QueueCap        int
}

// Rule adopts Policy when its condition holds. Higher priority is checked
// first and the first match wins.
type Rule struct {
	Policy       Policy
	Priority     int
	ConditionSrc string
	program      *vm.Program
}

// DefaultRules is the stock decision ladder.
func DefaultRules() []*Rule {
	return []*Rule{
		{Policy: PolicyDesperate, Priority: 30, ConditionSrc: "EnemyCount > 1 && HealthRatio < 0.5"},
		{Policy: PolicyDefend, Priority: 20, ConditionSrc: "EnemyCount > 1"},
		{Policy: PolicyAttack, Priority: 10, ConditionSrc: "Money > AttackThreshold"},
		{Policy: PolicyIdle, Priority: 0, ConditionSrc: "true"},
	}
}

// RulesFromDef applies the configured condition overrides to the default
// ladder. Priorities stay fixed.
func RulesFromDef(def defs.StrategyDef) ([]*Rule, error) {
	rules := DefaultRules()
	byPolicy := make(map[Policy]*Rule, len(rules))
	for _, r := range rules {
		byPolicy[r.Policy] = r
	}
	for name, src := range def.Rules {
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		byPolicy[p].ConditionSrc = src
	}
	return rules, nil
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile %s rule: %w", r.Policy, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
