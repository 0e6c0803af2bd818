// internal/strategy/engine.go
package strategy

import (
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"
)

// Engine picks a policy from compiled rule conditions.
type Engine struct {
	rules  []*Rule
	logger *zap.Logger
}

// NewEngine compiles every condition once. A condition that does not
// compile to a boolean fails here rather than during a match.
func NewEngine(rules []*Rule, logger *zap.Logger) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, logger: logger}, nil
}

// Evaluate returns the policy of the highest-priority rule whose condition
// holds, or PolicyIdle when none does.
func (e *Engine) Evaluate(env Env) Policy {
	for _, r := range e.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			e.logger.Warn("rule condition error", zap.Stringer("policy", r.Policy), zap.Error(err))
			continue
		}
		if match, ok := result.(bool); ok && match {
			return r.Policy
		}
	}
	return PolicyIdle
}
