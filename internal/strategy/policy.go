// internal/strategy/policy.go
package strategy

import "fmt"

// Policy is the posture the computer-controlled side has adopted.
type Policy int

const (
	PolicyIdle Policy = iota
	PolicyAttack
	PolicyDefend
	PolicyDesperate
)

var policyNames = map[Policy]string{
	PolicyIdle:      "idle",
	PolicyAttack:    "attack",
	PolicyDefend:    "defend",
	PolicyDesperate: "desperate",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a configured policy name back to its value.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return PolicyIdle, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
