// internal/system/animator.go
package system

import (
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/types"
)

// Animator plays a named animation. Calls are fire-and-forget.
type Animator interface {
	Play(id types.EntityID, unitType, state string)
}

// NopAnimator discards every call.
type NopAnimator struct{}

func (NopAnimator) Play(types.EntityID, string, string) {}

// transition moves u into st and notifies the animator on change.
func transition(a Animator, u *component.Unit, st component.UnitState) {
	if u.State == st {
		return
	}
	u.State = st
	a.Play(u.ID, u.Type, st.String())
}
