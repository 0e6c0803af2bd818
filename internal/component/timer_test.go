package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerSetOneShot(t *testing.T) {
	var ts TimerSet
	fired := 0
	h := ts.After(100, func() { fired++ })

	ts.Update(60)
	assert.Equal(t, 0, fired)
	assert.True(t, ts.Active(h))

	ts.Update(60)
	assert.Equal(t, 1, fired)
	assert.False(t, ts.Active(h))

	ts.Update(200)
	assert.Equal(t, 1, fired, "one-shot never repeats")
	assert.Equal(t, 0, ts.Len())
}

func TestTimerSetRepeating(t *testing.T) {
	var ts TimerSet
	fired := 0
	ts.Every(50, func() { fired++ })

	for i := 0; i < 10; i++ {
		ts.Update(25)
	}
	assert.Equal(t, 5, fired)
}

func TestTimerSetCancelledInSameTickNeverFires(t *testing.T) {
	var ts TimerSet
	var second TimerHandle
	secondFired := false

	ts.After(10, func() { ts.Cancel(second) })
	second = ts.Every(10, func() { secondFired = true })

	ts.Update(10)
	assert.False(t, secondFired, "cancelled earlier in the same update")
	assert.Equal(t, 0, ts.Len())
}

func TestTimerSetCancelAllFromCallback(t *testing.T) {
	var ts TimerSet
	calls := 0
	ts.Every(10, func() {
		calls++
		ts.CancelAll()
	})
	ts.Every(10, func() { calls++ })

	ts.Update(10)
	ts.Update(10)
	assert.Equal(t, 1, calls)
}

func TestTimerSetCallbackMayScheduleMore(t *testing.T) {
	var ts TimerSet
	var order []string
	ts.After(10, func() {
		order = append(order, "first")
		ts.After(10, func() { order = append(order, "second") })
	})

	ts.Update(10)
	assert.Equal(t, []string{"first"}, order, "new timers wait for the next update")
	ts.Update(10)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTimerSetResetDoesNotReuseHandles(t *testing.T) {
	var ts TimerSet
	old := ts.After(10, func() {})
	ts.Reset()

	fresh := ts.After(10, func() {})
	assert.NotEqual(t, old, fresh)
	ts.Cancel(old)
	assert.True(t, ts.Active(fresh))
}
