// internal/component/timer.go
package component

// TimerHandle names one scheduled callback inside a TimerSet. Zero is never
// issued and means "no timer".
type TimerHandle uint64

type timer struct {
	handle    TimerHandle
	remaining float64
	interval  float64
	repeat    bool
	cancelled bool
	fn        func()
}

// TimerSet holds the scheduled callbacks owned by one entity. Callbacks run
// during Update on the simulation goroutine. A handle cancelled at any point
// before its turn in the current Update never fires.
type TimerSet struct {
	next   TimerHandle
	timers []*timer
}

// After schedules fn to run once, delay ms from now.
func (t *TimerSet) After(delay float64, fn func()) TimerHandle {
	return t.add(delay, 0, false, fn)
}

// Every schedules fn to run every interval ms, first after one interval.
func (t *TimerSet) Every(interval float64, fn func()) TimerHandle {
	return t.add(interval, interval, true, fn)
}

func (t *TimerSet) add(delay, interval float64, repeat bool, fn func()) TimerHandle {
	t.next++
	t.timers = append(t.timers, &timer{
		handle:    t.next,
		remaining: delay,
		interval:  interval,
		repeat:    repeat,
		fn:        fn,
	})
	return t.next
}

// Cancel stops a timer. Unknown or finished handles are ignored.
func (t *TimerSet) Cancel(h TimerHandle) {
	if h == 0 {
		return
	}
	for _, tm := range t.timers {
		if tm.handle == h {
			tm.cancelled = true
		}
	}
}

// CancelAll stops every timer in the set.
func (t *TimerSet) CancelAll() {
	for _, tm := range t.timers {
		tm.cancelled = true
	}
}

// Active reports whether h is scheduled and not cancelled.
func (t *TimerSet) Active(h TimerHandle) bool {
	for _, tm := range t.timers {
		if tm.handle == h {
			return !tm.cancelled
		}
	}
	return false
}

// Len is the number of live timers.
func (t *TimerSet) Len() int {
	n := 0
	for _, tm := range t.timers {
		if !tm.cancelled {
			n++
		}
	}
	return n
}

// Update advances every timer by dt and fires the ones that are due. A
// repeating timer fires at most once per Update. Timers added by a callback
// start counting on the next Update.
func (t *TimerSet) Update(dt float64) {
	due := t.timers
	for _, tm := range due {
		if tm.cancelled {
			continue
		}
		tm.remaining -= dt
		if tm.remaining > 0 {
			continue
		}
		if tm.repeat {
			tm.remaining += tm.interval
			if tm.remaining <= 0 {
				tm.remaining = tm.interval
			}
		} else {
			tm.cancelled = true
		}
		tm.fn()
	}

	live := t.timers[:0]
	for _, tm := range t.timers {
		if !tm.cancelled {
			live = append(live, tm)
		}
	}
	clear(t.timers[len(live):])
	t.timers = live
}

// Reset drops every timer. Handles are never reissued, so a stale handle
// held from a previous lifetime cannot cancel a new timer.
func (t *TimerSet) Reset() {
	t.CancelAll()
	t.timers = nil
}
