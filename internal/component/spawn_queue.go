// internal/component/spawn_queue.go
package component

// QueueEntry is one paid-for unit waiting to be released.
type QueueEntry struct {
	Type      string
	SpawnTime float64 // resolved at enqueue, ms
}

// SpawnQueue is a bounded FIFO with the release gate state for its head.
type SpawnQueue struct {
	Entries  []QueueEntry
	Capacity int

	Started bool    // gate timer is running for the head
	Timer   float64 // ms left before the head may be released
	Ticks   int     // ticks since the gate timer started
}

func (q *SpawnQueue) Len() int { return len(q.Entries) }

func (q *SpawnQueue) Full() bool { return len(q.Entries) >= q.Capacity }

// Space is the number of free slots.
func (q *SpawnQueue) Space() int {
	if n := q.Capacity - len(q.Entries); n > 0 {
		return n
	}
	return 0
}

// Push appends e. It reports false when the queue is full.
func (q *SpawnQueue) Push(e QueueEntry) bool {
	if q.Full() {
		return false
	}
	q.Entries = append(q.Entries, e)
	return true
}

// Head returns the next entry to release.
func (q *SpawnQueue) Head() (QueueEntry, bool) {
	if len(q.Entries) == 0 {
		return QueueEntry{}, false
	}
	return q.Entries[0], true
}

// Pop removes the head and stops the gate timer.
func (q *SpawnQueue) Pop() (QueueEntry, bool) {
	e, ok := q.Head()
	if !ok {
		return e, false
	}
	copy(q.Entries, q.Entries[1:])
	q.Entries = q.Entries[:len(q.Entries)-1]
	q.Started = false
	q.Timer = 0
	q.Ticks = 0
	return e, true
}
