// internal/entity/pool.go
package entity

// Resetter is implemented by pooled values. Reset must clear every field a
// previous lifetime may have written.
type Resetter interface {
	Reset()
}

// Pool is a fixed arena of slots. Pointers to slots stay valid for the life
// of the pool; a slot is reset every time it is handed out.
type Pool[T any, P interface {
	*T
	Resetter
}] struct {
	slots []T
	live  []bool
	free  []int
}

// NewPool allocates size slots up front.
func NewPool[T any, P interface {
	*T
	Resetter
}](size int) *Pool[T, P] {
	p := &Pool[T, P]{
		slots: make([]T, size),
		live:  make([]bool, size),
		free:  make([]int, 0, size),
	}
	for i := size - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Acquire hands out a freshly reset slot. It reports false when every slot
// is in use.
func (p *Pool[T, P]) Acquire() (P, int, bool) {
	if len(p.free) == 0 {
		return nil, -1, false
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.live[i] = true
	v := P(&p.slots[i])
	v.Reset()
	return v, i, true
}

// Release returns a slot to the pool and resets it. Releasing a free slot is
// a no-op.
func (p *Pool[T, P]) Release(slot int) {
	if slot < 0 || slot >= len(p.slots) || !p.live[slot] {
		return
	}
	p.live[slot] = false
	P(&p.slots[slot]).Reset()
	p.free = append(p.free, slot)
}

// Get returns the slot if it is in use.
func (p *Pool[T, P]) Get(slot int) (P, bool) {
	if slot < 0 || slot >= len(p.slots) || !p.live[slot] {
		return nil, false
	}
	return P(&p.slots[slot]), true
}

// Each visits the slots in use in slot order. fn may release slots.
func (p *Pool[T, P]) Each(fn func(slot int, v P)) {
	for i := range p.slots {
		if p.live[i] {
			fn(i, P(&p.slots[i]))
		}
	}
}

// InUse is the number of acquired slots.
func (p *Pool[T, P]) InUse() int {
	return len(p.slots) - len(p.free)
}

// Cap is the total number of slots.
func (p *Pool[T, P]) Cap() int {
	return len(p.slots)
}
