// internal/spatial/group.go
package spatial

import "go-lane-defense/internal/types"

// Group is a tracked set of bodies, such as the live units of one faction.
// Insertion order is preserved so iteration is deterministic.
type Group struct {
	name    string
	members []Body
	index   map[types.EntityID]int
}

func NewGroup(name string) *Group {
	return &Group{name: name, index: make(map[types.EntityID]int)}
}

func (g *Group) Name() string { return g.name }

// Add tracks b. Adding an id that is already present replaces the old body.
func (g *Group) Add(b Body) {
	id := b.EntityID()
	if i, ok := g.index[id]; ok {
		g.members[i] = b
		return
	}
	g.index[id] = len(g.members)
	g.members = append(g.members, b)
}

// Remove stops tracking id. Unknown ids are ignored.
func (g *Group) Remove(id types.EntityID) {
	i, ok := g.index[id]
	if !ok {
		return
	}
	copy(g.members[i:], g.members[i+1:])
	g.members[len(g.members)-1] = nil
	g.members = g.members[:len(g.members)-1]
	delete(g.index, id)
	for j := i; j < len(g.members); j++ {
		g.index[g.members[j].EntityID()] = j
	}
}

func (g *Group) Has(id types.EntityID) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Group) Len() int { return len(g.members) }

// Clear drops every member.
func (g *Group) Clear() {
	clear(g.members)
	g.members = g.members[:0]
	clear(g.index)
}

// Each calls fn for every tracked body in insertion order.
func (g *Group) Each(fn func(Body)) {
	for _, b := range g.members {
		fn(b)
	}
}

// Overlap invokes fn once for each live member of g whose bounds overlap
// region. Matches are collected before any callback runs, so fn may add to or
// remove from the group. A member that dies during an earlier callback is
// skipped. Nothing is cached between calls.
func Overlap(region Rect, g *Group, fn func(Body)) {
	if g == nil {
		return
	}
	var hits []Body
	for _, b := range g.members {
		if b.Alive() && region.Overlaps(b.Bounds()) {
			hits = append(hits, b)
		}
	}
	for _, b := range hits {
		if b.Alive() {
			fn(b)
		}
	}
}

// Any reports whether some live member other than self overlaps region.
func Any(region Rect, g *Group, self types.EntityID) bool {
	if g == nil {
		return false
	}
	for _, b := range g.members {
		if b.EntityID() != self && b.Alive() && region.Overlaps(b.Bounds()) {
			return true
		}
	}
	return false
}
