// internal/registry/memory.go
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps the registry in process. It backs tests and matches run
// without a database.
type MemoryStore struct {
	mu      sync.Mutex
	scalars map[string]float64
	sets    map[string]map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scalars: make(map[string]float64),
		sets:    make(map[string]map[string]bool),
	}
}

func (s *MemoryStore) Scalar(_ context.Context, name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scalars[name], nil
}

func (s *MemoryStore) SetScalar(_ context.Context, name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scalars[name] = value
	return nil
}

func (s *MemoryStore) AddScalar(_ context.Context, name string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scalars[name] += delta
	return s.scalars[name], nil
}

func (s *MemoryStore) Members(_ context.Context, set string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]string, 0, len(s.sets[set]))
	for m := range s.sets[set] {
		members = append(members, m)
	}
	sort.Strings(members)
	return members, nil
}

func (s *MemoryStore) AddMember(_ context.Context, set, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets[set] == nil {
		s.sets[set] = make(map[string]bool)
	}
	s.sets[set][member] = true
	return nil
}

func (s *MemoryStore) Purchase(_ context.Context, set, member string, cost float64, requires []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.sets[set]
	if owned[member] {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, member)
	}
	for _, pre := range requires {
		if !owned[pre] {
			return fmt.Errorf("%w: %s needs %s", ErrMissingPrerequisite, member, pre)
		}
	}
	if have := s.scalars[KeyCoins]; have < cost {
		return fmt.Errorf("%w: %s costs %.0f, have %.0f", ErrInsufficientCoins, member, cost, have)
	}
	if owned == nil {
		owned = make(map[string]bool)
		s.sets[set] = owned
	}
	s.scalars[KeyCoins] -= cost
	owned[member] = true
	return nil
}

func (s *MemoryStore) Close() error { return nil }
