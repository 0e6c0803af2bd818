// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so matches can be replayed.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService seeds a generator. A zero seed uses the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// WeightedChoice is one option of a weighted draw.
type WeightedChoice struct {
	ID     string
	Weight int
}

// ChooseWeighted draws one ID with probability proportional to its weight.
// An empty table yields "", a table without positive weight its first entry.
func (s *PRNGService) ChooseWeighted(entries []WeightedChoice) string {
	if len(entries) == 0 {
		return ""
	}

	totalWeight := 0
	for _, entry := range entries {
		if entry.Weight > 0 {
			totalWeight += entry.Weight
		}
	}
	if totalWeight <= 0 {
		return entries[0].ID
	}

	r := s.Intn(totalWeight)
	upto := 0
	for _, entry := range entries {
		if entry.Weight <= 0 {
			continue
		}
		if upto+entry.Weight > r {
			return entry.ID
		}
		upto += entry.Weight
	}
	return entries[len(entries)-1].ID
}
