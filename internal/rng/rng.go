// Package rng routes every probabilistic decision in the engine through
// one substitutable provider, so game tests can inject fixed sequences.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

type Provider interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Shuffle permutes n elements via the swap callback.
	Shuffle(n int, swap func(i, j int))
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a time-seeded provider safe for concurrent use.
func New() Provider {
	return &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a provider with a fixed seed.
func NewSeeded(seed int64) Provider {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}
