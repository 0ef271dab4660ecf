// Package shuffle provides uniform random permutations and subsets that never
// mutate their input.
package shuffle

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler draws permutations from a single random source. It is safe for
// concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Shuffler backed by the given source. A nil source is seeded from
// the current time.
func New(src rand.Source) *Shuffler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Shuffler{rnd: rand.New(src)}
}

// NewSeeded returns a Shuffler with a deterministic seed.
func NewSeeded(seed int64) *Shuffler {
	return New(rand.NewSource(seed))
}

// Perm returns a uniformly shuffled permutation of 0..n-1.
func (s *Shuffler) Perm(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Fisher-Yates, walking down from the last slot.
	for i := n - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

var defaultShuffler = New(nil)

// Default returns the process-wide time-seeded Shuffler.
func Default() *Shuffler {
	return defaultShuffler
}

// Shuffle returns a shuffled copy of xs using the default Shuffler.
func Shuffle[T any](xs []T) []T {
	return ShuffleWith(defaultShuffler, xs)
}

// RandomSubset returns k elements of xs in shuffled order using the default Shuffler.
func RandomSubset[T any](xs []T, k int) []T {
	return RandomSubsetWith(defaultShuffler, xs, k)
}

// ShuffleWith returns a shuffled copy of xs. The input is left untouched.
func ShuffleWith[T any](s *Shuffler, xs []T) []T {
	out := make([]T, len(xs))
	for i, j := range s.Perm(len(xs)) {
		out[i] = xs[j]
	}
	return out
}

// RandomSubsetWith returns the first k elements of a shuffled copy of xs. A k
// larger than len(xs) yields every element; k <= 0 yields an empty slice.
func RandomSubsetWith[T any](s *Shuffler, xs []T, k int) []T {
	if k <= 0 {
		return []T{}
	}
	shuffled := ShuffleWith(s, xs)
	if k >= len(shuffled) {
		return shuffled
	}
	return shuffled[:k:k]
}
