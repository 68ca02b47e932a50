package recommend

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// Shuffler permutes the head of a ranked list. It is safe for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler uses src for every permutation. Pass a seeded source in tests.
func NewShuffler(src rand.Source) *Shuffler {
	return &Shuffler{rng: rand.New(src)}
}

// NewSeededShuffler seeds a PCG source; seed 0 picks a time-based seed.
func NewSeededShuffler(seed uint64) *Shuffler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewShuffler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ShuffleTop returns a copy of items with the first n uniformly permuted and
// the remainder untouched.
func (s *Shuffler) ShuffleTop(items []models.RankedItem, n int) []models.RankedItem {
	out := make([]models.RankedItem, len(items))
	copy(out, items)
	if n > len(out) {
		n = len(out)
	}
	if n < 2 {
		return out
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
