package random

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/cloudprep/mockexam-backend/internal/model"
)

// Randomizer draws exam attempts from the question bank. The randomness
// source is injectable so tests can supply a fixed seed.
type Randomizer struct {
	rng *rand.Rand
}

// New creates a Randomizer. A nil source falls back to a time-seeded one.
func New(src rand.Source) *Randomizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Randomizer{rng: rand.New(src)}
}

// Draw selects k distinct questions from the bank without replacement, in
// uniformly random order, and fixes a freshly shuffled option order for
// each. The bank itself is never mutated. Requesting more questions than
// the bank holds is a configuration error.
func (r *Randomizer) Draw(bank []model.Question, k int) ([]model.SessionQuestion, error) {
	if k <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", k)
	}
	if k > len(bank) {
		return nil, fmt.Errorf("question count %d exceeds bank size %d", k, len(bank))
	}

	// Shuffle indices rather than the bank slice so the bank stays intact.
	perm := r.rng.Perm(len(bank))

	drawn := make([]model.SessionQuestion, 0, k)
	for _, idx := range perm[:k] {
		q := bank[idx]
		drawn = append(drawn, model.SessionQuestion{
			Question:       q,
			PresentedOrder: r.shuffledKeys(q.Options),
		})
	}
	return drawn, nil
}

// shuffledKeys returns the option keys in a fresh random order. Keys are
// sorted before shuffling so the permutation does not depend on Go's map
// iteration order.
func (r *Randomizer) shuffledKeys(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r.rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}
