// Package shuffle provides uniform random permutations of card decks.
package shuffle

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/flashdeck/internal/model"
)

// Shuffler produces random permutations.
type Shuffler struct {
	rnd *rand.Rand
}

// New returns a Shuffler seeded with the current time.
func New() *Shuffler {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Shuffler with a fixed seed.
func NewSeeded(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Cards returns a shuffled copy of cards. The input is not modified.
func (s *Shuffler) Cards(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	InPlace(s.rnd, out)
	return out
}

// InPlace permutes items with Fisher-Yates: for i from the last index down
// to 1, swap items[i] with items[j] where j is uniform in [0, i].
func InPlace[T any](rnd *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
