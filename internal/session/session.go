// Package session holds the review state machine: the ordered deck, the
// cursor and per-card status.
package session

import (
	"math"

	"github.com/samber/lo"

	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/shuffle"
)

// Session is one study pass over a deck. The zero value is not usable; call New.
type Session struct {
	shuffler *shuffle.Shuffler
	cards    []model.Card
	cursor   int
}

// New returns an empty session that shuffles with s.
func New(s *shuffle.Shuffler) *Session {
	if s == nil {
		s = shuffle.New()
	}
	return &Session{shuffler: s}
}

// Import replaces the deck with a shuffled copy of cards, every status
// forced to Learning, and moves the cursor to the first card.
func (s *Session) Import(cards []model.Card) {
	fresh := lo.Map(cards, func(c model.Card, _ int) model.Card {
		c.Status = model.Learning
		return c
	})
	s.cards = s.shuffler.Cards(fresh)
	s.cursor = 0
}

// Restore loads a previously saved deck. Statuses are kept; the deck is
// shuffled once and the cursor moves to the first card.
func (s *Session) Restore(cards []model.Card) {
	s.cards = s.shuffler.Cards(cards)
	s.cursor = 0
}

// Reshuffle reorders the current deck, keeping statuses.
func (s *Session) Reshuffle() {
	if len(s.cards) == 0 {
		return
	}
	s.cards = s.shuffler.Cards(s.cards)
	s.cursor = 0
}

// Next advances the cursor, stopping at the last card.
func (s *Session) Next() {
	if s.cursor < len(s.cards)-1 {
		s.cursor++
	}
}

// Previous moves the cursor back, stopping at the first card.
func (s *Session) Previous() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MarkStatus sets the status of the current card, then behaves as Next.
func (s *Session) MarkStatus(status model.Status) {
	if len(s.cards) == 0 {
		return
	}
	s.cards[s.cursor].Status = status
	s.Next()
}

// Reset empties the deck.
func (s *Session) Reset() {
	s.cards = nil
	s.cursor = 0
}

// Current returns the card under the cursor.
func (s *Session) Current() (model.Card, bool) {
	if len(s.cards) == 0 {
		return model.Card{}, false
	}
	return s.cards[s.cursor], true
}

// Cursor returns the zero-based position of the current card.
func (s *Session) Cursor() int {
	return s.cursor
}

// Total returns the number of cards.
func (s *Session) Total() int {
	return len(s.cards)
}

// Empty reports whether no cards are loaded.
func (s *Session) Empty() bool {
	return len(s.cards) == 0
}

// AtStart reports whether Previous would be a no-op.
func (s *Session) AtStart() bool {
	return s.cursor == 0
}

// AtEnd reports whether Next would be a no-op.
func (s *Session) AtEnd() bool {
	return len(s.cards) == 0 || s.cursor == len(s.cards)-1
}

// Cards returns a copy of the deck in review order.
func (s *Session) Cards() []model.Card {
	out := make([]model.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// UnderstoodCount returns the number of cards marked Understood.
func (s *Session) UnderstoodCount() int {
	return UnderstoodCount(s.cards)
}

// ProgressPercentage returns the rounded share of understood cards.
func (s *Session) ProgressPercentage() int {
	return ProgressPercentage(s.UnderstoodCount(), len(s.cards))
}

// UnderstoodCount counts cards marked Understood.
func UnderstoodCount(cards []model.Card) int {
	return lo.CountBy(cards, func(c model.Card) bool {
		return c.Status == model.Understood
	})
}

// ProgressPercentage returns round(100*understood/total), or 0 for an empty deck.
func ProgressPercentage(understood, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(understood) / float64(total) * 100))
}
