// Package deck connects the review session to persistent storage and
// exposes the events the user interface drives.
package deck

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/flashdeck/internal/model"
)

// StorageKey is the key the deck is saved under.
const StorageKey = "flashcards"

// KV is the key-value storage the repository needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Repository saves and loads the deck as a JSON array. Failures are logged
// and never returned.
type Repository struct {
	kv  KV
	log logrus.FieldLogger
}

// NewRepository returns a Repository over kv.
func NewRepository(kv KV, log logrus.FieldLogger) *Repository {
	return &Repository{kv: kv, log: log}
}

// Save writes cards and reports whether it succeeded.
func (r *Repository) Save(ctx context.Context, cards []model.Card) bool {
	if cards == nil {
		cards = []model.Card{}
	}
	payload, err := json.Marshal(cards)
	if err != nil {
		r.log.WithError(err).Error("Error saving flash cards")
		return false
	}
	if err := r.kv.Put(ctx, StorageKey, string(payload)); err != nil {
		r.log.WithError(err).WithField("key", StorageKey).Error("Error saving flash cards")
		return false
	}
	r.log.WithField("cards", len(cards)).Debug("saved flash cards")
	return true
}

// Load returns the saved cards, or an empty slice when nothing usable is stored.
func (r *Repository) Load(ctx context.Context) []model.Card {
	payload, ok, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		r.log.WithError(err).WithField("key", StorageKey).Error("Error fetching flash cards")
		return []model.Card{}
	}
	if !ok || payload == "" {
		return []model.Card{}
	}
	var cards []model.Card
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		r.log.WithError(err).WithField("key", StorageKey).Error("Error fetching flash cards")
		return []model.Card{}
	}
	for i := range cards {
		if !cards[i].Status.Valid() {
			cards[i].Status = model.Learning
		}
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return cards
}
