package deck

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/flashdeck/internal/csvimport"
	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/session"
)

// Direction is a navigation step.
type Direction int

const (
	// Forward moves to the next card.
	Forward Direction = iota + 1
	// Backward moves to the previous card.
	Backward
)

// Options tune a Service.
type Options struct {
	// Autosave also writes the deck after MarkStatus, Reshuffle and Reset.
	// By default only imports are saved.
	Autosave bool
	// Mode selects the CSV tokenizer.
	Mode csvimport.Mode
}

// Service owns a review session and its persistence.
type Service struct {
	session *session.Session
	repo    *Repository
	opts    Options
	log     logrus.FieldLogger
}

// NewService wires a session to a repository.
func NewService(sess *session.Session, repo *Repository, opts Options, log logrus.FieldLogger) *Service {
	if opts.Mode == "" {
		opts.Mode = csvimport.ModeLenient
	}
	return &Service{session: sess, repo: repo, opts: opts, log: log}
}

// Start restores the saved deck, if any.
func (s *Service) Start(ctx context.Context) {
	cards := s.repo.Load(ctx)
	if len(cards) == 0 {
		return
	}
	s.session.Restore(cards)
	s.log.WithField("cards", len(cards)).Info("restored saved deck")
}

// ReadFile parses path without touching the session. It is safe to call
// off the UI goroutine.
func (s *Service) ReadFile(path string) ([]model.Card, error) {
	cards, err := csvimport.ReadFile(path, s.opts.Mode)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("import failed")
		return nil, err
	}
	return cards, nil
}

// ImportFile reads path and, on success, replaces the deck with its cards.
// On error nothing changes and nothing is saved.
func (s *Service) ImportFile(ctx context.Context, path string) error {
	cards, err := s.ReadFile(path)
	if err != nil {
		return err
	}
	s.ImportCards(ctx, cards)
	return nil
}

// ImportCards saves cards and loads them into the session as a fresh deck.
// A failed save is logged; the in-memory session still takes the cards.
func (s *Service) ImportCards(ctx context.Context, cards []model.Card) {
	s.repo.Save(ctx, cards)
	s.session.Import(cards)
	s.log.WithField("cards", len(cards)).Info("imported deck")
}

// Navigate moves the cursor one step.
func (s *Service) Navigate(dir Direction) {
	switch dir {
	case Forward:
		s.session.Next()
	case Backward:
		s.session.Previous()
	}
}

// MarkStatus marks the current card and advances.
func (s *Service) MarkStatus(ctx context.Context, status model.Status) {
	s.session.MarkStatus(status)
	s.autosave(ctx)
}

// Reshuffle reorders the deck.
func (s *Service) Reshuffle(ctx context.Context) {
	s.session.Reshuffle()
	s.autosave(ctx)
}

// Reset empties the deck.
func (s *Service) Reset(ctx context.Context) {
	s.session.Reset()
	s.autosave(ctx)
}

func (s *Service) autosave(ctx context.Context) {
	if !s.opts.Autosave {
		return
	}
	s.repo.Save(ctx, s.session.Cards())
}

// Current returns the card under the cursor.
func (s *Service) Current() (model.Card, bool) {
	return s.session.Current()
}

// Cursor returns the zero-based position.
func (s *Service) Cursor() int {
	return s.session.Cursor()
}

// Total returns the deck size.
func (s *Service) Total() int {
	return s.session.Total()
}

// UnderstoodCount returns how many cards are understood.
func (s *Service) UnderstoodCount() int {
	return s.session.UnderstoodCount()
}

// ProgressPercentage returns the rounded understood share.
func (s *Service) ProgressPercentage() int {
	return s.session.ProgressPercentage()
}

// Empty reports whether no deck is loaded.
func (s *Service) Empty() bool {
	return s.session.Empty()
}

// AtStart reports whether the cursor is on the first card.
func (s *Service) AtStart() bool {
	return s.session.AtStart()
}

// AtEnd reports whether the cursor is on the last card.
func (s *Service) AtEnd() bool {
	return s.session.AtEnd()
}
