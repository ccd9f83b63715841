package deck

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/verte-zerg/flashdeck/internal/logging"
	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/store"
)

// minimal in-memory key-value store with injectable failures
type memKV struct {
	data   map[string]string
	getErr error
	putErr error
	puts   int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = value
	return nil
}

func sampleCards() []model.Card {
	return []model.Card{
		{Word: "ephemeral", Meaning: "はかない", Phonetic: "/ɪˈfem(ə)rəl/", Definition: "lasting for a very short time", Example: "The ephemeral beauty of cherry blossoms.", Status: model.Understood},
		{Word: "serendipity", Meaning: "幸運な偶然", Status: model.Learning},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(newMemKV(), logging.Discard())
	ctx := context.Background()
	cards := sampleCards()
	if !repo.Save(ctx, cards) {
		t.Fatalf("expected save to succeed")
	}
	loaded := repo.Load(ctx)
	if !reflect.DeepEqual(cards, loaded) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", cards, loaded)
	}
}

func TestRepositoryRoundTripSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "flashdeck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	repo := NewRepository(st, logging.Discard())
	ctx := context.Background()
	cards := sampleCards()
	if !repo.Save(ctx, cards) {
		t.Fatalf("expected save to succeed")
	}
	if loaded := repo.Load(ctx); !reflect.DeepEqual(cards, loaded) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", cards, loaded)
	}
}

func TestRepositoryUsesFixedKeyAndJSONArray(t *testing.T) {
	kv := newMemKV()
	repo := NewRepository(kv, logging.Discard())
	repo.Save(context.Background(), []model.Card{{Word: "a", Status: model.Learning}})
	want := `[{"word":"a","meaning":"","phonetic":"","definition":"","example":"","status":"learning"}]`
	if got := kv.data["flashcards"]; got != want {
		t.Fatalf("unexpected payload:\n%s\nwant\n%s", got, want)
	}
}

func TestRepositorySaveFailureReturnsFalse(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("disk full")
	repo := NewRepository(kv, logging.Discard())
	if repo.Save(context.Background(), sampleCards()) {
		t.Fatalf("expected save to report failure")
	}
}

func TestRepositoryLoadFailuresReturnEmpty(t *testing.T) {
	ctx := context.Background()

	missing := NewRepository(newMemKV(), logging.Discard())
	if cards := missing.Load(ctx); cards == nil || len(cards) != 0 {
		t.Fatalf("expected empty non-nil slice for missing key, got %#v", cards)
	}

	broken := newMemKV()
	broken.getErr = errors.New("locked")
	if cards := NewRepository(broken, logging.Discard()).Load(ctx); len(cards) != 0 {
		t.Fatalf("expected empty result on store error, got %d", len(cards))
	}

	corrupt := newMemKV()
	corrupt.data[StorageKey] = "{not json"
	if cards := NewRepository(corrupt, logging.Discard()).Load(ctx); len(cards) != 0 {
		t.Fatalf("expected empty result on corrupt payload, got %d", len(cards))
	}
}

func TestRepositoryLoadDefaultsStatus(t *testing.T) {
	kv := newMemKV()
	kv.data[StorageKey] = `[{"word":"a"},{"word":"b","status":"mastered"},{"word":"c","status":"understood"}]`
	cards := NewRepository(kv, logging.Discard()).Load(context.Background())
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].Status != model.Learning || cards[1].Status != model.Learning || cards[2].Status != model.Understood {
		t.Fatalf("unexpected statuses: %+v", cards)
	}
}
