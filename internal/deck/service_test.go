package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/flashdeck/internal/csvimport"
	"github.com/verte-zerg/flashdeck/internal/logging"
	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/session"
	"github.com/verte-zerg/flashdeck/internal/shuffle"
)

func newTestService(kv *memKV, opts Options) *Service {
	log := logging.Discard()
	return NewService(session.New(shuffle.NewSeeded(5)), NewRepository(kv, log), opts, log)
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportFilePersistsAndLoads(t *testing.T) {
	kv := newMemKV()
	svc := newTestService(kv, Options{})
	path := writeCSV(t, "deck.csv", "Word,Meaning (JP)\na,1\nb,2\nc,3\n")

	if err := svc.ImportFile(context.Background(), path); err != nil {
		t.Fatalf("import: %v", err)
	}
	if svc.Total() != 3 || svc.Cursor() != 0 {
		t.Fatalf("unexpected session: total=%d cursor=%d", svc.Total(), svc.Cursor())
	}
	if kv.puts != 1 {
		t.Fatalf("expected one save, got %d", kv.puts)
	}
	saved := NewRepository(kv, logging.Discard()).Load(context.Background())
	if len(saved) != 3 {
		t.Fatalf("expected 3 saved cards, got %d", len(saved))
	}
}

func TestImportFileRejectsWithoutStateChange(t *testing.T) {
	kv := newMemKV()
	svc := newTestService(kv, Options{})
	svc.ImportCards(context.Background(), []model.Card{{Word: "keep"}})
	before := kv.puts

	err := svc.ImportFile(context.Background(), writeCSV(t, "deck.txt", "Word\nx\n"))
	var formatErr *csvimport.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	err = svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "gone.csv"))
	var readErr *csvimport.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if kv.puts != before {
		t.Fatalf("expected no save after failed imports")
	}
	if c, ok := svc.Current(); !ok || c.Word != "keep" {
		t.Fatalf("expected previous deck kept, got %+v", c)
	}
}

func TestImportSaveFailureKeepsSession(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("read-only")
	svc := newTestService(kv, Options{})
	svc.ImportCards(context.Background(), []model.Card{{Word: "a"}, {Word: "b"}})
	if svc.Total() != 2 {
		t.Fatalf("expected in-memory deck despite save failure, got %d", svc.Total())
	}
}

func TestOnlyImportPersistsByDefault(t *testing.T) {
	kv := newMemKV()
	svc := newTestService(kv, Options{})
	ctx := context.Background()
	svc.ImportCards(ctx, []model.Card{{Word: "a"}, {Word: "b"}})
	svc.MarkStatus(ctx, model.Understood)
	svc.Navigate(Backward)
	svc.Navigate(Forward)
	svc.Reshuffle(ctx)
	svc.Reset(ctx)
	if kv.puts != 1 {
		t.Fatalf("expected only the import to save, got %d saves", kv.puts)
	}
}

func TestAutosaveWritesStatusChanges(t *testing.T) {
	kv := newMemKV()
	svc := newTestService(kv, Options{Autosave: true})
	ctx := context.Background()
	svc.ImportCards(ctx, []model.Card{{Word: "a"}, {Word: "b"}})
	svc.MarkStatus(ctx, model.Understood)
	saved := NewRepository(kv, logging.Discard()).Load(ctx)
	if got := session.UnderstoodCount(saved); got != 1 {
		t.Fatalf("expected 1 understood card saved, got %d", got)
	}
	svc.Reset(ctx)
	if saved := NewRepository(kv, logging.Discard()).Load(ctx); len(saved) != 0 {
		t.Fatalf("expected reset to save an empty deck, got %d", len(saved))
	}
}

func TestStartRestoresWithStatuses(t *testing.T) {
	kv := newMemKV()
	repo := NewRepository(kv, logging.Discard())
	repo.Save(context.Background(), []model.Card{
		{Word: "a", Status: model.Understood},
		{Word: "b", Status: model.Learning},
	})
	svc := newTestService(kv, Options{})
	svc.Start(context.Background())
	if svc.Total() != 2 || svc.Cursor() != 0 {
		t.Fatalf("unexpected restore: total=%d cursor=%d", svc.Total(), svc.Cursor())
	}
	if svc.UnderstoodCount() != 1 || svc.ProgressPercentage() != 50 {
		t.Fatalf("expected statuses kept, got %d understood", svc.UnderstoodCount())
	}
}

func TestStartWithNothingSaved(t *testing.T) {
	svc := newTestService(newMemKV(), Options{})
	svc.Start(context.Background())
	if !svc.Empty() {
		t.Fatalf("expected empty session")
	}
}
