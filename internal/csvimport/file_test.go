package csvimport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckName(t *testing.T) {
	if err := CheckName("words.csv"); err != nil {
		t.Fatalf("expected words.csv to pass: %v", err)
	}
	for _, name := range []string{"words.CSV", "words.txt", "csv", "words.csv.bak"} {
		err := CheckName(name)
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected FormatError for %q, got %v", name, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.csv")
	content := "Word,Meaning (JP)\nephemeral,はかない\nserendipity,幸運な偶然\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cards, err := ReadFile(path, ModeLenient)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[1].Meaning != "幸運な偶然" {
		t.Fatalf("unexpected meaning: %q", cards[1].Meaning)
	}
}

func TestReadFileRejectsSuffixBeforeReading(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), ModeLenient)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if got := UserMessage(err); got != "Please upload a CSV file" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), ModeLenient)
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if got := UserMessage(err); got != "Failed to process file" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUserMessageNil(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}

func TestReadFileWithByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excel.csv")
	content := "\ufeffWord,Meaning (JP)\nephemeral,はかない\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	for _, mode := range []Mode{ModeLenient, ModeRFC4180} {
		cards, err := ReadFile(path, mode)
		if err != nil {
			t.Fatalf("%s: read file: %v", mode, err)
		}
		if len(cards) != 1 || cards[0].Word != "ephemeral" {
			t.Fatalf("%s: expected word from first column, got %+v", mode, cards)
		}
	}
}
