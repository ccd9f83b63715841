package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/flashdeck/internal/model"
)

func testCards() []model.Card {
	return []model.Card{
		{Word: "ephemeral", Meaning: "はかない", Phonetic: "/ɪˈfem(ə)rəl/", Status: model.Understood},
		{Word: "cat", Meaning: "猫", Status: model.Learning},
	}
}

func TestRenderDeck(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDeck(&buf, testCards(), 120); err != nil {
		t.Fatalf("render deck: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "#  Word") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "はかない") || !strings.HasSuffix(lines[1], "understood") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	statusCol := runewidth.StringWidth(lines[0]) - runewidth.StringWidth("Status")
	if got := runewidth.StringWidth(lines[2]) - runewidth.StringWidth("learning"); got != statusCol {
		t.Fatalf("expected status column at %d, got %d", statusCol, got)
	}
}

func TestRenderDeckCapsWidth(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDeck(&buf, testCards(), 20); err != nil {
		t.Fatalf("render deck: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if w := runewidth.StringWidth(line); w > 20 {
			t.Fatalf("line exceeds width: %q (%d)", line, w)
		}
	}
}

func TestRenderDeckEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDeck(&buf, nil, 80); err != nil {
		t.Fatalf("render deck: %v", err)
	}
	if !strings.Contains(buf.String(), "No saved cards") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestRenderProgress(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProgress(&buf, testCards()); err != nil {
		t.Fatalf("render progress: %v", err)
	}
	if buf.String() != "1 of 2 words mastered (50%)\n" {
		t.Fatalf("unexpected progress: %q", buf.String())
	}
	buf.Reset()
	if err := RenderProgress(&buf, nil); err != nil {
		t.Fatalf("render progress: %v", err)
	}
	if buf.String() != "0 of 0 words mastered (0%)\n" {
		t.Fatalf("unexpected empty progress: %q", buf.String())
	}
}

func TestRenderSavedAt(t *testing.T) {
	var buf bytes.Buffer
	savedAt := time.Date(2026, time.March, 4, 9, 5, 30, 0, time.UTC)
	if err := RenderSavedAt(&buf, savedAt); err != nil {
		t.Fatalf("render saved at: %v", err)
	}
	if buf.String() != "Last saved 2026-03-04 09:05\n" {
		t.Fatalf("unexpected saved line: %q", buf.String())
	}
}
