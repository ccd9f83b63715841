package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/session"
)

const (
	terminalWidthBackup = 80
	maxCellWidth        = 40
	savedAtLayout       = "2006-01-02 15:04"
)

var deckHeaders = []string{"#", "Word", "Meaning", "Phonetic", "Status"}

// RenderDeck writes cards as an aligned table. Lines are cut to width;
// a width of 0 or less means the terminal width.
func RenderDeck(w io.Writer, cards []model.Card, width int) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No saved cards. Import one with: flashdeck import <file.csv>")
		return err
	}
	if width <= 0 {
		width = TerminalWidth()
	}
	rows := lo.Map(cards, func(c model.Card, i int) []string {
		return []string{
			strconv.Itoa(i + 1),
			Truncate(c.Word, maxCellWidth),
			Truncate(c.Meaning, maxCellWidth),
			Truncate(c.Phonetic, maxCellWidth),
			string(c.Status),
		}
	})
	for _, line := range FormatTable(deckHeaders, rows, map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, Truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// RenderProgress writes "U of T words mastered (P%)".
func RenderProgress(w io.Writer, cards []model.Card) error {
	understood := session.UnderstoodCount(cards)
	total := len(cards)
	_, err := fmt.Fprintf(w, "%d of %d words mastered (%d%%)\n",
		understood, total, session.ProgressPercentage(understood, total))
	return err
}

// RenderSavedAt writes when the deck was last written, in savedAt's location.
func RenderSavedAt(w io.Writer, savedAt time.Time) error {
	_, err := fmt.Fprintf(w, "Last saved %s\n", savedAt.Format(savedAtLayout))
	return err
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
