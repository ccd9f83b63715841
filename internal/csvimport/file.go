package csvimport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/flashdeck/internal/model"
)

// Mode selects the row tokenizer.
type Mode string

const (
	// ModeLenient uses the quote-toggling scanner.
	ModeLenient Mode = "lenient"
	// ModeRFC4180 uses encoding/csv.
	ModeRFC4180 Mode = "rfc4180"
)

// ParseMode parses text with the tokenizer selected by mode.
// Unknown modes fall back to ModeLenient.
func ParseMode(text string, mode Mode) []model.Card {
	if mode == ModeRFC4180 {
		return ParseStrict(text)
	}
	return Parse(text)
}

// FormatError reports a file that is not named like a CSV file.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("not a csv file: %s", e.Name)
}

// ReadError reports a file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// CheckName accepts names ending in a lowercase ".csv".
func CheckName(name string) error {
	if !strings.HasSuffix(name, ".csv") {
		return &FormatError{Name: name}
	}
	return nil
}

// ReadFile checks the name, reads the file and parses it.
func ReadFile(path string, mode Mode) ([]model.Card, error) {
	if err := CheckName(filepath.Base(path)); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return ParseMode(string(data), mode), nil
}

// UserMessage returns the short message shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return "Please upload a CSV file"
	}
	return "Failed to process file"
}
