// Package csvimport turns vocabulary CSV files into cards.
package csvimport

import (
	"strings"

	"github.com/verte-zerg/flashdeck/internal/model"
)

// Canonical header names.
const (
	HeaderWord       = "Word"
	HeaderMeaning    = "Meaning (JP)"
	HeaderPhonetic   = "Phonetic Symbol"
	HeaderDefinition = "English Definition"
	HeaderExample    = "Example Sentence"
)

// Headers lists the canonical headers in their documented order.
var Headers = []string{HeaderWord, HeaderMeaning, HeaderPhonetic, HeaderDefinition, HeaderExample}

type fieldSetter func(card *model.Card, value string)

// fieldTable maps each accepted header to the card field it fills.
var fieldTable = map[string]fieldSetter{
	HeaderWord:       func(c *model.Card, v string) { c.Word = v },
	HeaderMeaning:    func(c *model.Card, v string) { c.Meaning = v },
	HeaderPhonetic:   func(c *model.Card, v string) { c.Phonetic = v },
	HeaderDefinition: func(c *model.Card, v string) { c.Definition = v },
	HeaderExample:    func(c *model.Card, v string) { c.Example = v },
}

// Parse converts CSV text into cards using the lenient scanner.
// The first line is the header. Blank rows are skipped. It never fails:
// unknown headers and short rows leave fields empty.
func Parse(text string) []model.Card {
	text = stripBOM(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	headers := splitHeader(lines[0])

	var cards []model.Card
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := scanFields(line)
		for i, v := range values {
			values[i] = stripQuotes(v)
		}
		cards = append(cards, project(headers, values))
	}
	return cards
}

// stripBOM drops the UTF-8 byte order mark spreadsheet exports put in front
// of the header.
func stripBOM(text string) string {
	return strings.TrimPrefix(text, "\ufeff")
}

func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// scanFields splits a row on commas outside quoted spans. Quote characters
// toggle the span and are dropped.
func scanFields(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

// stripQuotes removes one leading and one trailing quote, then trims.
func stripQuotes(v string) string {
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	return strings.TrimSpace(v)
}

// project builds a card from positional values. Values beyond the header
// count are ignored; a later duplicate header overrides an earlier one.
func project(headers, values []string) model.Card {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row[h] = value
	}
	card := model.Card{Status: model.Learning}
	for header, set := range fieldTable {
		set(&card, row[header])
	}
	return card
}
