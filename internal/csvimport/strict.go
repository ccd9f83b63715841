package csvimport

import (
	"encoding/csv"
	"strings"

	"github.com/verte-zerg/flashdeck/internal/model"
)

// ParseStrict converts CSV text into cards using RFC 4180 quoting, so an
// escaped quote ("") survives and quoted fields may span lines. Ragged rows
// degrade the same way as in Parse. On a read error the cards parsed so far
// are returned.
func ParseStrict(text string) []model.Card {
	r := csv.NewReader(strings.NewReader(stripBOM(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	headers := trimAll(header)

	var cards []model.Card
	for {
		record, err := r.Read()
		if err != nil {
			// io.EOF or a malformed record ends the scan.
			break
		}
		if blankRecord(record) {
			continue
		}
		cards = append(cards, project(headers, trimAll(record)))
	}
	return cards
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
