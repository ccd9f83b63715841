// Package model defines shared data structures.
package model

import "encoding/json"

// Status is the review state of a card.
type Status string

const (
	// Learning marks a card the user is still studying.
	Learning Status = "learning"
	// Understood marks a card the user has mastered.
	Understood Status = "understood"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == Learning || s == Understood
}

// UnmarshalJSON decodes a status, falling back to Learning for empty or unknown values.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := Status(raw)
	if !parsed.Valid() {
		parsed = Learning
	}
	*s = parsed
	return nil
}

// Card is one vocabulary entry.
type Card struct {
	Word       string `json:"word"`
	Meaning    string `json:"meaning"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Status     Status `json:"status"`
}

// Config defines review settings after flags and config file are merged.
type Config struct {
	Seed       int64
	Autosave   bool
	ImportMode string
}
