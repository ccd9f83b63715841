// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Review ReviewConfig `toml:"review"`
	Import ImportConfig `toml:"import"`
	Log    LogConfig    `toml:"log"`
}

// ReviewConfig maps review-session settings.
type ReviewConfig struct {
	Seed     *int64 `toml:"seed"`
	Autosave *bool  `toml:"autosave"`
}

// ImportConfig maps CSV import settings.
type ImportConfig struct {
	Mode *string `toml:"mode" validate:"omitempty,oneof=lenient rfc4180"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	File  *string `toml:"file"`
}

var validate = validator.New()

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return FileConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
