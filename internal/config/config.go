// Package config loads the optional TOML config file. It provides the
// defaults used when the database holds no saved settings yet; settings
// persisted in the store always win afterwards.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mizuki/cardrill/internal/card"
	"github.com/mizuki/cardrill/internal/session"
)

// Config mirrors the TOML file.
type Config struct {
	User         string `toml:"user"`
	TolerancePct int    `toml:"tolerance_pct"`
	StrictName   bool   `toml:"strict_name"`
	GradeFilter  string `toml:"grade_filter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		User:         "player",
		TolerancePct: session.DefaultTolerancePct,
		GradeFilter:  string(card.FilterAll),
	}
}

// Load reads the config file at path, falling back to Default when the
// file does not exist. Unknown grade filter values are an error rather
// than a silent fallback.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.User == "" {
		cfg.User = Default().User
	}
	if _, err := card.ParseGradeFilter(cfg.GradeFilter); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Settings converts the config into session settings, clamped to the
// supported ranges.
func (c Config) Settings() session.Settings {
	filter, err := card.ParseGradeFilter(c.GradeFilter)
	if err != nil {
		filter = card.FilterAll
	}
	s := session.Settings{
		TolerancePct: c.TolerancePct,
		StrictName:   c.StrictName,
		GradeFilter:  filter,
	}
	s.Normalize()
	return s
}

// DefaultPath returns the XDG config file location:
// $XDG_CONFIG_HOME/cardrill/config.toml, falling back to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cardrill", "config.toml"), nil
}
