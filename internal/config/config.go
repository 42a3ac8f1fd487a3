// Package config locates the per-user data directory and loads the
// optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultDirName = ".context"
	databaseName   = "ctx.sqlite"
	configName     = "config.yaml"
	defaultPager   = "less"
)

// Config holds user-tunable settings. Every field has a working default;
// the config file is optional.
type Config struct {
	// DataDir holds the database and config file. Defaults to
	// ~/.context.
	DataDir string `yaml:"data_dir"`
	// Pager is the command used for paged log output.
	Pager string `yaml:"pager"`
	// ExtraBlacklist appends first tokens to the fixed ignore list.
	// The fixed entries cannot be removed.
	ExtraBlacklist []string `yaml:"extra_blacklist"`
}

// Load reads <data-dir>/config.yaml if it exists and fills in defaults
// otherwise. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("locate home directory: %w", err)
	}

	cfg := Config{
		DataDir: filepath.Join(home, defaultDirName),
		Pager:   defaultPager,
	}

	raw, err := os.ReadFile(filepath.Join(cfg.DataDir, configName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(home, defaultDirName)
	}
	if cfg.Pager == "" {
		cfg.Pager = defaultPager
	}

	return cfg, nil
}

// DatabasePath returns the SQLite file path, creating the data
// directory if needed. The directory is owner-only.
func (c Config) DatabasePath() (string, error) {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(c.DataDir, databaseName), nil
}
