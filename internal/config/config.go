package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/jaminalder/codex-hex/internal/domain"
)

// DefaultPath is read when HEX_CONFIG is unset.
const DefaultPath = "hex.yaml"

// UI modes.
const (
	ModePrompt = "prompt"
	ModeTUI    = "tui"
)

// Config holds all program configuration
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	UI        UIConfig        `yaml:"ui"`
	Log       LogConfig       `yaml:"log"`
	Spectator SpectatorConfig `yaml:"spectator"`
}

// BoardConfig holds board settings
type BoardConfig struct {
	Size int `yaml:"size"` // 0 asks at start-up
}

// UIConfig selects the front end
type UIConfig struct {
	Mode  string `yaml:"mode"`
	Color bool   `yaml:"color"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to stderr, or nowhere in tui mode
}

// SpectatorConfig holds the read-only HTTP view settings
type SpectatorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.UI.Mode == "" {
		c.UI.Mode = ModePrompt
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Spectator.Addr == "" {
		c.Spectator.Addr = "127.0.0.1:8080"
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Board.Size != 0 && (c.Board.Size < domain.MinSize || c.Board.Size > domain.MaxSize) {
		return fmt.Errorf("board.size: %w: %d not in [%d,%d]", domain.ErrInvalidSize, c.Board.Size, domain.MinSize, domain.MaxSize)
	}
	switch c.UI.Mode {
	case ModePrompt, ModeTUI:
	default:
		return fmt.Errorf("ui.mode: unknown mode %q", c.UI.Mode)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts the configured level name.
func (l LogConfig) ParseLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
