// Package config handles configuration loading and validation for storm.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/storm/internal/core/styles"
)

// Editor actions that can be bound to keys.
const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionLeft   = "left"
	ActionRight  = "right"
	ActionSave   = "save"
	ActionReload = "reload"
	ActionCopy   = "copy"
	ActionQuit   = "quit"
)

// Actions lists every bindable action in display order.
var Actions = []string{
	ActionUp, ActionDown, ActionLeft, ActionRight,
	ActionSave, ActionReload, ActionCopy, ActionQuit,
}

// defaultKeys provides built-in bindings that users can override per action.
var defaultKeys = map[string][]string{
	ActionUp:     {"up"},
	ActionDown:   {"down"},
	ActionLeft:   {"left"},
	ActionRight:  {"right"},
	ActionSave:   {"ctrl+s"},
	ActionReload: {"ctrl+r"},
	ActionCopy:   {"ctrl+y"},
	ActionQuit:   {"ctrl+c", "esc"},
}

// Config holds the application configuration.
type Config struct {
	MapPath   string              `yaml:"map_path"`   // default map file
	MapGlob   string              `yaml:"map_glob"`   // pattern for load candidates
	Fill      string              `yaml:"fill"`       // empty tile symbol
	TileSize  int                 `yaml:"tile_size"`  // pixel pitch used for click mapping
	CellWidth int                 `yaml:"cell_width"` // terminal columns per tile
	Theme     string              `yaml:"theme"`
	Keys      map[string][]string `yaml:"keys"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MapPath:   "map.json",
		MapGlob:   "**/*.json",
		Fill:      ".",
		TileSize:  32,
		CellWidth: 3,
		Theme:     styles.DefaultTheme,
		Keys:      map[string][]string{},
	}
}

// Load reads and validates configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses configuration and fills in defaults without validating it.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Merge user keys into defaults (user config overrides defaults)
	cfg.Keys = mergeKeys(defaultKeys, cfg.Keys)

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.MapPath == "" {
		c.MapPath = defaults.MapPath
	}
	if c.MapGlob == "" {
		c.MapGlob = defaults.MapGlob
	}
	if c.Fill == "" {
		c.Fill = defaults.Fill
	}
	if c.TileSize == 0 {
		c.TileSize = defaults.TileSize
	}
	if c.CellWidth == 0 {
		c.CellWidth = defaults.CellWidth
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// mergeKeys merges user bindings into defaults.
// User bindings replace the defaults for the same action.
func mergeKeys(defaults, user map[string][]string) map[string][]string {
	result := make(map[string][]string, len(defaults)+len(user))

	for action, keys := range defaults {
		result[action] = append([]string(nil), keys...)
	}

	for action, keys := range user {
		result[action] = keys
	}

	return result
}

// FillTile returns the configured fill symbol as a tile. Validate ensures
// it is a single printable character.
func (c *Config) FillTile() rune {
	return []rune(c.Fill)[0]
}
