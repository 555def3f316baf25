package config

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/storm/internal/core/styles"
	"github.com/hay-kot/storm/internal/core/validate"
)

// Limits for terminal layout settings.
const (
	MaxCellWidth = 8
	MaxTileSize  = 512
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("map_path", c.MapPath, validate.NotEmpty),
		criterio.Run("map_glob", c.MapGlob, validGlob),
		validate.SymbolField("fill", c.Fill),
		criterio.Run("theme", c.Theme, knownTheme),
		c.validateLayout(),
		c.validateKeys(),
	)
}

func (c *Config) validateLayout() error {
	var errs criterio.FieldErrorsBuilder
	if c.TileSize < 1 || c.TileSize > MaxTileSize {
		errs = errs.Append("tile_size", fmt.Errorf("must be between 1 and %d, got %d", MaxTileSize, c.TileSize))
	}
	if c.CellWidth < 1 || c.CellWidth > MaxCellWidth {
		errs = errs.Append("cell_width", fmt.Errorf("must be between 1 and %d, got %d", MaxCellWidth, c.CellWidth))
	}
	return errs.ToError()
}

// validateKeys checks that bindings name known actions, are non-empty, and
// that no key is bound to two actions.
func (c *Config) validateKeys() error {
	var errs criterio.FieldErrorsBuilder
	owner := make(map[string]string)

	// iterate in a stable order so duplicate reports are deterministic
	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	for _, action := range actions {
		field := fmt.Sprintf("keys.%s", action)
		keys := c.Keys[action]

		if !slices.Contains(Actions, action) {
			errs = errs.Append(field, fmt.Errorf("unknown action %q", action))
			continue
		}
		if len(keys) == 0 {
			errs = errs.Append(field, fmt.Errorf("at least one key is required"))
			continue
		}

		for _, k := range keys {
			if k == "" {
				errs = errs.Append(field, fmt.Errorf("key cannot be empty"))
				continue
			}
			if prev, ok := owner[k]; ok {
				errs = errs.Append(field, fmt.Errorf("key %q is already bound to %q", k, prev))
				continue
			}
			owner[k] = action
		}
	}

	return errs.ToError()
}

func validGlob(s string) error {
	if err := validate.NotEmpty(s); err != nil {
		return err
	}
	if !doublestar.ValidatePattern(s) {
		return fmt.Errorf("invalid glob pattern %q", s)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}
