// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/storm/internal/core/editor"
	"github.com/hay-kot/storm/internal/core/grid"
)

// NotEmpty validates a string is non-empty after trimming whitespace.
func NotEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// Symbol parses a tile symbol: exactly one character the editor can type.
func Symbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r < editor.MinPrintable || r > editor.MaxPrintable {
		return 0, fmt.Errorf("must be a printable ASCII character, got %q", s)
	}
	return r, nil
}

// SymbolField returns a criterio validator for tile symbols.
func SymbolField(field, s string) error {
	return criterio.Run(field, s, func(s string) error {
		_, err := Symbol(s)
		return err
	})
}

// Dimension parses a row or column count typed by the user. Every failure
// wraps grid.ErrInvalidDimension.
func Dimension(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", grid.ErrInvalidDimension, s)
	}
	if err := grid.ValidateDimension(n); err != nil {
		return 0, err
	}
	return n, nil
}
