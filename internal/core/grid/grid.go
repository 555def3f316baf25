// Package grid defines the tile map document: a rectangular, row-major
// buffer of single-character tiles.
package grid

import (
	"errors"
	"fmt"
)

// Tile is the symbol stored in a single cell.
type Tile = rune

const (
	// DefaultFill is the empty tile used for new maps and padding.
	DefaultFill Tile = '.'

	// MaxDimension is the largest accepted row or column count.
	MaxDimension = 1000
)

var (
	// ErrInvalidDimension is returned when a row or column count is outside
	// [1, MaxDimension].
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrOutOfBounds is returned on direct cell access outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// Document is a rectangular tile map. Every row holds exactly Cols tiles.
type Document struct {
	rows  int
	cols  int
	fill  Tile
	cells [][]Tile
}

// ValidateDimension reports whether n is an accepted row or column count.
func ValidateDimension(n int) error {
	if n < 1 || n > MaxDimension {
		return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidDimension, n, MaxDimension)
	}
	return nil
}

// New creates a rows x cols document filled with fill.
func New(rows, cols int, fill Tile) (*Document, error) {
	if err := ValidateDimension(rows); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if err := ValidateDimension(cols); err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	cells := make([][]Tile, rows)
	for r := range cells {
		row := make([]Tile, cols)
		for c := range row {
			row[c] = fill
		}
		cells[r] = row
	}

	return &Document{rows: rows, cols: cols, fill: fill, cells: cells}, nil
}

// FromRows builds a document from a possibly ragged set of rows. Rows are
// normalized first, so the result is always rectangular. The input slices
// are not retained.
func FromRows(rows [][]Tile, fill Tile) (*Document, error) {
	cells, cols := Normalize(rows, fill)

	if err := ValidateDimension(len(cells)); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if err := ValidateDimension(cols); err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	return &Document{rows: len(cells), cols: cols, fill: fill, cells: cells}, nil
}

// Rows returns the number of rows.
func (d *Document) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Document) Cols() int { return d.cols }

// Fill returns the tile used for padding.
func (d *Document) Fill() Tile { return d.fill }

// InBounds reports whether (row, col) addresses a cell.
func (d *Document) InBounds(row, col int) bool {
	return row >= 0 && row < d.rows && col >= 0 && col < d.cols
}

// Get returns the tile at (row, col).
func (d *Document) Get(row, col int) (Tile, error) {
	if !d.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, row, col, d.rows, d.cols)
	}
	return d.cells[row][col], nil
}

// Set writes tile at (row, col).
func (d *Document) Set(row, col int, tile Tile) error {
	if !d.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, row, col, d.rows, d.cols)
	}
	d.cells[row][col] = tile
	return nil
}

// ReplaceWith swaps the whole contents of d for those of other. It is the
// only way the dimensions of an existing document change.
func (d *Document) ReplaceWith(other *Document) {
	c := other.Clone()
	d.rows, d.cols, d.fill, d.cells = c.rows, c.cols, c.fill, c.cells
}

// Tiles returns a copy of the cells in row-major order.
func (d *Document) Tiles() [][]Tile {
	out := make([][]Tile, d.rows)
	for r, row := range d.cells {
		out[r] = append([]Tile(nil), row...)
	}
	return out
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{rows: d.rows, cols: d.cols, fill: d.fill, cells: d.Tiles()}
}

// Equal reports whether both documents have the same shape and tiles. The
// fill symbol is not compared.
func (d *Document) Equal(other *Document) bool {
	if other == nil || d.rows != other.rows || d.cols != other.cols {
		return false
	}
	for r := range d.cells {
		for c := range d.cells[r] {
			if d.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid one row per line, mostly for debugging and tests.
func (d *Document) String() string {
	buf := make([]rune, 0, d.rows*(d.cols+1))
	for r, row := range d.cells {
		if r > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, row...)
	}
	return string(buf)
}
