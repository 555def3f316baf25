// Package editor owns the editing session: the current map document, the
// selected cell, and the handlers that input events are routed to.
package editor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
)

// Printable character range accepted by TypeCharacter.
const (
	MinPrintable rune = 32
	MaxPrintable rune = 127
)

// Storage reads and writes serialized maps.
type Storage interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Direction is a selection movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Controller applies input events to a document and tracks the selected
// cell. The selection always addresses a valid cell of the document.
//
// A Controller is not safe for concurrent use; it is driven from a single
// event loop.
type Controller struct {
	doc      *grid.Document
	row, col int
	dirty    bool
	store    Storage
	logger   zerolog.Logger
}

// New creates a controller editing doc with the selection at (0, 0).
func New(doc *grid.Document, store Storage) *Controller {
	return &Controller{
		doc:    doc,
		store:  store,
		logger: logging.Component("editor"),
	}
}

// Document returns the document being edited.
func (c *Controller) Document() *grid.Document {
	return c.doc
}

// Selection returns the selected row and column.
func (c *Controller) Selection() (row, col int) {
	return c.row, c.col
}

// Dirty reports whether the document changed since it was last saved or
// loaded.
func (c *Controller) Dirty() bool {
	return c.dirty
}

// SelectAt selects the cell under a pixel coordinate on a grid with the
// given tile size. Coordinates outside the grid, including negative ones,
// leave the selection unchanged. It reports whether the selection moved
// onto a cell.
func (c *Controller) SelectAt(pixelX, pixelY, tileSize int) bool {
	if tileSize <= 0 || pixelX < 0 || pixelY < 0 {
		return false
	}

	row, col := pixelY/tileSize, pixelX/tileSize
	if !c.doc.InBounds(row, col) {
		return false
	}

	c.row, c.col = row, col
	return true
}

// MoveSelection moves the selection one cell, stopping at the edges. It
// reports whether the selection changed.
func (c *Controller) MoveSelection(dir Direction) bool {
	row, col := c.row, c.col
	switch dir {
	case Up:
		row--
	case Down:
		row++
	case Left:
		col--
	case Right:
		col++
	}

	row = min(max(row, 0), c.doc.Rows()-1)
	col = min(max(col, 0), c.doc.Cols()-1)

	if row == c.row && col == c.col {
		return false
	}
	c.row, c.col = row, col
	return true
}

// TypeCharacter writes ch into the selected cell. Characters outside the
// printable range are dropped without error; the return value reports
// whether the document was written.
func (c *Controller) TypeCharacter(ch rune) bool {
	if ch < MinPrintable || ch > MaxPrintable {
		return false
	}

	if err := c.doc.Set(c.row, c.col, ch); err != nil {
		// selection is kept in bounds, so this is a bug
		c.logger.Error().Err(err).Msg("write to selected cell")
		return false
	}

	c.dirty = true
	return true
}

// Save encodes the document and writes it to path. The document is never
// modified, whether or not the write succeeds.
func (c *Controller) Save(path string) error {
	data, err := mapfile.Encode(c.doc)
	if err != nil {
		return err
	}

	if err := c.store.WriteFile(path, data); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("save failed")
		return err
	}

	c.dirty = false
	c.logger.Info().
		Str("path", path).
		Int("rows", c.doc.Rows()).
		Int("cols", c.doc.Cols()).
		Msg("map saved")
	return nil
}

// Load reads and decodes the map at path and replaces the document with
// it. Loading is all or nothing: on any error the document and selection
// are left exactly as they were.
func (c *Controller) Load(path string) error {
	data, err := c.store.ReadFile(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("load failed")
		return err
	}

	doc, err := mapfile.Decode(data, c.doc.Fill())
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("load failed")
		return fmt.Errorf("load %s: %w", path, err)
	}

	c.Replace(doc)
	c.dirty = false
	c.logger.Info().
		Str("path", path).
		Int("rows", doc.Rows()).
		Int("cols", doc.Cols()).
		Msg("map loaded")
	return nil
}

// Replace swaps in a whole new document and resets the selection to the
// top-left cell.
func (c *Controller) Replace(doc *grid.Document) {
	c.doc.ReplaceWith(doc)
	c.row, c.col = 0, 0
	c.dirty = true
}
