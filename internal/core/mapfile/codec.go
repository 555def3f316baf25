// Package mapfile converts tile map documents to and from their JSON form
// and persists them on disk.
//
// Two shapes are accepted on input: a bare array of rows
//
//	[["a","b"],["c","d"]]
//
// or an object wrapping the same array under "tiles". Output is always the
// bare array.
package mapfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/hay-kot/storm/internal/core/grid"
)

// ErrMalformedInput is returned when a serialized map is structurally
// invalid.
var ErrMalformedInput = errors.New("malformed map")

// tilesKey is the field name of the wrapper object form.
const tilesKey = "tiles"

// Decode parses a JSON map document. Ragged rows are padded with fill.
func Decode(data []byte, fill grid.Tile) (*grid.Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return DecodeValue(v, fill)
}

// DecodeValue decodes an already parsed JSON value, as produced by
// encoding/json into an empty interface.
//
// Cells are decoded leniently: a non-empty string contributes its first
// character, and anything else (empty string, number, bool, null, nested
// values) becomes fill. Structural problems such as a row that is not an
// array fail the whole decode.
func DecodeValue(v any, fill grid.Tile) (*grid.Document, error) {
	rawRows, err := tileRows(v)
	if err != nil {
		return nil, err
	}

	rows := make([][]grid.Tile, len(rawRows))
	width := 0
	for r, raw := range rawRows {
		cells, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is %s, not an array", ErrMalformedInput, r, kindOf(raw))
		}

		row := make([]grid.Tile, len(cells))
		for c, cell := range cells {
			row[c] = decodeCell(cell, fill)
		}
		rows[r] = row
		width = max(width, len(row))
	}

	if len(rows) == 0 || width == 0 {
		return nil, fmt.Errorf("%w: map has no tiles", ErrMalformedInput)
	}

	return grid.FromRows(rows, fill)
}

// tileRows unwraps the accepted top-level shapes.
func tileRows(v any) ([]any, error) {
	switch top := v.(type) {
	case []any:
		return top, nil
	case map[string]any:
		tiles, ok := top[tilesKey]
		if !ok {
			return nil, fmt.Errorf("%w: object has no %q key", ErrMalformedInput, tilesKey)
		}
		rows, ok := tiles.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s, not an array", ErrMalformedInput, tilesKey, kindOf(tiles))
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: top level is %s", ErrMalformedInput, kindOf(v))
	}
}

func decodeCell(v any, fill grid.Tile) grid.Tile {
	s, ok := v.(string)
	if !ok || s == "" {
		return fill
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64, json.Number:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Rows converts doc into the serialized shape: one single-character string
// per cell, row-major. The document is normalized first.
func Rows(doc *grid.Document) [][]string {
	tiles, _ := grid.Normalize(doc.Tiles(), doc.Fill())

	out := make([][]string, len(tiles))
	for r, row := range tiles {
		cells := make([]string, len(row))
		for c, t := range row {
			cells[c] = string(t)
		}
		out[r] = cells
	}
	return out
}

// Encode renders doc as a bare JSON array of rows indented with two spaces
// and terminated by a newline. Characters such as '<' and '&' are written
// literally.
func Encode(doc *grid.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Rows(doc)); err != nil {
		return nil, fmt.Errorf("encode map: %w", err)
	}
	return buf.Bytes(), nil
}
