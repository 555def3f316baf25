// Package render turns a document and its selection into a frame of draw
// commands for a display surface.
package render

import "github.com/hay-kot/storm/internal/core/grid"

// Role selects how a cell is filled.
type Role int

const (
	RoleTile Role = iota
	RoleSelected
)

// Cell is a single draw command: fill the cell at (X, Y) according to Role
// and draw Glyph on top of it. Row and Col are document coordinates; X and
// Y are surface coordinates relative to the frame origin.
type Cell struct {
	Row, Col int
	X, Y     int
	Glyph    grid.Tile
	Role     Role
}

// Region is a rectangular window onto a document.
type Region struct {
	Row, Col   int
	Rows, Cols int
}

// Frame is a snapshot of everything a display needs to draw one frame.
type Frame struct {
	Region Region
	Pitch  int
	Cells  []Cell // row-major
}

// Snapshot builds the frame for the whole of doc with (selRow, selCol)
// highlighted.
func Snapshot(doc *grid.Document, selRow, selCol, pitch int) Frame {
	return SnapshotRegion(doc, selRow, selCol, pitch, Region{Rows: doc.Rows(), Cols: doc.Cols()})
}

// SnapshotRegion builds the frame for the part of doc inside region. The
// region is clipped to the document. Cells are laid out on a uniform grid:
// the region's first column starts at X 0, each following column pitch
// units further, one row per Y.
func SnapshotRegion(doc *grid.Document, selRow, selCol, pitch int, region Region) Frame {
	region = clip(region, doc.Rows(), doc.Cols())

	f := Frame{
		Region: region,
		Pitch:  pitch,
		Cells:  make([]Cell, 0, region.Rows*region.Cols),
	}

	for y := range region.Rows {
		r := region.Row + y
		for x := range region.Cols {
			c := region.Col + x
			t, _ := doc.Get(r, c)

			role := RoleTile
			if r == selRow && c == selCol {
				role = RoleSelected
			}
			f.Cells = append(f.Cells, Cell{
				Row:   r,
				Col:   c,
				X:     x * pitch,
				Y:     y,
				Glyph: t,
				Role:  role,
			})
		}
	}

	return f
}

// At returns the draw command for document cell (row, col), if it is part
// of the frame.
func (f Frame) At(row, col int) (Cell, bool) {
	y, x := row-f.Region.Row, col-f.Region.Col
	if y < 0 || y >= f.Region.Rows || x < 0 || x >= f.Region.Cols {
		return Cell{}, false
	}
	return f.Cells[y*f.Region.Cols+x], true
}

func clip(r Region, rows, cols int) Region {
	r.Row = min(max(r.Row, 0), rows)
	r.Col = min(max(r.Col, 0), cols)
	r.Rows = min(max(r.Rows, 0), rows-r.Row)
	r.Cols = min(max(r.Cols, 0), cols-r.Col)
	return r
}
