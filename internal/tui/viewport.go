package tui

import "github.com/hay-kot/storm/internal/core/render"

// viewport tracks which part of the grid is visible. The offset follows
// the selection so that the selected cell is always on screen.
type viewport struct {
	row, col   int // top-left visible cell
	rows, cols int // visible cell counts, 0 until the window size is known
}

// resize sets the visible area from the terminal size.
func (v *viewport) resize(width, height, cellWidth int) {
	v.rows = max(height-chromeLines, 1)
	v.cols = max(width/cellWidth, 1)
}

// follow scrolls so that (row, col) is visible.
func (v *viewport) follow(row, col int) {
	if v.rows == 0 || v.cols == 0 {
		return
	}
	if row < v.row {
		v.row = row
	} else if row >= v.row+v.rows {
		v.row = row - v.rows + 1
	}
	if col < v.col {
		v.col = col
	} else if col >= v.col+v.cols {
		v.col = col - v.cols + 1
	}
}

// region returns the visible window. Before the first resize the whole
// document is considered visible.
func (v viewport) region(docRows, docCols int) render.Region {
	if v.rows == 0 || v.cols == 0 {
		return render.Region{Rows: docRows, Cols: docCols}
	}
	return render.Region{Row: v.row, Col: v.col, Rows: v.rows, Cols: v.cols}
}

func (v *viewport) reset() {
	v.row, v.col = 0, 0
}
