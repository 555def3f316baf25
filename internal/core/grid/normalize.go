package grid

// Normalize rectangularizes a ragged set of rows. The column count is the
// length of the longest row and every shorter row is right-padded with
// fill. Rows are never truncated. The input is left untouched; the
// returned rows are freshly allocated.
func Normalize(rows [][]Tile, fill Tile) ([][]Tile, int) {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	out := make([][]Tile, len(rows))
	for r, row := range rows {
		padded := make([]Tile, cols)
		n := copy(padded, row)
		for c := n; c < cols; c++ {
			padded[c] = fill
		}
		out[r] = padded
	}

	return out, cols
}
