package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/mapfile"
)

// memStore is an in-memory Storage.
type memStore struct {
	files    map[string][]byte
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (m *memStore) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, mapfile.ErrIO
	}
	return data, nil
}

func (m *memStore) WriteFile(path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = data
	return nil
}

func newController(t *testing.T, rows, cols int) (*Controller, *memStore) {
	t.Helper()
	doc, err := grid.New(rows, cols, grid.DefaultFill)
	require.NoError(t, err)
	store := newMemStore()
	return New(doc, store), store
}

func assertSelection(t *testing.T, c *Controller, wantRow, wantCol int) {
	t.Helper()
	row, col := c.Selection()
	assert.Equal(t, wantRow, row, "row")
	assert.Equal(t, wantCol, col, "col")
}

func TestMoveSelection(t *testing.T) {
	t.Run("saturates at top left", func(t *testing.T) {
		c, _ := newController(t, 3, 3)

		assert.False(t, c.MoveSelection(Up))
		assert.False(t, c.MoveSelection(Left))
		assertSelection(t, c, 0, 0)
	})

	t.Run("clamps to last row", func(t *testing.T) {
		c, _ := newController(t, 3, 3)

		c.MoveSelection(Down)
		c.MoveSelection(Down)
		assert.False(t, c.MoveSelection(Down))
		assertSelection(t, c, 2, 0)
	})

	t.Run("clamps to last column", func(t *testing.T) {
		c, _ := newController(t, 2, 4)

		for range 10 {
			c.MoveSelection(Right)
		}
		assertSelection(t, c, 0, 3)

		assert.True(t, c.MoveSelection(Left))
		assertSelection(t, c, 0, 2)
	})

	t.Run("single cell grid never moves", func(t *testing.T) {
		c, _ := newController(t, 1, 1)
		for _, dir := range []Direction{Up, Down, Left, Right} {
			assert.False(t, c.MoveSelection(dir), dir.String())
		}
		assertSelection(t, c, 0, 0)
	})
}

func TestSelectAt(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		tileSize int
		want     bool
		row, col int
	}{
		{name: "origin", x: 0, y: 0, tileSize: 32, want: true, row: 0, col: 0},
		{name: "x maps to column", x: 70, y: 5, tileSize: 32, want: true, row: 0, col: 2},
		{name: "y maps to row", x: 5, y: 95, tileSize: 32, want: true, row: 2, col: 0},
		{name: "last pixel of grid", x: 95, y: 95, tileSize: 32, want: true, row: 2, col: 2},
		{name: "first pixel past grid", x: 96, y: 0, tileSize: 32, want: false, row: 1, col: 1},
		{name: "far outside", x: 500, y: 500, tileSize: 32, want: false, row: 1, col: 1},
		{name: "negative x", x: -1, y: 10, tileSize: 32, want: false, row: 1, col: 1},
		{name: "negative y", x: 10, y: -31, tileSize: 32, want: false, row: 1, col: 1},
		{name: "zero tile size", x: 10, y: 10, tileSize: 0, want: false, row: 1, col: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(t, 3, 3)
			c.MoveSelection(Down)
			c.MoveSelection(Right)

			assert.Equal(t, tt.want, c.SelectAt(tt.x, tt.y, tt.tileSize))
			assertSelection(t, c, tt.row, tt.col)
		})
	}
}

func TestTypeCharacter(t *testing.T) {
	t.Run("writes printable characters", func(t *testing.T) {
		c, _ := newController(t, 3, 3)
		c.MoveSelection(Right)

		assert.True(t, c.TypeCharacter('A'))

		got, err := c.Document().Get(0, 1)
		require.NoError(t, err)
		assert.Equal(t, 'A', got)
		assert.True(t, c.Dirty())
	})

	t.Run("accepts range boundaries", func(t *testing.T) {
		c, _ := newController(t, 1, 1)
		assert.True(t, c.TypeCharacter(32))
		assert.True(t, c.TypeCharacter(127))
	})

	t.Run("drops characters outside range", func(t *testing.T) {
		c, _ := newController(t, 3, 3)
		before := c.Document().Clone()

		for _, ch := range []rune{0, 31, 128, 'é', '日'} {
			assert.False(t, c.TypeCharacter(ch), "char %d", ch)
		}

		assert.True(t, before.Equal(c.Document()))
		assert.False(t, c.Dirty())
	})
}

func TestSave(t *testing.T) {
	t.Run("writes encoded document", func(t *testing.T) {
		c, store := newController(t, 2, 2)
		c.TypeCharacter('x')

		require.NoError(t, c.Save("map.json"))

		want, err := mapfile.Encode(c.Document())
		require.NoError(t, err)
		assert.Equal(t, want, store.files["map.json"])
		assert.False(t, c.Dirty())
	})

	t.Run("failed write leaves document untouched", func(t *testing.T) {
		c, store := newController(t, 2, 2)
		c.TypeCharacter('x')
		before := c.Document().Clone()
		store.writeErr = errors.New("disk full")

		err := c.Save("map.json")
		require.Error(t, err)

		assert.True(t, before.Equal(c.Document()))
		assert.True(t, c.Dirty())
		assert.Empty(t, store.files)
	})
}

func TestLoad(t *testing.T) {
	t.Run("replaces document and resets selection", func(t *testing.T) {
		c, store := newController(t, 3, 3)
		c.MoveSelection(Down)
		c.MoveSelection(Right)
		store.files["level.json"] = []byte(`{"tiles": [["a","b"],["c"]]}`)

		require.NoError(t, c.Load("level.json"))

		assertSelection(t, c, 0, 0)
		assert.Equal(t, "ab\nc.", c.Document().String())
		assert.False(t, c.Dirty())
	})

	t.Run("malformed input is atomic", func(t *testing.T) {
		c, store := newController(t, 3, 3)
		c.MoveSelection(Down)
		c.MoveSelection(Right)
		c.TypeCharacter('Z')
		store.files["bad.json"] = []byte(`{"notTiles": [[1]]}`)

		err := c.Load("bad.json")
		require.ErrorIs(t, err, mapfile.ErrMalformedInput)

		assertSelection(t, c, 1, 1)
		got, err := c.Document().Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 'Z', got)
		assert.Equal(t, 3, c.Document().Rows())
	})

	t.Run("missing file is atomic", func(t *testing.T) {
		c, _ := newController(t, 3, 3)
		c.MoveSelection(Down)
		c.TypeCharacter('Q')

		err := c.Load("missing.json")
		require.ErrorIs(t, err, mapfile.ErrIO)

		assertSelection(t, c, 1, 0)
		got, _ := c.Document().Get(1, 0)
		assert.Equal(t, 'Q', got)
	})

	t.Run("document identity is kept", func(t *testing.T) {
		c, store := newController(t, 3, 3)
		doc := c.Document()
		store.files["one.json"] = []byte(`[["1"]]`)

		require.NoError(t, c.Load("one.json"))
		assert.Same(t, doc, c.Document())
		assert.Equal(t, 1, doc.Rows())
	})
}

func TestReplace_ClampsSelection(t *testing.T) {
	c, _ := newController(t, 5, 5)
	for range 4 {
		c.MoveSelection(Down)
		c.MoveSelection(Right)
	}

	small, err := grid.New(2, 2, grid.DefaultFill)
	require.NoError(t, err)
	c.Replace(small)

	assertSelection(t, c, 0, 0)
	assert.False(t, c.MoveSelection(Up))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c, store := newController(t, 2, 3)
	c.TypeCharacter('#')
	c.MoveSelection(Down)
	c.MoveSelection(Right)
	c.TypeCharacter('@')
	saved := c.Document().Clone()

	require.NoError(t, c.Save("map.json"))

	other := New(mustNew(t, 1, 1), store)
	require.NoError(t, other.Load("map.json"))
	assert.True(t, saved.Equal(other.Document()))
}

func mustNew(t *testing.T, rows, cols int) *grid.Document {
	t.Helper()
	doc, err := grid.New(rows, cols, grid.DefaultFill)
	require.NoError(t, err)
	return doc
}
