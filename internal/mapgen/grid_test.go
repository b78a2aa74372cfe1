package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tilegen/internal/geometry"
)

func TestTileMap_Accessors(t *testing.T) {
	tm := NewTileMap([][]int{{5, 6}, {7, 8}})

	assert.Equal(t, 2, tm.Width())
	assert.Equal(t, 2, tm.Height())
	assert.Equal(t, []int{5, 6, 7, 8}, tm.Values())
	assert.Equal(t, [][]int{{5, 6}, {7, 8}}, tm.Rows())

	gid, ok := tm.At(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 6, gid)

	_, ok = tm.At(2, 0)
	assert.False(t, ok)
	_, ok = tm.At(0, -1)
	assert.False(t, ok)

	rows := tm.Rows()
	rows[0][0] = 99
	values := tm.Values()
	values[1] = 99
	assert.Equal(t, []int{5, 6, 7, 8}, tm.Values())

	assert.Equal(t, map[int]int{5: 1, 6: 1, 7: 1, 8: 1}, tm.Histogram())
}

func TestTileMap_Neighbors(t *testing.T) {
	tm := NewTileMap([][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	tests := []struct {
		name     string
		x, y     int
		count    int
		expected map[Direction]int
	}{
		{
			name:  "center",
			x:     1,
			y:     1,
			count: 8,
			expected: map[Direction]int{
				Up: 2, UpRight: 3, Right: 6, DownRight: 9,
				Down: 8, DownLeft: 7, Left: 4, UpLeft: 1,
			},
		},
		{
			name:     "top left corner",
			x:        0,
			y:        0,
			count:    3,
			expected: map[Direction]int{Right: 2, DownRight: 5, Down: 4},
		},
		{
			name:     "bottom edge",
			x:        1,
			y:        2,
			count:    5,
			expected: map[Direction]int{Left: 7, UpLeft: 4, Up: 5, UpRight: 6, Right: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tm.Neighbors(tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, geometry.Point{X: tt.x, Y: tt.y}, n.Center.Position)
			assert.Equal(t, tt.count, n.Count())

			for _, d := range Directions {
				cell, present := n.Side(d)
				want, exists := tt.expected[d]
				assert.Equal(t, exists, present, "direction %s", d)
				if exists {
					assert.Equal(t, want, cell.Gid, "direction %s", d)
					off := d.Offset()
					assert.Equal(t, geometry.Point{X: tt.x + off.X, Y: tt.y + off.Y}, cell.Position)
				}
			}
		})
	}

	_, ok := tm.Neighbors(3, 3)
	assert.False(t, ok)
}

func TestGrid_FirstEmpty(t *testing.T) {
	g := newGrid(3, 2)
	p, ok := g.firstEmpty()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, p)

	for i := range g.cells {
		g.cells[i] = 1
	}
	g.set(2, 1, 0)
	p, ok = g.firstEmpty()
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 2, Y: 1}, p)
}
