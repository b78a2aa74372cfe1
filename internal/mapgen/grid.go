package mapgen

import (
	"github.com/VoidMesh/tilegen/internal/geometry"
)

// Grid is a height x width matrix of tile gids stored row-major. Zero marks
// an empty cell. It is only written inside this package.
type Grid struct {
	width  int
	height int
	cells  []int
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

func (g *Grid) set(x, y, gid int) { g.cells[g.index(x, y)] = gid }

func (g *Grid) get(x, y int) int { return g.cells[g.index(x, y)] }

func (g *Grid) clone() *Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// firstEmpty returns the first zero cell in row-major order.
func (g *Grid) firstEmpty() (geometry.Point, bool) {
	for i, gid := range g.cells {
		if gid == 0 {
			return geometry.Point{X: i % g.width, Y: i / g.width}, true
		}
	}
	return geometry.Point{}, false
}

// TileMap is a finished, read-only grid.
type TileMap struct {
	grid *Grid
}

// NewTileMap builds a TileMap from rows of gids. All rows must have the same
// length; it is meant for serializing grids produced elsewhere.
func NewTileMap(rows [][]int) *TileMap {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	g := newGrid(width, height)
	for y, row := range rows {
		for x := 0; x < width && x < len(row); x++ {
			g.set(x, y, row[x])
		}
	}
	return &TileMap{grid: g}
}

func (m *TileMap) Width() int  { return m.grid.width }
func (m *TileMap) Height() int { return m.grid.height }

// At returns the gid at (x, y) and whether the coordinate is on the map.
func (m *TileMap) At(x, y int) (int, bool) {
	if !(geometry.Point{X: x, Y: y}).In(m.grid.width, m.grid.height) {
		return 0, false
	}
	return m.grid.get(x, y), true
}

// Values returns a copy of all gids in row-major order.
func (m *TileMap) Values() []int {
	out := make([]int, len(m.grid.cells))
	copy(out, m.grid.cells)
	return out
}

// Rows returns a copy of the grid as one slice per row.
func (m *TileMap) Rows() [][]int {
	rows := make([][]int, m.grid.height)
	for y := range rows {
		row := make([]int, m.grid.width)
		copy(row, m.grid.cells[y*m.grid.width:(y+1)*m.grid.width])
		rows[y] = row
	}
	return rows
}

// Histogram counts cells per gid.
func (m *TileMap) Histogram() map[int]int {
	counts := make(map[int]int)
	for _, gid := range m.grid.cells {
		counts[gid]++
	}
	return counts
}

// Direction names one of the eight cells around a map cell.
type Direction int

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

// Directions lists every direction clockwise from Up.
var Directions = [...]Direction{Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft}

var directionOffsets = [...]geometry.Point{
	Up:        {X: 0, Y: -1},
	UpRight:   {X: 1, Y: -1},
	Right:     {X: 1, Y: 0},
	DownRight: {X: 1, Y: 1},
	Down:      {X: 0, Y: 1},
	DownLeft:  {X: -1, Y: 1},
	Left:      {X: -1, Y: 0},
	UpLeft:    {X: -1, Y: -1},
}

var directionNames = [...]string{"up", "up-right", "right", "down-right", "down", "down-left", "left", "up-left"}

// Offset returns the coordinate delta of d. Y grows downwards.
func (d Direction) Offset() geometry.Point { return directionOffsets[d] }

func (d Direction) String() string { return directionNames[d] }

// Cell is one map cell and its gid.
type Cell struct {
	Position geometry.Point
	Gid      int
}

// Neighborhood is a cell and the up to eight cells around it.
type Neighborhood struct {
	Center  Cell
	sides   [len(Directions)]Cell
	present [len(Directions)]bool
}

// Side returns the neighbour in direction d, or false at the map edge.
func (n Neighborhood) Side(d Direction) (Cell, bool) {
	return n.sides[d], n.present[d]
}

// Count returns how many neighbours exist.
func (n Neighborhood) Count() int {
	count := 0
	for _, ok := range n.present {
		if ok {
			count++
		}
	}
	return count
}

// Neighbors returns the neighbourhood of (x, y). The second result is false
// when (x, y) itself is off the map.
func (m *TileMap) Neighbors(x, y int) (Neighborhood, bool) {
	gid, ok := m.At(x, y)
	if !ok {
		return Neighborhood{}, false
	}

	n := Neighborhood{Center: Cell{Position: geometry.Point{X: x, Y: y}, Gid: gid}}
	for _, d := range Directions {
		off := d.Offset()
		p := geometry.Point{X: x + off.X, Y: y + off.Y}
		if g, ok := m.At(p.X, p.Y); ok {
			n.sides[d] = Cell{Position: p, Gid: g}
			n.present[d] = true
		}
	}
	return n, true
}
