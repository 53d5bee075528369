package physics

import "math"

// SpatialGrid buckets entity indices by the cell under their centre so that
// overlap tests only look at nearby entities. The field does not wrap: the
// neighbourhood of an edge cell is cut off at the border and centres outside
// the field fall into the nearest edge cell.
//
// The cell size must be at least the largest centre distance at which two
// entities can still overlap, which holds when it is no smaller than the
// largest sprite side.
type SpatialGrid struct {
	cell       float64
	cols, rows int
	cells      [][]int
}

// NewSpatialGrid creates a grid covering a fieldW x fieldH field.
func NewSpatialGrid(fieldW, fieldH, cellSize float64) *SpatialGrid {
	cellSize = max(cellSize, 1)
	cols := max(int(math.Ceil(fieldW/cellSize)), 1)
	rows := max(int(math.Ceil(fieldH/cellSize)), 1)
	return &SpatialGrid{
		cell:  cellSize,
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
}

// Clear empties every cell, keeping their storage for the next frame.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert files index under the cell containing (x,y).
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.cellOf(x, y)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], index)
}

// QueryAround calls fn for every index in the cell containing (x,y) and its
// in-field neighbours. Iteration stops when fn returns true.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cellOf(x, y)
	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, index := range g.cells[r*g.cols+c] {
				if fn(index) {
					return
				}
			}
		}
	}
}

// Lowest returns the smallest index around (x,y) accepted by match, or -1.
// Cells are visited in grid order, so the search cannot stop at the first
// match.
func (g *SpatialGrid) Lowest(x, y float64, match func(index int) bool) int {
	best := -1
	g.QueryAround(x, y, func(i int) bool {
		if (best < 0 || i < best) && match(i) {
			best = i
		}
		return false
	})
	return best
}

func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = min(max(int(math.Floor(x/g.cell)), 0), g.cols-1)
	row = min(max(int(math.Floor(y/g.cell)), 0), g.rows-1)
	return col, row
}
