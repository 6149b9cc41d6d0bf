// Defines the Grid type: the 2D integer bitmap that models resource occupancy
// on the annealing processor, and the demand/allocation bitmaps placed onto it.

package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultGridRows and DefaultGridCols are the dimensions of the annealing
// processor's resource grid when none are configured.
const (
	DefaultGridRows = 16
	DefaultGridCols = 16
)

// Grid is a rectangular matrix of non-negative integers. A cell value of 0
// means free; >= 1 means occupied. The same type represents the processor's
// resource grid, a task's demand bitmap and a computed allocation bitmap.
type Grid struct {
	data *mat.Dense
}

// NewGrid creates a zeroed rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("grid dimensions must be positive, got %dx%d", rows, cols))
	}
	return &Grid{data: mat.NewDense(rows, cols, nil)}
}

// GridFromBitmap builds a grid from a row-major bitmap. All rows must have the
// same non-zero length and all cells must be non-negative.
func GridFromBitmap(cells [][]int) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("bitmap must have at least one row and one column")
	}
	rows, cols := len(cells), len(cells[0])
	g := NewGrid(rows, cols)
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("bitmap row %d has %d cells, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("bitmap cell (%d,%d) is negative", i, j)
			}
			g.data.Set(i, j, float64(v))
		}
	}
	return g, nil
}

// SolidGrid creates a rows x cols grid with every cell set to 1.
func SolidGrid(rows, cols int) *Grid {
	g := NewGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.data.Set(i, j, 1)
		}
	}
	return g
}

// Dims returns the grid's row and column counts.
func (g *Grid) Dims() (rows, cols int) {
	return g.data.Dims()
}

// At returns the value of cell (i, j).
func (g *Grid) At(i, j int) int {
	return int(g.data.At(i, j))
}

// Set assigns cell (i, j).
func (g *Grid) Set(i, j, v int) {
	g.data.Set(i, j, float64(v))
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{data: mat.DenseCopyOf(g.data)}
}

// Add accumulates o into g elementwise. Shapes must match.
func (g *Grid) Add(o *Grid) {
	gr, gc := g.Dims()
	or, oc := o.Dims()
	if gr != or || gc != oc {
		panic(fmt.Sprintf("grid shape mismatch: %dx%d + %dx%d", gr, gc, or, oc))
	}
	g.data.Add(g.data, o.data)
}

// Occupancy returns the boolean image of the grid: 1 where a cell is occupied,
// 0 where free.
func (g *Grid) Occupancy() *Grid {
	rows, cols := g.Dims()
	out := NewGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.data.At(i, j) > 0 {
				out.data.Set(i, j, 1)
			}
		}
	}
	return out
}

// Sum returns the sum of all cell values.
func (g *Grid) Sum() int {
	return int(mat.Sum(g.data))
}

// CountNonzero returns the number of occupied cells.
func (g *Grid) CountNonzero() int {
	rows, cols := g.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.data.At(i, j) > 0 {
				n++
			}
		}
	}
	return n
}

// Size returns the total number of cells, occupied or not.
func (g *Grid) Size() int {
	rows, cols := g.Dims()
	return rows * cols
}

// AllOnes reports whether every cell is non-zero, i.e. the bitmap is a solid
// rectangle.
func (g *Grid) AllOnes() bool {
	rows, cols := g.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.data.At(i, j) == 0 {
				return false
			}
		}
	}
	return true
}

// Rot90 returns a new grid rotated 90 degrees counter-clockwise (numpy rot90
// convention): out[i][j] = g[j][cols-1-i], with dims swapped.
func (g *Grid) Rot90() *Grid {
	rows, cols := g.Dims()
	out := NewGrid(cols, rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out.data.Set(i, j, g.data.At(j, cols-1-i))
		}
	}
	return out
}

// FlipLR returns a new grid mirrored about the vertical axis.
func (g *Grid) FlipLR() *Grid {
	rows, cols := g.Dims()
	out := NewGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data.Set(i, j, g.data.At(i, cols-1-j))
		}
	}
	return out
}

// Overlaps reports whether any cell is occupied in both grids. Shapes must
// match.
func (g *Grid) Overlaps(o *Grid) bool {
	gr, gc := g.Dims()
	or, oc := o.Dims()
	if gr != or || gc != oc {
		panic(fmt.Sprintf("grid shape mismatch: %dx%d vs %dx%d", gr, gc, or, oc))
	}
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			if g.data.At(i, j) > 0 && o.data.At(i, j) > 0 {
				return true
			}
		}
	}
	return false
}

// Equal reports whether both grids have the same shape and cell values.
func (g *Grid) Equal(o *Grid) bool {
	return mat.Equal(g.data, o.data)
}

// String renders the grid as rows of space-separated integers, for logs and
// test failures.
func (g *Grid) String() string {
	return fmt.Sprintf("%v", mat.Formatted(g.data))
}
