package snake

import "fmt"

// Cell is a grid-aligned board position in distance units.
// Both coordinates are multiples of the board's cell size.
type Cell struct {
	X, Y int
}

// Add returns c translated by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Board is the immutable square playing field: N×N cells of size S.
type Board struct {
	columns  int
	cellSize int
}

// NewBoard creates a board of the given extent (in distance units) split into
// cells of cellSize. The extent must be a positive multiple of cellSize.
func NewBoard(size, cellSize int) (Board, error) {
	if cellSize <= 0 {
		return Board{}, fmt.Errorf("snake: cell size must be positive, got %d", cellSize)
	}
	if size <= 0 || size%cellSize != 0 {
		return Board{}, fmt.Errorf("snake: board size %d is not a positive multiple of cell size %d", size, cellSize)
	}
	return Board{columns: size / cellSize, cellSize: cellSize}, nil
}

// Size returns the board extent N·S.
func (b Board) Size() int {
	return b.columns * b.cellSize
}

// CellSize returns S.
func (b Board) CellSize() int {
	return b.cellSize
}

// Columns returns N, the number of cells along one side.
func (b Board) Columns() int {
	return b.columns
}

// Cells returns the number of cells on the board (N²).
func (b Board) Cells() int {
	return b.columns * b.columns
}

// InBounds reports whether c lies on the board.
func (b Board) InBounds(c Cell) bool {
	size := b.Size()
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// CellAt converts grid indices to a Cell.
func (b Board) CellAt(col, row int) Cell {
	return Cell{X: col * b.cellSize, Y: row * b.cellSize}
}

// Index converts a Cell back to grid indices.
func (b Board) Index(c Cell) (col, row int) {
	return c.X / b.cellSize, c.Y / b.cellSize
}
