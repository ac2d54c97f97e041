package board

type Neighborhood struct {
	// ExcludeTargetCell keeps only cells differing from the target in both
	// row and column.
	ExcludeTargetCell bool
	// ExcludeDiagonalCells keeps only cells sharing the target's row or
	// column, the target included.
	ExcludeDiagonalCells bool
}

func (n Neighborhood) keep(row, column, targetRow, targetColumn int) bool {
	if n.ExcludeTargetCell && !(row != targetRow && column != targetColumn) {
		return false
	}
	if n.ExcludeDiagonalCells && row != targetRow && column != targetColumn {
		return false
	}
	return true
}

// GetSurroundingCells returns the 3x3 block around the target, clipped to
// the board and filtered by n, in row-major order.
func (b *Board) GetSurroundingCells(row, column int, n Neighborhood) []*Cell {
	cells := make([]*Cell, 0, 9)
	for r := max(row-1, 0); r <= min(row+1, b.size-1); r++ {
		for c := max(column-1, 0); c <= min(column+1, b.size-1); c++ {
			if n.keep(r, c, row, column) {
				cells = append(cells, b.grid[r][c])
			}
		}
	}
	return cells
}
