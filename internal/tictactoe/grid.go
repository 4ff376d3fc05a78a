package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

var ErrInvalidGrid = errors.New("grid size must be positive and finite")

// Grid splits a window into 3x3 equal regions.
type Grid struct {
	Width  float64
	Height float64
}

func NewGrid(width, height float64) (Grid, error) {
	if !isFinitePositive(width) || !isFinitePositive(height) {
		return Grid{}, fmt.Errorf("%w: %vx%v", ErrInvalidGrid, width, height)
	}

	return Grid{Width: width, Height: height}, nil
}

// CellAt - maps a pointer position to a cell. The right and bottom edges belong to the last row/column.
func (that Grid) CellAt(x, y float64) (entity.Cell, error) {
	if !(x >= 0 && x <= that.Width && y >= 0 && y <= that.Height) {
		return entity.Cell{}, fmt.Errorf("%w: (%v, %v)", apperror.ErrOutsideGrid, x, y)
	}

	return entity.Cell{
		Row: clampIndex(y / (that.Height / entity.BoardSize)),
		Col: clampIndex(x / (that.Width / entity.BoardSize)),
	}, nil
}

// CellCenter - returns the centre of the cell's region.
func (that Grid) CellCenter(cell entity.Cell) (float64, float64) {
	cellWidth := that.Width / entity.BoardSize
	cellHeight := that.Height / entity.BoardSize

	return (float64(cell.Col) + 0.5) * cellWidth, (float64(cell.Row) + 0.5) * cellHeight
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clampIndex(v float64) int {
	return min(max(int(math.Floor(v)), 0), entity.BoardSize-1)
}
