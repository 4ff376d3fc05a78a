package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
)

const BoardSize = 3

// Cell addresses one square of the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// PlacedMark is an occupied cell together with its mark.
type PlacedMark struct {
	Cell
	Mark Mark `json:"mark"`
}

// WinLines lists rows first, then columns, then the two diagonals.
// Winner reports the first completed line in this order.
var WinLines = [8][3]Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid of marks, row-major. A marked cell is never changed again.
type Board [BoardSize][BoardSize]Mark

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) IsOccupied(row, col int) bool {
	return that[row][col] != EmptyCell
}

// Place - puts mark on the cell. It is the only way to change the board.
func (that *Board) Place(row, col int, mark Mark) error {
	cell := Cell{Row: row, Col: col}
	if !cell.IsValid() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, string(mark))
	}

	if that.IsOccupied(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, mark := range row {
			if mark == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Winner - returns the owner of the first fully marked line.
func (that *Board) Winner() (Mark, bool) {
	for _, line := range WinLines {
		a := that[line[0].Row][line[0].Col]
		b := that[line[1].Row][line[1].Col]
		c := that[line[2].Row][line[2].Col]

		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

// Cells - returns the occupied cells in row-major order.
func (that *Board) Cells() []PlacedMark {
	placed := make([]PlacedMark, 0, BoardSize*BoardSize)
	for row := range that {
		for col, mark := range that[row] {
			if mark != EmptyCell {
				placed = append(placed, PlacedMark{Cell: Cell{Row: row, Col: col}, Mark: mark})
			}
		}
	}

	return placed
}
