package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

// Session is one play-through from an empty board to a win or a draw.
// It is not safe for concurrent use; the caller owns it from a single goroutine.
type Session struct {
	id     string
	board  *entity.Board
	turn   *entity.TurnController
	moves  int
	result entity.Result
	winner entity.Mark
}

// MoveResult describes what a move did.
type MoveResult struct {
	Applied bool          `json:"applied"`
	Cell    entity.Cell   `json:"cell"`
	Mark    entity.Mark   `json:"mark,omitempty"`
	Result  entity.Result `json:"result"`
	Winner  entity.Mark   `json:"winner,omitempty"`
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ID     string        `json:"id"`
	Board  entity.Board  `json:"board"`
	Turn   entity.Mark   `json:"turn,omitempty"`
	Moves  int           `json:"moves"`
	Result entity.Result `json:"result"`
	Winner entity.Mark   `json:"winner,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{
		id:     id,
		board:  entity.NewBoard(),
		turn:   entity.NewTurnController(),
		result: entity.ResultOngoing,
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Ended() bool {
	return that.result.IsFinished()
}

// MakeMove - places the current player's mark on the cell.
// A move onto an occupied cell is ignored: Applied is false and the error is nil.
func (that *Session) MakeMove(row, col int) (MoveResult, error) {
	if that.Ended() {
		return MoveResult{}, apperror.ErrGameFinished
	}

	cell := entity.Cell{Row: row, Col: col}
	mark := that.turn.Current()

	if err := that.board.Place(row, col, mark); err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) {
			return MoveResult{Cell: cell, Result: that.result}, nil
		}

		return MoveResult{}, fmt.Errorf("invalid move: %w", err)
	}

	that.moves++
	that.turn.Advance()
	that.result, that.winner = entity.Evaluate(that.board)

	return MoveResult{
		Applied: true,
		Cell:    cell,
		Mark:    mark,
		Result:  that.result,
		Winner:  that.winner,
	}, nil
}

func (that *Session) Snapshot() Snapshot {
	snapshot := Snapshot{
		ID:     that.id,
		Board:  *that.board,
		Moves:  that.moves,
		Result: that.result,
		Winner: that.winner,
	}

	if !that.Ended() {
		snapshot.Turn = that.turn.Current()
	}

	return snapshot
}
