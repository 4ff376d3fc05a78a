package entity

type Result string

const (
	ResultOngoing Result = "ongoing"
	ResultWin     Result = "win"
	ResultDraw    Result = "draw"
)

func (that Result) IsFinished() bool {
	return that == ResultWin || that == ResultDraw
}

// Evaluate - a completed line beats a full board, so a last move that fills the board and wins is a win.
func Evaluate(board *Board) (Result, Mark) {
	if winner, ok := board.Winner(); ok {
		return ResultWin, winner
	}

	if board.IsFull() {
		return ResultDraw, EmptyCell
	}

	return ResultOngoing, EmptyCell
}
