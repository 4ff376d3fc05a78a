package entity

// TurnController tracks whose turn it is. X always moves first.
type TurnController struct {
	current Mark
}

func NewTurnController() *TurnController {
	return &TurnController{current: MarkX}
}

func (that *TurnController) Current() Mark {
	return that.current
}

// Advance - hands the turn to the other player. Call it only after a successful Board.Place.
func (that *TurnController) Advance() {
	that.current = that.current.Not()
}
