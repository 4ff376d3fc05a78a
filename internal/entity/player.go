package entity

import "fmt"

// Mark is the symbol a player puts on the board.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Not - returns the opponent's mark.
func (that Mark) Not() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		panic(fmt.Sprintf("entity: Not called on invalid mark %q", string(that)))
	}
}

func (that Mark) String() string {
	if that == EmptyCell {
		return "-"
	}
	return string(that)
}
