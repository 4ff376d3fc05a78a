package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

const (
	actionSessionNew = "session:new"
	actionClick      = "click"
	actionMove       = "move"

	actionSessionState   = "session:state"
	actionSessionIgnored = "session:ignored"
	actionSessionEnd     = "session:end"
	actionError          = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClickPayload is a pointer position in window coordinates, origin at the top left.
type ClickPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ResponsePayload struct {
	Session *tictactoe.Snapshot   `json:"session,omitempty"`
	Move    *tictactoe.MoveResult `json:"move,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) Message {
	return Message{
		Action:  action,
		Payload: mustMarshal(payload),
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
