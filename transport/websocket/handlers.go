package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/usecase"
)

var errNoSession = errors.New("no active session")

func (that *Server) handleNewSession(ctx context.Context, conn *connection, msg *Message) error {
	that.dropSession(ctx, conn)

	session, err := that.manager.StartSession(ctx)
	if err != nil {
		that.logger.Error("failed to start session", "error", err)
		return that.sendError(conn, msg.Action, "failed to start a session")
	}

	conn.session = session

	snapshot := session.Snapshot()
	return that.sendMessage(conn, actionSessionState, ResponsePayload{Session: &snapshot})
}

func (that *Server) handleClick(ctx context.Context, conn *connection, msg *Message) error {
	var payload ClickPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(conn, msg.Action, "invalid payload")
	}

	if conn.session == nil {
		return that.sendError(conn, msg.Action, errNoSession.Error())
	}

	event, err := that.manager.Click(ctx, conn.session, payload.X, payload.Y)

	return that.respond(conn, msg, event, err)
}

func (that *Server) handleMove(ctx context.Context, conn *connection, msg *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(conn, msg.Action, "invalid payload")
	}

	if conn.session == nil {
		return that.sendError(conn, msg.Action, errNoSession.Error())
	}

	event, err := that.manager.Move(ctx, conn.session, payload.Row, payload.Col)

	return that.respond(conn, msg, event, err)
}

// respond - reports the outcome of a move. Once the session ended the
// connection forgets it and waits for a new one.
func (that *Server) respond(conn *connection, msg *Message, event *usecase.Event, err error) error {
	if event == nil {
		switch {
		case errors.Is(err, apperror.ErrInvalidCell):
			return that.sendError(conn, msg.Action, "invalid cell")
		case errors.Is(err, apperror.ErrGameFinished):
			conn.session = nil
			return that.sendError(conn, msg.Action, errNoSession.Error())
		default:
			that.logger.Error("failed to process move", "action", msg.Action, "error", err)
			return that.sendError(conn, msg.Action, "failed to process move")
		}
	}

	if err != nil {
		that.logger.Error("move applied but not stored", "session", event.Session.ID, "error", err)
	}

	payload := ResponsePayload{
		Session: &event.Session,
		Move:    &event.Move,
	}

	switch event.Type {
	case usecase.EventIgnored:
		return that.sendMessage(conn, actionSessionIgnored, payload)
	case usecase.EventEnded:
		conn.session = nil
		return that.sendMessage(conn, actionSessionEnd, payload)
	case usecase.EventMoved:
		return that.sendMessage(conn, actionSessionState, payload)
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
