package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

type EventType string

const (
	// EventIgnored - the click had no effect: occupied cell or outside the window.
	EventIgnored EventType = "ignored"
	EventMoved   EventType = "moved"
	// EventEnded - the move finished the session, the host should close it.
	EventEnded EventType = "ended"
)

// Event is what a host gets back after feeding input into a session.
type Event struct {
	Type    EventType            `json:"type"`
	Move    tictactoe.MoveResult `json:"move"`
	Session tictactoe.Snapshot   `json:"session"`
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *tictactoe.Snapshot) error
	DeleteByID(ctx context.Context, id string) error
}

// GameManager is the single place where sessions change. Callers must not share
// a session between goroutines.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	grid        tictactoe.Grid
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, grid tictactoe.Grid) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		grid:        grid,
	}
}

func (that *GameManager) Grid() tictactoe.Grid {
	return that.grid
}

func (that *GameManager) StartSession(ctx context.Context) (*tictactoe.Session, error) {
	session := tictactoe.NewSession(uuid.NewString())

	if err := that.saveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	that.logger.Info("session started", "session", session.ID())

	return session, nil
}

// Click - maps a pointer position to a cell and plays it.
func (that *GameManager) Click(ctx context.Context, session *tictactoe.Session, x, y float64) (*Event, error) {
	cell, err := that.grid.CellAt(x, y)
	if errors.Is(err, apperror.ErrOutsideGrid) {
		that.logger.Debug("click outside the grid", "session", session.ID(), "x", x, "y", y)

		return &Event{Type: EventIgnored, Session: session.Snapshot()}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to map click: %w", err)
	}

	return that.Move(ctx, session, cell.Row, cell.Col)
}

// Move - plays the current player's mark on the cell. The stored snapshot is
// refreshed after each accepted move and removed when the session ends.
func (that *GameManager) Move(ctx context.Context, session *tictactoe.Session, row, col int) (*Event, error) {
	log := that.logger.With("method", "Move", "session", session.ID())

	move, err := session.MakeMove(row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	event := &Event{
		Type:    EventMoved,
		Move:    move,
		Session: session.Snapshot(),
	}

	if !move.Applied {
		log.Debug("cell is occupied, move ignored", "row", row, "col", col)

		event.Type = EventIgnored
		return event, nil
	}

	if session.Ended() {
		event.Type = EventEnded
		log.Info("session ended", "result", move.Result, "winner", move.Winner)

		if err = that.EndSession(ctx, session); err != nil {
			return event, err
		}

		return event, nil
	}

	if err = that.saveSession(ctx, session); err != nil {
		return event, fmt.Errorf("failed to update session: %w", err)
	}

	return event, nil
}

// EndSession - drops the stored snapshot of the session. A snapshot that has
// already expired counts as dropped.
func (that *GameManager) EndSession(ctx context.Context, session *tictactoe.Session) error {
	err := that.sessionRepo.DeleteByID(ctx, session.ID())
	if errors.Is(err, repository.ErrSessionNotFound) {
		that.logger.Debug("session snapshot already gone", "session", session.ID())
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *GameManager) saveSession(ctx context.Context, session *tictactoe.Session) error {
	snapshot := session.Snapshot()

	if err := that.sessionRepo.CreateOrUpdate(ctx, &snapshot); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
