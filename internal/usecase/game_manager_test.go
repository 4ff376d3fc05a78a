package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/repository"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-local/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func newTestManager(t *testing.T) (*GameManager, *mockedUseCase.MocksessionRepoDep) {
	t.Helper()

	grid, err := tictactoe.NewGrid(600, 600)
	require.NoError(t, err)

	repo := mockedUseCase.NewMocksessionRepoDep(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGameManager(logger, repo, grid), repo
}

func TestGameManager_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the snapshot of a new session", func(t *testing.T) {
		// Given: a repository that accepts writes
		manager, repo := newTestManager(t)

		repo.EXPECT().
			CreateOrUpdate(ctx, mock.MatchedBy(func(s *tictactoe.Snapshot) bool {
				return s.ID != "" && s.Turn == entity.MarkX && s.Moves == 0
			})).
			Return(nil).
			Once()

		// When: a session is started
		session, err := manager.StartSession(ctx)

		// Then: it gets an ID and an empty board
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID())
		assert.False(t, session.Ended())
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		manager, repo := newTestManager(t)

		repo.EXPECT().
			CreateOrUpdate(ctx, mock.AnythingOfType("*tictactoe.Snapshot")).
			Return(errRedisDown).
			Once()

		session, err := manager.StartSession(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, session)
	})
}

func TestGameManager_Click(t *testing.T) {
	ctx := context.Background()

	t.Run("Click on an empty cell places the mark", func(t *testing.T) {
		// Given: a new session
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")

		repo.EXPECT().
			CreateOrUpdate(ctx, mock.MatchedBy(func(s *tictactoe.Snapshot) bool {
				return s.ID == "s1" && s.Board[2][1] == entity.MarkX && s.Turn == entity.MarkO
			})).
			Return(nil).
			Once()

		// When: the bottom middle region is clicked
		event, err := manager.Click(ctx, session, 310, 590)

		// Then: X is placed there
		require.NoError(t, err)
		assert.Equal(t, EventMoved, event.Type)
		assert.Equal(t, entity.Cell{Row: 2, Col: 1}, event.Move.Cell)
		assert.Equal(t, entity.MarkX, event.Move.Mark)
		assert.Equal(t, entity.MarkO, event.Session.Turn)
	})

	t.Run("Click on an occupied cell is ignored", func(t *testing.T) {
		// Given: X holds the top left cell
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")
		_, err := session.MakeMove(0, 0)
		require.NoError(t, err)
		before := session.Snapshot()

		// When: the top left region is clicked again
		event, err := manager.Click(ctx, session, 50, 50)

		// Then: nothing is stored and nothing changes
		require.NoError(t, err)
		assert.Equal(t, EventIgnored, event.Type)
		assert.False(t, event.Move.Applied)
		assert.Equal(t, before, session.Snapshot())
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Click outside the window is ignored", func(t *testing.T) {
		manager, _ := newTestManager(t)
		session := tictactoe.NewSession("s1")

		event, err := manager.Click(ctx, session, -5, 700)

		require.NoError(t, err)
		assert.Equal(t, EventIgnored, event.Type)
		assert.Equal(t, 0, session.Snapshot().Moves)
	})

	t.Run("Winning click ends the session and drops the snapshot", func(t *testing.T) {
		// Given: X has two in the top row
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")
		for _, cell := range []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 2, Col: 2}} {
			_, err := session.MakeMove(cell.Row, cell.Col)
			require.NoError(t, err)
		}

		repo.EXPECT().
			DeleteByID(ctx, "s1").
			Return(nil).
			Once()

		// When: X clicks the top right region
		event, err := manager.Click(ctx, session, 599, 1)

		// Then: the session ends with X as the winner
		require.NoError(t, err)
		assert.Equal(t, EventEnded, event.Type)
		assert.Equal(t, entity.ResultWin, event.Move.Result)
		assert.Equal(t, entity.MarkX, event.Move.Winner)
		assert.True(t, session.Ended())
	})
}

func TestGameManager_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("Draw ends the session", func(t *testing.T) {
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")
		order := []entity.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
		for _, cell := range order {
			_, err := session.MakeMove(cell.Row, cell.Col)
			require.NoError(t, err)
		}

		repo.EXPECT().
			DeleteByID(ctx, "s1").
			Return(nil).
			Once()

		event, err := manager.Move(ctx, session, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, EventEnded, event.Type)
		assert.Equal(t, entity.ResultDraw, event.Move.Result)
		assert.Equal(t, entity.EmptyCell, event.Session.Winner)
	})

	t.Run("Winning move after the snapshot expired", func(t *testing.T) {
		// Given: X has two in the top row and the stored snapshot has expired
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")
		for _, cell := range []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 2, Col: 2}} {
			_, err := session.MakeMove(cell.Row, cell.Col)
			require.NoError(t, err)
		}

		repo.EXPECT().
			DeleteByID(ctx, "s1").
			Return(repository.ErrSessionNotFound).
			Once()

		// When: X completes the top row
		event, err := manager.Move(ctx, session, 0, 2)

		// Then: the win is reported without an error
		require.NoError(t, err)
		assert.Equal(t, EventEnded, event.Type)
		assert.Equal(t, entity.MarkX, event.Move.Winner)
	})

	t.Run("Move after the session ended", func(t *testing.T) {
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")
		for _, cell := range []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}} {
			_, err := session.MakeMove(cell.Row, cell.Col)
			require.NoError(t, err)
		}

		event, err := manager.Move(ctx, session, 2, 2)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Nil(t, event)
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		manager, _ := newTestManager(t)
		session := tictactoe.NewSession("s1")

		event, err := manager.Move(ctx, session, 0, 5)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Nil(t, event)
	})

	t.Run("Storage failure still reports the applied move", func(t *testing.T) {
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")

		repo.EXPECT().
			CreateOrUpdate(ctx, mock.AnythingOfType("*tictactoe.Snapshot")).
			Return(errRedisDown).
			Once()

		event, err := manager.Move(ctx, session, 1, 1)

		require.ErrorIs(t, err, errRedisDown)
		require.NotNil(t, event)
		assert.True(t, event.Move.Applied)
		assert.Equal(t, entity.MarkO, session.Snapshot().Turn)
	})
}

func TestGameManager_EndSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")

		repo.EXPECT().
			DeleteByID(ctx, "s1").
			Return(errRedisDown).
			Once()

		err := manager.EndSession(ctx, session)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Expired snapshot counts as ended", func(t *testing.T) {
		// Given: a repository where the snapshot has already expired
		manager, repo := newTestManager(t)
		session := tictactoe.NewSession("s1")

		repo.EXPECT().
			DeleteByID(ctx, "s1").
			Return(fmt.Errorf("wrapped: %w", repository.ErrSessionNotFound)).
			Once()

		// When: the session is ended
		err := manager.EndSession(ctx, session)

		// Then: no error is returned
		require.NoError(t, err)
	})
}
