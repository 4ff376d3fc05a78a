package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-local/internal/usecase"
)

type gameManager interface {
	StartSession(ctx context.Context) (*tictactoe.Session, error)
	Click(ctx context.Context, session *tictactoe.Session, x, y float64) (*usecase.Event, error)
	Move(ctx context.Context, session *tictactoe.Session, row, col int) (*usecase.Event, error)
	EndSession(ctx context.Context, session *tictactoe.Session) error
}

const cleanupTimeout = 5 * time.Second

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

// connection owns at most one session. Its messages are handled one at a time
// by the read loop, so the session is never touched concurrently.
type connection struct {
	ws      *websocket.Conn
	session *tictactoe.Session
}

type Server struct {
	logger   *slog.Logger
	manager  gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionClick] = server.handleClick
	server.handlers[actionMove] = server.handleMove

	return server
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that.Handler(ctx))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler - upgrades requests to WebSocket and serves them.
func (that *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		that.upgradeToWebSocket(ctx, writer, req)
	})
}

func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer ws.Close()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	conn := &connection{ws: ws}
	defer that.dropSession(ctx, conn)

	that.handleMessages(ctx, conn)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		var msg Message
		if err := conn.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Warn("unknown action", "action", msg.Action)

			if err := that.sendError(conn, msg.Action, "unknown action"); err != nil {
				log.Error("failed to send response", "error", err)
				return
			}
			continue
		}

		if err := handler(ctx, conn, &msg); err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
			return
		}
	}
}

// dropSession - forgets the session of a connection that is going away.
// The delete outlives server shutdown so the snapshot does not linger until its TTL.
func (that *Server) dropSession(ctx context.Context, conn *connection) {
	if conn.session == nil || conn.session.Ended() {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := that.manager.EndSession(cleanupCtx, conn.session); err != nil {
		that.logger.Error("failed to end session", "session", conn.session.ID(), "error", err)
	}

	conn.session = nil
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	if err := conn.ws.WriteJSON(newMessage(action, payload)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *connection, action, text string) error {
	return that.sendMessage(conn, actionError, ResponsePayload{Error: action + ": " + text})
}
