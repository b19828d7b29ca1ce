package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const sessionCookieName = "user_session"

type gameManager interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (string, *tictactoe.GameState, error)
	Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameState, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameState, error)
	Reset(ctx context.Context, sessionID string) (*tictactoe.GameState, error)
	EndSession(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error)

type Server struct {
	logger         *slog.Logger
	manager        gameManager
	originPatterns []string

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager gameManager, originPatterns ...string) *Server {
	server := &Server{
		logger:         logger.With("component", "websocket"),
		manager:        manager,
		originPatterns: originPatterns,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionReset] = server.handleReset

	return server
}

func (that *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", that.ServeWS)
}

// ServeWS - upgrades the connection and serves game actions until the client leaves.
// A connection without a session cookie gets its own session, dropped on disconnect.
func (that *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: that.originPatterns})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusInternalError, "") }()

	ctx := r.Context()

	cookieSession := sessionFromCookie(r)
	sessionID, _, err := that.manager.GetOrCreateSession(ctx, cookieSession)
	if err != nil {
		log.Error("failed to get session", "error", err)
		_ = conn.Close(websocket.StatusInternalError, "session unavailable")
		return
	}

	if cookieSession == "" {
		defer func() {
			if err := that.manager.EndSession(context.WithoutCancel(ctx), sessionID); err != nil {
				log.Error("failed to end session", "error", err)
			}
		}()
	}

	log.Info("WebSocket connection established", "session", sessionID)

	err = that.handleMessages(ctx, conn, sessionID)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed", "session", sessionID)
	default:
		log.Error("error handling messages", "session", sessionID, "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Error("failed to unmarshal message", "error", err)

			malformed := Response{Action: actionError, Payload: ResponsePayload{Error: "malformed message"}}
			if err = wsjson.Write(ctx, conn, malformed); err != nil {
				return err
			}
			continue
		}

		response := Response{Action: msg.Action}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Error("unknown action", "action", msg.Action)
			response.Action = actionError
			response.Payload.Error = "unknown action: " + msg.Action
		} else {
			payload, err := handler(ctx, sessionID, &msg)
			if err != nil {
				log.Error("error processing message", "action", msg.Action, "error", err)
				payload.Error = err.Error()
			}
			response.Payload = payload
		}

		if err = wsjson.Write(ctx, conn, response); err != nil {
			return err
		}
	}
}

func sessionFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || !pkg.IsSessionID(cookie.Value) {
		return ""
	}

	return cookie.Value
}
