package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const sessionCookieName = "user_session"

type gameManager interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (string, *tictactoe.GameState, error)
	Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameState, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameState, error)
	Reset(ctx context.Context, sessionID string) (*tictactoe.GameState, error)
}

type Handlers struct {
	logger     *slog.Logger
	manager    gameManager
	sessionTTL time.Duration
}

func NewHandlers(logger *slog.Logger, manager gameManager, sessionTTL time.Duration) *Handlers {
	return &Handlers{
		logger:     logger.With("component", "rest"),
		manager:    manager,
		sessionTTL: sessionTTL,
	}
}

// Register - adds the page, its form actions and the health check to the mux.
func (that *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", that.PingHandler)
	mux.HandleFunc("GET /{$}", that.GamePage)
	mux.HandleFunc("GET /api/game", that.GameJSON)
	mux.HandleFunc("POST /play/{cell}", that.Play)
	mux.HandleFunc("POST /jump/{move}", that.JumpTo)
	mux.HandleFunc("POST /reset", that.Reset)
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) GamePage(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GamePage")

	state, ok := that.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gamePage(presenter.Present(state)).Render(r.Context(), w); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *Handlers) GameJSON(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GameJSON")

	state, ok := that.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(presenter.Present(state)); err != nil {
		log.Error("failed to encode game", "error", err)
	}
}

func (that *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	that.action(w, r, "Play", "cell", that.manager.Play)
}

func (that *Handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	that.action(w, r, "JumpTo", "move", that.manager.JumpTo)
}

func (that *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Reset")

	sessionID, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	if _, err := that.manager.Reset(r.Context(), sessionID); err != nil {
		log.Error("failed to reset game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// action - forwards a form post to the game and sends the browser back to the page.
// Moves the rules reject are dropped silently.
func (that *Handlers) action(
	w http.ResponseWriter,
	r *http.Request,
	method, param string,
	apply func(ctx context.Context, sessionID string, value int) (*tictactoe.GameState, error),
) {
	log := that.logger.With("method", method)

	value, err := strconv.Atoi(r.PathValue(param))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sessionID, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	if _, err = apply(r.Context(), sessionID, value); err != nil && !usecase.IsRuleViolation(err) {
		log.Error("failed to apply action", param, value, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session - loads or starts the caller's game and refreshes the session cookie.
func (that *Handlers) session(w http.ResponseWriter, r *http.Request) (*tictactoe.GameState, bool) {
	log := that.logger.With("method", "session")

	sessionID, state, err := that.manager.GetOrCreateSession(r.Context(), that.cookieSessionID(r))
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	that.setSessionCookie(w, sessionID)

	return state, true
}

// sessionID - returns the caller's session id, issuing a new one when the cookie is missing.
func (that *Handlers) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if id := that.cookieSessionID(r); id != "" {
		return id, true
	}

	sessionID, _, err := that.manager.GetOrCreateSession(r.Context(), "")
	if err != nil {
		that.logger.Error("failed to create session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", false
	}

	that.setSessionCookie(w, sessionID)

	return sessionID, true
}

func (that *Handlers) cookieSessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || !pkg.IsSessionID(cookie.Value) {
		return ""
	}

	return cookie.Value
}

func (that *Handlers) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(that.sessionTTL),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
