package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type sessionRepo interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs each session's game: load, apply one action, save.
// Actions on the same session are serialised.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	locksMutex sync.Mutex
	locks      map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	holders int
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		locks:       make(map[string]*sessionLock),
	}
}

// GetOrCreateSession - returns the session's game, starting a new one when the id is empty or unknown.
// The returned id is the one the caller must use from now on.
func (that *GameManager) GetOrCreateSession(ctx context.Context, sessionID string) (string, *tictactoe.GameState, error) {
	if sessionID == "" {
		sessionID = pkg.GenerateNewSessionID()
	}

	unlock := that.lock(sessionID)
	defer unlock()

	state, err := that.load(ctx, sessionID)
	if err == nil {
		return sessionID, state, nil
	}

	if !errors.Is(err, apperror.ErrSessionNotFound) && !errors.Is(err, tictactoe.ErrCorruptSnapshot) {
		return "", nil, fmt.Errorf("failed to get session: %w", err)
	}

	state, err = that.create(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	return sessionID, state, nil
}

// Play - applies a cell click to the session's game.
// A rejected move is reported through the error and leaves the stored game untouched.
func (that *GameManager) Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameState, error) {
	return that.apply(ctx, sessionID, "play", func(state *tictactoe.GameState) error {
		return state.Play(cell)
	})
}

// JumpTo - moves the session's game to the selected history entry.
func (that *GameManager) JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameState, error) {
	return that.apply(ctx, sessionID, "jump", func(state *tictactoe.GameState) error {
		return state.JumpTo(move)
	})
}

// Reset - discards the session's game and starts over from the empty board.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*tictactoe.GameState, error) {
	unlock := that.lock(sessionID)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	return that.create(ctx, sessionID)
}

// EndSession - forgets the session's game.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	unlock := that.lock(sessionID)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session ended", "session", sessionID)

	return nil
}

// IsRuleViolation - reports whether the error only means the action was ignored by the game rules.
func IsRuleViolation(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrInvalidMove)
}

func (that *GameManager) apply(ctx context.Context, sessionID, action string, transition func(*tictactoe.GameState) error) (*tictactoe.GameState, error) {
	log := that.logger.With("method", action, "session", sessionID)

	unlock := that.lock(sessionID)
	defer unlock()

	state, err := that.load(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) || errors.Is(err, tictactoe.ErrCorruptSnapshot) {
		state, err = that.create(ctx, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err = transition(state); err != nil {
		log.Debug("action ignored", "reason", err)
		return state, err
	}

	if err = that.sessionRepo.Save(ctx, sessionID, state.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Debug("action applied", "move", state.CurrentMove(), "status", state.Status())

	return state, nil
}

func (that *GameManager) load(ctx context.Context, sessionID string) (*tictactoe.GameState, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, tictactoe.ErrCorruptSnapshot) {
			that.logger.Error("failed to read session", "session", sessionID, "error", err)
		}

		return nil, err
	}

	state, err := tictactoe.Restore(snapshot)
	if err != nil {
		that.logger.Error("failed to restore session", "session", sessionID, "error", err)
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return state, nil
}

func (that *GameManager) create(ctx context.Context, sessionID string) (*tictactoe.GameState, error) {
	state := tictactoe.NewGameState()

	if err := that.sessionRepo.Save(ctx, sessionID, state.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session started", "session", sessionID)

	return state, nil
}

// lock - takes the session's mutex and returns the matching release.
func (that *GameManager) lock(sessionID string) func() {
	that.locksMutex.Lock()
	lock, ok := that.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		that.locks[sessionID] = lock
	}
	lock.holders++
	that.locksMutex.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		that.locksMutex.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(that.locks, sessionID)
		}
		that.locksMutex.Unlock()
	}
}
