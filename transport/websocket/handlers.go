package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var (
	ErrCellRequired = errors.New("cell is required")
	ErrMoveRequired = errors.New("move is required")
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *Message) (ResponsePayload, error) {
	_, state, err := that.manager.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to get game: %w", err)
	}

	return gamePayload(sessionID, state, true), nil
}

func (that *Server) handlePlay(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return ResponsePayload{}, err
	}

	if req.Cell == nil {
		return ResponsePayload{}, ErrCellRequired
	}

	state, err := that.manager.Play(ctx, sessionID, *req.Cell)

	return that.actionResult(ctx, sessionID, state, err)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, msg *Message) (ResponsePayload, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return ResponsePayload{}, err
	}

	if req.Move == nil {
		return ResponsePayload{}, ErrMoveRequired
	}

	state, err := that.manager.JumpTo(ctx, sessionID, *req.Move)

	return that.actionResult(ctx, sessionID, state, err)
}

func (that *Server) handleReset(ctx context.Context, sessionID string, _ *Message) (ResponsePayload, error) {
	state, err := that.manager.Reset(ctx, sessionID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to reset game: %w", err)
	}

	return gamePayload(sessionID, state, true), nil
}

// actionResult - reports ignored moves as not applied instead of as errors.
func (that *Server) actionResult(ctx context.Context, sessionID string, state *tictactoe.GameState, err error) (ResponsePayload, error) {
	if err == nil {
		return gamePayload(sessionID, state, true), nil
	}

	if !usecase.IsRuleViolation(err) {
		return ResponsePayload{}, fmt.Errorf("failed to apply action: %w", err)
	}

	if state == nil {
		if _, state, err = that.manager.GetOrCreateSession(ctx, sessionID); err != nil {
			return ResponsePayload{}, fmt.Errorf("failed to get game: %w", err)
		}
	}

	return gamePayload(sessionID, state, false), nil
}

func decodeRequest(msg *Message) (RequestPayload, error) {
	var req RequestPayload

	if len(msg.Payload) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return req, nil
}

func gamePayload(sessionID string, state *tictactoe.GameState, applied bool) ResponsePayload {
	view := presenter.Present(state)

	return ResponsePayload{
		Session: sessionID,
		Game:    &view,
		Applied: applied,
	}
}
