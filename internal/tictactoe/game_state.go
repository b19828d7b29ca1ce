package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	OutcomeOngoing = "ongoing"
	OutcomeWon     = "won"
	OutcomeDraw    = "draw"
)

var ErrCorruptSnapshot = errors.New("corrupt game snapshot")

// GameState owns the board history of one session and the position being viewed.
// The player to move is derived from the position, so it can never drift from the history.
type GameState struct {
	history     []entity.Board
	currentMove int
}

// Snapshot is the serialisable form of a GameState.
type Snapshot struct {
	History     []entity.Board `json:"history"`
	CurrentMove int            `json:"current_move"`
}

func NewGameState() *GameState {
	return &GameState{
		history:     []entity.Board{{}},
		currentMove: 0,
	}
}

// Play - places the mark of the player to move on the cell.
// Any history after the current position is discarded before the new board is appended.
func (that *GameState) Play(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()

	if _, ok := entity.DetectWinner(board); ok {
		return apperror.ErrGameFinished
	}

	if !board[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	next := board.With(cell, that.PlayerToMove())

	that.history = append(that.history[:that.currentMove+1:that.currentMove+1], next)
	that.currentMove = len(that.history) - 1

	return nil
}

// JumpTo - moves the viewed position to an earlier or later snapshot without touching the history.
func (that *GameState) JumpTo(move int) error {
	if move < 0 || move >= len(that.history) {
		return fmt.Errorf("%w: move %d of %d", apperror.ErrInvalidMove, move, len(that.history))
	}

	that.currentMove = move

	return nil
}

func (that *GameState) CurrentBoard() entity.Board {
	return that.history[that.currentMove]
}

func (that *GameState) CurrentMove() int {
	return that.currentMove
}

// History - returns a copy of every snapshot, starting with the empty board.
func (that *GameState) History() []entity.Board {
	return append([]entity.Board(nil), that.history...)
}

func (that *GameState) PlayerToMove() entity.Player {
	return entity.PlayerForMove(that.currentMove)
}

func (that *GameState) Winner() (entity.Player, bool) {
	return entity.DetectWinner(that.CurrentBoard())
}

// Outcome - reports whether the viewed board is won, drawn or still open.
func (that *GameState) Outcome() string {
	board := that.CurrentBoard()

	if _, ok := entity.DetectWinner(board); ok {
		return OutcomeWon
	}

	if board.IsFull() {
		return OutcomeDraw
	}

	return OutcomeOngoing
}

// Status - a one-line summary of the viewed board.
func (that *GameState) Status() string {
	if winner, ok := that.Winner(); ok {
		return fmt.Sprintf("winner is %s", winner)
	}

	if that.CurrentBoard().IsFull() {
		return "draw"
	}

	return fmt.Sprintf("next to move: %s", that.PlayerToMove())
}

func (that *GameState) Snapshot() Snapshot {
	return Snapshot{
		History:     that.History(),
		CurrentMove: that.currentMove,
	}
}

// Restore - rebuilds a GameState from a snapshot, rejecting histories no sequence of plays could produce.
func Restore(snapshot Snapshot) (*GameState, error) {
	if len(snapshot.History) == 0 {
		return nil, fmt.Errorf("%w: empty history", ErrCorruptSnapshot)
	}

	if snapshot.CurrentMove < 0 || snapshot.CurrentMove >= len(snapshot.History) {
		return nil, fmt.Errorf("%w: current move %d of %d", ErrCorruptSnapshot, snapshot.CurrentMove, len(snapshot.History))
	}

	if snapshot.History[0] != (entity.Board{}) {
		return nil, fmt.Errorf("%w: history does not start with the empty board", ErrCorruptSnapshot)
	}

	for move := 1; move < len(snapshot.History); move++ {
		if err := validateSnapshotMove(move, snapshot.History[move-1], snapshot.History[move]); err != nil {
			return nil, err
		}
	}

	return &GameState{
		history:     append([]entity.Board(nil), snapshot.History...),
		currentMove: snapshot.CurrentMove,
	}, nil
}

// validateSnapshotMove - checks that board is prev with the mark of the player who made the move added.
func validateSnapshotMove(move int, prev, board entity.Board) error {
	if _, ok := entity.DetectWinner(prev); ok {
		return fmt.Errorf("%w: board %d follows a won board", ErrCorruptSnapshot, move)
	}

	mark := entity.PlayerForMove(move - 1).Mark()
	placed := 0

	for cell := range entity.BoardSize {
		if board[cell] == prev[cell] {
			continue
		}

		if !prev[cell].IsEmpty() || board[cell] != mark {
			return fmt.Errorf("%w: board %d cell %d holds %q, expected %q on an empty cell",
				ErrCorruptSnapshot, move, cell, board[cell], mark)
		}

		placed++
	}

	if placed != 1 {
		return fmt.Errorf("%w: board %d adds %d marks", ErrCorruptSnapshot, move, placed)
	}

	return nil
}
