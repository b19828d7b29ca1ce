package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	x = entity.Cell(entity.PlayerX)
	o = entity.Cell(entity.PlayerO)
	e = entity.EmptyCell
)

func playAll(t *testing.T, state *GameState, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, state.Play(cell))
	}
}

func TestNewGameState(t *testing.T) {
	// When: create a new game state
	state := NewGameState()

	// Then: the history holds only the empty board and X moves first
	assert.Equal(t, []entity.Board{{}}, state.History())
	assert.Equal(t, 0, state.CurrentMove())
	assert.Equal(t, entity.Board{}, state.CurrentBoard())
	assert.Equal(t, entity.PlayerX, state.PlayerToMove())
	assert.Equal(t, "next to move: X", state.Status())
	assert.Equal(t, OutcomeOngoing, state.Outcome())
}

func TestGameState_Play(t *testing.T) {
	t.Run("Places X then O", func(t *testing.T) {
		// Given: a fresh game
		state := NewGameState()

		// When: X plays cell 0
		require.NoError(t, state.Play(0))

		// Then: the board shows X and O is next
		assert.Equal(t, x, state.CurrentBoard()[0])
		assert.Equal(t, 1, state.CurrentMove())
		assert.Equal(t, "next to move: O", state.Status())

		// When: O plays cell 1
		require.NoError(t, state.Play(1))

		// Then: the board reflects both marks
		assert.Equal(t, entity.Board{x, o, e, e, e, e, e, e, e}, state.CurrentBoard())
		assert.Equal(t, 2, state.CurrentMove())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where X holds cell 0
		state := NewGameState()
		playAll(t, state, 0)
		before := state.Snapshot()

		// When: O tries the same cell
		err := state.Play(0)

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, state.Snapshot())
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		state := NewGameState()

		// When: cells outside the board are played
		errHigh := state.Play(9)
		errLow := state.Play(-1)

		// Then: both are rejected and the history is untouched
		require.ErrorIs(t, errHigh, apperror.ErrInvalidCell)
		require.ErrorIs(t, errLow, apperror.ErrInvalidCell)
		assert.Len(t, state.History(), 1)
	})

	t.Run("Top row win finishes the game", func(t *testing.T) {
		// Given: a fresh game
		state := NewGameState()

		// When: X completes the top row
		playAll(t, state, 0, 3, 1, 4, 2)

		// Then: X is the winner
		assert.Equal(t, entity.Board{x, x, x, o, o, e, e, e, e}, state.CurrentBoard())
		winner, ok := state.Winner()
		require.True(t, ok)
		assert.Equal(t, entity.PlayerX, winner)
		assert.Equal(t, "winner is X", state.Status())
		assert.Equal(t, OutcomeWon, state.Outcome())

		// When: anyone tries to keep playing
		before := state.Snapshot()
		for cell := range entity.BoardSize {
			require.ErrorIs(t, state.Play(cell), apperror.ErrGameFinished)
		}

		// Then: the state is unchanged
		assert.Equal(t, before, state.Snapshot())
	})

	t.Run("Play after jump discards the future", func(t *testing.T) {
		// Given: three moves and a jump back to move 1
		state := NewGameState()
		playAll(t, state, 0, 4, 8)
		history := state.History()
		require.NoError(t, state.JumpTo(1))

		// When: O plays a different cell
		require.NoError(t, state.Play(2))

		// Then: the history branches at move 1
		assert.Len(t, state.History(), 3)
		assert.Equal(t, 2, state.CurrentMove())
		assert.Equal(t, history[:2], state.History()[:2])
		assert.Equal(t, entity.Board{x, e, o, e, e, e, e, e, e}, state.CurrentBoard())
	})

	t.Run("Play never mutates stored snapshots", func(t *testing.T) {
		// Given: a game with a jump back to the start
		state := NewGameState()
		playAll(t, state, 0, 1)
		first := state.History()[1]
		require.NoError(t, state.JumpTo(1))

		// When: the branch continues
		require.NoError(t, state.Play(5))

		// Then: the snapshot at move 1 still shows only X at cell 0
		assert.Equal(t, first, state.History()[1])
	})

	t.Run("Full board reports a draw", func(t *testing.T) {
		// Given: a game played to a full board with no line
		state := NewGameState()
		playAll(t, state, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the status reports a draw and no cell accepts a mark
		assert.Equal(t, "draw", state.Status())
		assert.Equal(t, OutcomeDraw, state.Outcome())
		require.ErrorIs(t, state.Play(0), apperror.ErrCellOccupied)
	})
}

func TestGameState_JumpTo(t *testing.T) {
	t.Run("Jump changes only the position", func(t *testing.T) {
		// Given: a won game
		state := NewGameState()
		playAll(t, state, 0, 3, 1, 4, 2)
		history := state.History()

		// When: jumping back to the start
		require.NoError(t, state.JumpTo(0))

		// Then: the board is empty and every snapshot is kept
		assert.Equal(t, entity.Board{}, state.CurrentBoard())
		assert.Len(t, state.History(), 6)
		assert.Equal(t, history, state.History())
		assert.Equal(t, "next to move: X", state.Status())
	})

	t.Run("Player to move follows the parity of the position", func(t *testing.T) {
		state := NewGameState()
		playAll(t, state, 0, 3, 1, 4)

		for move := range state.History() {
			require.NoError(t, state.JumpTo(move))
			assert.Equal(t, move%2 == 0, state.PlayerToMove() == entity.PlayerX, "move %d", move)
		}
	})

	t.Run("Jump to the current move is a no-op", func(t *testing.T) {
		state := NewGameState()
		playAll(t, state, 0, 3)
		before := state.Snapshot()

		require.NoError(t, state.JumpTo(state.CurrentMove()))

		assert.Equal(t, before, state.Snapshot())
	})

	t.Run("Jump out of range is rejected", func(t *testing.T) {
		state := NewGameState()
		playAll(t, state, 0)
		before := state.Snapshot()

		require.ErrorIs(t, state.JumpTo(2), apperror.ErrInvalidMove)
		require.ErrorIs(t, state.JumpTo(-1), apperror.ErrInvalidMove)

		assert.Equal(t, before, state.Snapshot())
	})

	t.Run("Play after a won game is possible once jumped back", func(t *testing.T) {
		// Given: a won game viewed at move 4
		state := NewGameState()
		playAll(t, state, 0, 3, 1, 4, 2)
		require.NoError(t, state.JumpTo(4))

		// When: X blocks differently
		require.NoError(t, state.Play(8))

		// Then: the winning snapshot is gone
		assert.Len(t, state.History(), 6)
		_, ok := state.Winner()
		assert.False(t, ok)
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trip keeps history and position", func(t *testing.T) {
		// Given: a game viewed in the past
		state := NewGameState()
		playAll(t, state, 0, 3, 1)
		require.NoError(t, state.JumpTo(1))

		// When: restoring from its snapshot
		restored, err := Restore(state.Snapshot())

		// Then: the restored game is identical
		require.NoError(t, err)
		assert.Equal(t, state.Snapshot(), restored.Snapshot())
		assert.Equal(t, state.Status(), restored.Status())
	})

	t.Run("Rejects empty history", func(t *testing.T) {
		_, err := Restore(Snapshot{})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects position outside history", func(t *testing.T) {
		_, err := Restore(Snapshot{History: []entity.Board{{}}, CurrentMove: 3})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects history not starting from the empty board", func(t *testing.T) {
		_, err := Restore(Snapshot{History: []entity.Board{{x, o}}})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := Restore(Snapshot{History: []entity.Board{{}, {"Z"}}})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects O moving first", func(t *testing.T) {
		// Given: a history whose first move is made by O
		history := []entity.Board{
			{},
			{e, e, o},
		}

		// When: restoring it
		_, err := Restore(Snapshot{History: history, CurrentMove: 1})

		// Then: the snapshot is rejected
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects boards that do not follow from the previous one", func(t *testing.T) {
		// Given: the second board drops the first mark and places two new ones
		history := []entity.Board{
			{},
			{x, e, e},
			{e, x, o},
		}

		// When: restoring it
		_, err := Restore(Snapshot{History: history, CurrentMove: 2})

		// Then: the snapshot is rejected
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects a mark overwriting another", func(t *testing.T) {
		history := []entity.Board{
			{},
			{x, e, e},
			{o, e, e},
		}

		_, err := Restore(Snapshot{History: history, CurrentMove: 2})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects a board without a new mark", func(t *testing.T) {
		history := []entity.Board{
			{},
			{x, e, e},
			{x, e, e},
		}

		_, err := Restore(Snapshot{History: history, CurrentMove: 1})

		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("Rejects play after a win", func(t *testing.T) {
		// Given: a real game where X completes the anti-diagonal on move 5
		state := NewGameState()
		playAll(t, state, 2, 0, 4, 1, 6)
		_, won := state.Winner()
		require.True(t, won)
		history := state.History()

		// And: one more board placing O on an empty cell after the win
		history = append(history, history[len(history)-1].With(8, entity.PlayerO))

		// When: restoring it
		_, err := Restore(Snapshot{History: history, CurrentMove: 0})

		// Then: the snapshot is rejected
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}
