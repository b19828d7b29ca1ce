package presenter

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

func TestPresent(t *testing.T) {
	t.Run("Fresh game", func(t *testing.T) {
		// When: presenting a new game
		view := Present(tictactoe.NewGameState())

		// Then: the board is blank with a single start entry
		assert.Equal(t, [9]string{}, view.Cells)
		assert.Equal(t, "next to move: X", view.Status)
		assert.Equal(t, []MoveView{{Move: 0, Label: "go to game start", Current: true}}, view.Moves)
		assert.Nil(t, view.WinningLine)
	})

	t.Run("Won game viewed in the past", func(t *testing.T) {
		// Given: X won through the top row
		state := tictactoe.NewGameState()
		for _, cell := range []int{0, 3, 1, 4, 2} {
			require.NoError(t, state.Play(cell))
		}

		// When: presenting the final board
		view := Present(state)

		// Then: the status names the winner and the line is highlighted
		assert.Equal(t, [9]string{"X", "X", "X", "O", "O"}, view.Cells)
		assert.Equal(t, "winner is X", view.Status)
		assert.Equal(t, tictactoe.OutcomeWon, view.Outcome)
		assert.Equal(t, []int{0, 1, 2}, view.WinningLine)
		assert.True(t, view.InLine(1))
		assert.False(t, view.InLine(3))
		require.Len(t, view.Moves, 6)
		assert.Equal(t, "go to move 5", view.Moves[5].Label)
		assert.True(t, view.Moves[5].Current)

		// When: presenting after a jump to move 2
		require.NoError(t, state.JumpTo(2))
		view = Present(state)

		// Then: all six entries remain and move 2 is current
		require.Len(t, view.Moves, 6)
		assert.True(t, view.Moves[2].Current)
		assert.False(t, view.Moves[5].Current)
		assert.Equal(t, "next to move: X", view.Status)
	})
}

func TestTextRenderer_Render(t *testing.T) {
	// Given: a game with two moves
	state := tictactoe.NewGameState()
	require.NoError(t, state.Play(0))
	require.NoError(t, state.Play(4))

	// When: rendering without colour
	var buf bytes.Buffer
	err := NewTextRenderer(&buf, termenv.WithProfile(termenv.Ascii)).Render(Present(state))

	// Then: the board, status and history are printed
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, " X | 1 | 2\n")
	assert.Contains(t, out, " 3 | O | 5\n")
	assert.Contains(t, out, "next to move: X")
	assert.Contains(t, out, " 0. go to game start\n")
	assert.Contains(t, out, " 2. go to move 2  <")
}
