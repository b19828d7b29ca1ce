package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = Cell(PlayerX)
	o = Cell(PlayerO)
	e = EmptyCell
)

func TestDetectWinner(t *testing.T) {
	t.Run("Returns the player owning each winning line", func(t *testing.T) {
		for _, player := range []Player{PlayerX, PlayerO} {
			for _, combo := range WinCombos {
				// Given: a board where only one line is filled by the player
				var board Board
				for _, cell := range combo {
					board[cell] = player.Mark()
				}

				// When: detecting the winner
				winner, ok := DetectWinner(board)

				// Then: the player should be reported
				require.True(t, ok, "combo %v", combo)
				assert.Equal(t, player, winner)
			}
		}
	})

	t.Run("Returns no winner on the empty board", func(t *testing.T) {
		// When: detecting the winner on an empty board
		winner, ok := DetectWinner(Board{})

		// Then: no one should win
		assert.False(t, ok)
		assert.Equal(t, NoPlayer, winner)
	})

	t.Run("Returns no winner when lines are mixed", func(t *testing.T) {
		// Given: a board with no complete line
		board := Board{
			x, o, e,
			e, x, e,
			e, e, o,
		}

		// When: detecting the winner
		_, ok := DetectWinner(board)

		// Then: no one should win
		assert.False(t, ok)
	})

	t.Run("Returns no winner on a full drawn board", func(t *testing.T) {
		// Given: a full board without a complete line
		board := Board{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		// When: detecting the winner
		_, ok := DetectWinner(board)

		// Then: no one should win and the board is full
		assert.False(t, ok)
		assert.True(t, board.IsFull())
	})

	t.Run("Returns the winner on a full board", func(t *testing.T) {
		// Given: a full board where O owns the anti-diagonal
		board := Board{
			x, x, o,
			x, o, x,
			o, o, x,
		}

		// When: detecting the winner
		winner, ok := DetectWinner(board)

		// Then: O should win
		require.True(t, ok)
		assert.Equal(t, PlayerO, winner)
	})
}

func TestWinningLine(t *testing.T) {
	t.Run("Returns the completed line", func(t *testing.T) {
		// Given: X owns the middle column
		board := Board{
			o, x, e,
			e, x, o,
			e, x, e,
		}

		// When: looking for the winning line
		line, ok := WinningLine(board)

		// Then: the column is returned and agrees with DetectWinner
		require.True(t, ok)
		assert.Equal(t, [3]int{1, 4, 7}, line)
		winner, _ := DetectWinner(board)
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Returns nothing while no line is complete", func(t *testing.T) {
		_, ok := WinningLine(Board{x, x, o})

		assert.False(t, ok)
	})
}

func TestBoard_With(t *testing.T) {
	// Given: an empty board
	board := Board{}

	// When: placing a mark
	next := board.With(4, PlayerX)

	// Then: the new board holds the mark and the original stays empty
	assert.Equal(t, x, next[4])
	assert.Equal(t, Board{}, board)
	assert.Equal(t, 1, next.MarksPlaced())
}

func TestPlayerForMove(t *testing.T) {
	assert.Equal(t, PlayerX, PlayerForMove(0))
	assert.Equal(t, PlayerO, PlayerForMove(1))
	assert.Equal(t, PlayerX, PlayerForMove(8))
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}

func TestIsValidCell(t *testing.T) {
	assert.True(t, IsValidCell(0))
	assert.True(t, IsValidCell(8))
	assert.False(t, IsValidCell(-1))
	assert.False(t, IsValidCell(9))
}
