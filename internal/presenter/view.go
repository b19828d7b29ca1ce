// Package presenter turns a game into what every front end displays:
// nine cell labels, a status line and one navigation entry per history snapshot.
package presenter

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// View is the rendered form of a game.
type View struct {
	Cells       [entity.BoardSize]string `json:"cells"`
	Status      string                   `json:"status"`
	Outcome     string                   `json:"outcome"`
	CurrentMove int                      `json:"current_move"`
	Moves       []MoveView               `json:"moves"`
	WinningLine []int                    `json:"winning_line,omitempty"`
}

// MoveView is one history entry the player can jump to.
type MoveView struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

type gameState interface {
	CurrentBoard() entity.Board
	CurrentMove() int
	History() []entity.Board
	Status() string
	Outcome() string
}

var _ gameState = (*tictactoe.GameState)(nil)

func Present(state gameState) View {
	board := state.CurrentBoard()
	history := state.History()

	view := View{
		Status:      state.Status(),
		Outcome:     state.Outcome(),
		CurrentMove: state.CurrentMove(),
		Moves:       make([]MoveView, 0, len(history)),
		WinningLine: WinningLine(board),
	}

	for i, cell := range board {
		view.Cells[i] = string(cell)
	}

	for move := range history {
		view.Moves = append(view.Moves, MoveView{
			Move:    move,
			Label:   MoveLabel(move),
			Current: move == state.CurrentMove(),
		})
	}

	return view
}

func MoveLabel(move int) string {
	if move == 0 {
		return "go to game start"
	}

	return fmt.Sprintf("go to move %d", move)
}

// WinningLine - returns the cells of the first complete line, or nil.
func WinningLine(board entity.Board) []int {
	line, ok := entity.WinningLine(board)
	if !ok {
		return nil
	}

	return line[:]
}

// InLine - reports whether the cell belongs to the winning line of the view.
func (that View) InLine(cell int) bool {
	for _, c := range that.WinningLine {
		if c == cell {
			return true
		}
	}

	return false
}
