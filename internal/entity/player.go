package entity

// Player - a side in the game.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"

	NoPlayer Player = ""
)

// Mark - returns the cell value this player leaves on the board.
func (that Player) Mark() Cell {
	return Cell(that)
}

// Opponent - returns the other side.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// PlayerForMove - returns the player who makes the move after the given number of moves.
func PlayerForMove(move int) Player {
	if move%2 == 0 {
		return PlayerX
	}
	return PlayerO
}
