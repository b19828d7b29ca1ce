package entity

const BoardSize = 9

// Cell - one square of the board, either empty or holding a player's mark.
type Cell string

const EmptyCell Cell = ""

// WinCombos - every row, column and diagonal of the 3x3 grid.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - row-major 3x3 grid. Boards are values: assigning one copies every cell.
type Board [BoardSize]Cell

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// Player - returns the player whose mark is in the cell, or NoPlayer.
func (that Cell) Player() Player {
	switch that {
	case Cell(PlayerX):
		return PlayerX
	case Cell(PlayerO):
		return PlayerO
	default:
		return NoPlayer
	}
}

// With - returns a copy of the board with the cell set to the player's mark.
func (that Board) With(cell int, player Player) Board {
	that[cell] = player.Mark()
	return that
}

// IsFull - reports whether every cell holds a mark.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// MarksPlaced - counts the non-empty cells.
func (that Board) MarksPlaced() int {
	count := 0
	for _, cell := range that {
		if !cell.IsEmpty() {
			count++
		}
	}

	return count
}

// WinningLine - returns the first row, column or diagonal filled with one player's marks.
func WinningLine(board Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

// DetectWinner - returns the player owning a full row, column or diagonal.
func DetectWinner(board Board) (Player, bool) {
	line, ok := WinningLine(board)
	if !ok {
		return NoPlayer, false
	}

	return board[line[0]].Player(), true
}

// IsValidCell - reports whether the index addresses a cell of the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
