package engine

const winLength = 5

// lineDirections are the four line orientations as (dRow, dCol): right, down,
// down-right and down-left. Each line is read once from its first cell.
var lineDirections = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasFive reports whether player owns five contiguous cells on any line.
func HasFive(board Board, player PlayerColor) bool {
	_, ok := FindFive(board, player)
	return ok
}

// FindFive returns the first run of five stones owned by player, scanning
// cells row-major and directions in lineDirections order.
func FindFive(board Board, player PlayerColor) ([]Move, bool) {
	cell := CellFromPlayer(player)
	size := board.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if board.At(row, col) != cell {
				continue
			}
			for i := 0; i < 4; i++ {
				dr := lineDirections[i][0]
				dc := lineDirections[i][1]
				if countRun(board, row, col, dr, dc, cell, winLength) < winLength {
					continue
				}
				line := make([]Move, winLength)
				for k := 0; k < winLength; k++ {
					line[k] = Move{Row: row + k*dr, Col: col + k*dc}
				}
				return line, true
			}
		}
	}
	return nil, false
}

// IsFull reports a board with no empty cell left.
func IsFull(board Board) bool {
	return board.CountEmpty() == 0
}

// countRun counts consecutive cells equal to cell starting at (row, col),
// probing at most limit cells.
func countRun(board Board, row, col, dr, dc int, cell Cell, limit int) int {
	count := 0
	for count < limit && board.InBounds(row, col) && board.At(row, col) == cell {
		count++
		row += dr
		col += dc
	}
	return count
}
