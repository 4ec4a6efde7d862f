package engine

var neighborOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// CandidateMoves returns every empty cell touching a stone (8-neighbourhood),
// each once, in ascending row then column order. On a board without stones the
// only candidate is the centre. A full board yields no candidates.
func CandidateMoves(board Board) []Move {
	size := board.Size()
	seen := make([]bool, size*size)
	hasStone := false
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if board.At(row, col) == CellEmpty {
				continue
			}
			hasStone = true
			for _, offset := range neighborOffsets {
				r := row + offset[0]
				c := col + offset[1]
				if board.IsEmpty(r, c) {
					seen[board.index(r, c)] = true
				}
			}
		}
	}
	if !hasStone {
		return []Move{board.Center()}
	}
	moves := make([]Move, 0, 32)
	for idx, ok := range seen {
		if ok {
			moves = append(moves, Move{Row: idx / size, Col: idx % size})
		}
	}
	return moves
}
