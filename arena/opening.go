package main

import "lukechampine.com/frand"

var openingOffsets = []move{
	{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}, {2, 0}, {0, 2},
}

// buildOpening picks plies distinct cells around the centre in random order.
// No five can form among these cells.
func buildOpening(boardSize, plies int) []move {
	if plies > len(openingOffsets) {
		plies = len(openingOffsets)
	}
	offsets := append([]move(nil), openingOffsets...)
	frand.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})
	center := boardSize / 2
	opening := make([]move, 0, plies)
	for _, off := range offsets {
		if len(opening) == plies {
			break
		}
		row, col := center+off.Row, center+off.Col
		if row < 0 || col < 0 || row >= boardSize || col >= boardSize {
			continue
		}
		opening = append(opening, move{Row: row, Col: col})
	}
	return opening
}
