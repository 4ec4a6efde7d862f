package engine

import "fmt"

type PlayerColor int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

func (p PlayerColor) Opponent() PlayerColor {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// Int is the interchange value of the player's stones: 1 black, 2 white.
func (p PlayerColor) Int() int {
	if p == PlayerBlack {
		return 1
	}
	return 2
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "Black"
	}
	return "White"
}

func PlayerFromInt(value int) (PlayerColor, error) {
	switch value {
	case 1:
		return PlayerBlack, nil
	case 2:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("%w: %d is not a player", ErrInvalidCell, value)
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("empty cell has no player")
	}
}
