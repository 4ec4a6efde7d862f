// Package engine finds Gomoku moves with a time-bounded alpha-beta search.
package engine

import "fmt"

const (
	// MinBoardSize is the smallest board on which five in a row is possible.
	MinBoardSize = 5
	MaxBoardSize = 64
)

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Board is an N×N grid stored row-major. The zero value is not usable; build
// boards with NewBoard or BoardFromRows.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(boardSize int) (Board, error) {
	if err := checkSize(boardSize); err != nil {
		return Board{}, err
	}
	return Board{size: boardSize, cells: make([]Cell, boardSize*boardSize)}, nil
}

func checkSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return nil
}

// BoardFromRows builds a board from the 0/1/2 interchange grid.
func BoardFromRows(rows [][]int) (Board, error) {
	size := len(rows)
	if err := checkSize(size); err != nil {
		return Board{}, err
	}
	b := Board{size: size, cells: make([]Cell, size*size)}
	for row, values := range rows {
		if len(values) != size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoardSize, row, len(values), size)
		}
		for col, value := range values {
			cell, err := CellFromInt(value)
			if err != nil {
				return Board{}, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			b.cells[b.index(row, col)] = cell
		}
	}
	return b, nil
}

// Rows returns the 0/1/2 interchange grid.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for row := 0; row < b.size; row++ {
		rows[row] = make([]int, b.size)
		for col := 0; col < b.size; col++ {
			rows[row][col] = b.At(row, col).Int()
		}
	}
	return rows
}

func (b Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Center() Move {
	return Move{Row: b.size / 2, Col: b.size / 2}
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

// Apply returns a copy of the board with the player's stone on move. The
// receiver is never modified.
func (b Board) Apply(move Move, player PlayerColor) (Board, error) {
	if err := b.checkMove(move); err != nil {
		return Board{}, err
	}
	next := b.Clone()
	next.place(move, CellFromPlayer(player))
	return next, nil
}

func (b Board) checkMove(move Move) error {
	if !move.IsValid(b.size) {
		return fmt.Errorf("%w: %v out of range for %dx%d board", ErrInvalidMove, move, b.size, b.size)
	}
	if b.At(move.Row, move.Col) != CellEmpty {
		return fmt.Errorf("%w: %v is occupied", ErrInvalidMove, move)
	}
	return nil
}

// place and remove are the apply/undo pair used by the search on a board it
// owns exclusively.
func (b *Board) place(move Move, cell Cell) {
	b.cells[b.index(move.Row, move.Col)] = cell
}

func (b *Board) remove(move Move) {
	b.cells[b.index(move.Row, move.Col)] = CellEmpty
}

func (b Board) index(row, col int) int {
	return row*b.size + col
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

// Int is the interchange value of the cell: 0 empty, 1 black, 2 white.
func (c Cell) Int() int {
	switch c {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func CellFromInt(value int) (Cell, error) {
	switch value {
	case 0:
		return CellEmpty, nil
	case 1:
		return CellBlack, nil
	case 2:
		return CellWhite, nil
	default:
		return CellEmpty, fmt.Errorf("%w: %d", ErrInvalidCell, value)
	}
}
