package engine

import "sync"

type ZobristTable struct {
	size  int
	cells []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

// GetZobrist returns the shared key table for a board size. Keys depend only
// on the size, so hashes are stable across processes.
func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(row, col int, cell Cell) uint64 {
	idx := (row*z.size + col) * 2
	if cell == CellWhite {
		idx++
	}
	return z.cells[idx]
}

// PositionHash hashes the stones on the board. Side to move is not part of
// the key: the evaluator scores a position independently of whose turn it is.
func PositionHash(board Board) uint64 {
	size := board.Size()
	z := GetZobrist(size)
	var hash uint64
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cell := board.At(row, col)
			if cell == CellEmpty {
				continue
			}
			hash ^= z.stone(row, col, cell)
		}
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
