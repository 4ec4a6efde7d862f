package engine

import "errors"

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidCell      = errors.New("invalid cell value")
	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidDepth     = errors.New("invalid search depth")
)
