package main

import (
	"context"

	"gomoku/engine"
)

// Choice is a player's answer for one turn. Depth is the deepest completed
// search depth for AI players and 0 for humans.
type Choice struct {
	Move  engine.Move
	Depth int
}

type IPlayer interface {
	IsHuman() bool
	ChooseMove(ctx context.Context, board engine.Board, color engine.PlayerColor) (Choice, error)
}
