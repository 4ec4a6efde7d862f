package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"gomoku/engine"
)

// AIPlayer asks a fresh engine.Searcher for every move so that config changes
// apply from the next turn on.
type AIPlayer struct {
	config func() Config
	logger zerolog.Logger
}

func NewAIPlayer(config func() Config, logger zerolog.Logger) *AIPlayer {
	return &AIPlayer{config: config, logger: logger}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove runs a blocking search. The engine has no cancellation hook, so
// ctx is only checked before the search starts.
func (a *AIPlayer) ChooseMove(ctx context.Context, board engine.Board, color engine.PlayerColor) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return Choice{}, err
	}
	cfg := a.config().Engine
	searcher, err := engine.NewSearcherFromConfig(cfg, engine.WithLogger(a.logger))
	if err != nil {
		return Choice{}, fmt.Errorf("build searcher: %w", err)
	}
	result, err := searcher.Search(board, color, cfg.MaxDepth, cfg.TimeLimit())
	if err != nil {
		return Choice{}, err
	}
	a.logger.Info().
		Str("player", color.String()).
		Str("move", result.Move.String()).
		Int("depth", result.CompletedDepth).
		Int("nodes", result.Nodes).
		Float64("score", result.Score).
		Dur("elapsed", result.Elapsed).
		Msg("ai-move")
	return Choice{Move: result.Move, Depth: result.CompletedDepth}, nil
}
