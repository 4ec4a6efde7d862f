package main

import (
	"context"
	"sync"
	"time"

	"gomoku/engine"
)

const defaultHumanPollInterval = 100 * time.Millisecond

// HumanPlayer bridges moves submitted over HTTP into the turn loop. ChooseMove
// polls until a move has been set and only gives up when ctx ends.
type HumanPlayer struct {
	mu           sync.Mutex
	pending      bool
	pendingMove  engine.Move
	pollInterval time.Duration
}

func NewHumanPlayer(pollInterval time.Duration) *HumanPlayer {
	if pollInterval <= 0 {
		pollInterval = defaultHumanPollInterval
	}
	return &HumanPlayer{pollInterval: pollInterval}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) ChooseMove(ctx context.Context, _ engine.Board, _ engine.PlayerColor) (Choice, error) {
	if move, ok := h.TakePendingMove(); ok {
		return Choice{Move: move}, nil
	}
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return Choice{}, ctx.Err()
		case <-ticker.C:
			if move, ok := h.TakePendingMove(); ok {
				return Choice{Move: move}, nil
			}
		}
	}
}

// SetPendingMove replaces any move that has not been picked up yet.
func (h *HumanPlayer) SetPendingMove(move engine.Move) {
	h.mu.Lock()
	h.pendingMove = move
	h.pending = true
	h.mu.Unlock()
}

func (h *HumanPlayer) HasPendingMove() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

func (h *HumanPlayer) TakePendingMove() (engine.Move, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.pending {
		return engine.Move{}, false
	}
	h.pending = false
	return h.pendingMove, true
}
