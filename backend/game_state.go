package main

import (
	"github.com/google/uuid"

	"gomoku/engine"
)

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

func (s GameStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "not_started"
	}
}

func (s GameStatus) Finished() bool {
	return s == StatusBlackWon || s == StatusWhiteWon || s == StatusDraw
}

// Winner is the interchange value of the winning colour, 0 when nobody won.
func (s GameStatus) Winner() int {
	switch s {
	case StatusBlackWon:
		return engine.PlayerBlack.Int()
	case StatusWhiteWon:
		return engine.PlayerWhite.Int()
	default:
		return 0
	}
}

func wonStatus(player engine.PlayerColor) GameStatus {
	if player == engine.PlayerBlack {
		return StatusBlackWon
	}
	return StatusWhiteWon
}

type GameState struct {
	ID          uuid.UUID
	Board       engine.Board
	ToMove      engine.PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    engine.Move
	LastMessage string
	WinningLine []engine.Move
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]engine.Move(nil), s.WinningLine...)
	return clone
}
