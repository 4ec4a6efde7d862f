package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gomoku/engine"
)

var (
	ErrGameNotRunning = errors.New("game not running")
	ErrNotHumanTurn   = errors.New("not human turn")
	ErrAwaitingHuman  = errors.New("waiting for a human move")
)

// Game is one match. It is not safe for concurrent use; GameController
// serialises access.
type Game struct {
	settings    GameSettings
	state       GameState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	startedAt   time.Time
	endedAt     time.Time
	turnStart   time.Time
	logger      zerolog.Logger
}

func NewGame(settings GameSettings, black, white IPlayer, logger zerolog.Logger) (*Game, error) {
	board, err := engine.NewBoard(settings.BoardSize)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	g := &Game{
		settings:    settings,
		blackPlayer: black,
		whitePlayer: white,
		startedAt:   now,
		turnStart:   now,
		state: GameState{
			ID:     uuid.New(),
			Board:  board,
			ToMove: engine.PlayerBlack,
			Status: StatusRunning,
		},
	}
	g.logger = logger.With().Str("game", g.state.ID.String()).Logger()
	g.logger.Info().
		Str("black", settings.BlackType.String()).
		Str("white", settings.WhiteType.String()).
		Int("board_size", settings.BoardSize).
		Msg("game-started")
	return g, nil
}

func (g *Game) ID() uuid.UUID {
	return g.state.ID
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) CurrentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.CurrentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) playerForColor(color engine.PlayerColor) IPlayer {
	if color == engine.PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

// TryApplyMove plays move for the side to move and settles the outcome: five
// in a row wins for the mover, a full board is a draw.
func (g *Game) TryApplyMove(move engine.Move, isAi bool, depth int) error {
	if g.state.Status != StatusRunning {
		return ErrGameNotRunning
	}
	mover := g.state.ToMove
	next, err := g.state.Board.Apply(move, mover)
	if err != nil {
		g.state.LastMessage = err.Error()
		return err
	}
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.state.Board = next
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.LastMessage = ""
	g.history.Push(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs, IsAi: isAi, Depth: depth})
	g.logger.Debug().
		Str("player", mover.String()).
		Str("move", move.String()).
		Bool("ai", isAi).
		Int("depth", depth).
		Float64("elapsed_ms", elapsedMs).
		Msg("move-played")

	if line, ok := engine.FindFive(next, mover); ok {
		g.state.WinningLine = line
		g.finish(wonStatus(mover), fmt.Sprintf("%s wins", mover))
		return nil
	}
	if engine.IsFull(next) {
		g.finish(StatusDraw, "board full")
		return nil
	}
	g.state.ToMove = mover.Opponent()
	g.turnStart = time.Now()
	return nil
}

// MarkDraw ends a running game without a winner.
func (g *Game) MarkDraw(reason string) {
	if g.state.Status != StatusRunning {
		return
	}
	g.finish(StatusDraw, reason)
}

func (g *Game) finish(status GameStatus, message string) {
	g.state.Status = status
	g.state.LastMessage = message
	g.endedAt = time.Now()
	g.logger.Info().
		Str("status", status.String()).
		Int("moves", g.history.Size()).
		Str("reason", message).
		Msg("game-finished")
}

// Record is the archive row for a finished game.
func (g *Game) Record() GameRecord {
	return GameRecord{
		ID:        g.state.ID.String(),
		StartedAt: g.startedAt,
		EndedAt:   g.endedAt,
		BoardSize: g.settings.BoardSize,
		Black:     g.settings.BlackType.String(),
		White:     g.settings.WhiteType.String(),
		Result:    g.state.Status.String(),
		Moves:     historyToDTO(g.history),
	}
}
