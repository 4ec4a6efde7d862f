package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gomoku/engine"
)

// GameController owns the current game. mu guards the game itself and is
// never held while a player is thinking; playMu serialises whole turns.
type GameController struct {
	mu         sync.Mutex
	playMu     sync.Mutex
	game       *Game
	generation uint64
	turnCancel context.CancelFunc

	configs  *ConfigStore
	archive  GameArchive
	logger   zerolog.Logger
	onUpdate func(StatusResponse)
}

func NewGameController(configs *ConfigStore, archive GameArchive, logger zerolog.Logger) *GameController {
	return &GameController{configs: configs, archive: archive, logger: logger}
}

// SetUpdateListener registers a callback fired after every applied move and
// every new game.
func (gc *GameController) SetUpdateListener(listener func(StatusResponse)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.onUpdate = listener
}

func (gc *GameController) createPlayer(t PlayerType) IPlayer {
	cfg := gc.configs.Get()
	if t == PlayerAI {
		return NewAIPlayer(gc.configs.Get, gc.logger)
	}
	return NewHumanPlayer(time.Duration(cfg.HumanPollMs) * time.Millisecond)
}

// StartGame replaces the current game. A turn in progress for the old game is
// cancelled and its result dropped. Opening moves are played alternately
// starting with Black.
func (gc *GameController) StartGame(settings GameSettings, opening []engine.Move) error {
	game, err := NewGame(settings, gc.createPlayer(settings.BlackType), gc.createPlayer(settings.WhiteType), gc.logger)
	if err != nil {
		return err
	}
	for i, move := range opening {
		if err := game.TryApplyMove(move, false, 0); err != nil {
			return fmt.Errorf("opening move %d: %w", i, err)
		}
	}

	gc.mu.Lock()
	if gc.turnCancel != nil {
		gc.turnCancel()
		gc.turnCancel = nil
	}
	gc.game = game
	gc.generation++
	finished := game.State().Status.Finished()
	status := gc.statusLocked()
	listener := gc.onUpdate
	gc.mu.Unlock()

	if finished {
		gc.archiveGame(game)
	}
	if listener != nil {
		listener(status)
	}
	return nil
}

// PlayTurn asks the side to move for a move and applies it. It reports false
// when no game is running or when the game was replaced while the player was
// thinking. A human player blocks here until a move is submitted.
func (gc *GameController) PlayTurn(ctx context.Context) (bool, error) {
	return gc.playTurn(ctx, true)
}

// PlayTurnNow is PlayTurn for request handlers: a human to move without a
// submitted move yields ErrAwaitingHuman instead of blocking.
func (gc *GameController) PlayTurnNow(ctx context.Context) (bool, error) {
	return gc.playTurn(ctx, false)
}

func (gc *GameController) playTurn(ctx context.Context, wait bool) (bool, error) {
	gc.playMu.Lock()
	defer gc.playMu.Unlock()

	gc.mu.Lock()
	game := gc.game
	if game == nil || game.State().Status != StatusRunning {
		gc.mu.Unlock()
		return false, nil
	}
	generation := gc.generation
	state := game.State()
	player := game.CurrentPlayer()
	if human, ok := player.(*HumanPlayer); ok && !wait && !human.HasPendingMove() {
		gc.mu.Unlock()
		return false, ErrAwaitingHuman
	}
	turnCtx, cancel := context.WithCancel(ctx)
	gc.turnCancel = cancel
	gc.mu.Unlock()
	defer cancel()

	choice, err := player.ChooseMove(turnCtx, state.Board, state.ToMove)

	gc.mu.Lock()
	if gc.generation != generation {
		gc.mu.Unlock()
		return false, nil
	}
	gc.turnCancel = nil
	if err != nil {
		gc.mu.Unlock()
		return false, err
	}
	err = game.TryApplyMove(choice.Move, !player.IsHuman(), choice.Depth)
	if err != nil && !player.IsHuman() && engine.IsFull(state.Board) {
		// The engine answers a full board with the occupied centre.
		game.MarkDraw("board full")
		err = nil
	}
	if err != nil {
		gc.mu.Unlock()
		return false, err
	}
	finished := game.State().Status.Finished()
	status := gc.statusLocked()
	listener := gc.onUpdate
	gc.mu.Unlock()

	if finished {
		gc.archiveGame(game)
	}
	if listener != nil {
		listener(status)
	}
	return true, nil
}

// SubmitHumanMove validates move against the current position and hands it to
// the human player whose turn it is. The turn itself is applied by PlayTurn.
func (gc *GameController) SubmitHumanMove(move engine.Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game == nil || gc.game.State().Status != StatusRunning {
		return ErrGameNotRunning
	}
	human, ok := gc.game.CurrentPlayer().(*HumanPlayer)
	if !ok {
		return ErrNotHumanTurn
	}
	board := gc.game.state.Board
	if !move.IsValid(board.Size()) {
		return fmt.Errorf("%w: %v out of range", engine.ErrInvalidMove, move)
	}
	if !board.IsEmpty(move.Row, move.Col) {
		return fmt.Errorf("%w: %v is occupied", engine.ErrInvalidMove, move)
	}
	human.SetPendingMove(move)
	return nil
}

func (gc *GameController) CurrentPlayerIsHuman() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game != nil && gc.game.CurrentPlayerIsHuman()
}

func (gc *GameController) State() (GameState, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game == nil {
		return GameState{}, false
	}
	return gc.game.State(), true
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game == nil {
		return MoveHistory{}
	}
	return gc.game.History()
}

func (gc *GameController) Status() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.statusLocked()
}

func (gc *GameController) statusLocked() StatusResponse {
	if gc.game == nil {
		return StatusResponse{Status: StatusNotStarted.String()}
	}
	return gameStatus(gc.game)
}

// Archive returns the configured archive, nil when persistence is off.
func (gc *GameController) Archive() GameArchive {
	return gc.archive
}

func (gc *GameController) archiveGame(game *Game) {
	if gc.archive == nil {
		return
	}
	gc.mu.Lock()
	record := game.Record()
	gc.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gc.archive.SaveGame(ctx, record); err != nil {
		gc.logger.Error().Err(err).Str("game", record.ID).Msg("archive-save-failed")
		return
	}
	gc.logger.Debug().Str("game", record.ID).Str("result", record.Result).Msg("game-archived")
}

// IsCancellation reports whether err only signals an abandoned turn.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
