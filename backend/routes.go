package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"gomoku/engine"
)

type server struct {
	controller *GameController
	configs    *ConfigStore
	hub        *Hub
	logger     zerolog.Logger
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.controller.Status())
	})
	r.Get("/api/board", s.handleBoard)
	r.Post("/api/start", s.handleStart)
	r.Post("/api/play_turn", s.handlePlayTurn)
	r.Post("/api/human_move", s.handleHumanMove)
	r.Get("/api/games", s.handleGames)
	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.configs.Get().Engine)
	})
	r.Post("/api/config", s.handleConfig)
	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(s.hub, s.controller, w, r)
	})
	return r
}

func (s *server) handleBoard(w http.ResponseWriter, r *http.Request) {
	state, ok := s.controller.State()
	if !ok {
		writeError(w, http.StatusNotFound, ErrGameNotRunning)
		return
	}
	writeJSON(w, http.StatusOK, state.Board.Rows())
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload startRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if size := payload.Settings.BoardSize; size != 0 && (size < engine.MinBoardSize || size > engine.MaxBoardSize) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %d (want %d..%d)",
			engine.ErrInvalidBoardSize, size, engine.MinBoardSize, engine.MaxBoardSize))
		return
	}
	settings := settingsFromDTO(payload.Settings, s.configs.Get().Game)
	if err := s.controller.StartGame(settings, payload.Opening); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Status())
}

// handlePlayTurn advances an AI turn synchronously. On a human turn, or when
// the background turn loop drives the game, it only reports the status. A
// human turn that begins after that check is rejected with 409.
func (s *server) handlePlayTurn(w http.ResponseWriter, r *http.Request) {
	if s.configs.Get().AutoPlay || s.controller.CurrentPlayerIsHuman() {
		writeJSON(w, http.StatusOK, s.controller.Status())
		return
	}
	if _, err := s.controller.PlayTurnNow(r.Context()); err != nil {
		s.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Status())
}

// handleHumanMove queues the move for the human to move. Without the
// background turn loop the move is applied before responding.
func (s *server) handleHumanMove(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	move := engine.NewMove(payload.Row, payload.Col)
	if err := s.controller.SubmitHumanMove(move); err != nil {
		s.writeTurnError(w, err)
		return
	}
	if s.configs.Get().AutoPlay {
		writeJSON(w, http.StatusAccepted, s.controller.Status())
		return
	}
	if _, err := s.controller.PlayTurnNow(r.Context()); err != nil {
		s.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Status())
}

func (s *server) handleGames(w http.ResponseWriter, r *http.Request) {
	archive := s.controller.Archive()
	if archive == nil {
		writeJSON(w, http.StatusOK, []GameRecord{})
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}
	games, err := archive.RecentGames(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("archive-query-failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// handleConfig replaces the engine settings; AI players pick them up on their
// next move.
func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.configs.Get()
	engineCfg := cfg.Engine
	if err := json.NewDecoder(r.Body).Decode(&engineCfg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if err := engineCfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg.Engine = engineCfg
	s.configs.Update(cfg)
	writeJSON(w, http.StatusOK, cfg.Engine)
}

func (s *server) writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidMove):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrNotHumanTurn), errors.Is(err, ErrAwaitingHuman), errors.Is(err, ErrGameNotRunning):
		writeError(w, http.StatusConflict, err)
	case IsCancellation(err):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error().Err(err).Msg("turn-failed")
		writeError(w, http.StatusInternalServerError, err)
	}
}
