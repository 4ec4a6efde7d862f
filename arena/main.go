package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// arena plays AI-vs-AI games against a running backend and tallies results.
type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	gameTimeout  time.Duration
	boardSize    int
	openingPlies int
	logger       zerolog.Logger
}

type move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type statusResponse struct {
	GameID    string `json:"game_id"`
	Status    string `json:"status"`
	Winner    int    `json:"winner"`
	MoveCount int    `json:"move_count"`
	BoardSize int    `json:"board_size"`
}

type tally struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
	Failures  int
	Moves     int
}

func (t *tally) record(status statusResponse) {
	t.Games++
	t.Moves += status.MoveCount
	switch status.Winner {
	case 1:
		t.BlackWins++
	case 2:
		t.WhiteWins++
	default:
		t.Draws++
	}
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	a := &arena{
		client:       &http.Client{Timeout: 60 * time.Second},
		baseURL:      strings.TrimRight(getenv("ARENA_API", "http://localhost:8080"), "/"),
		pollInterval: time.Duration(getenvInt("ARENA_POLL_MS", 200)) * time.Millisecond,
		gameTimeout:  time.Duration(getenvInt("ARENA_GAME_TIMEOUT_SEC", 600)) * time.Second,
		boardSize:    getenvInt("ARENA_BOARD_SIZE", 15),
		openingPlies: getenvInt("ARENA_OPENING_PLIES", 4),
		logger:       logger,
	}
	games := getenvInt("ARENA_GAMES", 10)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.waitBackendReady(ctx); err != nil {
		logger.Fatal().Err(err).Str("api", a.baseURL).Msg("backend-unreachable")
	}
	result := a.run(ctx, games)
	logger.Info().
		Int("games", result.Games).
		Int("black_wins", result.BlackWins).
		Int("white_wins", result.WhiteWins).
		Int("draws", result.Draws).
		Int("failures", result.Failures).
		Int("moves", result.Moves).
		Msg("arena-summary")
}

func (a *arena) run(ctx context.Context, games int) tally {
	var result tally
	for i := 0; i < games; i++ {
		if ctx.Err() != nil {
			break
		}
		opening := buildOpening(a.boardSize, a.openingPlies)
		status, err := a.playGame(ctx, opening)
		if err != nil {
			result.Failures++
			a.logger.Error().Err(err).Int("game", i+1).Msg("game-failed")
			continue
		}
		result.record(status)
		a.logger.Info().
			Int("game", i+1).
			Str("id", status.GameID).
			Str("status", status.Status).
			Int("moves", status.MoveCount).
			Msg("game-finished")
	}
	return result
}

// playGame starts one game from opening and advances it until it ends. When
// the backend runs its own turn loop, play_turn only reports progress.
func (a *arena) playGame(ctx context.Context, opening []move) (statusResponse, error) {
	var status statusResponse
	err := a.postJSON(ctx, "/api/start", map[string]any{
		"settings": map[string]any{"mode": "ai_vs_ai", "board_size": a.boardSize},
		"opening":  opening,
	}, &status)
	if err != nil {
		return statusResponse{}, err
	}
	deadline := time.Now().Add(a.gameTimeout)
	lastCount := status.MoveCount
	for status.Status == "running" {
		if a.gameTimeout > 0 && time.Now().After(deadline) {
			return statusResponse{}, fmt.Errorf("game %s timed out after %s", status.GameID, a.gameTimeout)
		}
		if err := a.postJSON(ctx, "/api/play_turn", map[string]any{}, &status); err != nil {
			return statusResponse{}, err
		}
		if status.MoveCount == lastCount && !sleepWithContext(ctx, a.pollInterval) {
			return statusResponse{}, ctx.Err()
		}
		lastCount = status.MoveCount
	}
	return status, nil
}

func (a *arena) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		if err := a.getJSON(ctx, "/api/ping", &map[string]bool{}); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timeout after 60s")
}

func (a *arena) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *arena) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *arena) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
