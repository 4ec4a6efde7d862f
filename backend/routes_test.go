package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*httptest.Server, *GameController) {
	t.Helper()
	configs := NewConfigStore(testConfig())
	controller := NewGameController(configs, &memoryArchive{}, zerolog.Nop())
	handler := newRouter(&server{controller: controller, configs: configs, hub: NewHub(), logger: zerolog.Nop()})
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, controller
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeStatus(t *testing.T, resp *http.Response) StatusResponse {
	t.Helper()
	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return status
}

func TestPingRoute(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestBoardRouteWithoutGame(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/board")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before a game starts, got %d", resp.StatusCode)
	}
}

func TestHumanVersusAIOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/start", map[string]any{
		"settings": map[string]any{"mode": "ai_vs_human", "human_player": 1, "board_size": 9},
	})
	status := decodeStatus(t, resp)
	if resp.StatusCode != http.StatusOK || status.Status != "running" || !status.HumanTurn || status.BoardSize != 9 {
		t.Fatalf("unexpected start response %d %+v", resp.StatusCode, status)
	}

	resp = postJSON(t, ts.URL+"/api/human_move", map[string]int{"row": 9, "col": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range move, got %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/human_move", map[string]int{"row": 4, "col": 4})
	status = decodeStatus(t, resp)
	if resp.StatusCode != http.StatusOK || status.MoveCount != 1 || status.Board[4][4] != 1 {
		t.Fatalf("expected human stone at (4,4), got %d %+v", resp.StatusCode, status)
	}
	if status.HumanTurn || status.NextPlayer != 2 {
		t.Fatalf("expected the AI to move next, got %+v", status)
	}

	resp = postJSON(t, ts.URL+"/api/human_move", map[string]int{"row": 0, "col": 0})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on the AI turn, got %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/play_turn", map[string]any{})
	status = decodeStatus(t, resp)
	if status.MoveCount != 2 || !status.HumanTurn {
		t.Fatalf("expected AI reply and human turn, got %+v", status)
	}
	last := status.History[len(status.History)-1]
	if !last.IsAi || last.Player != 2 {
		t.Fatalf("expected AI history entry, got %+v", last)
	}

	resp = postJSON(t, ts.URL+"/api/human_move", map[string]int{"row": 4, "col": 4})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for occupied cell, got %d", resp.StatusCode)
	}
}

func TestStartRejectsBadOpening(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/start", map[string]any{
		"settings": map[string]any{"mode": "ai_vs_ai"},
		"opening":  []map[string]int{{"row": 20, "col": 20}},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestStartRejectsBoardSizeOutOfRange(t *testing.T) {
	ts, controller := newTestServer(t)
	for _, size := range []int{-3, 4, 65, 1 << 32} {
		resp := postJSON(t, ts.URL+"/api/start", map[string]any{
			"settings": map[string]any{"mode": "human_vs_human", "board_size": size},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("size %d: expected 400, got %d", size, resp.StatusCode)
		}
	}
	if _, ok := controller.State(); ok {
		t.Fatalf("rejected starts must not create a game")
	}
}

func TestConfigRouteValidates(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/config", map[string]any{"max_depth": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for depth 0, got %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/api/config", map[string]any{"max_depth": 2, "time_limit_ms": 1500})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGamesRoute(t *testing.T) {
	ts, controller := newTestServer(t)
	settings := humanVsHuman(5)
	if err := controller.StartGame(settings, drawnFill()); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	resp, err := http.Get(ts.URL + "/api/games?limit=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var games []GameRecord
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(games) != 1 || games[0].Result != "draw" || len(games[0].Moves) != 25 {
		t.Fatalf("expected archived draw, got %+v", games)
	}

	bad, err := http.Get(ts.URL + "/api/games?limit=abc")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", bad.StatusCode)
	}
}
