package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebsocketStatusAndUpdates(t *testing.T) {
	configs := NewConfigStore(testConfig())
	controller := NewGameController(configs, nil, zerolog.Nop())
	hub := NewHub()
	controller.SetUpdateListener(hub.Publish)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ts := httptest.NewServer(newRouter(&server{controller: controller, configs: configs, hub: hub, logger: zerolog.Nop()}))
	defer ts.Close()
	conn := dialWS(t, ts.URL)

	first := readWS(t, conn)
	if first.Type != "status" {
		t.Fatalf("expected status on connect, got %q", first.Type)
	}
	var initial StatusResponse
	if err := json.Unmarshal(first.Payload, &initial); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if initial.Status != StatusNotStarted.String() {
		t.Fatalf("expected no game yet, got %q", initial.Status)
	}

	if err := controller.StartGame(humanVsHuman(9), nil); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	state, _ := controller.State()
	gameID := state.ID.String()

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		msg := readWS(t, conn)
		var payload struct {
			GameID string `json:"game_id"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.Fatalf("decode %s: %v", msg.Type, err)
		}
		if payload.GameID != gameID {
			t.Fatalf("%s message for game %q, want %q", msg.Type, payload.GameID, gameID)
		}
		seen[msg.Type] = true
	}
	if !seen["board"] || !seen["status"] {
		t.Fatalf("expected board and status messages, got %v", seen)
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_status"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply := readWS(t, conn)
	var status StatusResponse
	if err := json.Unmarshal(reply.Payload, &status); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Type != "status" || status.GameID != gameID || status.BoardSize != 9 {
		t.Fatalf("unexpected reply %s %+v", reply.Type, status)
	}
}

func TestWriteLoopSendsIdlePing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		client := &Client{send: make(chan []byte, 1)}
		client.send <- mustMarshal(wsMessage{Type: "hello"})
		_ = client.writeLoop(conn, 20*time.Millisecond)
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if msg := readWS(t, conn); msg.Type != "hello" {
		t.Fatalf("expected queued message first, got %q", msg.Type)
	}
	if msg := readWS(t, conn); msg.Type != "ping" {
		t.Fatalf("expected idle ping, got %q", msg.Type)
	}
}
