package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// writeLoop drains the client's queue onto conn. A "ping" message goes out
// whenever the connection has been quiet for idle; the idle timer restarts on
// every write. It returns when the queue is closed or a write fails.
func (c *Client) writeLoop(conn *websocket.Conn, idle time.Duration) error {
	idleTimer := time.NewTimer(idle)
	defer idleTimer.Stop()
	ping := mustMarshal(wsMessage{Type: "ping"})

	write := func(data []byte) error {
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
		if !idleTimer.Stop() {
			select {
			case <-idleTimer.C:
			default:
			}
		}
		idleTimer.Reset(idle)
		return nil
	}

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return nil
			}
			if err := write(data); err != nil {
				return err
			}
		case <-idleTimer.C:
			if err := write(ping); err != nil {
				return err
			}
		}
	}
}

// serveWS sends the current status on connect, then streams hub updates. A
// client may ask for a fresh status with {"type":"request_status"}.
func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)
	hub.SendTo(client, wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})

	go func() {
		defer conn.Close()
		_ = client.writeLoop(conn, wsIdlePingInterval)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "request_status" {
			hub.SendTo(client, wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})
		}
	}
}
