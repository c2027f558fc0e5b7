package ipc

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocket adapts a websocket connection to a Transport: one text message
// per envelope.
func WebSocket(conn *websocket.Conn) Transport { return wsTransport{conn} }

type wsTransport struct{ conn *websocket.Conn }

func (w wsTransport) ReadEnvelope() (Envelope, error) {
	kind, data, err := w.conn.ReadMessage()
	if err != nil {
		return Envelope{}, err
	}
	if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
		return Envelope{}, fmt.Errorf("message kind %d: %w", kind, ErrProtocol)
	}
	if len(data) > MaxEnvelope {
		return Envelope{}, fmt.Errorf("invalid message length %d: %w", len(data), ErrProtocol)
	}
	return unmarshalEnvelope(data)
}

func (w wsTransport) WriteEnvelope(env Envelope) error {
	if err := w.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

func (w wsTransport) Close() error { return w.conn.Close() }

// WebSocketHandler upgrades every request and hands the session to serve,
// which runs on the request goroutine.
func WebSocketHandler(serve func(*Connection)) http.Handler {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("websocket session opened", "remote", r.RemoteAddr)
		serve(NewConnection(WebSocket(conn), nil))
	})
}
