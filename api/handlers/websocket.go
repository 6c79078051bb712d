package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// envelope is the json frame used on /ws in both directions
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outboundEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// WebSocket serves the chat protocol over plain websockets
type WebSocket struct {
	Router   *chat.Router
	upgrader websocket.Upgrader
}

// NewWebSocket creates the /ws handler. An empty allowOrigins accepts any origin.
func NewWebSocket(router *chat.Router, allowOrigins []string) *WebSocket {
	return &WebSocket{
		Router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowOrigins),
		},
	}
}

func checkOrigin(allowOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowOrigins) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || lo.Contains(allowOrigins, origin)
	}
}

// ChatWebSocketHandler upgrades the request and runs the connection until it closes
func (h *WebSocket) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed",
			"remoteAddr", r.RemoteAddr,
			"error", err,
		)
		return
	}

	conn := newQueuedConn(uuid.New().String())
	zap.S().Debugw("websocket client connected",
		"connID", conn.ID(),
		"remoteAddr", r.RemoteAddr,
	)

	go h.writePump(ws, conn)
	h.readPump(context.WithoutCancel(r.Context()), ws, conn)
}

// readPump dispatches inbound frames in order. It owns the disconnect event.
func (h *WebSocket) readPump(ctx context.Context, ws *websocket.Conn, conn *queuedConn) {
	reason := "client closed"
	defer func() {
		h.Router.Dispatch(ctx, conn, chat.Disconnect{Reason: reason})
		conn.close()
		ws.Close()
	}()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				reason = err.Error()
				zap.S().Warnw("websocket closed unexpectedly",
					"connID", conn.ID(),
					"error", err,
				)
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			zap.S().Warnw("dropping malformed websocket frame",
				"connID", conn.ID(),
				"error", err,
			)
			continue
		}
		ev, err := chat.DecodeEvent(env.Event, env.Data)
		if err != nil {
			zap.S().Warnw("dropping websocket event",
				"connID", conn.ID(),
				"event", env.Event,
				"error", err,
			)
			continue
		}
		h.Router.Dispatch(ctx, conn, ev)
	}
}

// writePump is the only goroutine writing to ws
func (h *WebSocket) writePump(ws *websocket.Conn, conn *queuedConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case m := <-conn.out:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(outboundEnvelope{Event: m.event, Data: m.payload}); err != nil {
				zap.S().Warnw("websocket write failed",
					"connID", conn.ID(),
					"event", m.event,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-conn.done:
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
