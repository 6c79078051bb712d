package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/chat"
)

// socketEvents are the inbound events a Socket.IO client may emit
var socketEvents = []string{
	chat.EventIdentify,
	chat.EventJoinRoom,
	chat.EventLeaveRoom,
	chat.EventSendMessage,
	chat.EventTyping,
}

// SocketIO serves the chat protocol to Socket.IO clients
type SocketIO struct {
	Router *chat.Router
	Server *socketio.Server
}

// NewSocketIO creates the Socket.IO server and registers the chat events on the
// default namespace. Call Start before serving requests.
func NewSocketIO(router *chat.Router, allowOrigins []string) *SocketIO {
	origin := checkOrigin(allowOrigins)
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{CheckOrigin: origin},
			&websocket.Transport{CheckOrigin: origin},
		},
	})

	h := &SocketIO{Router: router, Server: server}
	server.OnConnect("/", h.onConnect)
	for _, name := range socketEvents {
		server.OnEvent("/", name, h.onEvent(name))
	}
	server.OnError("/", h.onError)
	server.OnDisconnect("/", h.onDisconnect)
	return h
}

// Start runs the Socket.IO server loop in the background
func (h *SocketIO) Start() {
	go func() {
		if err := h.Server.Serve(); err != nil {
			zap.S().Errorw("socket.io server stopped", "error", err)
		}
	}()
}

// Close shuts the Socket.IO server down
func (h *SocketIO) Close() error {
	return h.Server.Close()
}

// ServeHTTP implements http.Handler
func (h *SocketIO) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Server.ServeHTTP(w, r)
}

func (h *SocketIO) onConnect(s socketio.Conn) error {
	conn := newQueuedConn("sio-" + s.ID())
	s.SetContext(conn)
	go emitLoop(s, conn)

	zap.S().Debugw("socket.io client connected", "connID", conn.ID())
	return nil
}

func (h *SocketIO) onEvent(name string) func(s socketio.Conn, msg map[string]interface{}) {
	return func(s socketio.Conn, msg map[string]interface{}) {
		conn, ok := s.Context().(*queuedConn)
		if !ok {
			return
		}
		data, err := json.Marshal(msg)
		if err != nil {
			zap.S().Warnw("dropping socket.io event",
				"connID", conn.ID(),
				"event", name,
				"error", err,
			)
			return
		}
		ev, err := chat.DecodeEvent(name, data)
		if err != nil {
			zap.S().Warnw("dropping socket.io event",
				"connID", conn.ID(),
				"event", name,
				"error", err,
			)
			return
		}
		h.Router.Dispatch(context.Background(), conn, ev)
	}
}

func (h *SocketIO) onError(s socketio.Conn, e error) {
	connID := ""
	if s != nil {
		if conn, ok := s.Context().(*queuedConn); ok {
			connID = conn.ID()
		}
	}
	zap.S().Warnw("socket.io error",
		"connID", connID,
		"error", e,
	)
}

func (h *SocketIO) onDisconnect(s socketio.Conn, reason string) {
	conn, ok := s.Context().(*queuedConn)
	if !ok {
		return
	}
	h.Router.Dispatch(context.Background(), conn, chat.Disconnect{Reason: reason})
	conn.close()
}

func emitLoop(s socketio.Conn, conn *queuedConn) {
	for {
		select {
		case m := <-conn.out:
			s.Emit(m.event, m.payload)
		case <-conn.done:
			return
		}
	}
}
