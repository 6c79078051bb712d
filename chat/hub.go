package chat

import (
	"sync"

	"github.com/samber/lo"
)

// Conn is a single live transport connection. Send must not block; transports queue
// the event and write it from their own goroutine.
type Conn interface {
	ID() string
	Send(event string, payload interface{})
}

// Hub keeps channel membership. A channel is either a room id or a personal channel
// (user_<id>); a connection can be subscribed to any number of them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[string]Conn
	byConn   map[string]map[string]struct{}
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[string]Conn),
		byConn:   make(map[string]map[string]struct{}),
	}
}

// Subscribe adds conn to channel. Subscribing twice is a no-op.
func (h *Hub) Subscribe(channel string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[string]Conn)
		h.channels[channel] = members
	}
	members[conn.ID()] = conn

	subs, ok := h.byConn[conn.ID()]
	if !ok {
		subs = make(map[string]struct{})
		h.byConn[conn.ID()] = subs
	}
	subs[channel] = struct{}{}
}

// Unsubscribe removes a connection from one channel
func (h *Hub) Unsubscribe(channel, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(channel, connID)
}

// UnsubscribeAll removes a connection from every channel it joined
func (h *Hub) UnsubscribeAll(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel := range h.byConn[connID] {
		h.unsubscribeLocked(channel, connID)
	}
	delete(h.byConn, connID)
}

func (h *Hub) unsubscribeLocked(channel, connID string) {
	if members, ok := h.channels[channel]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	if subs, ok := h.byConn[connID]; ok {
		delete(subs, channel)
		if len(subs) == 0 {
			delete(h.byConn, connID)
		}
	}
}

// IsSubscribed reports whether connID is a member of channel
func (h *Hub) IsSubscribed(channel, connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.channels[channel][connID]
	return ok
}

// MemberIDs returns the connection ids subscribed to channel
func (h *Hub) MemberIDs(channel string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.channels[channel]))
	for id := range h.channels[channel] {
		ids = append(ids, id)
	}
	return ids
}

// Broadcast sends event to every member of channel except the listed connection ids
// and returns how many connections it was queued for.
func (h *Hub) Broadcast(channel, event string, payload interface{}, except ...string) int {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.channels[channel]))
	for id, c := range h.channels[channel] {
		if lo.Contains(except, id) {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Send(event, payload)
	}
	return len(targets)
}
