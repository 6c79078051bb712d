package chat

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Identity is what a connection announced about itself on identify
type Identity struct {
	ConnID      string
	UserID      string
	Role        string
	DisplayName string
	JoinedAt    time.Time
}

// PersonalChannel is the per-user address for notifications that do not depend on room membership
func PersonalChannel(userID string) string {
	return "user_" + userID
}

// Registry binds transport connections to identities
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Identity
	hub   *Hub
	now   func() time.Time
}

// NewRegistry creates a registry that subscribes identified connections to their
// personal channel on hub
func NewRegistry(hub *Hub) *Registry {
	return &Registry{
		conns: make(map[string]Identity),
		hub:   hub,
		now:   time.Now,
	}
}

// Register binds conn to the identity. It returns false, and does nothing, when userID
// or role is empty. Registering an already identified connection replaces its identity.
func (r *Registry) Register(conn Conn, userID, role, displayName string) (Identity, bool) {
	if userID == "" || role == "" {
		zap.S().Warnw("ignoring identify with missing fields",
			"connID", conn.ID(),
			"userId", userID,
			"role", role,
		)
		return Identity{}, false
	}

	id := Identity{
		ConnID:      conn.ID(),
		UserID:      userID,
		Role:        role,
		DisplayName: displayName,
		JoinedAt:    r.now(),
	}

	r.mu.Lock()
	prev, existed := r.conns[conn.ID()]
	r.conns[conn.ID()] = id
	r.mu.Unlock()

	if existed && prev.UserID != userID {
		r.hub.Unsubscribe(PersonalChannel(prev.UserID), conn.ID())
	}
	r.hub.Subscribe(PersonalChannel(userID), conn)

	zap.S().Debugw("connection identified",
		"connID", conn.ID(),
		"userId", userID,
		"role", role,
	)
	return id, true
}

// Unregister drops the connection and all of its channel subscriptions. The departed
// identity is returned so callers can run role specific effects; unknown connections
// return false.
func (r *Registry) Unregister(connID string) (Identity, bool) {
	r.mu.Lock()
	id, ok := r.conns[connID]
	delete(r.conns, connID)
	r.mu.Unlock()

	r.hub.UnsubscribeAll(connID)
	return id, ok
}

// Lookup returns the identity bound to a connection
func (r *Registry) Lookup(connID string) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.conns[connID]
	return id, ok
}

// ConnectionsForUser counts the live connections identified as userID
func (r *Registry) ConnectionsForUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.conns {
		if id.UserID == userID {
			n++
		}
	}
	return n
}

// CountActive returns the number of identified connections
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
