package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterRequiresUserAndRole(t *testing.T) {
	hub := NewHub()
	reg := NewRegistry(hub)
	conn := newFakeConn("conn-1")

	_, ok := reg.Register(conn, "", "client", "Cara")
	assert.False(t, ok)
	_, ok = reg.Register(conn, "c1", "", "Cara")
	assert.False(t, ok)

	assert.Equal(t, 0, reg.CountActive())
	assert.False(t, hub.IsSubscribed("user_c1", "conn-1"))
}

func TestRegistry_RegisterSubscribesPersonalChannel(t *testing.T) {
	hub := NewHub()
	reg := NewRegistry(hub)
	reg.now = fixedClock
	conn := newFakeConn("conn-1")

	id, ok := reg.Register(conn, "c1", "client", "Cara")

	assert.True(t, ok)
	assert.Equal(t, Identity{ConnID: "conn-1", UserID: "c1", Role: "client", DisplayName: "Cara", JoinedAt: fixedNow}, id)
	assert.True(t, hub.IsSubscribed(PersonalChannel("c1"), "conn-1"))
	assert.Equal(t, 1, reg.CountActive())

	got, ok := reg.Lookup("conn-1")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestRegistry_ReidentifyMovesPersonalChannel(t *testing.T) {
	hub := NewHub()
	reg := NewRegistry(hub)
	conn := newFakeConn("conn-1")

	reg.Register(conn, "c1", "client", "Cara")
	reg.Register(conn, "c2", "client", "Cole")

	assert.False(t, hub.IsSubscribed("user_c1", "conn-1"))
	assert.True(t, hub.IsSubscribed("user_c2", "conn-1"))
	assert.Equal(t, 1, reg.CountActive())
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	reg := NewRegistry(hub)
	conn := newFakeConn("conn-1")
	reg.Register(conn, "L1", "lawyer", "Lee")
	hub.Subscribe("chat_L1_c1", conn)

	id, ok := reg.Unregister("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "L1", id.UserID)
	assert.Equal(t, 0, reg.CountActive())
	assert.False(t, hub.IsSubscribed("user_L1", "conn-1"))
	assert.False(t, hub.IsSubscribed("chat_L1_c1", "conn-1"))

	_, ok = reg.Unregister("conn-1")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.CountActive())
}

func TestRegistry_ConnectionsForUser(t *testing.T) {
	reg := NewRegistry(NewHub())
	reg.Register(newFakeConn("tab-1"), "L1", "lawyer", "Lee")
	reg.Register(newFakeConn("tab-2"), "L1", "lawyer", "Lee")
	reg.Register(newFakeConn("tab-3"), "c1", "client", "Cara")

	assert.Equal(t, 2, reg.ConnectionsForUser("L1"))
	assert.Equal(t, 1, reg.ConnectionsForUser("c1"))
	assert.Equal(t, 0, reg.ConnectionsForUser("nobody"))
}
