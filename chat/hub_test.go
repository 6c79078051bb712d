package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_BroadcastSkipsExcluded(t *testing.T) {
	hub := NewHub()
	a, b, c := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")
	hub.Subscribe("chat_L1_c1", a)
	hub.Subscribe("chat_L1_c1", b)
	hub.Subscribe("user_L1", c)

	n := hub.Broadcast("chat_L1_c1", "ping", "x", "a")

	assert.Equal(t, 1, n)
	assert.Empty(t, a.all())
	assert.Len(t, b.named("ping"), 1)
	assert.Empty(t, c.all())
}

func TestHub_SubscribeTwiceIsNoop(t *testing.T) {
	hub := NewHub()
	a := newFakeConn("a")
	hub.Subscribe("room", a)
	hub.Subscribe("room", a)

	assert.Equal(t, 1, hub.Broadcast("room", "ping", nil))
	assert.Len(t, a.all(), 1)
}

func TestHub_UnsubscribeAll(t *testing.T) {
	hub := NewHub()
	a, b := newFakeConn("a"), newFakeConn("b")
	hub.Subscribe("room-1", a)
	hub.Subscribe("room-2", a)
	hub.Subscribe("room-2", b)

	hub.UnsubscribeAll("a")

	assert.False(t, hub.IsSubscribed("room-1", "a"))
	assert.False(t, hub.IsSubscribed("room-2", "a"))
	assert.True(t, hub.IsSubscribed("room-2", "b"))
	assert.Equal(t, []string{"b"}, hub.MemberIDs("room-2"))
	assert.Empty(t, hub.MemberIDs("room-1"))

	// unknown connections are ignored
	hub.UnsubscribeAll("nope")
	hub.Unsubscribe("room-2", "nope")
	assert.True(t, hub.IsSubscribed("room-2", "b"))
}
