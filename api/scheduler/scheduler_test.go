package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/linesmerrill/legal-chat-api/chat"
)

type stubConn struct{ id string }

func (c stubConn) ID() string               { return c.id }
func (c stubConn) Send(string, interface{}) {}

func newRouter() *chat.Router {
	hub := chat.NewHub()
	return chat.NewRouter(hub, chat.NewRegistry(hub), chat.NewRoomStore(0, nil), chat.NewMemoryDedup(0), nil, nil)
}

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestScheduler_LogStats(t *testing.T) {
	logs := observe(t)
	router := newRouter()
	ctx := context.Background()
	conn := stubConn{id: "a"}
	require.NoError(t, router.Handle(ctx, conn, chat.Identify{UserID: "c1", Role: "client"}))
	require.NoError(t, router.Handle(ctx, conn, chat.JoinRoom{LawyerID: "L1", ClientID: "c1", RoomID: "chat_L1_c1"}))
	require.NoError(t, router.Handle(ctx, conn, chat.SendMessage{RoomID: "chat_L1_c1", MessageID: "m1", Text: "hi"}))

	s := NewScheduler(router, nil, "")
	s.logStats()

	entries := logs.FilterMessage("chat stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["activeConnections"])
	assert.Equal(t, int64(1), fields["rooms"])
	assert.Equal(t, int64(1), fields["dedupWindow"])
	assert.NotContains(t, fields, "totalRequests")
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	observe(t)
	s := NewScheduler(newRouter(), nil, "every now and then")

	assert.Error(t, s.Start())
}

func TestScheduler_StartAndStop(t *testing.T) {
	observe(t)
	s := NewScheduler(newRouter(), nil, "@every 1h")

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
