package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/legal-chat-api/chat"
	"github.com/linesmerrill/legal-chat-api/chat/mocks"
	"github.com/linesmerrill/legal-chat-api/config"
	"github.com/linesmerrill/legal-chat-api/models"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

type nopConn struct{ id string }

func (c nopConn) ID() string               { return c.id }
func (c nopConn) Send(string, interface{}) {}

func TestHealthCheckReportsActiveConnections(t *testing.T) {
	a = App{}
	a.Router = a.New()
	for _, id := range []string{"a", "b"} {
		require.NoError(t, a.Chat.Handle(context.Background(), nopConn{id: id}, chat.Identify{UserID: id, Role: models.RoleClient}))
	}

	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	var got models.HealthCheckResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
	assert.Equal(t, models.HealthCheckResponse{Alive: true, ActiveConnections: 2}, got)
}

func TestChatRoutesNeedHistory(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/chat/rooms/chat_L1_c1/messages", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestChatRoutesAreWired(t *testing.T) {
	history := &mocks.History{}
	history.On("EndSession", mock.Anything, "chat_L1_c1").Return(nil)
	a = App{History: history}
	a.Router = a.New()

	req, _ := http.NewRequest("PUT", "/api/v1/chat/rooms/chat_L1_c1/end", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"roomId":"chat_L1_c1","isActive":false}`, response.Body.String())

	req, _ = http.NewRequest("GET", "/api/v1/chat/rooms/chat_L1_c1/end", nil)
	response = executeRequest(req)
	checkResponseCode(t, http.StatusMethodNotAllowed, response.Code)
}

func TestMetricsSummaryRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()

	req, _ := http.NewRequest("GET", "/api/v1/metrics/summary?limit=5", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
	assert.Contains(t, got, "summary")
	assert.Contains(t, got, "slowestRoutes")
	assert.JSONEq(t, `{"activeConnections":0,"rooms":0}`, string(got["chat"]))
	assert.NotEmpty(t, response.Header().Get("X-Request-ID"))
}

func TestNewDeduplicator(t *testing.T) {
	memory := newDeduplicator(&config.Config{DedupCapacity: 5})
	assert.IsType(t, &chat.MemoryDedup{}, memory)

	redis := newDeduplicator(&config.Config{RedisURL: "redis://127.0.0.1:6379/0"})
	assert.IsType(t, &chat.RedisDedup{}, redis)
}
