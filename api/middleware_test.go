package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_SetsJSONContentType(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chat/rooms", nil))

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestMetricsMiddleware_RecordsStatusAndRequestID(t *testing.T) {
	mc := &MetricsCollector{routes: make(map[string]*RouteMetrics), traces: make(chan RequestTrace, 10)}
	handler := MetricsMiddleware(mc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chat/rooms/chat_L1_c1/messages", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	trace := <-mc.traces
	assert.Equal(t, http.StatusNotFound, trace.Status)
	assert.Equal(t, rr.Header().Get(RequestIDHeader), trace.RequestID)
}

func TestMetricsMiddleware_KeepsIncomingRequestID(t *testing.T) {
	mc := &MetricsCollector{routes: make(map[string]*RouteMetrics), traces: make(chan RequestTrace, 10)}
	handler := MetricsMiddleware(mc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/v1/chat/rooms", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusOK, (<-mc.traces).Status)
}

func TestMetricsMiddleware_SkipsUntrackedPaths(t *testing.T) {
	mc := &MetricsCollector{routes: make(map[string]*RouteMetrics), traces: make(chan RequestTrace, 10)}
	handler := MetricsMiddleware(mc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, path := range []string{"/health", "/ws", "/socket.io/"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.Empty(t, mc.traces)
}

func TestResponseWriter_HijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	_, _, err := rw.Hijack()

	assert.Error(t, err)
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := TimeoutMiddleware(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	rr := httptest.NewRecorder()
	slow.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/chat/rooms", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, timeoutBody, rr.Body.String())
}
