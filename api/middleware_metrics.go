package api

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlowRequestThreshold is the duration above which a request is logged as slow
const SlowRequestThreshold = time.Second

// RequestIDHeader carries the id assigned to each request
const RequestIDHeader = "X-Request-ID"

// MetricsMiddleware assigns a request id, times the request and records it on mc.
// Health checks and the realtime transports are not tracked.
func MetricsMiddleware(mc *MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/ws" || strings.HasPrefix(path, "/socket.io") {
				next.ServeHTTP(w, r)
				return
			}

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			duration := time.Since(start)

			mc.Record(RequestTrace{
				RequestID: requestID,
				Method:    r.Method,
				Path:      path,
				Status:    wrapped.statusCode,
				StartTime: start,
				Duration:  duration,
			})

			if duration > SlowRequestThreshold {
				zap.S().Warnw("slow request",
					"requestId", requestID,
					"method", r.Method,
					"path", path,
					"duration", duration,
					"status", wrapped.statusCode,
				)
			}
		})
	}
}

// responseWriter captures the status code. It implements http.Hijacker so websocket
// upgrades pass through.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
