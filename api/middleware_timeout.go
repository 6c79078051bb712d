package api

import (
	"net/http"
	"time"
)

// RequestTimeout bounds the REST endpoints
const RequestTimeout = 30 * time.Second

const timeoutBody = `{"Response":{"Message":"request timeout","Error":"the request took too long to process"}}`

// TimeoutMiddleware answers 503 with a json body when a handler runs past timeout.
// It buffers the response, so it must not wrap the websocket or Socket.IO endpoints.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
