package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every mongo call made on behalf of a request or a chat event
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a query context from parent. A nil parent is treated as
// context.Background so background writers can pass whatever they hold.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
