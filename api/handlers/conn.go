package handlers

import (
	"sync"

	"go.uber.org/zap"
)

// sendQueueSize is how many outbound events a connection may have pending
const sendQueueSize = 256

type outbound struct {
	event   string
	payload interface{}
}

// queuedConn implements chat.Conn for a transport connection. Send never blocks: events
// go onto a buffered queue drained by the transport's single writer goroutine, and are
// dropped when the peer is not keeping up.
type queuedConn struct {
	id   string
	out  chan outbound
	done chan struct{}
	once sync.Once
}

func newQueuedConn(id string) *queuedConn {
	return &queuedConn{
		id:   id,
		out:  make(chan outbound, sendQueueSize),
		done: make(chan struct{}),
	}
}

func (c *queuedConn) ID() string {
	return c.id
}

func (c *queuedConn) Send(event string, payload interface{}) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.out <- outbound{event: event, payload: payload}:
	case <-c.done:
	default:
		zap.S().Warnw("send queue full, dropping event",
			"connID", c.id,
			"event", event,
		)
	}
}

// close stops the writer; events sent afterwards are discarded
func (c *queuedConn) close() {
	c.once.Do(func() {
		close(c.done)
	})
}
