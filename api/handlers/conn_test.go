package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueuedConn_SendQueuesInOrder(t *testing.T) {
	c := newQueuedConn("a")

	c.Send("first", 1)
	c.Send("second", 2)

	assert.Equal(t, outbound{event: "first", payload: 1}, <-c.out)
	assert.Equal(t, outbound{event: "second", payload: 2}, <-c.out)
}

func TestQueuedConn_SendDropsWhenFull(t *testing.T) {
	c := newQueuedConn("a")

	for i := 0; i < sendQueueSize+10; i++ {
		c.Send("event", i)
	}

	assert.Len(t, c.out, sendQueueSize)
}

func TestQueuedConn_SendAfterClose(t *testing.T) {
	c := newQueuedConn("a")
	c.close()
	c.close()

	c.Send("event", 1)

	assert.Empty(t, c.out)
}
