package chat

import (
	"sync"
	"time"
)

type sentEvent struct {
	Name    string
	Payload interface{}
}

type fakeConn struct {
	id string

	mu     sync.Mutex
	events []sentEvent
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(event string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, sentEvent{Name: event, Payload: payload})
}

func (c *fakeConn) all() []sentEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sentEvent, len(c.events))
	copy(out, c.events)
	return out
}

func (c *fakeConn) named(name string) []interface{} {
	var out []interface{}
	for _, e := range c.all() {
		if e.Name == name {
			out = append(out, e.Payload)
		}
	}
	return out
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

var fixedNow = time.Date(2026, time.March, 3, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
