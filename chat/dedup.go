package chat

import "sync"

// DefaultDedupCapacity is the number of message ids the in-memory window remembers
const DefaultDedupCapacity = 100

// Deduplicator decides whether a message id is new
type Deduplicator interface {
	// ShouldAccept records id and returns true the first time it is seen within the
	// window, false afterwards.
	ShouldAccept(id string) bool
}

// MemoryDedup is a fixed-capacity, insertion-ordered id set. Once full, each new id
// evicts the oldest one. An id is only rejected while it is still in the window.
type MemoryDedup struct {
	mu   sync.Mutex
	ring []string
	next int
	seen map[string]struct{}
}

// NewMemoryDedup creates a window of capacity ids
func NewMemoryDedup(capacity int) *MemoryDedup {
	if capacity <= 0 {
		capacity = DefaultDedupCapacity
	}
	return &MemoryDedup{
		ring: make([]string, 0, capacity),
		seen: make(map[string]struct{}, capacity),
	}
}

// ShouldAccept implements Deduplicator
func (d *MemoryDedup) ShouldAccept(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return false
	}

	if len(d.ring) < cap(d.ring) {
		d.ring = append(d.ring, id)
	} else {
		delete(d.seen, d.ring[d.next])
		d.ring[d.next] = id
		d.next = (d.next + 1) % len(d.ring)
	}
	d.seen[id] = struct{}{}
	return true
}

// Len returns how many ids are currently in the window
func (d *MemoryDedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// dedupKey scopes a client message id to its room
func dedupKey(roomID, messageID string) string {
	return roomID + "/" + messageID
}
