package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDedup_RejectsRepeat(t *testing.T) {
	d := NewMemoryDedup(100)

	assert.True(t, d.ShouldAccept("dup"))
	assert.False(t, d.ShouldAccept("dup"))
	assert.False(t, d.ShouldAccept("dup"))
	assert.Equal(t, 1, d.Len())
}

func TestMemoryDedup_EvictsOldestPastCapacity(t *testing.T) {
	d := NewMemoryDedup(3)

	for _, id := range []string{"a", "b", "c", "d"} {
		assert.True(t, d.ShouldAccept(id))
	}

	assert.Equal(t, 3, d.Len())
	// "a" was evicted by "d", so it is accepted again; the rest are still in the window
	assert.True(t, d.ShouldAccept("a"))
	assert.False(t, d.ShouldAccept("c"))
	assert.False(t, d.ShouldAccept("d"))
	assert.True(t, d.ShouldAccept("b"))
}

func TestMemoryDedup_NeverRejectsNewIDs(t *testing.T) {
	d := NewMemoryDedup(100)

	for i := 0; i < 1000; i++ {
		assert.True(t, d.ShouldAccept(fmt.Sprintf("m-%d", i)), "id m-%d", i)
	}
	assert.Equal(t, 100, d.Len())
}

func TestMemoryDedup_DefaultCapacity(t *testing.T) {
	d := NewMemoryDedup(0)

	for i := 0; i < DefaultDedupCapacity+1; i++ {
		d.ShouldAccept(fmt.Sprintf("m-%d", i))
	}
	assert.Equal(t, DefaultDedupCapacity, d.Len())
}

func TestDedupKeyIsScopedToRoom(t *testing.T) {
	d := NewMemoryDedup(10)

	assert.True(t, d.ShouldAccept(dedupKey("chat_L1_c1", "m1")))
	assert.True(t, d.ShouldAccept(dedupKey("chat_L1_c2", "m1")))
	assert.False(t, d.ShouldAccept(dedupKey("chat_L1_c1", "m1")))
}
