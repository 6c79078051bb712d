package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/models"
)

// DefaultRoomBufferSize is how many recent messages a room keeps in memory
const DefaultRoomBufferSize = 50

// RoomID derives the canonical id for a lawyer/client pair. The REST create-room
// endpoint uses the same function so both paths agree on the id. Participant ids
// never contain "_", which keeps the id unique per pair.
func RoomID(lawyerID, clientID string) string {
	return fmt.Sprintf("chat_%s_%s", lawyerID, clientID)
}

// Room is the in-memory working copy of a chat room. The message buffer is guarded by
// the owning RoomStore.
type Room struct {
	ID        string
	LawyerID  string
	ClientID  string
	CreatedAt time.Time

	// delivery serializes dedup, append and broadcast for the room
	delivery sync.Mutex

	messages []models.ChatMessage
}

// Participants returns the lawyer and client ids
func (r *Room) Participants() []string {
	return []string{r.LawyerID, r.ClientID}
}

// IsPair reports whether the room belongs to exactly this lawyer and client
func (r *Room) IsPair(lawyerID, clientID string) bool {
	return r.LawyerID == lawyerID && r.ClientID == clientID
}

// HasParticipant reports whether userID is the room's lawyer or client
func (r *Room) HasParticipant(userID string) bool {
	return userID != "" && (userID == r.LawyerID || userID == r.ClientID)
}

// RoomStore owns every room this process has seen since start
type RoomStore struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	capacity int
	store    Store
	now      func() time.Time
}

// NewRoomStore creates a room store with a per-room buffer of capacity messages.
// store may be nil, in which case rooms only live in memory.
func NewRoomStore(capacity int, store Store) *RoomStore {
	if capacity <= 0 {
		capacity = DefaultRoomBufferSize
	}
	return &RoomStore{
		rooms:    make(map[string]*Room),
		capacity: capacity,
		store:    store,
		now:      time.Now,
	}
}

// GetOrCreate returns the room for the pair and whether it was created by this call.
// A new room is upserted durably; a failed upsert is logged and the in-memory room kept.
func (s *RoomStore) GetOrCreate(ctx context.Context, lawyerID, clientID string) (*Room, bool) {
	id := RoomID(lawyerID, clientID)

	s.mu.Lock()
	room, ok := s.rooms[id]
	if !ok {
		room = &Room{
			ID:        id,
			LawyerID:  lawyerID,
			ClientID:  clientID,
			CreatedAt: s.now(),
		}
		s.rooms[id] = room
	}
	s.mu.Unlock()

	if ok {
		return room, false
	}

	if s.store != nil {
		if err := s.store.UpsertRoom(ctx, id, lawyerID, clientID, room.Participants()); err != nil {
			zap.S().Errorw("failed to persist new chat room",
				"roomId", id,
				"error", err,
			)
		}
	}
	zap.S().Infow("chat room created",
		"roomId", id,
		"lawyerId", lawyerID,
		"clientId", clientID,
	)
	return room, true
}

// Get returns a room already in memory
func (s *RoomStore) Get(roomID string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	return room, ok
}

// AppendMessage adds msg to the room's buffer, dropping the oldest entries past capacity.
// Only the in-memory copy is trimmed.
func (s *RoomStore) AppendMessage(roomID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return fmt.Errorf("append to %s: %w", roomID, ErrRoomNotFound)
	}

	if len(room.messages) >= s.capacity {
		n := copy(room.messages, room.messages[len(room.messages)-s.capacity+1:])
		room.messages = room.messages[:n]
	}
	room.messages = append(room.messages, msg)
	return nil
}

// ListRecent returns a copy of the room's buffer, oldest first. Unknown rooms return nil.
func (s *RoomStore) ListRecent(roomID string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]models.ChatMessage, len(room.messages))
	copy(out, room.messages)
	return out
}

// Len returns the number of rooms in memory
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
