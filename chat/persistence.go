package chat

// go generate: mockery --name Store
// go generate: mockery --name History

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/api"
	"github.com/linesmerrill/legal-chat-api/databases"
	"github.com/linesmerrill/legal-chat-api/models"
)

// Store is the durable side of rooms and messages. Every write is an idempotent upsert.
type Store interface {
	UpsertRoom(ctx context.Context, roomID, lawyerID, clientID string, participantIDs []string) error
	RecordLastMessage(ctx context.Context, roomID, text string, at time.Time) error
	AppendMessageLog(ctx context.Context, roomID string, msg models.ChatMessage) error
}

// History is the read side used by the chat history api
type History interface {
	Room(ctx context.Context, roomID string) (*models.ChatRoom, error)
	RoomsByParticipant(ctx context.Context, userID, role string) ([]models.ChatRoom, error)
	MessageLog(ctx context.Context, roomID string, page, limit int) ([]models.ChatMessage, int64, error)
	EndSession(ctx context.Context, roomID string) error
}

// MongoStore implements Store and History on the chatrooms and chatmessages collections
type MongoStore struct {
	Rooms    databases.ChatRoomDatabase
	Messages databases.ChatMessageDatabase
	now      func() time.Time
}

// NewMongoStore creates the mongo persistence bridge
func NewMongoStore(rooms databases.ChatRoomDatabase, messages databases.ChatMessageDatabase) *MongoStore {
	return &MongoStore{Rooms: rooms, Messages: messages, now: time.Now}
}

// UpsertRoom creates the room document, or refreshes its participants if it already exists.
// Summary fields and the active flag are only set on insert.
func (m *MongoStore) UpsertRoom(ctx context.Context, roomID, lawyerID, clientID string, participantIDs []string) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	now := m.now()
	err := m.Rooms.UpdateOne(ctx, bson.M{"_id": roomID}, bson.M{
		"$set": bson.M{
			"lawyerId":       lawyerID,
			"clientId":       clientID,
			"participantIds": participantIDs,
			"updatedAt":      now,
		},
		"$setOnInsert": bson.M{
			"isActive":  true,
			"createdAt": now,
		},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert room %s: %w", roomID, err)
	}
	return nil
}

// RecordLastMessage updates the room summary only
func (m *MongoStore) RecordLastMessage(ctx context.Context, roomID, text string, at time.Time) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	err := m.Rooms.UpdateOne(ctx, bson.M{"_id": roomID}, bson.M{
		"$set": bson.M{
			"lastMessage":   text,
			"lastMessageAt": at,
			"updatedAt":     m.now(),
		},
	})
	if err != nil {
		return fmt.Errorf("record last message for %s: %w", roomID, err)
	}
	return nil
}

// AppendMessageLog inserts msg into the unbounded log. The (roomId, messageId) upsert
// with $setOnInsert makes a replayed append a no-op.
func (m *MongoStore) AppendMessageLog(ctx context.Context, roomID string, msg models.ChatMessage) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	msg.RoomID = roomID
	err := m.Messages.UpdateOne(ctx,
		bson.M{"roomId": roomID, "messageId": msg.MessageID},
		bson.M{"$setOnInsert": msg},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("append message %s to %s: %w", msg.MessageID, roomID, err)
	}
	return nil
}

// Room returns the durable room document
func (m *MongoStore) Room(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()
	return m.Rooms.FindOne(ctx, bson.M{"_id": roomID})
}

// RoomsByParticipant lists rooms where userID takes part as role, most recently active first
func (m *MongoStore) RoomsByParticipant(ctx context.Context, userID, role string) ([]models.ChatRoom, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	var filter bson.M
	switch role {
	case models.RoleLawyer:
		filter = bson.M{"lawyerId": userID}
	case models.RoleClient:
		filter = bson.M{"clientId": userID}
	default:
		filter = bson.M{"participantIds": userID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	rooms, err := m.Rooms.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("rooms for %s: %w", userID, err)
	}
	return rooms, nil
}

// MessageLog returns one page of a room's durable history plus the total message count
func (m *MongoStore) MessageLog(ctx context.Context, roomID string, page, limit int) ([]models.ChatMessage, int64, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	messages, err := m.Messages.FindByRoom(ctx, roomID, limit, page)
	if err != nil {
		return nil, 0, fmt.Errorf("message log for %s: %w", roomID, err)
	}
	count, err := m.Messages.CountDocuments(ctx, bson.M{"roomId": roomID})
	if err != nil {
		zap.S().Warnw("failed to count chat messages, using page size",
			"roomId", roomID,
			"error", err,
		)
		count = int64(len(messages))
	}
	return messages, count, nil
}

// EndSession marks the room inactive. The room and its messages are kept.
func (m *MongoStore) EndSession(ctx context.Context, roomID string) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	err := m.Rooms.UpdateOne(ctx, bson.M{"_id": roomID}, bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": m.now(),
		},
	})
	if err != nil {
		return fmt.Errorf("end session %s: %w", roomID, err)
	}
	return nil
}
