package databases

// go generate: mockery --name ChatMessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/legal-chat-api/models"
)

const chatMessageName = "chatmessages"

// ChatMessageDatabase contains the methods to use with the chat message database
type ChatMessageDatabase interface {
	FindByRoom(ctx context.Context, roomID string, limit, page int) ([]models.ChatMessage, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	EnsureIndexes(ctx context.Context) error
}

type chatMessageDatabase struct {
	db DatabaseHelper
}

// NewChatMessageDatabase initializes a new instance of chat message database with the provided db connection
func NewChatMessageDatabase(db DatabaseHelper) ChatMessageDatabase {
	return &chatMessageDatabase{
		db: db,
	}
}

// FindByRoom returns one page of a room's message log, oldest first
func (c *chatMessageDatabase) FindByRoom(ctx context.Context, roomID string, limit, page int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	opts := newMongoPaginate(limit, page).oldestFirst("timestamp")
	curr, err := c.db.Collection(chatMessageName).Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &messages)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *chatMessageDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(chatMessageName).CountDocuments(ctx, filter, opts...)
}

func (c *chatMessageDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(chatMessageName).UpdateOne(ctx, filter, update, opts...)
	return err
}

// EnsureIndexes makes (roomId, messageId) unique so a replayed append cannot create a second row
func (c *chatMessageDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(chatMessageName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "roomId", Value: 1}, {Key: "messageId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
