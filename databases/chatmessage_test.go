package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/legal-chat-api/databases"
	"github.com/linesmerrill/legal-chat-api/databases/mocks"
	"github.com/linesmerrill/legal-chat-api/models"
)

func TestChatMessageDatabase_FindByRoom(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	var gotOpts *options.FindOptions
	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.ChatMessage)
		*arg = []models.ChatMessage{{RoomID: "chat_L1_c1", MessageID: "m1"}}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	collectionHelper.On("Find", context.Background(), bson.M{"roomId": "chat_L1_c1"}, mock.Anything).
		Return(cursor, nil).Run(func(args mock.Arguments) {
		gotOpts = args.Get(2).(*options.FindOptions)
	})
	dbHelper.On("Collection", "chatmessages").Return(collectionHelper)

	msgDba := databases.NewChatMessageDatabase(dbHelper)

	msgs, err := msgDba.FindByRoom(context.Background(), "chat_L1_c1", 20, 3)
	assert.NoError(t, err)
	assert.Equal(t, []models.ChatMessage{{RoomID: "chat_L1_c1", MessageID: "m1"}}, msgs)

	if assert.NotNil(t, gotOpts) {
		assert.Equal(t, int64(20), *gotOpts.Limit)
		assert.Equal(t, int64(40), *gotOpts.Skip)
		assert.Equal(t, bson.D{{Key: "timestamp", Value: 1}}, gotOpts.Sort)
	}
}

func TestChatMessageDatabase_FindByRoomFindError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "chatmessages").Return(collectionHelper)

	msgDba := databases.NewChatMessageDatabase(dbHelper)

	msgs, err := msgDba.FindByRoom(context.Background(), "chat_L1_c1", 20, 0)
	assert.Nil(t, msgs)
	assert.EqualError(t, err, "mocked-error")
}

func TestChatMessageDatabase_EnsureIndexes(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CreateIndex", mock.Anything, mock.Anything).Return("roomId_1_messageId_1", nil).Run(func(args mock.Arguments) {
		model := args.Get(1).(mongo.IndexModel)
		assert.Equal(t, bson.D{{Key: "roomId", Value: 1}, {Key: "messageId", Value: 1}}, model.Keys)
		assert.True(t, *model.Options.Unique)
	})
	dbHelper.On("Collection", "chatmessages").Return(collectionHelper)

	msgDba := databases.NewChatMessageDatabase(dbHelper)

	assert.NoError(t, msgDba.EnsureIndexes(context.Background()))
}

func TestChatMessageDatabase_CountDocuments(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", mock.Anything, bson.M{"roomId": "chat_L1_c1"}).Return(int64(51), nil)
	dbHelper.On("Collection", "chatmessages").Return(collectionHelper)

	msgDba := databases.NewChatMessageDatabase(dbHelper)

	count, err := msgDba.CountDocuments(context.Background(), bson.M{"roomId": "chat_L1_c1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(51), count)
}
