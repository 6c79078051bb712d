package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/legal-chat-api/config"
	"github.com/linesmerrill/legal-chat-api/databases"
	"github.com/linesmerrill/legal-chat-api/databases/mocks"
	"github.com/linesmerrill/legal-chat-api/models"
)

func TestNewChatRoomDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	chatRoomDB := databases.NewChatRoomDatabase(db)

	assert.NotEmpty(t, chatRoomDB)
}

func TestChatRoomDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.ChatRoom)
		(*arg).ID = "chat_L1_c1"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "chatrooms").Return(collectionHelper)

	roomDba := databases.NewChatRoomDatabase(dbHelper)

	room, err := roomDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, room)
	assert.EqualError(t, err, "mocked-error")

	room, err = roomDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.ChatRoom{ID: "chat_L1_c1"}, room)
	assert.NoError(t, err)
}

func TestChatRoomDatabase_Find(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.ChatRoom)
		*arg = []models.ChatRoom{{ID: "chat_L1_c1"}, {ID: "chat_L1_c2"}}
	})
	cursor.On("Close", mock.Anything).Return(nil)

	collectionHelper.On("Find", context.Background(), bson.M{"lawyerId": "L1"}).Return(cursor, nil)
	collectionHelper.On("Find", context.Background(), bson.M{"error": true}).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "chatrooms").Return(collectionHelper)

	roomDba := databases.NewChatRoomDatabase(dbHelper)

	rooms, err := roomDba.Find(context.Background(), bson.M{"lawyerId": "L1"})
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	cursor.AssertCalled(t, "Close", mock.Anything)

	rooms, err = roomDba.Find(context.Background(), bson.M{"error": true})
	assert.Nil(t, rooms)
	assert.EqualError(t, err, "mocked-error")
}

func TestChatRoomDatabase_UpdateOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", context.Background(), bson.M{"_id": "chat_L1_c1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	collectionHelper.On("UpdateOne", context.Background(), bson.M{"_id": "broken"}, mock.Anything).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "chatrooms").Return(collectionHelper)

	roomDba := databases.NewChatRoomDatabase(dbHelper)

	err := roomDba.UpdateOne(context.Background(), bson.M{"_id": "chat_L1_c1"}, bson.M{"$set": bson.M{"isActive": false}})
	assert.NoError(t, err)

	err = roomDba.UpdateOne(context.Background(), bson.M{"_id": "broken"}, bson.M{"$set": bson.M{"isActive": false}})
	assert.EqualError(t, err, "mocked-error")
}
