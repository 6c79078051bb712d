package chat

// go generate: mockery --name Directory

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/legal-chat-api/api"
	"github.com/linesmerrill/legal-chat-api/databases"
	"github.com/linesmerrill/legal-chat-api/models"
)

// Directory is the lawyer directory the router reports presence to
type Directory interface {
	SetOnline(ctx context.Context, lawyerID string, online bool) error
}

// MongoDirectory reports lawyer presence to the lawyers collection
type MongoDirectory struct {
	DB  databases.LawyerDatabase
	now func() time.Time
}

// NewMongoDirectory creates a lawyer directory over the lawyers collection
func NewMongoDirectory(db databases.LawyerDatabase) *MongoDirectory {
	return &MongoDirectory{DB: db, now: time.Now}
}

// SetOnline implements Directory
func (d *MongoDirectory) SetOnline(ctx context.Context, lawyerID string, online bool) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	var id interface{} = lawyerID
	if oid, err := primitive.ObjectIDFromHex(lawyerID); err == nil {
		id = oid
	}
	err := d.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": models.Lawyer{IsOnline: online, LastSeen: d.now()},
	})
	if err != nil {
		return fmt.Errorf("set lawyer %s online=%v: %w", lawyerID, online, err)
	}
	return nil
}
