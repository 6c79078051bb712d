package databases

// go generate: mockery --name LawyerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"
)

const lawyerName = "lawyers"

// LawyerDatabase contains the methods to use with the lawyer database
type LawyerDatabase interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type lawyerDatabase struct {
	db DatabaseHelper
}

// NewLawyerDatabase initializes a new instance of lawyer database with the provided db connection
func NewLawyerDatabase(db DatabaseHelper) LawyerDatabase {
	return &lawyerDatabase{
		db: db,
	}
}

func (l *lawyerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := l.db.Collection(lawyerName).UpdateOne(ctx, filter, update, opts...)
	return err
}
