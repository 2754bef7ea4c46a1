package databases

// go generate: mockery --name IndiciosDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const indiciosName = "indicios_pm_envolvido"

// IndiciosDatabase contains the methods to use with the indicios database
type IndiciosDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.IndiciosPM, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type indiciosDatabase struct {
	db DatabaseHelper
}

// NewIndiciosDatabase initializes a new instance of indicios database with the provided db connection
func NewIndiciosDatabase(db DatabaseHelper) IndiciosDatabase {
	return &indiciosDatabase{
		db: db,
	}
}

func (c *indiciosDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.IndiciosPM, error) {
	indicios := &models.IndiciosPM{}
	err := c.db.Collection(indiciosName).FindOne(ctx, filter, opts...).Decode(&indicios)
	if err != nil {
		return nil, err
	}
	return indicios, nil
}

func (c *indiciosDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(indiciosName).UpdateOne(ctx, filter, update, opts...)
	return err
}
