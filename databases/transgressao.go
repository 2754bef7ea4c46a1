package databases

// go generate: mockery --name TransgressaoDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const transgressaoName = "transgressoes_rdpm"

// TransgressaoDatabase contains the methods to use with the transgressao catalog
type TransgressaoDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Transgressao, error)
}

type transgressaoDatabase struct {
	db DatabaseHelper
}

// NewTransgressaoDatabase initializes a new instance of transgressao database with the provided db connection
func NewTransgressaoDatabase(db DatabaseHelper) TransgressaoDatabase {
	return &transgressaoDatabase{
		db: db,
	}
}

func (c *transgressaoDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Transgressao, error) {
	var items []models.Transgressao
	if err := findAll(ctx, c.db, transgressaoName, filter, &items, opts...); err != nil {
		return nil, err
	}
	return items, nil
}
