package databases

// go generate: mockery --name CrimeDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const crimeName = "crimes_contravencoes"

// CrimeDatabase contains the methods to use with the crime catalog
type CrimeDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Crime, error)
}

type crimeDatabase struct {
	db DatabaseHelper
}

// NewCrimeDatabase initializes a new instance of crime database with the provided db connection
func NewCrimeDatabase(db DatabaseHelper) CrimeDatabase {
	return &crimeDatabase{
		db: db,
	}
}

func (c *crimeDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Crime, error) {
	var items []models.Crime
	if err := findAll(ctx, c.db, crimeName, filter, &items, opts...); err != nil {
		return nil, err
	}
	return items, nil
}
