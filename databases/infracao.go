package databases

// go generate: mockery --name InfracaoDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const infracaoName = "infracoes_estatuto_art29"

// InfracaoDatabase contains the methods to use with the infracao catalog
type InfracaoDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InfracaoArt29, error)
}

type infracaoDatabase struct {
	db DatabaseHelper
}

// NewInfracaoDatabase initializes a new instance of infracao database with the provided db connection
func NewInfracaoDatabase(db DatabaseHelper) InfracaoDatabase {
	return &infracaoDatabase{
		db: db,
	}
}

func (c *infracaoDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InfracaoArt29, error) {
	var items []models.InfracaoArt29
	if err := findAll(ctx, c.db, infracaoName, filter, &items, opts...); err != nil {
		return nil, err
	}
	return items, nil
}
