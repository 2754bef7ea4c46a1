package databases

// go generate: mockery --name MapaDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const mapaName = "mapas_mensais"

// MapaDatabase contains the methods to use with the saved monthly maps
type MapaDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MapaSalvo, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MapaSalvo, error)
	InsertOne(ctx context.Context, mapa models.MapaSalvo) (InsertOneResultHelper, error)
}

type mapaDatabase struct {
	db DatabaseHelper
}

// NewMapaDatabase initializes a new instance of mapa database with the provided db connection
func NewMapaDatabase(db DatabaseHelper) MapaDatabase {
	return &mapaDatabase{
		db: db,
	}
}

func (c *mapaDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MapaSalvo, error) {
	mapa := &models.MapaSalvo{}
	err := c.db.Collection(mapaName).FindOne(ctx, filter, opts...).Decode(&mapa)
	if err != nil {
		return nil, err
	}
	return mapa, nil
}

func (c *mapaDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MapaSalvo, error) {
	var mapas []models.MapaSalvo
	if err := findAll(ctx, c.db, mapaName, filter, &mapas, opts...); err != nil {
		return nil, err
	}
	return mapas, nil
}

func (c *mapaDatabase) InsertOne(ctx context.Context, mapa models.MapaSalvo) (InsertOneResultHelper, error) {
	return c.db.Collection(mapaName).InsertOne(ctx, mapa)
}
