package databases

// go generate: mockery --name ProcessoDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const processoName = "processos"

// ProcessoDatabase contains the methods to use with the processo database
type ProcessoDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Processo, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Processo, error)
}

type processoDatabase struct {
	db DatabaseHelper
}

// NewProcessoDatabase initializes a new instance of processo database with the provided db connection
func NewProcessoDatabase(db DatabaseHelper) ProcessoDatabase {
	return &processoDatabase{
		db: db,
	}
}

func (c *processoDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Processo, error) {
	processo := &models.Processo{}
	err := c.db.Collection(processoName).FindOne(ctx, filter, opts...).Decode(&processo)
	if err != nil {
		return nil, err
	}
	return processo, nil
}

func (c *processoDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Processo, error) {
	var processos []models.Processo
	if err := findAll(ctx, c.db, processoName, filter, &processos, opts...); err != nil {
		return nil, err
	}
	return processos, nil
}

// MapaMensalFilter selects the procedures of tipo that were open at some point
// during the given month: instaurated before the month ended and not concluded
// before it started.
func MapaMensalFilter(mes, ano int, tipo string) bson.M {
	inicio := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	fim := inicio.AddDate(0, 1, 0)
	return bson.M{
		"tipo":             tipo,
		"data_instauracao": bson.M{"$lt": primitive.NewDateTimeFromTime(fim)},
		"$or": bson.A{
			bson.M{"concluido": false},
			bson.M{"data_conclusao": bson.M{"$gte": primitive.NewDateTimeFromTime(inicio)}},
		},
	}
}
