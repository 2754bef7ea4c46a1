package databases

// go generate: mockery --name UsuarioDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/models"
)

const usuarioName = "usuarios"

// UsuarioDatabase contains the methods to use with the usuario database
type UsuarioDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Usuario, error)
}

type usuarioDatabase struct {
	db DatabaseHelper
}

// NewUsuarioDatabase initializes a new instance of usuario database with the provided db connection
func NewUsuarioDatabase(db DatabaseHelper) UsuarioDatabase {
	return &usuarioDatabase{
		db: db,
	}
}

func (u *usuarioDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Usuario, error) {
	usuario := &models.Usuario{}
	err := u.db.Collection(usuarioName).FindOne(ctx, filter, opts...).Decode(&usuario)
	if err != nil {
		return nil, err
	}
	return usuario, nil
}
