// Package backend implements the façade functions over MongoDB. It is the
// server side of facade.Client.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/databases"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/indicios"
	"github.com/corregedoria/procedimentos-api/models"
)

// EventoIndiciosAtualizados is published after an officer's indícios are saved
const EventoIndiciosAtualizados = "indicios_atualizados"

// listarLimite caps the saved maps returned by ListarMapasAnteriores
const listarLimite = 100

// ErrMapaNaoEncontrado is returned when no saved map has the requested id
var ErrMapaNaoEncontrado = errors.New("mapa não encontrado")

// Publisher broadcasts events to connected clients
type Publisher interface {
	Publish(evento string, payload interface{})
}

// Service implements facade.Facade over the mongo collections
type Service struct {
	Indicios      databases.IndiciosDatabase
	Crimes        databases.CrimeDatabase
	Transgressoes databases.TransgressaoDatabase
	Infracoes     databases.InfracaoDatabase
	Processos     databases.ProcessoDatabase
	Mapas         databases.MapaDatabase
	Eventos       Publisher

	now   func() time.Time
	newID func() string
}

var _ facade.Facade = (*Service)(nil)

// New creates a Service over db. eventos may be nil.
func New(db databases.DatabaseHelper, eventos Publisher) *Service {
	return &Service{
		Indicios:      databases.NewIndiciosDatabase(db),
		Crimes:        databases.NewCrimeDatabase(db),
		Transgressoes: databases.NewTransgressaoDatabase(db),
		Infracoes:     databases.NewInfracaoDatabase(db),
		Processos:     databases.NewProcessoDatabase(db),
		Mapas:         databases.NewMapaDatabase(db),
		Eventos:       eventos,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// CarregarIndicios returns the officer's indícios, empty when none were saved
func (s *Service) CarregarIndicios(ctx context.Context, pmEnvolvidoID string) (models.Indicios, error) {
	if pmEnvolvidoID == "" {
		return models.Indicios{}, &facade.ValidationError{Campo: "pm_envolvido_id", Mensagem: "obrigatório"}
	}
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	doc, err := s.Indicios.FindOne(ctx, bson.M{"_id": pmEnvolvidoID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return indicios.NewSelection().Indicios(), nil
	}
	if err != nil {
		return models.Indicios{}, err
	}
	return indicios.FromIndicios(doc.Indicios).Indicios(), nil
}

// SalvarIndicios replaces the officer's indícios and notifies connected clients
func (s *Service) SalvarIndicios(ctx context.Context, pmEnvolvidoID string, ind models.Indicios) error {
	if pmEnvolvidoID == "" {
		return &facade.ValidationError{Campo: "pm_envolvido_id", Mensagem: "obrigatório"}
	}
	sel := indicios.FromIndicios(ind)
	ind = sel.Indicios()

	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"indicios":   ind,
		"updated_at": primitive.NewDateTimeFromTime(s.now()),
	}}
	if err := s.Indicios.UpdateOne(ctx, bson.M{"_id": pmEnvolvidoID}, update, options.Update().SetUpsert(true)); err != nil {
		return err
	}
	zap.S().Infow("indícios salvos", "pm_envolvido_id", pmEnvolvidoID, "total", sel.Contadores().Total)

	if s.Eventos != nil {
		s.Eventos.Publish(EventoIndiciosAtualizados, map[string]interface{}{
			"pm_envolvido_id": pmEnvolvidoID,
			"contadores":      sel.Contadores(),
		})
	}
	return nil
}

// CategoriasSugeridas returns the fixed list of suggested categories
func (s *Service) CategoriasSugeridas(context.Context) ([]string, error) {
	return append([]string(nil), models.CategoriasSugeridas...), nil
}

// BuscarCrimes searches active crimes by type, legal provision or text
func (s *Service) BuscarCrimes(ctx context.Context, termo string) ([]models.Crime, error) {
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	filter := databases.TextSearchFilter(termo, "tipo", "dispositivo_legal", "texto_completo")
	crimes, err := s.Crimes.Find(ctx, filter, databases.SearchOpts("dispositivo_legal"))
	if err != nil {
		return nil, err
	}
	if crimes == nil {
		crimes = []models.Crime{}
	}
	return crimes, nil
}

// BuscarRDPM searches active RDPM transgressions, optionally of one severity
func (s *Service) BuscarRDPM(ctx context.Context, termo, gravidade string) ([]models.Transgressao, error) {
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	filter := databases.TextSearchFilter(termo, "inciso", "texto")
	if gravidade != "" {
		filter["gravidade"] = gravidade
	}
	transgressoes, err := s.Transgressoes.Find(ctx, filter, databases.SearchOpts("inciso"))
	if err != nil {
		return nil, err
	}
	if transgressoes == nil {
		transgressoes = []models.Transgressao{}
	}
	return transgressoes, nil
}

// BuscarArt29 searches active article 29 infractions
func (s *Service) BuscarArt29(ctx context.Context, termo string) ([]models.InfracaoArt29, error) {
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	filter := databases.TextSearchFilter(termo, "inciso", "texto")
	infracoes, err := s.Infracoes.Find(ctx, filter, databases.SearchOpts("inciso"))
	if err != nil {
		return nil, err
	}
	if infracoes == nil {
		infracoes = []models.InfracaoArt29{}
	}
	return infracoes, nil
}
