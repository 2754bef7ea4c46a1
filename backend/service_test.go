package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corregedoria/procedimentos-api/databases/mocks"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/indicios"
	"github.com/corregedoria/procedimentos-api/models"
)

type recordingPublisher struct {
	mu      sync.Mutex
	eventos []string
	payload []interface{}
}

func (p *recordingPublisher) Publish(evento string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventos = append(p.eventos, evento)
	p.payload = append(p.payload, payload)
}

var agora = time.Date(2025, time.April, 1, 6, 0, 0, 0, time.UTC)

func newService(collection string, conn *mocks.CollectionHelper, pub Publisher) *Service {
	db := &mocks.DatabaseHelper{}
	db.On("Collection", collection).Return(conn)
	s := New(db, pub)
	s.now = func() time.Time { return agora }
	s.newID = func() string { return "0f8fad5b-d9cb-469f-a165-70867728950e" }
	return s
}

func TestService_CarregarIndicios(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	sr := &mocks.SingleResultHelper{}
	sr.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.IndiciosPM)
		(*arg).Indicios = models.Indicios{
			Categorias: []string{"Abuso de autoridade", "Abuso de autoridade"},
			Crimes:     []models.CrimeRef{{ID: "A", Texto: "Art. 209"}},
		}
	})
	conn.On("FindOne", mock.Anything, bson.M{"_id": "pm-1"}).Return(sr)
	s := newService("indicios_pm_envolvido", conn, nil)

	ind, err := s.CarregarIndicios(context.Background(), "pm-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Abuso de autoridade"}, ind.Categorias)
	assert.Len(t, ind.Crimes, 1)
	assert.NotNil(t, ind.RDPM)
	assert.NotNil(t, ind.Art29)
}

func TestService_CarregarIndiciosNotFound(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	sr := &mocks.SingleResultHelper{}
	sr.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	s := newService("indicios_pm_envolvido", conn, nil)

	ind, err := s.CarregarIndicios(context.Background(), "pm-2")
	require.NoError(t, err)
	assert.True(t, ind.Empty())
	assert.NotNil(t, ind.Categorias)
}

func TestService_CarregarIndiciosFailure(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	sr := &mocks.SingleResultHelper{}
	sr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	s := newService("indicios_pm_envolvido", conn, nil)

	_, err := s.CarregarIndicios(context.Background(), "pm-2")
	assert.EqualError(t, err, "mocked-error")
}

func TestService_CarregarIndiciosRequiresID(t *testing.T) {
	s := newService("indicios_pm_envolvido", &mocks.CollectionHelper{}, nil)

	_, err := s.CarregarIndicios(context.Background(), "")
	var ve *facade.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestService_SalvarIndicios(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	var update bson.M
	conn.On("UpdateOne", mock.Anything, bson.M{"_id": "pm-1"}, mock.Anything, mock.AnythingOfType("*options.UpdateOptions")).
		Run(func(args mock.Arguments) {
			update = args.Get(2).(bson.M)
			opts := args.Get(3).(*options.UpdateOptions)
			require.NotNil(t, opts.Upsert)
			assert.True(t, *opts.Upsert)
		}).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)
	pub := &recordingPublisher{}
	s := newService("indicios_pm_envolvido", conn, pub)

	err := s.SalvarIndicios(context.Background(), "pm-1", models.Indicios{
		Categorias: []string{"Não houve indícios"},
		RDPM:       []models.RDPMRef{{ID: "T15", Texto: "XV", Gravidade: "grave"}, {ID: "T15", Texto: "XV", Gravidade: "grave"}},
	})
	require.NoError(t, err)

	set := update["$set"].(bson.M)
	saved := set["indicios"].(models.Indicios)
	assert.Len(t, saved.RDPM, 1)
	assert.NotNil(t, saved.Crimes)
	assert.Equal(t, primitive.NewDateTimeFromTime(agora), set["updated_at"])

	require.Equal(t, []string{EventoIndiciosAtualizados}, pub.eventos)
	payload := pub.payload[0].(map[string]interface{})
	assert.Equal(t, "pm-1", payload["pm_envolvido_id"])
	assert.Equal(t, 2, payload["contadores"].(indicios.Contadores).Total)
}

func TestService_SalvarIndiciosFailureDoesNotPublish(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	pub := &recordingPublisher{}
	s := newService("indicios_pm_envolvido", conn, pub)

	err := s.SalvarIndicios(context.Background(), "pm-1", models.Indicios{})
	assert.Error(t, err)
	assert.Empty(t, pub.eventos)
}

func TestService_CategoriasSugeridas(t *testing.T) {
	s := newService("indicios_pm_envolvido", &mocks.CollectionHelper{}, nil)

	cats, err := s.CategoriasSugeridas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CategoriasSugeridas, cats)

	cats[0] = "alterado"
	assert.NotEqual(t, "alterado", models.CategoriasSugeridas[0])
}

func findReturning(conn *mocks.CollectionHelper, fill func(args mock.Arguments)) *mocks.CursorHelper {
	cur := &mocks.CursorHelper{}
	cur.On("All", mock.Anything, mock.Anything).Return(nil).Run(fill)
	cur.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cur, nil)
	return cur
}

func TestService_BuscarCrimes(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	findReturning(conn, func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Crime)
		*arg = []models.Crime{{ID: "A", DispositivoLegal: "Art. 209", Ativo: true}}
	})
	s := newService("crimes_contravencoes", conn, nil)

	crimes, err := s.BuscarCrimes(context.Background(), "lesão")
	require.NoError(t, err)
	assert.Len(t, crimes, 1)

	filter := conn.Calls[0].Arguments.Get(1).(bson.M)
	assert.Equal(t, true, filter["ativo"])
	assert.Len(t, filter["$or"], 3)
}

func TestService_BuscarCrimesEmpty(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	findReturning(conn, func(mock.Arguments) {})
	s := newService("crimes_contravencoes", conn, nil)

	crimes, err := s.BuscarCrimes(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, crimes)
	assert.Empty(t, crimes)
}

func TestService_BuscarRDPMGravidade(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	findReturning(conn, func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Transgressao)
		*arg = []models.Transgressao{{ID: "T15", Inciso: "XV", Gravidade: "grave"}}
	})
	s := newService("transgressoes_rdpm", conn, nil)

	out, err := s.BuscarRDPM(context.Background(), "falt", "grave")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	filter := conn.Calls[0].Arguments.Get(1).(bson.M)
	assert.Equal(t, "grave", filter["gravidade"])
}

func TestService_BuscarRDPMWithoutGravidade(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	findReturning(conn, func(mock.Arguments) {})
	s := newService("transgressoes_rdpm", conn, nil)

	_, err := s.BuscarRDPM(context.Background(), "", "")
	require.NoError(t, err)

	filter := conn.Calls[0].Arguments.Get(1).(bson.M)
	assert.NotContains(t, filter, "gravidade")
	assert.NotContains(t, filter, "$or")
}

func TestService_BuscarArt29Failure(t *testing.T) {
	conn := &mocks.CollectionHelper{}
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	s := newService("infracoes_estatuto_art29", conn, nil)

	_, err := s.BuscarArt29(context.Background(), "ordem")
	assert.EqualError(t, err, "mocked-error")
}
