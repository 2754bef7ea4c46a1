package backend

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/databases"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	"github.com/corregedoria/procedimentos-api/models"
)

// GerarMapaMensal returns the procedures of tipo open during the month with
// their aggregate
func (s *Service) GerarMapaMensal(ctx context.Context, mes, ano int, tipo string) (models.DadosMapa, error) {
	filtro := mapamensal.Filtro{Mes: mes, Ano: ano, Tipo: tipo}
	if err := filtro.Validate(); err != nil {
		return models.DadosMapa{}, err
	}
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "data_instauracao", Value: 1}})
	processos, err := s.Processos.Find(ctx, databases.MapaMensalFilter(mes, ano, tipo), opts)
	if err != nil {
		return models.DadosMapa{}, err
	}
	if processos == nil {
		processos = []models.Processo{}
	}
	rel := mapamensal.NovoRelatorio(filtro, processos, s.now())
	return models.DadosMapa{Dados: rel.Processos, Meta: rel.Meta()}, nil
}

// SalvarMapaMensal stores a generated map and returns its new id
func (s *Service) SalvarMapaMensal(ctx context.Context, mapa models.MapaSalvo) (string, error) {
	problemas := map[string]string{}
	if mapa.TipoProcesso == "" {
		problemas["tipo_processo"] = "obrigatório"
	}
	if mapa.Mes < 1 || mapa.Mes > 12 {
		problemas["mes"] = "inválido"
	}
	if mapa.Ano == 0 {
		problemas["ano"] = "obrigatório"
	}
	if mapa.Dados == nil {
		problemas["dados"] = "obrigatório"
	}
	if err := facade.Validar(problemas); err != nil {
		return "", err
	}

	mapa.ID = s.newID()
	if mapa.DataCriacao == 0 {
		mapa.DataCriacao = primitive.NewDateTimeFromTime(s.now())
	}
	if mapa.PeriodoDescricao == "" {
		mapa.PeriodoDescricao = mapamensal.Filtro{Mes: mapa.Mes, Ano: mapa.Ano}.Periodo()
	}

	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()
	if _, err := s.Mapas.InsertOne(ctx, mapa); err != nil {
		return "", err
	}
	zap.S().Infow("mapa mensal salvo", "id", mapa.ID, "tipo", mapa.TipoProcesso, "periodo", mapa.PeriodoDescricao)
	return mapa.ID, nil
}

// ListarMapasAnteriores lists saved maps, newest first, without their payload
func (s *Service) ListarMapasAnteriores(ctx context.Context) ([]models.MapaResumo, error) {
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "data_criacao", Value: -1}}).
		SetProjection(bson.M{"dados": 0}).
		SetLimit(listarLimite)
	mapas, err := s.Mapas.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	resumos := make([]models.MapaResumo, 0, len(mapas))
	for _, m := range mapas {
		resumos = append(resumos, models.MapaResumo{
			ID:               m.ID,
			TipoProcesso:     m.TipoProcesso,
			PeriodoDescricao: m.PeriodoDescricao,
			DataCriacao:      m.DataCriacao.Time().UTC().Format(time.RFC3339),
		})
	}
	return resumos, nil
}

// ObterDadosMapaSalvo returns the payload of a saved map
func (s *Service) ObterDadosMapaSalvo(ctx context.Context, id string) (models.DadosMapa, error) {
	if id == "" {
		return models.DadosMapa{}, &facade.ValidationError{Campo: "id", Mensagem: "obrigatório"}
	}
	ctx, cancel := databases.WithQueryTimeout(ctx)
	defer cancel()

	mapa, err := s.Mapas.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DadosMapa{}, ErrMapaNaoEncontrado
	}
	if err != nil {
		return models.DadosMapa{}, err
	}
	if mapa.Dados == nil {
		return models.DadosMapa{
			Dados: []models.Processo{},
			Meta: models.MetaMapa{
				Mes:              mapa.Mes,
				Ano:              mapa.Ano,
				TipoProcesso:     mapa.TipoProcesso,
				PeriodoDescricao: mapa.PeriodoDescricao,
			},
		}, nil
	}
	dados := *mapa.Dados
	if dados.Dados == nil {
		dados.Dados = []models.Processo{}
	}
	// older documents only carry the period on the map itself
	if dados.Meta.TipoProcesso == "" {
		dados.Meta.TipoProcesso = mapa.TipoProcesso
	}
	if dados.Meta.Mes == 0 && dados.Meta.Ano == 0 {
		dados.Meta.Mes, dados.Meta.Ano = mapa.Mes, mapa.Ano
	}
	if dados.Meta.PeriodoDescricao == "" {
		dados.Meta.PeriodoDescricao = mapa.PeriodoDescricao
	}
	return dados, nil
}
