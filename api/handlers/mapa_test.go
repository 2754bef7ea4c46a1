package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/corregedoria/procedimentos-api/api/handlers"
	"github.com/corregedoria/procedimentos-api/backend"
	"github.com/corregedoria/procedimentos-api/facade"
	mocksfacade "github.com/corregedoria/procedimentos-api/facade/mocks"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	"github.com/corregedoria/procedimentos-api/models"
)

type pngRasterizer struct {
	err error
}

func (p pngRasterizer) Rasterize(_ context.Context, _ string, largura int) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, largura, 600))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dadosMarco() models.DadosMapa {
	return models.DadosMapa{
		Dados: []models.Processo{
			{ID: "p1", Numero: "001/2025", Tipo: "IPM", Status: "Concluído", Concluido: true},
			{ID: "p2", Numero: "002/2025", Tipo: "IPM", Status: "Em Andamento"},
		},
		Meta: models.MetaMapa{
			Mes:              3,
			Ano:              2025,
			TipoProcesso:     "IPM",
			PeriodoDescricao: "Março/2025",
			TotalProcessos:   2,
			TotalConcluidos:  1,
			TotalEmAndamento: 1,
			DataGeracao:      "2025-04-01T06:00:00Z",
		},
	}
}

func TestMapa_GerarMapaHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal?mes=3&ano=2025&tipo=IPM", nil)

	f := &mocksfacade.Facade{}
	f.On("GerarMapaMensal", mock.Anything, 3, 2025, "IPM").Return(dadosMarco(), nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.GerarMapaHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.RespostaMapa
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Sucesso)
	assert.Len(t, got.Dados, 2)
	assert.Equal(t, 1, got.Meta.TotalConcluidos)
}

func TestMapa_GerarMapaHandlerValidation(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal?mes=13&ano=2025&tipo=IPM", nil)

	f := &mocksfacade.Facade{}
	f.On("GerarMapaMensal", mock.Anything, 13, 2025, "IPM").
		Return(models.DadosMapa{}, &facade.ValidationError{Campo: "mes", Mensagem: "deve estar entre 1 e 12"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.GerarMapaHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	expected, _ := json.Marshal(models.Resposta{Sucesso: false, Mensagem: "mes: deve estar entre 1 e 12"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestMapa_SalvarMapaHandler(t *testing.T) {
	dados := dadosMarco()
	body, _ := json.Marshal(models.MapaSalvo{TipoProcesso: "IPM", Mes: 3, Ano: 2025, Dados: &dados})
	req := httptest.NewRequest("POST", "/api/v1/mapa-mensal", bytes.NewReader(body))

	f := &mocksfacade.Facade{}
	f.On("SalvarMapaMensal", mock.Anything, mock.MatchedBy(func(m models.MapaSalvo) bool {
		return m.TipoProcesso == "IPM" && m.Dados != nil && len(m.Dados.Dados) == 2
	})).Return("mapa-1", nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.SalvarMapaHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got models.RespostaMapaSalvo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "mapa-1", got.ID)
	assert.Equal(t, "Mapa salvo com sucesso", got.Mensagem)
}

func TestMapa_MapasHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapas-mensais", nil)

	mapas := []models.MapaResumo{{ID: "mapa-1", TipoProcesso: "IPM", PeriodoDescricao: "Março/2025", DataCriacao: "2025-04-01T06:00:00Z"}}
	f := &mocksfacade.Facade{}
	f.On("ListarMapasAnteriores", mock.Anything).Return(mapas, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.MapasHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.RespostaMapas
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, mapas, got.Mapas)
}

func TestMapa_MapaSalvoHandlerNotFound(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"mapa_id": "nope"})

	f := &mocksfacade.Facade{}
	f.On("ObterDadosMapaSalvo", mock.Anything, "nope").Return(models.DadosMapa{}, backend.ErrMapaNaoEncontrado)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.MapaSalvoHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	expected, _ := json.Marshal(models.Resposta{Sucesso: false, Mensagem: "Mapa não encontrado"})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestMapa_MapaPDFHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal/mapa-1/pdf", nil)
	req = mux.SetURLVars(req, map[string]string{"mapa_id": "mapa-1"})

	f := &mocksfacade.Facade{}
	f.On("ObterDadosMapaSalvo", mock.Anything, "mapa-1").Return(dadosMarco(), nil)

	m := handlers.Mapa{Facade: f, Exporter: mapamensal.NewExporter(pngRasterizer{}, "")}
	rr := httptest.NewRecorder()
	http.HandlerFunc(m.MapaPDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="mapa_mensal_ipm_marco_2025_2025-04-01.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestMapa_MapaPDFHandlerRenderFailure(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal/mapa-1/pdf", nil)
	req = mux.SetURLVars(req, map[string]string{"mapa_id": "mapa-1"})

	f := &mocksfacade.Facade{}
	f.On("ObterDadosMapaSalvo", mock.Anything, "mapa-1").Return(dadosMarco(), nil)

	m := handlers.Mapa{Facade: f, Exporter: mapamensal.NewExporter(pngRasterizer{err: errors.New("chrome indisponível")}, "")}
	rr := httptest.NewRecorder()
	http.HandlerFunc(m.MapaPDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var got models.Resposta
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.False(t, got.Sucesso)
	assert.Contains(t, got.Mensagem, "Erro ao gerar o PDF do mapa")
}

func TestMapa_MapaPDFHandlerWithoutExporter(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/mapa-mensal/mapa-1/pdf", nil)
	req = mux.SetURLVars(req, map[string]string{"mapa_id": "mapa-1"})

	f := &mocksfacade.Facade{}
	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Mapa{Facade: f}.MapaPDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	f.AssertNotCalled(t, "ObterDadosMapaSalvo", mock.Anything, mock.Anything)
}
