package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	"github.com/corregedoria/procedimentos-api/models"
)

// Mapa exposes the monthly map endpoints
type Mapa struct {
	Facade   facade.Facade
	Exporter *mapamensal.Exporter
}

// GerarMapaHandler returns the procedures and aggregate for ?mes=&ano=&tipo=
func (m Mapa) GerarMapaHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mes, _ := strconv.Atoi(q.Get("mes"))
	ano, _ := strconv.Atoi(q.Get("ano"))

	dados, err := m.Facade.GerarMapaMensal(r.Context(), mes, ano, q.Get("tipo"))
	if err != nil {
		responderErro(w, "gerar mapa mensal", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaMapa{Resposta: models.Resposta{Sucesso: true}, Dados: dados.Dados, Meta: dados.Meta})
}

// SalvarMapaHandler stores a generated map
func (m Mapa) SalvarMapaHandler(w http.ResponseWriter, r *http.Request) {
	var mapa models.MapaSalvo
	if err := json.NewDecoder(r.Body).Decode(&mapa); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	id, err := m.Facade.SalvarMapaMensal(r.Context(), mapa)
	if err != nil {
		responderErro(w, "salvar mapa mensal", err)
		return
	}
	writeJSON(w, http.StatusCreated, models.RespostaMapaSalvo{Resposta: models.Resposta{Sucesso: true, Mensagem: "Mapa salvo com sucesso"}, ID: id})
}

// MapasHandler lists the saved maps
func (m Mapa) MapasHandler(w http.ResponseWriter, r *http.Request) {
	mapas, err := m.Facade.ListarMapasAnteriores(r.Context())
	if err != nil {
		responderErro(w, "listar mapas anteriores", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaMapas{Resposta: models.Resposta{Sucesso: true}, Mapas: mapas})
}

// MapaSalvoHandler returns the payload of a saved map
func (m Mapa) MapaSalvoHandler(w http.ResponseWriter, r *http.Request) {
	dados, err := m.Facade.ObterDadosMapaSalvo(r.Context(), mux.Vars(r)["mapa_id"])
	if err != nil {
		responderErro(w, "obter mapa salvo", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaDadosMapaSalvo{Resposta: models.Resposta{Sucesso: true}, Dados: dados})
}

// MapaPDFHandler rebuilds a saved map and streams it as a PDF
func (m Mapa) MapaPDFHandler(w http.ResponseWriter, r *http.Request) {
	if m.Exporter == nil || m.Exporter.Rasterizer == nil {
		config.ErrorStatus("exportação de PDF indisponível", http.StatusServiceUnavailable, w, nil)
		return
	}
	id := mux.Vars(r)["mapa_id"]
	p := mapamensal.NewPipeline(m.Facade, m.Exporter)

	_, arq, err := p.Reopen(r.Context(), id)
	if err != nil {
		responderErro(w, "exportar mapa", err)
		return
	}
	zap.S().Infow("mapa exportado", "id", id, "arquivo", arq.Nome, "bytes", len(arq.Conteudo))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, arq.Nome))
	w.Header().Set("Content-Length", strconv.Itoa(len(arq.Conteudo)))
	w.WriteHeader(http.StatusOK)
	w.Write(arq.Conteudo)
}
