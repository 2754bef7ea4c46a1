package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/models"
)

// Indicios exposes the per-officer evidence endpoints
type Indicios struct {
	Facade facade.Facade
}

// IndiciosHandler returns the indícios of one pm_envolvido
func (i Indicios) IndiciosHandler(w http.ResponseWriter, r *http.Request) {
	pmID := mux.Vars(r)["pm_envolvido_id"]

	ind, err := i.Facade.CarregarIndicios(r.Context(), pmID)
	if err != nil {
		responderErro(w, "carregar indícios", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaIndicios{Resposta: models.Resposta{Sucesso: true}, Indicios: ind})
}

// SalvarIndiciosHandler replaces the indícios of one pm_envolvido
func (i Indicios) SalvarIndiciosHandler(w http.ResponseWriter, r *http.Request) {
	pmID := mux.Vars(r)["pm_envolvido_id"]

	var ind models.Indicios
	if err := json.NewDecoder(r.Body).Decode(&ind); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := i.Facade.SalvarIndicios(r.Context(), pmID, ind); err != nil {
		responderErro(w, "salvar indícios", err)
		return
	}
	writeJSON(w, http.StatusOK, models.Resposta{Sucesso: true, Mensagem: "Indícios salvos com sucesso"})
}

// CategoriasHandler returns the suggested categories
func (i Indicios) CategoriasHandler(w http.ResponseWriter, r *http.Request) {
	cats, err := i.Facade.CategoriasSugeridas(r.Context())
	if err != nil {
		responderErro(w, "listar categorias", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaCategorias{Resposta: models.Resposta{Sucesso: true}, Categorias: cats})
}
