package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/corregedoria/procedimentos-api/backend"
	"github.com/corregedoria/procedimentos-api/config"
	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
)

// writeJSON marshals v and writes it with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// responderErro maps a façade error to the failure envelope
func responderErro(w http.ResponseWriter, operacao string, err error) {
	var ve *facade.ValidationError
	var re *mapamensal.RenderError
	switch {
	case errors.As(err, &ve):
		config.ErrorStatus(ve.Error(), http.StatusBadRequest, w, nil)
	case errors.Is(err, backend.ErrMapaNaoEncontrado):
		config.ErrorStatus("Mapa não encontrado", http.StatusNotFound, w, nil)
	case errors.As(err, &re):
		config.ErrorStatus("Erro ao gerar o PDF do mapa", http.StatusInternalServerError, w, err)
	default:
		config.ErrorStatus("Erro ao "+operacao, http.StatusInternalServerError, w, err)
	}
}
