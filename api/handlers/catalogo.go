package handlers

import (
	"net/http"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/models"
)

// Catalogo exposes the reference catalog searches
type Catalogo struct {
	Facade facade.Facade
}

// CrimesHandler searches crimes and misdemeanours
func (c Catalogo) CrimesHandler(w http.ResponseWriter, r *http.Request) {
	crimes, err := c.Facade.BuscarCrimes(r.Context(), r.URL.Query().Get("termo"))
	if err != nil {
		responderErro(w, "buscar crimes", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaCrimes{Resposta: models.Resposta{Sucesso: true}, Crimes: crimes})
}

// RDPMHandler searches RDPM transgressions, optionally filtered by gravidade
func (c Catalogo) RDPMHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	transgressoes, err := c.Facade.BuscarRDPM(r.Context(), q.Get("termo"), q.Get("gravidade"))
	if err != nil {
		responderErro(w, "buscar transgressões", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaTransgressoes{Resposta: models.Resposta{Sucesso: true}, Transgressoes: transgressoes})
}

// Art29Handler searches article 29 infractions
func (c Catalogo) Art29Handler(w http.ResponseWriter, r *http.Request) {
	infracoes, err := c.Facade.BuscarArt29(r.Context(), r.URL.Query().Get("termo"))
	if err != nil {
		responderErro(w, "buscar infrações", err)
		return
	}
	writeJSON(w, http.StatusOK, models.RespostaInfracoes{Resposta: models.Resposta{Sucesso: true}, Infracoes: infracoes})
}
