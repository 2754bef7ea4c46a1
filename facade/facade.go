// Package facade defines the remote procedure façade the controllers talk to,
// its HTTP client and the error taxonomy shared by every caller.
package facade

import (
	"context"

	"github.com/corregedoria/procedimentos-api/models"
)

// Facade exposes the backend functions consumed by the indícios controller and
// the monthly map pipeline. Every method blocks until the call resolves.
type Facade interface {
	CarregarIndicios(ctx context.Context, pmEnvolvidoID string) (models.Indicios, error)
	SalvarIndicios(ctx context.Context, pmEnvolvidoID string, indicios models.Indicios) error
	CategoriasSugeridas(ctx context.Context) ([]string, error)
	BuscarCrimes(ctx context.Context, termo string) ([]models.Crime, error)
	BuscarRDPM(ctx context.Context, termo, gravidade string) ([]models.Transgressao, error)
	BuscarArt29(ctx context.Context, termo string) ([]models.InfracaoArt29, error)

	GerarMapaMensal(ctx context.Context, mes, ano int, tipo string) (models.DadosMapa, error)
	SalvarMapaMensal(ctx context.Context, mapa models.MapaSalvo) (string, error)
	ListarMapasAnteriores(ctx context.Context) ([]models.MapaResumo, error)
	ObterDadosMapaSalvo(ctx context.Context, id string) (models.DadosMapa, error)
}
