package mapamensal

import (
	"fmt"
	"time"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/models"
)

var meses = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Filtro selects the procedures of one process type within one month
type Filtro struct {
	Mes  int
	Ano  int
	Tipo string
}

// Validate reports missing or out of range filters before any call is made
func (f Filtro) Validate() error {
	problemas := map[string]string{}
	switch {
	case f.Mes == 0:
		problemas["mes"] = "obrigatório"
	case f.Mes < 1 || f.Mes > 12:
		problemas["mes"] = "deve estar entre 1 e 12"
	}
	switch {
	case f.Ano == 0:
		problemas["ano"] = "obrigatório"
	case f.Ano < 1900 || f.Ano > 9999:
		problemas["ano"] = "inválido"
	}
	if f.Tipo == "" {
		problemas["tipo"] = "obrigatório"
	}
	return facade.Validar(problemas)
}

// Periodo describes the filter's month, e.g. "Março/2025"
func (f Filtro) Periodo() string {
	if f.Mes < 1 || f.Mes > 12 {
		return fmt.Sprintf("%02d/%d", f.Mes, f.Ano)
	}
	return fmt.Sprintf("%s/%d", meses[f.Mes-1], f.Ano)
}

// Titulo is the report title for the filter
func (f Filtro) Titulo() string {
	return titulo(f.Tipo, f.Periodo())
}

func titulo(tipo, periodo string) string {
	return fmt.Sprintf("Mapa Mensal - %s - %s", tipo, periodo)
}

// MesAnterior returns the month before t, in t's location
func MesAnterior(t time.Time) (mes, ano int) {
	p := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
	return int(p.Month()), p.Year()
}

// Agregado is the summary computed from the case records of a report
type Agregado struct {
	Total       int
	Concluidos  int
	EmAndamento int
	PorStatus   map[string]int
}

// Secao groups the detail blocks of one status for print pagination
type Secao struct {
	Status    string
	Titulo    string
	Processos []models.Processo
}

// Concluido classifies a record, honouring legacy status strings
func Concluido(p models.Processo) bool {
	return p.Concluido || NormalizeStatus(p.Status) == StatusConcluido
}

// Normalizar returns the records with status and completion made consistent
func Normalizar(processos []models.Processo) []models.Processo {
	out := make([]models.Processo, len(processos))
	for i, p := range processos {
		p.Concluido = Concluido(p)
		if p.Concluido {
			p.Status = StatusConcluido
		} else {
			p.Status = StatusEmAndamento
		}
		out[i] = p
	}
	return out
}

// Agregar counts and groups the records in a single pass. Sections come in
// print order: in progress first, then completed.
func Agregar(processos []models.Processo) (Agregado, []Secao) {
	ag := Agregado{PorStatus: map[string]int{}}
	andamento := Secao{Status: StatusEmAndamento, Titulo: "Processos em andamento"}
	concluidos := Secao{Status: StatusConcluido, Titulo: "Processos concluídos"}

	for _, p := range processos {
		ag.Total++
		if Concluido(p) {
			ag.Concluidos++
			ag.PorStatus[StatusConcluido]++
			concluidos.Processos = append(concluidos.Processos, p)
			continue
		}
		ag.EmAndamento++
		ag.PorStatus[StatusEmAndamento]++
		andamento.Processos = append(andamento.Processos, p)
	}
	return ag, []Secao{andamento, concluidos}
}

// Relatorio is a generated monthly map
type Relatorio struct {
	Filtro    Filtro
	Titulo    string
	Periodo   string
	GeradoEm  time.Time
	Processos []models.Processo
	Agregado  Agregado
	Secoes    []Secao
}

// Vazio reports whether the report has no record
func (r *Relatorio) Vazio() bool {
	return r == nil || r.Agregado.Total == 0
}

// NovoRelatorio builds a report from the records returned for filtro
func NovoRelatorio(filtro Filtro, processos []models.Processo, geradoEm time.Time) *Relatorio {
	processos = Normalizar(processos)
	ag, secoes := Agregar(processos)
	return &Relatorio{
		Filtro:    filtro,
		Titulo:    filtro.Titulo(),
		Periodo:   filtro.Periodo(),
		GeradoEm:  geradoEm,
		Processos: processos,
		Agregado:  ag,
		Secoes:    secoes,
	}
}

// Meta returns the aggregate fields sent along with the records
func (r *Relatorio) Meta() models.MetaMapa {
	return models.MetaMapa{
		Mes:              r.Filtro.Mes,
		Ano:              r.Filtro.Ano,
		TipoProcesso:     r.Filtro.Tipo,
		PeriodoDescricao: r.Periodo,
		TotalProcessos:   r.Agregado.Total,
		TotalConcluidos:  r.Agregado.Concluidos,
		TotalEmAndamento: r.Agregado.EmAndamento,
		DataGeracao:      r.GeradoEm.Format(time.RFC3339),
	}
}

// NomeArquivo is the deterministic name of the exported PDF
func (r *Relatorio) NomeArquivo() string {
	return NomeArquivo(r.Titulo, r.GeradoEm)
}

// NomeArquivo builds "<title slug>_<YYYY-MM-DD>.pdf"
func NomeArquivo(titulo string, t time.Time) string {
	return fmt.Sprintf("%s_%s.pdf", slug(titulo), t.Format("2006-01-02"))
}
