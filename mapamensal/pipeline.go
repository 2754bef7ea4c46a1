package mapamensal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/models"
)

// Arquivo is an exported report
type Arquivo struct {
	Nome     string
	Conteudo []byte
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithNotifier sets the user-facing notification path
func WithNotifier(n facade.Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithClock overrides the generation timestamp source
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline generates, exports, persists and reopens monthly maps. It holds the
// report currently shown and the list of previously saved ones.
type Pipeline struct {
	facade   facade.Facade
	exporter *Exporter
	notifier facade.Notifier
	now      func() time.Time

	mu         sync.Mutex
	atual      *Relatorio
	anteriores []models.MapaResumo
}

// NewPipeline returns a pipeline over f. exporter may be nil when PDF export
// is not available.
func NewPipeline(f facade.Facade, exporter *Exporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		facade:   f,
		exporter: exporter,
		notifier: facade.LogNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Atual returns the report currently shown, nil when none
func (p *Pipeline) Atual() *Relatorio {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.atual
}

// Anteriores returns the last fetched list of saved reports
func (p *Pipeline) Anteriores() []models.MapaResumo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.MapaResumo(nil), p.anteriores...)
}

// HTML renders the report currently shown
func (p *Pipeline) HTML() (string, error) {
	return RenderHTML(p.Atual())
}

// Generate fetches the records matching filtro and makes the resulting report
// current. On failure the user is notified and the current report is cleared.
func (p *Pipeline) Generate(ctx context.Context, filtro Filtro) (*Relatorio, error) {
	if err := filtro.Validate(); err != nil {
		return nil, facade.Notify(p.notifier, err)
	}

	dados, err := p.facade.GerarMapaMensal(ctx, filtro.Mes, filtro.Ano, filtro.Tipo)
	if err != nil {
		p.mu.Lock()
		p.atual = nil
		p.mu.Unlock()
		logger().Errorw("erro ao gerar mapa mensal", "mes", filtro.Mes, "ano", filtro.Ano, "tipo", filtro.Tipo, "error", err)
		return nil, facade.Notify(p.notifier, err)
	}

	rel := NovoRelatorio(filtro, dados.Dados, p.now())
	p.mu.Lock()
	p.atual = rel
	p.mu.Unlock()
	if rel.Vazio() {
		p.notifier.Sucesso(MensagemVazio)
	}
	return rel, nil
}

// Export writes rel as a PDF. A failure leaves the current report untouched.
func (p *Pipeline) Export(ctx context.Context, rel *Relatorio) (Arquivo, error) {
	if rel == nil {
		return Arquivo{}, facade.Notify(p.notifier, &facade.ValidationError{Mensagem: "gere o mapa antes de exportar"})
	}
	conteudo, err := p.exporter.Export(ctx, rel)
	if err != nil {
		logger().Errorw("erro ao exportar mapa mensal", "titulo", rel.Titulo, "error", err)
		return Arquivo{}, facade.Notify(p.notifier, err)
	}
	return Arquivo{Nome: rel.NomeArquivo(), Conteudo: conteudo}, nil
}

// Persist saves the record set of rel and refreshes the previous-reports list
func (p *Pipeline) Persist(ctx context.Context, rel *Relatorio) (string, error) {
	if rel == nil {
		return "", facade.Notify(p.notifier, &facade.ValidationError{Mensagem: "gere o mapa antes de salvar"})
	}
	meta := rel.Meta()
	mapa := models.MapaSalvo{
		TipoProcesso:     rel.Filtro.Tipo,
		Mes:              rel.Filtro.Mes,
		Ano:              rel.Filtro.Ano,
		PeriodoDescricao: rel.Periodo,
		DataCriacao:      primitive.NewDateTimeFromTime(rel.GeradoEm),
		Dados:            &models.DadosMapa{Dados: rel.Processos, Meta: meta},
	}
	id, err := p.facade.SalvarMapaMensal(ctx, mapa)
	if err != nil {
		return "", facade.Notify(p.notifier, err)
	}
	p.notifier.Sucesso("Mapa salvo com sucesso")
	return id, p.RefreshAnteriores(ctx)
}

// RefreshAnteriores reloads the list of saved reports
func (p *Pipeline) RefreshAnteriores(ctx context.Context) error {
	mapas, err := p.facade.ListarMapasAnteriores(ctx)
	if err != nil {
		return facade.Notify(p.notifier, err)
	}
	p.mu.Lock()
	p.anteriores = mapas
	p.mu.Unlock()
	return nil
}

// Load rebuilds a saved report without going through the live query
func (p *Pipeline) Load(ctx context.Context, id string) (*Relatorio, error) {
	if id == "" {
		return nil, facade.Notify(p.notifier, &facade.ValidationError{Campo: "id", Mensagem: "obrigatório"})
	}
	dados, err := p.facade.ObterDadosMapaSalvo(ctx, id)
	if err != nil {
		return nil, facade.Notify(p.notifier, err)
	}
	filtro := Filtro{Mes: dados.Meta.Mes, Ano: dados.Meta.Ano, Tipo: dados.Meta.TipoProcesso}
	geradoEm := p.now()
	if dados.Meta.DataGeracao != "" {
		if t, err := time.Parse(time.RFC3339, dados.Meta.DataGeracao); err == nil {
			geradoEm = t
		}
	}
	rel := NovoRelatorio(filtro, dados.Dados, geradoEm)
	if dados.Meta.PeriodoDescricao != "" {
		rel.Periodo = dados.Meta.PeriodoDescricao
		rel.Titulo = titulo(filtro.Tipo, rel.Periodo)
	}
	return rel, nil
}

// Reopen loads a saved report and exports it. The rebuilt report is returned
// even when the export fails.
func (p *Pipeline) Reopen(ctx context.Context, id string) (*Relatorio, Arquivo, error) {
	rel, err := p.Load(ctx, id)
	if err != nil {
		return nil, Arquivo{}, err
	}
	arq, err := p.Export(ctx, rel)
	if err != nil {
		return rel, Arquivo{}, fmt.Errorf("reabrir mapa %s: %w", id, err)
	}
	return rel, arq, nil
}
