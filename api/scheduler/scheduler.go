package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/mapamensal"
	templates "github.com/corregedoria/procedimentos-api/templates/html"
)

// MapaMensalSpec runs the monthly map job at 06:00 UTC on the first day of the month
const MapaMensalSpec = "0 6 1 * *"

// Anexo is a file attached to an outgoing email
type Anexo struct {
	Nome     string
	Tipo     string
	Conteudo []byte
}

// Mailer delivers emails to a list of recipients
type Mailer interface {
	Send(ctx context.Context, para []string, assunto, html, texto string, anexos ...Anexo) error
}

// Archiver stores an exported file and returns its public URL
type Archiver interface {
	Upload(ctx context.Context, nome string, conteudo []byte) (string, error)
}

// Scheduler handles the periodic generation of the monthly maps
type Scheduler struct {
	cron *cron.Cron

	Facade        facade.Facade
	Exporter      *mapamensal.Exporter
	Mailer        Mailer
	Archiver      Archiver
	Tipos         []string
	Destinatarios []string

	now func() time.Time
}

// NewScheduler creates a new scheduler instance. Exporter, mailer and
// archiver are optional; the matching step is skipped when nil.
func NewScheduler(f facade.Facade, exporter *mapamensal.Exporter, mailer Mailer, archiver Archiver, tipos, destinatarios []string) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(time.UTC)),
		Facade:        f,
		Exporter:      exporter,
		Mailer:        mailer,
		Archiver:      archiver,
		Tipos:         tipos,
		Destinatarios: destinatarios,
		now:           time.Now,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(MapaMensalSpec, s.mapasMensais); err != nil {
		zap.S().Errorw("failed to register monthly map job", "error", err)
		return err
	}
	s.cron.Start()
	zap.S().Infow("scheduler started", "spec", MapaMensalSpec, "tipos", s.Tipos)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

func (s *Scheduler) mapasMensais() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	if err := s.RunMapasMensais(ctx); err != nil {
		zap.S().Errorw("monthly map job finished with errors", "error", err)
	}
}

// RunMapasMensais generates, saves, exports, archives and mails the previous
// month's map of every configured process type
func (s *Scheduler) RunMapasMensais(ctx context.Context) error {
	mes, ano := mapamensal.MesAnterior(s.now().UTC())
	zap.S().Infow("running monthly map job", "mes", mes, "ano", ano, "tipos", s.Tipos)

	var errs []error
	for _, tipo := range s.Tipos {
		if err := s.mapaMensal(ctx, mapamensal.Filtro{Mes: mes, Ano: ano, Tipo: tipo}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tipo, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) mapaMensal(ctx context.Context, filtro mapamensal.Filtro) error {
	p := mapamensal.NewPipeline(s.Facade, s.Exporter, mapamensal.WithClock(s.now))

	rel, err := p.Generate(ctx, filtro)
	if err != nil {
		s.falha(ctx, filtro, err)
		return err
	}
	id, err := p.Persist(ctx, rel)
	if err != nil && id == "" {
		s.falha(ctx, filtro, err)
		return err
	}
	zap.S().Infow("monthly map saved", "id", id, "tipo", filtro.Tipo, "total", rel.Agregado.Total)

	dados := templates.MapaEmailData{
		Titulo:      rel.Titulo,
		Periodo:     rel.Periodo,
		Total:       rel.Agregado.Total,
		Concluidos:  rel.Agregado.Concluidos,
		EmAndamento: rel.Agregado.EmAndamento,
	}
	var anexos []Anexo
	if s.Exporter != nil {
		arq, err := p.Export(ctx, rel)
		if err != nil {
			zap.S().Errorw("failed to export monthly map", "id", id, "error", err)
		} else {
			if s.Archiver != nil {
				link, err := s.Archiver.Upload(ctx, arq.Nome, arq.Conteudo)
				if err != nil {
					zap.S().Errorw("failed to archive monthly map", "id", id, "error", err)
				}
				dados.Link = link
			}
			if dados.Link == "" {
				anexos = append(anexos, Anexo{Nome: arq.Nome, Tipo: "application/pdf", Conteudo: arq.Conteudo})
				dados.Anexo = true
			}
		}
	}

	if s.Mailer == nil || len(s.Destinatarios) == 0 {
		return nil
	}
	return s.Mailer.Send(ctx, s.Destinatarios, rel.Titulo,
		templates.RenderMapaMensalEmail(dados), templates.RenderMapaMensalText(dados), anexos...)
}

// falha mails the recipients that a map could not be produced
func (s *Scheduler) falha(ctx context.Context, filtro mapamensal.Filtro, cause error) {
	zap.S().Errorw("failed to produce monthly map", "tipo", filtro.Tipo, "periodo", filtro.Periodo(), "error", cause)
	if s.Mailer == nil || len(s.Destinatarios) == 0 {
		return
	}
	assunto := "Falha ao gerar " + filtro.Titulo()
	corpo := fmt.Sprintf("Não foi possível gerar o mapa mensal de %s (%s).\n\nMotivo: %s",
		filtro.Tipo, filtro.Periodo(), facade.Mensagem(cause))
	if err := s.Mailer.Send(ctx, s.Destinatarios, assunto, templates.RenderGenericEmail(assunto, corpo), corpo); err != nil {
		zap.S().Errorw("failed to send failure email", "error", err)
	}
}
