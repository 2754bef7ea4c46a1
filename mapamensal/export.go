package mapamensal

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/go-pdf/fpdf"
)

const (
	paginaLargura = 210.0
	paginaAltura  = 297.0
	margem        = 10.0
	cabecalho     = 32.0

	// LarguraPadrao is the CSS viewport width used to rasterise the report
	LarguraPadrao = 1024
)

// RenderError reports a failure while rasterising or writing the PDF
type RenderError struct {
	Etapa string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("erro ao gerar %s: %v", e.Etapa, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Rasterizer converts an HTML document into a PNG image of the full page
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, largura int) ([]byte, error)
}

// Exporter writes reports as A4 PDFs
type Exporter struct {
	Rasterizer Rasterizer
	Logo       []byte
	Largura    int
}

// NewExporter returns an exporter using r. logoPath is optional; an unreadable
// logo only drops it from the letterhead.
func NewExporter(r Rasterizer, logoPath string) *Exporter {
	e := &Exporter{Rasterizer: r, Largura: LarguraPadrao}
	if logoPath != "" {
		logo, err := os.ReadFile(logoPath)
		if err != nil {
			logger().Warnw("logo não carregado", "path", logoPath, "error", err)
		} else {
			e.Logo = logo
		}
	}
	return e
}

// Export renders, rasterises and paginates rel into PDF bytes
func (e *Exporter) Export(ctx context.Context, rel *Relatorio) ([]byte, error) {
	pdf, err := e.documento(ctx, rel)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Etapa: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

func (e *Exporter) documento(ctx context.Context, rel *Relatorio) (*fpdf.Fpdf, error) {
	if e == nil || e.Rasterizer == nil {
		return nil, &RenderError{Etapa: "imagem", Err: fmt.Errorf("rasterizador não configurado")}
	}
	html, err := RenderHTML(rel)
	if err != nil {
		return nil, &RenderError{Etapa: "html", Err: err}
	}
	largura := e.Largura
	if largura <= 0 {
		largura = LarguraPadrao
	}
	img, err := e.Rasterizer.Rasterize(ctx, html, largura)
	if err != nil {
		return nil, &RenderError{Etapa: "imagem", Err: err}
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, &RenderError{Etapa: "imagem", Err: err}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, &RenderError{Etapa: "imagem", Err: fmt.Errorf("imagem vazia")}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margem, margem, margem)
	pdf.SetAutoPageBreak(false, margem)
	pdf.SetTitle(rel.Titulo, true)
	pdf.AddPage()
	e.timbre(pdf, rel)

	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader("conteudo", opts, bytes.NewReader(img))

	conteudoLargura := paginaLargura - 2*margem
	conteudoAltura := float64(cfg.Height) * conteudoLargura / float64(cfg.Width)

	// page 1 shows the image from the letterhead down, later pages continue
	// at the offset already consumed
	primeira := paginaAltura - margem - cabecalho
	seguintes := paginaAltura - 2*margem
	pdf.ClipRect(margem, cabecalho, conteudoLargura, primeira, false)
	pdf.ImageOptions("conteudo", margem, cabecalho, conteudoLargura, conteudoAltura, false, opts, 0, "")
	pdf.ClipEnd()
	for pagina := 1; pagina < Paginas(cfg.Width, cfg.Height); pagina++ {
		usado := primeira + float64(pagina-1)*seguintes
		pdf.AddPage()
		pdf.ClipRect(margem, margem, conteudoLargura, seguintes, false)
		pdf.ImageOptions("conteudo", margem, margem-usado, conteudoLargura, conteudoAltura, false, opts, 0, "")
		pdf.ClipEnd()
	}
	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Etapa: "pdf", Err: err}
	}
	return pdf, nil
}

// timbre draws the letterhead on the current page
func (e *Exporter) timbre(pdf *fpdf.Fpdf, rel *Relatorio) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	x := margem
	if len(e.Logo) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(e.Logo))
		pdf.ImageOptions("logo", margem, margem, 0, 18, false, opts, 0, "")
		x = margem + 22
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(x, margem+7, tr(rel.Titulo))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(x, margem+14, tr("Gerado em "+rel.GeradoEm.Format("02/01/2006 15:04")))
	pdf.SetDrawColor(52, 58, 64)
	pdf.Line(margem, cabecalho-3, paginaLargura-margem, cabecalho-3)
}

// Paginas is the number of A4 pages needed for a raster of the given pixel size
func Paginas(largura, altura int) int {
	if largura <= 0 || altura <= 0 {
		return 1
	}
	conteudo := float64(altura) * (paginaLargura - 2*margem) / float64(largura)
	resto := conteudo - (paginaAltura - margem - cabecalho)
	if resto <= 0.01 {
		return 1
	}
	return 1 + int(math.Ceil((resto-0.01)/(paginaAltura-2*margem)))
}
