package templates

import (
	"fmt"
	"html"
)

// MapaEmailData holds the summary of a monthly map sent to the recipients
type MapaEmailData struct {
	Titulo      string
	Periodo     string
	Total       int
	Concluidos  int
	EmAndamento int
	Link        string // archived PDF, optional
	Anexo       bool
}

// RenderMapaMensalEmail generates the HTML for the monthly map notification
func RenderMapaMensalEmail(d MapaEmailData) string {
	titulo := html.EscapeString(d.Titulo)
	body := fmt.Sprintf(`      <p>O mapa mensal do período <strong>%s</strong> foi gerado automaticamente.</p>
      <table class="resumo">
        <tr><td>Total de processos</td><td class="valor">%d</td></tr>
        <tr><td>Concluídos</td><td class="valor">%d</td></tr>
        <tr><td>Em andamento</td><td class="valor">%d</td></tr>
      </table>`, html.EscapeString(d.Periodo), d.Total, d.Concluidos, d.EmAndamento)
	if d.Link != "" {
		body += fmt.Sprintf(`
      <p><a class="botao" href="%s">Baixar PDF</a></p>`, html.EscapeString(d.Link))
	}
	if d.Anexo {
		body += `
      <p>O PDF segue em anexo.</p>`
	}
	return fmt.Sprintf(emailHead, titulo, titulo) + body + emailFoot
}

// RenderMapaMensalText is the plain text alternative of RenderMapaMensalEmail
func RenderMapaMensalText(d MapaEmailData) string {
	text := fmt.Sprintf("%s\n\nPeríodo: %s\nTotal de processos: %d\nConcluídos: %d\nEm andamento: %d\n",
		d.Titulo, d.Periodo, d.Total, d.Concluidos, d.EmAndamento)
	if d.Link != "" {
		text += "\nPDF: " + d.Link + "\n"
	}
	return text
}
