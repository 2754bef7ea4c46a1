package mapamensal

import (
	"bytes"
	"html/template"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/corregedoria/procedimentos-api/models"
)

// MensagemVazio is shown when the filters match no procedure
const MensagemVazio = "Nenhum processo encontrado para o período selecionado"

var funcs = template.FuncMap{
	"data": func(d primitive.DateTime) string {
		if d == 0 {
			return "-"
		}
		return d.Time().UTC().Format("02/01/2006")
	},
	"pms": func(pms []models.PMEnvolvido) string {
		nomes := make([]string, 0, len(pms))
		for _, pm := range pms {
			nomes = append(nomes, strings.TrimSpace(pm.PostoGraduacao+" "+pm.Nome))
		}
		return strings.Join(nomes, "; ")
	},
	"dataHora": func(r *Relatorio) string {
		return r.GeradoEm.Format("02/01/2006 15:04")
	},
}

var mapaTmpl = template.Must(template.New("mapa").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{if .}}{{.Titulo}}{{else}}Mapa Mensal{{end}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #212529; margin: 0; padding: 16px; background: #fff; }
  h1 { font-size: 18px; margin: 0 0 4px 0; }
  .periodo { color: #6c757d; margin-bottom: 16px; }
  .resumo { display: flex; gap: 12px; margin-bottom: 20px; }
  .cartao { flex: 1; border: 1px solid #dee2e6; border-radius: 4px; padding: 8px 12px; }
  .cartao .valor { font-size: 20px; font-weight: 700; }
  .secao h2 { font-size: 15px; border-bottom: 2px solid #343a40; padding-bottom: 4px; }
  .processo { border: 1px solid #dee2e6; border-radius: 4px; padding: 8px 12px; margin-bottom: 10px; page-break-inside: avoid; break-inside: avoid; }
  .processo .cabecalho { font-weight: 700; margin-bottom: 4px; }
  .processo .campo { margin: 2px 0; }
  .rotulo { font-weight: 700; }
  .vazio { text-align: center; color: #6c757d; padding: 40px 0; }
  @media print { body { padding: 0; } .secao { page-break-before: auto; } }
</style>
</head>
<body>
{{- if .}}
<h1>{{.Titulo}}</h1>
<div class="periodo">Período: {{.Periodo}} &middot; Gerado em {{dataHora .}}</div>
{{- if .Vazio}}
<div class="vazio">` + MensagemVazio + `</div>
{{- else}}
<div class="resumo">
  <div class="cartao"><div>Total de processos</div><div class="valor total">{{.Agregado.Total}}</div></div>
  <div class="cartao"><div>Concluídos</div><div class="valor concluidos">{{.Agregado.Concluidos}}</div></div>
  <div class="cartao"><div>Em andamento</div><div class="valor andamento">{{.Agregado.EmAndamento}}</div></div>
</div>
{{- range .Secoes}}{{if .Processos}}
<div class="secao" data-status="{{.Status}}">
<h2>{{.Titulo}} ({{len .Processos}})</h2>
{{- range .Processos}}
<div class="processo" data-id="{{.ID}}">
  <div class="cabecalho">{{.Tipo}} nº {{.Numero}}/{{.Ano}} &middot; {{.Status}}</div>
  <div class="campo"><span class="rotulo">Responsável:</span> {{.Responsavel}}</div>
  <div class="campo"><span class="rotulo">Instauração:</span> {{data .DataInstauracao}}</div>
  {{- if .PMsEnvolvidos}}
  <div class="campo"><span class="rotulo">PMs envolvidos:</span> {{pms .PMsEnvolvidos}}</div>
  {{- end}}
  {{- if .ResumoFatos}}
  <div class="campo"><span class="rotulo">Fatos:</span> {{.ResumoFatos}}</div>
  {{- end}}
  {{- with .Conclusao}}
  <div class="campo"><span class="rotulo">Conclusão ({{.Data}}):</span> {{.Solucao}}{{if .Penalidade}} &middot; {{.Penalidade}}{{end}}</div>
  {{- end}}
  {{- with .UltimaMovimentacao}}
  <div class="campo"><span class="rotulo">Última movimentação ({{.Data}}):</span> {{.Descricao}}{{if .Destino}} &rarr; {{.Destino}}{{end}}</div>
  {{- end}}
</div>
{{- end}}
</div>
{{- end}}{{end}}
{{- end}}
{{- else}}
<div class="vazio">Selecione o mês, o ano e o tipo de processo para gerar o mapa</div>
{{- end}}
</body>
</html>
`))

// RenderHTML renders the print-styled report document. A nil report renders
// the initial state.
func RenderHTML(rel *Relatorio) (string, error) {
	var buf bytes.Buffer
	if err := mapaTmpl.Execute(&buf, rel); err != nil {
		return "", err
	}
	return buf.String(), nil
}
