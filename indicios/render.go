package indicios

import (
	"bytes"
	"html/template"

	"github.com/corregedoria/procedimentos-api/models"
)

// Resumo is the view model of the indícios summary shown on an officer row
type Resumo struct {
	PM         models.PMEnvolvido
	Categorias []string
	Crimes     []models.CrimeRef
	RDPM       []models.RDPMRef
	Art29      []models.Art29Ref
	Total      int
}

// NovoResumo builds the summary view model
func NovoResumo(pm models.PMEnvolvido, ind models.Indicios) Resumo {
	sel := FromIndicios(ind)
	ind = sel.Indicios()
	return Resumo{
		PM:         pm,
		Categorias: ind.Categorias,
		Crimes:     ind.Crimes,
		RDPM:       ind.RDPM,
		Art29:      ind.Art29,
		Total:      sel.Contadores().Total,
	}
}

var resumoTmpl = template.Must(template.New("resumo").Parse(`<div class="indicios-resumo" data-pm="{{.PM.ID}}">
<strong>{{.PM.PostoGraduacao}} {{.PM.Nome}}</strong>
{{- if eq .Total 0}}
<span class="indicios-vazio">Nenhum indício registrado</span>
{{- else}}
{{- if .Categorias}}
<div class="indicios-categorias">{{range .Categorias}}<span class="badge bg-secondary">{{.}}</span>{{end}}</div>
{{- end}}
{{- if .Crimes}}
<div class="indicios-crimes"><span class="rotulo">Crimes ({{len .Crimes}})</span><ul>{{range .Crimes}}<li>{{.Texto}}</li>{{end}}</ul></div>
{{- end}}
{{- if .RDPM}}
<div class="indicios-rdpm"><span class="rotulo">RDPM ({{len .RDPM}})</span><ul>{{range .RDPM}}<li>{{.Texto}}{{if .Gravidade}} <em>({{.Gravidade}})</em>{{end}}</li>{{end}}</ul></div>
{{- end}}
{{- if .Art29}}
<div class="indicios-art29"><span class="rotulo">Art. 29 ({{len .Art29}})</span><ul>{{range .Art29}}<li>{{.Texto}}</li>{{end}}</ul></div>
{{- end}}
{{- end}}
</div>`))

// RenderResumo renders the officer's indícios summary
func RenderResumo(r Resumo) (template.HTML, error) {
	var buf bytes.Buffer
	if err := resumoTmpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
