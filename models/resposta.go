package models

// Resposta is the envelope every façade endpoint answers with. Payload keys
// are added next to it by the concrete response types below.
type Resposta struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem,omitempty"`
}

// RespostaIndicios answers carregar_indicios_pm_envolvido
type RespostaIndicios struct {
	Resposta
	Indicios Indicios `json:"indicios"`
}

// RespostaCrimes answers buscar_crimes_para_indicios
type RespostaCrimes struct {
	Resposta
	Crimes []Crime `json:"crimes"`
}

// RespostaTransgressoes answers buscar_rdpm_para_indicios
type RespostaTransgressoes struct {
	Resposta
	Transgressoes []Transgressao `json:"transgressoes"`
}

// RespostaInfracoes answers buscar_art29_para_indicios
type RespostaInfracoes struct {
	Resposta
	Infracoes []InfracaoArt29 `json:"infracoes"`
}

// RespostaCategorias answers the suggested categories call
type RespostaCategorias struct {
	Resposta
	Categorias []string `json:"categorias"`
}

// RespostaMapa answers gerar_mapa_mensal and obter_dados_mapa_salvo
type RespostaMapa struct {
	Resposta
	Dados []Processo `json:"dados"`
	Meta  MetaMapa   `json:"meta"`
}

// RespostaMapaSalvo answers salvar_mapa_mensal
type RespostaMapaSalvo struct {
	Resposta
	ID string `json:"id,omitempty"`
}

// RespostaMapas answers listar_mapas_anteriores
type RespostaMapas struct {
	Resposta
	Mapas []MapaResumo `json:"mapas"`
}

// RespostaToken answers the token creation endpoint
type RespostaToken struct {
	Resposta
	Token string `json:"token"`
	ID    string `json:"_id"`
}

// RespostaDadosMapaSalvo answers obter_dados_mapa_salvo
type RespostaDadosMapaSalvo struct {
	Resposta
	Dados DadosMapa `json:"dados"`
}
