package facade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/models"
)

const apiPrefix = "/api/v1"

// Client calls a remote façade over HTTP
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient returns a client for the façade served at baseURL
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{BaseURL: baseURL, HTTP: httpClient}
}

// SetToken sets the bearer token sent with every call
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login exchanges basic credentials for a bearer token and keeps it
func (c *Client) Login(ctx context.Context, email, senha string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+apiPrefix+"/auth/token", nil)
	if err != nil {
		return &TransportError{Operacao: "login", Err: err}
	}
	req.SetBasicAuth(email, senha)
	var resp models.RespostaToken
	if err := c.send(req, "login", &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// CarregarIndicios calls carregar_indicios_pm_envolvido
func (c *Client) CarregarIndicios(ctx context.Context, pmEnvolvidoID string) (models.Indicios, error) {
	var resp models.RespostaIndicios
	err := c.call(ctx, "carregar_indicios_pm_envolvido", http.MethodGet, "/indicios/"+url.PathEscape(pmEnvolvidoID), nil, nil, &resp)
	return resp.Indicios, err
}

// SalvarIndicios calls salvar_indicios_pm_envolvido
func (c *Client) SalvarIndicios(ctx context.Context, pmEnvolvidoID string, indicios models.Indicios) error {
	var resp models.Resposta
	return c.call(ctx, "salvar_indicios_pm_envolvido", http.MethodPut, "/indicios/"+url.PathEscape(pmEnvolvidoID), nil, indicios, &resp)
}

// CategoriasSugeridas fetches the suggested evidence categories
func (c *Client) CategoriasSugeridas(ctx context.Context) ([]string, error) {
	var resp models.RespostaCategorias
	err := c.call(ctx, "listar_categorias_indicios", http.MethodGet, "/indicios-categorias", nil, nil, &resp)
	return resp.Categorias, err
}

// BuscarCrimes calls buscar_crimes_para_indicios
func (c *Client) BuscarCrimes(ctx context.Context, termo string) ([]models.Crime, error) {
	var resp models.RespostaCrimes
	err := c.call(ctx, "buscar_crimes_para_indicios", http.MethodGet, "/catalogo/crimes", url.Values{"termo": {termo}}, nil, &resp)
	return resp.Crimes, err
}

// BuscarRDPM calls buscar_rdpm_para_indicios
func (c *Client) BuscarRDPM(ctx context.Context, termo, gravidade string) ([]models.Transgressao, error) {
	var resp models.RespostaTransgressoes
	q := url.Values{"termo": {termo}}
	if gravidade != "" {
		q.Set("gravidade", gravidade)
	}
	err := c.call(ctx, "buscar_rdpm_para_indicios", http.MethodGet, "/catalogo/rdpm", q, nil, &resp)
	return resp.Transgressoes, err
}

// BuscarArt29 calls buscar_art29_para_indicios
func (c *Client) BuscarArt29(ctx context.Context, termo string) ([]models.InfracaoArt29, error) {
	var resp models.RespostaInfracoes
	err := c.call(ctx, "buscar_art29_para_indicios", http.MethodGet, "/catalogo/art29", url.Values{"termo": {termo}}, nil, &resp)
	return resp.Infracoes, err
}

// GerarMapaMensal calls gerar_mapa_mensal
func (c *Client) GerarMapaMensal(ctx context.Context, mes, ano int, tipo string) (models.DadosMapa, error) {
	var resp models.RespostaMapa
	q := url.Values{
		"mes":  {strconv.Itoa(mes)},
		"ano":  {strconv.Itoa(ano)},
		"tipo": {tipo},
	}
	err := c.call(ctx, "gerar_mapa_mensal", http.MethodGet, "/mapa-mensal", q, nil, &resp)
	return models.DadosMapa{Dados: resp.Dados, Meta: resp.Meta}, err
}

// SalvarMapaMensal calls salvar_mapa_mensal and returns the saved map id
func (c *Client) SalvarMapaMensal(ctx context.Context, mapa models.MapaSalvo) (string, error) {
	var resp models.RespostaMapaSalvo
	err := c.call(ctx, "salvar_mapa_mensal", http.MethodPost, "/mapa-mensal", nil, mapa, &resp)
	return resp.ID, err
}

// ListarMapasAnteriores calls listar_mapas_anteriores
func (c *Client) ListarMapasAnteriores(ctx context.Context) ([]models.MapaResumo, error) {
	var resp models.RespostaMapas
	err := c.call(ctx, "listar_mapas_anteriores", http.MethodGet, "/mapas-mensais", nil, nil, &resp)
	return resp.Mapas, err
}

// ObterDadosMapaSalvo calls obter_dados_mapa_salvo
func (c *Client) ObterDadosMapaSalvo(ctx context.Context, id string) (models.DadosMapa, error) {
	var resp models.RespostaDadosMapaSalvo
	err := c.call(ctx, "obter_dados_mapa_salvo", http.MethodGet, "/mapa-mensal/"+url.PathEscape(id), nil, nil, &resp)
	return resp.Dados, err
}

func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	u := c.BaseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Operacao: op, Err: err}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return &TransportError{Operacao: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		zap.S().Debugw("façade call failed", "operacao", op, "error", err)
		return &TransportError{Operacao: op, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Operacao: op, Err: err}
	}

	var env models.Resposta
	if err := json.Unmarshal(b, &env); err != nil {
		return &TransportError{Operacao: op, Err: fmt.Errorf("status %d: invalid response body: %w", resp.StatusCode, err)}
	}
	if !env.Sucesso {
		if env.Mensagem == "" && resp.StatusCode >= http.StatusBadRequest {
			return &TransportError{Operacao: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return &FacadeError{Operacao: op, Mensagem: env.Mensagem}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &TransportError{Operacao: op, Err: err}
	}
	return nil
}
