package indicios

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/models"
)

var (
	ErrModalAberto       = errors.New("já existe um modal de indícios aberto")
	ErrModalFechado      = errors.New("modal de indícios não está aberto")
	ErrSalvando          = errors.New("salvamento em andamento")
	ErrItemNaoEncontrado = errors.New("item não encontrado no catálogo")
	ErrCatalogoInvalido  = errors.New("catálogo sem busca")
)

// ViewState is everything the modal renders
type ViewState struct {
	Aberto       bool
	PM           models.PMEnvolvido
	Selecionados models.Indicios
	Contadores   Contadores
	Sugestoes    []string
	Termos       map[Catalogo]string
	Resultados   map[Catalogo][]Item
}

// Option configures a Controller
type Option func(*Controller)

// WithNotifier sets where success and error messages go
func WithNotifier(n facade.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithDebounce overrides the search debounce delay
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithRender sets the callback fired after every state change
func WithRender(fn func(ViewState)) Option {
	return func(c *Controller) { c.onRender = fn }
}

// WithSaved sets the callback fired after a successful save, so the case form
// can re-render the officer summaries
func WithSaved(fn func(models.PMEnvolvido, models.Indicios)) Option {
	return func(c *Controller) { c.onSaved = fn }
}

type busca struct {
	termo      string
	gravidade  string
	resultados []Item
}

// Controller drives the indícios modal of one officer at a time
type Controller struct {
	facade   facade.Facade
	store    *Store
	notifier facade.Notifier
	debounce time.Duration
	onRender func(ViewState)
	onSaved  func(models.PMEnvolvido, models.Indicios)
	timers   *debouncer

	mu        sync.Mutex
	aberto    bool
	salvando  bool
	geracao   uint64
	sessao    context.Context
	cancel    context.CancelFunc
	loaded    chan struct{}
	pm        models.PMEnvolvido
	sel       *Selection
	removidos map[Catalogo]map[string]struct{}
	sugestoes []string
	buscas    map[Catalogo]*busca
	held      map[Catalogo]map[string]Item
}

// NewController returns a controller using f for backend calls and store as
// the case form's hand-off state
func NewController(f facade.Facade, store *Store, opts ...Option) *Controller {
	if store == nil {
		store = NewStore()
	}
	c := &Controller{
		facade:   f,
		store:    store,
		notifier: facade.LogNotifier{},
		debounce: DefaultDebounce,
		timers:   newDebouncer(),
		sel:      NewSelection(),
	}
	for _, o := range opts {
		o(c)
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.sel = NewSelection()
	c.removidos = make(map[Catalogo]map[string]struct{}, len(Referencias)+1)
	c.sugestoes = nil
	c.buscas = make(map[Catalogo]*busca, len(Referencias))
	c.held = make(map[Catalogo]map[string]Item, len(Referencias))
	for _, cat := range Referencias {
		c.buscas[cat] = &busca{}
		c.held[cat] = make(map[string]Item)
	}
}

// Open shows the modal for pm. The selection starts from existing, or from the
// store's entry when existing is nil. The suggested categories and the three
// reference listings load in the background; Open does not wait for them.
func (c *Controller) Open(ctx context.Context, pm models.PMEnvolvido, existing *models.Indicios) error {
	c.mu.Lock()
	if c.aberto {
		c.mu.Unlock()
		return ErrModalAberto
	}
	c.reset()
	if existing != nil {
		c.sel = FromIndicios(*existing)
	} else if ind, ok := c.store.Get(pm.ID); ok {
		c.sel = FromIndicios(ind)
	}
	c.aberto = true
	c.pm = pm
	c.geracao++
	geracao := c.geracao
	sessao, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.sessao, c.cancel = sessao, cancel
	loaded := make(chan struct{})
	c.loaded = loaded
	view := c.viewLocked()
	c.mu.Unlock()

	c.render(view)
	go c.load(sessao, geracao, loaded)
	return nil
}

// Loaded is closed once the fetches started by the last Open have resolved
func (c *Controller) Loaded() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.loaded
}

func (c *Controller) load(ctx context.Context, geracao uint64, loaded chan struct{}) {
	defer close(loaded)

	var g errgroup.Group
	g.Go(func() error {
		cats, err := c.facade.CategoriasSugeridas(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		if !c.atual(geracao) {
			c.mu.Unlock()
			return nil
		}
		c.sugestoes = cats
		view := c.viewLocked()
		c.mu.Unlock()
		c.render(view)
		return nil
	})
	for _, cat := range Referencias {
		cat := cat
		g.Go(func() error {
			items, err := c.fetch(ctx, cat, "", "")
			if err != nil {
				return err
			}
			c.mu.Lock()
			if !c.atual(geracao) {
				c.mu.Unlock()
				return nil
			}
			c.holdLocked(cat, items)
			b := c.buscas[cat]
			if b.termo == "" && b.gravidade == "" {
				b.resultados = items
			}
			view := c.viewLocked()
			c.mu.Unlock()
			c.render(view)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return
		}
		zap.S().Warnw("failed to load indicios catalogs", "pm_envolvido_id", c.pmID(), "error", err)
		facade.Notify(c.notifier, err)
	}
}

// Search schedules a debounced search of catalog cat. Only the response
// matching the input current at resolution time is rendered.
func (c *Controller) Search(cat Catalogo, termo, gravidade string) error {
	if cat == Categorias {
		return ErrCatalogoInvalido
	}
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return ErrModalFechado
	}
	b := c.buscas[cat]
	b.termo, b.gravidade = termo, gravidade
	geracao := c.geracao
	ctx := c.sessao
	c.mu.Unlock()

	c.timers.schedule(cat, c.debounce, func() {
		_ = c.search(ctx, geracao, cat, termo, gravidade)
	})
	return nil
}

// SearchNow sets the input of catalog cat and searches without the debounce
func (c *Controller) SearchNow(ctx context.Context, cat Catalogo, termo, gravidade string) error {
	if cat == Categorias {
		return ErrCatalogoInvalido
	}
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return ErrModalFechado
	}
	b := c.buscas[cat]
	b.termo, b.gravidade = termo, gravidade
	geracao := c.geracao
	c.mu.Unlock()

	return c.search(ctx, geracao, cat, termo, gravidade)
}

func (c *Controller) search(ctx context.Context, geracao uint64, cat Catalogo, termo, gravidade string) error {
	items, err := c.fetch(ctx, cat, termo, gravidade)

	c.mu.Lock()
	b := c.buscas[cat]
	if !c.atual(geracao) || b.termo != termo || b.gravidade != gravidade {
		c.mu.Unlock()
		zap.S().Debugw("discarding stale search response", "catalogo", cat.String(), "termo", termo)
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		return facade.Notify(c.notifier, err)
	}
	c.holdLocked(cat, items)
	b.resultados = items
	view := c.viewLocked()
	c.mu.Unlock()

	c.render(view)
	return nil
}

// Toggle removes key from catalog cat when selected, or adds it otherwise.
// Reference items not yet held are resolved from a fresh catalog listing.
func (c *Controller) Toggle(ctx context.Context, cat Catalogo, key string) error {
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return ErrModalFechado
	}
	if cat == Categorias {
		key = strings.TrimSpace(key)
	}
	if c.sel.Has(cat, key) {
		c.removeLocked(cat, key)
		view := c.viewLocked()
		c.mu.Unlock()
		c.render(view)
		return nil
	}
	if cat == Categorias {
		err := c.sel.AddCategoria(key)
		if err == nil {
			c.restoreLocked(cat, key)
		}
		view := c.viewLocked()
		c.mu.Unlock()
		if err == nil {
			c.render(view)
		}
		return err
	}
	item, ok := c.held[cat][key]
	geracao := c.geracao
	c.mu.Unlock()

	if !ok {
		items, err := c.fetch(ctx, cat, "", "")
		if err != nil {
			return facade.Notify(c.notifier, err)
		}
		c.mu.Lock()
		if !c.atual(geracao) {
			c.mu.Unlock()
			return ErrModalFechado
		}
		c.holdLocked(cat, items)
		item, ok = c.held[cat][key]
		c.mu.Unlock()
		if !ok {
			return ErrItemNaoEncontrado
		}
	}

	c.mu.Lock()
	if !c.atual(geracao) {
		c.mu.Unlock()
		return ErrModalFechado
	}
	c.sel.Add(item)
	c.restoreLocked(cat, key)
	view := c.viewLocked()
	c.mu.Unlock()
	c.render(view)
	return nil
}

// AddCategoria appends a free-text category. Empty and exact-duplicate texts
// are rejected.
func (c *Controller) AddCategoria(texto string) error {
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return ErrModalFechado
	}
	if err := c.sel.AddCategoria(texto); err != nil {
		c.mu.Unlock()
		return err
	}
	c.restoreLocked(Categorias, strings.TrimSpace(texto))
	view := c.viewLocked()
	c.mu.Unlock()
	c.render(view)
	return nil
}

// Remove drops key from catalog cat, both in the modal and in the case form's
// entry for the officer, so the next save does not bring it back.
func (c *Controller) Remove(cat Catalogo, key string) bool {
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return false
	}
	if cat == Categorias {
		key = strings.TrimSpace(key)
	}
	removed := c.removeLocked(cat, key)
	view := c.viewLocked()
	c.mu.Unlock()
	c.render(view)
	return removed
}

// removeLocked drops key from the session and the store entry and remembers
// it, so Save subtracts it from the persisted base
func (c *Controller) removeLocked(cat Catalogo, key string) bool {
	removed := c.sel.Remove(cat, key)
	if c.store.Remove(c.pm.ID, cat, key) {
		removed = true
	}
	if c.removidos[cat] == nil {
		c.removidos[cat] = make(map[string]struct{})
	}
	c.removidos[cat][key] = struct{}{}
	return removed
}

func (c *Controller) restoreLocked(cat Catalogo, key string) {
	delete(c.removidos[cat], key)
}

// Save merges the modal's selection into the officer's current indícios and
// persists the union. On success the modal closes; on failure it stays open
// with the selection intact.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if !c.aberto {
		c.mu.Unlock()
		return ErrModalFechado
	}
	if c.salvando {
		c.mu.Unlock()
		return ErrSalvando
	}
	c.salvando = true
	pm := c.pm
	sessao := c.sel.Clone()
	removidos := make(map[Catalogo][]string, len(c.removidos))
	for cat, keys := range c.removidos {
		for key := range keys {
			removidos[cat] = append(removidos[cat], key)
		}
	}
	geracao := c.geracao
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.salvando = false
		c.mu.Unlock()
	}()

	base, ok := c.store.Get(pm.ID)
	if !ok {
		var err error
		base, err = c.facade.CarregarIndicios(ctx, pm.ID)
		if err != nil {
			zap.S().Errorw("failed to load saved indicios", "pm_envolvido_id", pm.ID, "error", err)
			return facade.Notify(c.notifier, err)
		}
	}
	merged := FromIndicios(base)
	for cat, keys := range removidos {
		for _, key := range keys {
			merged.Remove(cat, key)
		}
	}
	merged.Merge(sessao)
	payload := merged.Indicios()

	if err := c.facade.SalvarIndicios(ctx, pm.ID, payload); err != nil {
		zap.S().Errorw("failed to save indicios", "pm_envolvido_id", pm.ID, "error", err)
		return facade.Notify(c.notifier, err)
	}
	c.store.Set(pm.ID, payload)

	c.mu.Lock()
	if c.atual(geracao) {
		c.closeLocked()
	}
	view := c.viewLocked()
	c.mu.Unlock()

	zap.S().Infow("indicios saved", "pm_envolvido_id", pm.ID, "total", merged.Contadores().Total)
	c.notifier.Sucesso("Indícios salvos com sucesso")
	c.render(view)
	if c.onSaved != nil {
		c.onSaved(pm, payload)
	}
	return nil
}

// Close discards the modal state and stops pending searches
func (c *Controller) Close() {
	c.mu.Lock()
	c.closeLocked()
	view := c.viewLocked()
	c.mu.Unlock()
	c.render(view)
}

func (c *Controller) closeLocked() {
	c.timers.stop()
	if c.cancel != nil {
		c.cancel()
		c.sessao, c.cancel = nil, nil
	}
	c.aberto = false
	c.geracao++
	c.reset()
}

// View returns the current state
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() ViewState {
	v := ViewState{
		Aberto:       c.aberto,
		PM:           c.pm,
		Selecionados: c.sel.Indicios(),
		Contadores:   c.sel.Contadores(),
		Sugestoes:    append([]string(nil), c.sugestoes...),
		Termos:       make(map[Catalogo]string, len(c.buscas)),
		Resultados:   make(map[Catalogo][]Item, len(c.buscas)),
	}
	for cat, b := range c.buscas {
		v.Termos[cat] = b.termo
		v.Resultados[cat] = append([]Item(nil), b.resultados...)
	}
	return v
}

func (c *Controller) render(v ViewState) {
	if c.onRender != nil {
		c.onRender(v)
	}
}

func (c *Controller) atual(geracao uint64) bool {
	return c.aberto && c.geracao == geracao
}

func (c *Controller) pmID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pm.ID
}

func (c *Controller) holdLocked(cat Catalogo, items []Item) {
	for _, it := range items {
		c.held[cat][it.ID] = it
	}
}

func (c *Controller) fetch(ctx context.Context, cat Catalogo, termo, gravidade string) ([]Item, error) {
	switch cat {
	case Crimes:
		crimes, err := c.facade.BuscarCrimes(ctx, termo)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(crimes))
		for _, cr := range crimes {
			items = append(items, ItemCrime(cr))
		}
		return items, nil
	case RDPM:
		ts, err := c.facade.BuscarRDPM(ctx, termo, gravidade)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(ts))
		for _, t := range ts {
			items = append(items, ItemTransgressao(t))
		}
		return items, nil
	case Art29:
		infs, err := c.facade.BuscarArt29(ctx, termo)
		if err != nil {
			return nil, err
		}
		items := make([]Item, 0, len(infs))
		for _, i := range infs {
			items = append(items, ItemInfracao(i))
		}
		return items, nil
	}
	return nil, ErrCatalogoInvalido
}
