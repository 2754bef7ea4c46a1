package indicios

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/corregedoria/procedimentos-api/facade"
	"github.com/corregedoria/procedimentos-api/facade/mocks"
	"github.com/corregedoria/procedimentos-api/models"
)

type recordingNotifier struct {
	mu       sync.Mutex
	sucessos []string
	erros    []string
}

func (n *recordingNotifier) Sucesso(m string) {
	n.mu.Lock()
	n.sucessos = append(n.sucessos, m)
	n.mu.Unlock()
}

func (n *recordingNotifier) Erro(m string) {
	n.mu.Lock()
	n.erros = append(n.erros, m)
	n.mu.Unlock()
}

func (n *recordingNotifier) Erros() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.erros...)
}

var (
	pm       = models.PMEnvolvido{ID: "pm-1", Nome: "Fulano", PostoGraduacao: "CB PM"}
	crimeA   = models.Crime{ID: "A", Tipo: "Código Penal Militar", DispositivoLegal: "Art. 209"}
	crimeB   = models.Crime{ID: "B", Tipo: "Código Penal Militar", DispositivoLegal: "Art. 210"}
	crimeC   = models.Crime{ID: "C", Tipo: "Código Penal Militar", DispositivoLegal: "Art. 213"}
	transgXV = models.Transgressao{ID: "T15", Inciso: "XV", Texto: "faltar ao serviço", Gravidade: "grave"}
	art29IV  = models.InfracaoArt29{ID: "I4", Inciso: "IV", Texto: "deixar de cumprir ordem"}
)

// newFacade returns a mock answering the listings fetched by Open
func newFacade() *mocks.Facade {
	f := &mocks.Facade{}
	f.On("CategoriasSugeridas", mock.Anything).Return(models.CategoriasSugeridas, nil).Maybe()
	f.On("BuscarCrimes", mock.Anything, "").Return([]models.Crime{crimeA, crimeB, crimeC}, nil).Maybe()
	f.On("BuscarRDPM", mock.Anything, "", "").Return([]models.Transgressao{transgXV}, nil).Maybe()
	f.On("BuscarArt29", mock.Anything, "").Return([]models.InfracaoArt29{art29IV}, nil).Maybe()
	return f
}

func openLoaded(t *testing.T, c *Controller, existing *models.Indicios) {
	t.Helper()
	require.NoError(t, c.Open(context.Background(), pm, existing))
	select {
	case <-c.Loaded():
	case <-time.After(2 * time.Second):
		t.Fatal("listings never loaded")
	}
}

func ids(items []Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestController_OpenLoadsListings(t *testing.T) {
	f := newFacade()
	c := NewController(f, nil)
	openLoaded(t, c, nil)

	v := c.View()
	assert.True(t, v.Aberto)
	assert.Equal(t, models.CategoriasSugeridas, v.Sugestoes)
	assert.Equal(t, []string{"A", "B", "C"}, ids(v.Resultados[Crimes]))
	assert.Equal(t, []string{"T15"}, ids(v.Resultados[RDPM]))
	assert.Equal(t, []string{"I4"}, ids(v.Resultados[Art29]))
	assert.Equal(t, 0, v.Contadores.Total)
}

func TestController_OpenToleratesPartialFailure(t *testing.T) {
	f := &mocks.Facade{}
	f.On("CategoriasSugeridas", mock.Anything).Return(nil, &facade.TransportError{Operacao: "listar", Err: errors.New("refused")})
	f.On("BuscarCrimes", mock.Anything, "").Return([]models.Crime{crimeA}, nil)
	f.On("BuscarRDPM", mock.Anything, "", "").Return([]models.Transgressao{transgXV}, nil)
	f.On("BuscarArt29", mock.Anything, "").Return([]models.InfracaoArt29{art29IV}, nil)
	n := &recordingNotifier{}

	c := NewController(f, nil, WithNotifier(n))
	openLoaded(t, c, nil)

	v := c.View()
	assert.Empty(t, v.Sugestoes)
	assert.Equal(t, []string{"A"}, ids(v.Resultados[Crimes]))
	assert.Equal(t, []string{facade.MensagemConexao}, n.Erros())
}

func TestController_OpenOnlyOneModal(t *testing.T) {
	c := NewController(newFacade(), nil)
	openLoaded(t, c, nil)

	assert.ErrorIs(t, c.Open(context.Background(), models.PMEnvolvido{ID: "pm-2"}, nil), ErrModalAberto)

	c.Close()
	openLoaded(t, c, nil)
}

func TestController_OpenUsesStoreEntry(t *testing.T) {
	st := NewStore()
	st.Set(pm.ID, models.Indicios{Categorias: []string{"Não houve indícios"}})

	c := NewController(newFacade(), st)
	openLoaded(t, c, nil)

	assert.Equal(t, []string{"Não houve indícios"}, c.View().Selecionados.Categorias)
}

func TestController_ToggleResolvesFromHeldItems(t *testing.T) {
	c := NewController(newFacade(), nil)
	openLoaded(t, c, nil)
	ctx := context.Background()

	require.NoError(t, c.Toggle(ctx, Crimes, "B"))
	require.NoError(t, c.Toggle(ctx, RDPM, "T15"))
	require.NoError(t, c.Toggle(ctx, Categorias, "Indícios de crime militar"))

	v := c.View()
	assert.Equal(t, []models.CrimeRef{crimeB.Ref()}, v.Selecionados.Crimes)
	assert.Equal(t, []models.RDPMRef{transgXV.Ref()}, v.Selecionados.RDPM)
	assert.Equal(t, 3, v.Contadores.Total)

	require.NoError(t, c.Toggle(ctx, Crimes, "B"))
	assert.Empty(t, c.View().Selecionados.Crimes)
}

func TestController_ToggleRefetchesUnknownItem(t *testing.T) {
	f := &mocks.Facade{}
	f.On("CategoriasSugeridas", mock.Anything).Return([]string{}, nil)
	f.On("BuscarRDPM", mock.Anything, "", "").Return([]models.Transgressao{}, nil)
	f.On("BuscarArt29", mock.Anything, "").Return([]models.InfracaoArt29{}, nil)
	// first listing misses C, the refetch has it
	f.On("BuscarCrimes", mock.Anything, "").Return([]models.Crime{crimeA}, nil).Once()
	f.On("BuscarCrimes", mock.Anything, "").Return([]models.Crime{crimeA, crimeC}, nil).Once()
	f.On("BuscarCrimes", mock.Anything, "").Return([]models.Crime{crimeA}, nil)

	c := NewController(f, nil)
	openLoaded(t, c, nil)
	ctx := context.Background()

	require.NoError(t, c.Toggle(ctx, Crimes, "C"))
	assert.Equal(t, []models.CrimeRef{crimeC.Ref()}, c.View().Selecionados.Crimes)

	assert.ErrorIs(t, c.Toggle(ctx, Crimes, "Z"), ErrItemNaoEncontrado)
}

func TestController_AddCategoriaAndRemove(t *testing.T) {
	st := NewStore()
	st.Set(pm.ID, models.Indicios{Categorias: []string{"Antiga"}})
	c := NewController(newFacade(), st)
	openLoaded(t, c, nil)

	assert.ErrorIs(t, c.AddCategoria("   "), ErrCategoriaVazia)
	assert.NoError(t, c.AddCategoria("Nova"))
	assert.ErrorIs(t, c.AddCategoria("Nova"), ErrCategoriaDuplicada)
	assert.Equal(t, 2, c.View().Contadores.Categorias)

	assert.True(t, c.Remove(Categorias, "Antiga"))
	assert.Equal(t, 1, c.View().Contadores.Categorias)
	stored, _ := st.Get(pm.ID)
	assert.Empty(t, stored.Categorias)
}

func TestController_StaleSearchResponseIsDiscarded(t *testing.T) {
	f := newFacade()
	started := make(chan struct{})
	release := make(chan struct{})
	f.On("BuscarCrimes", mock.Anything, "ab").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]models.Crime{crimeA}, nil)
	f.On("BuscarCrimes", mock.Anything, "abc").Return([]models.Crime{crimeC}, nil)

	var mu sync.Mutex
	var rendered [][]string
	c := NewController(f, nil, WithRender(func(v ViewState) {
		mu.Lock()
		rendered = append(rendered, ids(v.Resultados[Crimes]))
		mu.Unlock()
	}))
	openLoaded(t, c, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.SearchNow(ctx, Crimes, "ab", "") }()
	<-started

	require.NoError(t, c.SearchNow(ctx, Crimes, "abc", ""))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"C"}, ids(c.View().Resultados[Crimes]))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"C"}, rendered[len(rendered)-1])
}

func TestController_SearchIsDebounced(t *testing.T) {
	f := newFacade()
	transgXVI := models.Transgressao{ID: "T16", Inciso: "XVI", Texto: "faltar à instrução", Gravidade: "grave"}
	f.On("BuscarRDPM", mock.Anything, "falt", "grave").Return([]models.Transgressao{transgXV, transgXVI}, nil)

	c := NewController(f, nil, WithDebounce(20*time.Millisecond))
	openLoaded(t, c, nil)

	for _, termo := range []string{"f", "fa", "fal", "falt"} {
		require.NoError(t, c.Search(RDPM, termo, "grave"))
	}

	assert.Eventually(t, func() bool {
		v := c.View()
		return len(v.Resultados[RDPM]) == 2
	}, time.Second, 5*time.Millisecond)
	f.AssertNotCalled(t, "BuscarRDPM", mock.Anything, "f", "grave")
	f.AssertNotCalled(t, "BuscarRDPM", mock.Anything, "fal", "grave")
	f.AssertNumberOfCalls(t, "BuscarRDPM", 2)

	assert.ErrorIs(t, c.Search(Categorias, "x", ""), ErrCatalogoInvalido)
}

func TestController_CloseStopsPendingSearches(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFacade()
	c := NewController(f, nil, WithDebounce(50*time.Millisecond))
	openLoaded(t, c, nil)

	require.NoError(t, c.Search(Art29, "ordem", ""))
	c.Close()
	time.Sleep(80 * time.Millisecond)

	f.AssertNotCalled(t, "BuscarArt29", mock.Anything, "ordem")
	assert.False(t, c.View().Aberto)
	assert.ErrorIs(t, c.Search(Art29, "ordem", ""), ErrModalFechado)
}

func TestController_SaveMergesWithPersistedSelection(t *testing.T) {
	f := newFacade()
	existing := models.Indicios{Crimes: []models.CrimeRef{crimeA.Ref(), crimeB.Ref()}}
	f.On("CarregarIndicios", mock.Anything, pm.ID).Return(existing, nil)
	f.On("SalvarIndicios", mock.Anything, pm.ID, mock.MatchedBy(func(ind models.Indicios) bool {
		return len(ind.Crimes) == 3 &&
			ind.Crimes[0].ID == "A" && ind.Crimes[1].ID == "B" && ind.Crimes[2].ID == "C"
	})).Return(nil)

	st := NewStore()
	n := &recordingNotifier{}
	var saved models.Indicios
	c := NewController(f, st, WithNotifier(n), WithSaved(func(_ models.PMEnvolvido, ind models.Indicios) {
		saved = ind
	}))
	openLoaded(t, c, &existing)

	require.NoError(t, c.Toggle(context.Background(), Crimes, "C"))
	require.NoError(t, c.Save(context.Background()))

	f.AssertExpectations(t)
	assert.False(t, c.View().Aberto)
	assert.Equal(t, []models.CrimeRef{crimeA.Ref(), crimeB.Ref(), crimeC.Ref()}, saved.Crimes)
	stored, ok := st.Get(pm.ID)
	require.True(t, ok)
	assert.Equal(t, saved, stored)
	assert.Len(t, n.sucessos, 1)
}

func TestController_SaveDoesNotDropTagsMissingFromSession(t *testing.T) {
	f := newFacade()
	st := NewStore()
	st.Set(pm.ID, models.Indicios{Art29: []models.Art29Ref{art29IV.Ref()}})
	f.On("SalvarIndicios", mock.Anything, pm.ID, mock.Anything).Return(nil)

	c := NewController(f, st)
	// the modal opens with an unrelated selection
	openLoaded(t, c, &models.Indicios{Categorias: []string{"Indícios de crime comum"}})
	require.NoError(t, c.Save(context.Background()))

	got, _ := st.Get(pm.ID)
	assert.Equal(t, []models.Art29Ref{art29IV.Ref()}, got.Art29)
	assert.Equal(t, []string{"Indícios de crime comum"}, got.Categorias)
	f.AssertNotCalled(t, "CarregarIndicios", mock.Anything, mock.Anything)
}

func TestController_SaveFailureKeepsModalOpen(t *testing.T) {
	f := newFacade()
	f.On("CarregarIndicios", mock.Anything, pm.ID).Return(models.Indicios{}, nil)
	f.On("SalvarIndicios", mock.Anything, pm.ID, mock.Anything).
		Return(&facade.FacadeError{Operacao: "salvar_indicios_pm_envolvido", Mensagem: "PM envolvido não encontrado"})

	n := &recordingNotifier{}
	st := NewStore()
	c := NewController(f, st, WithNotifier(n))
	openLoaded(t, c, nil)
	require.NoError(t, c.Toggle(context.Background(), Art29, "I4"))

	err := c.Save(context.Background())
	var fe *facade.FacadeError
	require.ErrorAs(t, err, &fe)

	v := c.View()
	assert.True(t, v.Aberto)
	assert.Equal(t, []models.Art29Ref{art29IV.Ref()}, v.Selecionados.Art29)
	assert.Equal(t, []string{"PM envolvido não encontrado"}, n.Erros())
	_, ok := st.Get(pm.ID)
	assert.False(t, ok)
}

func TestController_ClosedModalRejectsMutations(t *testing.T) {
	c := NewController(newFacade(), nil)

	assert.ErrorIs(t, c.AddCategoria("x"), ErrModalFechado)
	assert.ErrorIs(t, c.Toggle(context.Background(), Crimes, "A"), ErrModalFechado)
	assert.ErrorIs(t, c.Save(context.Background()), ErrModalFechado)
	assert.False(t, c.Remove(Crimes, "A"))
}

// savedPayload makes SalvarIndicios succeed and records what was persisted
func savedPayload(f *mocks.Facade) *models.Indicios {
	got := &models.Indicios{}
	f.On("SalvarIndicios", mock.Anything, pm.ID, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		*got = args.Get(2).(models.Indicios)
	})
	return got
}

func TestController_RemovedItemIsNotSavedAgain(t *testing.T) {
	f := newFacade()
	existing := models.Indicios{Crimes: []models.CrimeRef{crimeA.Ref(), crimeB.Ref()}}
	f.On("CarregarIndicios", mock.Anything, pm.ID).Return(existing, nil)
	got := savedPayload(f)

	c := NewController(f, NewStore())
	openLoaded(t, c, &existing)

	assert.True(t, c.Remove(Crimes, "A"))
	assert.Equal(t, []models.CrimeRef{crimeB.Ref()}, c.View().Selecionados.Crimes)
	require.NoError(t, c.Save(context.Background()))

	assert.Equal(t, []models.CrimeRef{crimeB.Ref()}, got.Crimes)
}

func TestController_ToggledOffItemIsNotSavedAgain(t *testing.T) {
	f := newFacade()
	st := NewStore()
	st.Set(pm.ID, models.Indicios{Crimes: []models.CrimeRef{crimeA.Ref()}})
	got := savedPayload(f)

	c := NewController(f, st)
	openLoaded(t, c, nil)

	require.NoError(t, c.Toggle(context.Background(), Crimes, "A"))
	assert.Empty(t, c.View().Selecionados.Crimes)
	require.NoError(t, c.Save(context.Background()))

	assert.Empty(t, got.Crimes)
	stored, _ := st.Get(pm.ID)
	assert.Empty(t, stored.Crimes)
}

func TestController_ToggleBackAfterRemoveIsSaved(t *testing.T) {
	f := newFacade()
	st := NewStore()
	st.Set(pm.ID, models.Indicios{Crimes: []models.CrimeRef{crimeA.Ref()}, Categorias: []string{"x"}})
	got := savedPayload(f)

	c := NewController(f, st)
	openLoaded(t, c, nil)

	require.NoError(t, c.Toggle(context.Background(), Crimes, "A"))
	require.NoError(t, c.Toggle(context.Background(), Crimes, "A"))
	assert.True(t, c.Remove(Categorias, "x"))
	require.NoError(t, c.AddCategoria(" x "))
	require.NoError(t, c.Save(context.Background()))

	assert.Equal(t, []models.CrimeRef{crimeA.Ref()}, got.Crimes)
	assert.Equal(t, []string{"x"}, got.Categorias)
}

func TestController_ToggleCategoriaTrimsKey(t *testing.T) {
	c := NewController(newFacade(), nil)
	openLoaded(t, c, &models.Indicios{Categorias: []string{"x"}})

	require.NoError(t, c.Toggle(context.Background(), Categorias, " x "))
	assert.Empty(t, c.View().Selecionados.Categorias)

	require.NoError(t, c.Toggle(context.Background(), Categorias, " y "))
	assert.Equal(t, []string{"y"}, c.View().Selecionados.Categorias)
	c.Close()
}
