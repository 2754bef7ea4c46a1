package indicios

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corregedoria/procedimentos-api/models"
)

func TestSelection_AddCategoria(t *testing.T) {
	s := NewSelection()

	assert.NoError(t, s.AddCategoria("  Indícios de crime militar "))
	assert.ErrorIs(t, s.AddCategoria("Indícios de crime militar"), ErrCategoriaDuplicada)
	assert.ErrorIs(t, s.AddCategoria(""), ErrCategoriaVazia)
	assert.ErrorIs(t, s.AddCategoria("   \t"), ErrCategoriaVazia)
	// case-sensitive exact match
	assert.NoError(t, s.AddCategoria("indícios de crime militar"))

	assert.Equal(t, []string{"Indícios de crime militar", "indícios de crime militar"}, s.Indicios().Categorias)
}

func TestSelection_FromIndiciosDropsDuplicates(t *testing.T) {
	s := FromIndicios(models.Indicios{
		Categorias: []string{"A", "A", "B"},
		Crimes:     []models.CrimeRef{{ID: "1", Texto: "Art. 1"}, {ID: "1", Texto: "Art. 1 (dup)"}},
		RDPM:       []models.RDPMRef{{ID: "7", Texto: "XII", Gravidade: "grave"}},
	})

	ind := s.Indicios()
	assert.Equal(t, []string{"A", "B"}, ind.Categorias)
	assert.Equal(t, []models.CrimeRef{{ID: "1", Texto: "Art. 1"}}, ind.Crimes)
	assert.Equal(t, []models.RDPMRef{{ID: "7", Texto: "XII", Gravidade: "grave"}}, ind.RDPM)
	assert.NotNil(t, ind.Art29)
	assert.Equal(t, Contadores{Categorias: 2, Crimes: 1, RDPM: 1, Total: 4}, s.Contadores())
}

func TestSelection_ToggleSequencesNeverDuplicate(t *testing.T) {
	items := []Item{
		{ID: "1", Catalogo: Crimes, Texto: "Art. 303"},
		{ID: "2", Catalogo: Crimes, Texto: "Art. 305"},
		{ID: "3", Catalogo: RDPM, Texto: "XV", Gravidade: "media"},
		{ID: "4", Catalogo: Art29, Texto: "IV"},
	}
	toggle := func(s *Selection, it Item) {
		if s.Has(it.Catalogo, it.ID) {
			s.Remove(it.Catalogo, it.ID)
			return
		}
		s.Add(it)
	}

	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		s := NewSelection()
		s.Add(items[0])
		before := s.Indicios()

		counts := map[string]int{}
		for i := 0; i < 30; i++ {
			it := items[r.Intn(len(items))]
			toggle(s, it)
			counts[it.ID]++

			for _, cat := range Referencias {
				seen := map[string]bool{}
				for _, sel := range s.Items(cat) {
					require.False(t, seen[sel.ID], "duplicate id %s in %s", sel.ID, cat)
					seen[sel.ID] = true
				}
			}
		}
		// close every odd count so each id was toggled an even number of times
		for _, it := range items {
			if counts[it.ID]%2 == 1 {
				toggle(s, it)
			}
		}
		after := s.Indicios()
		assert.ElementsMatch(t, before.Crimes, after.Crimes)
		assert.ElementsMatch(t, before.RDPM, after.RDPM)
		assert.ElementsMatch(t, before.Art29, after.Art29)
	}
}

func TestMerge(t *testing.T) {
	a := models.CrimeRef{ID: "A", Texto: "Art. 209"}
	b := models.CrimeRef{ID: "B", Texto: "Art. 210"}
	c := models.CrimeRef{ID: "C", Texto: "Art. 213"}

	got := Merge(
		models.Indicios{Crimes: []models.CrimeRef{a, b}, Categorias: []string{"X"}},
		models.Indicios{Crimes: []models.CrimeRef{c, a}, Categorias: []string{"X", "Y"}},
	)

	assert.Equal(t, []models.CrimeRef{a, b, c}, got.Crimes)
	assert.Equal(t, []string{"X", "Y"}, got.Categorias)

	// order of the operands does not change membership
	rev := Merge(
		models.Indicios{Crimes: []models.CrimeRef{c, a}},
		models.Indicios{Crimes: []models.CrimeRef{a, b}},
	)
	assert.ElementsMatch(t, got.Crimes, rev.Crimes)
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	s := NewSelection()
	s.Add(Item{ID: "1", Catalogo: Art29, Texto: "I"})
	c := s.Clone()
	c.Add(Item{ID: "2", Catalogo: Art29, Texto: "II"})
	c.Remove(Art29, "1")

	assert.True(t, s.Has(Art29, "1"))
	assert.False(t, s.Has(Art29, "2"))
}

func TestStore(t *testing.T) {
	st := NewStore()
	_, ok := st.Get("pm-1")
	assert.False(t, ok)

	st.Set("pm-1", models.Indicios{
		Categorias: []string{"A"},
		RDPM:       []models.RDPMRef{{ID: "r1", Texto: "I"}, {ID: "r2", Texto: "II"}},
	})
	st.Set("pm-2", models.Indicios{Categorias: []string{"B"}})

	assert.True(t, st.Remove("pm-1", RDPM, "r1"))
	assert.False(t, st.Remove("pm-1", RDPM, "r1"))
	assert.False(t, st.Remove("pm-9", RDPM, "r2"))

	got, ok := st.Get("pm-1")
	require.True(t, ok)
	assert.Equal(t, []models.RDPMRef{{ID: "r2", Texto: "II"}}, got.RDPM)

	// other officers untouched
	other, _ := st.Get("pm-2")
	assert.Equal(t, []string{"B"}, other.Categorias)
}
