// Package indicios manages the evidence tags (indícios) attached to each officer
// involved in a procedure: the four de-duplicated selection sets, the store the
// case form hands to the modal, and the controller driving the modal.
package indicios

import (
	"errors"
	"strings"

	"github.com/corregedoria/procedimentos-api/models"
)

// Catalogo identifies one of the four indícios sets
type Catalogo int

const (
	Categorias Catalogo = iota
	Crimes
	RDPM
	Art29
)

// Referencias lists the catalogs backed by a searchable reference table
var Referencias = []Catalogo{Crimes, RDPM, Art29}

func (c Catalogo) String() string {
	switch c {
	case Categorias:
		return "categorias"
	case Crimes:
		return "crimes"
	case RDPM:
		return "rdpm"
	case Art29:
		return "art29"
	}
	return "desconhecido"
}

var (
	ErrCategoriaVazia     = errors.New("categoria vazia")
	ErrCategoriaDuplicada = errors.New("categoria já adicionada")
)

// Item is a catalog entry as held by the controller: a search result or a
// selected reference
type Item struct {
	ID        string
	Catalogo  Catalogo
	Texto     string
	Gravidade string
}

// ItemCrime converts a crimes catalog entry
func ItemCrime(c models.Crime) Item {
	ref := c.Ref()
	return Item{ID: ref.ID, Catalogo: Crimes, Texto: ref.Texto}
}

// ItemTransgressao converts an RDPM catalog entry
func ItemTransgressao(t models.Transgressao) Item {
	ref := t.Ref()
	return Item{ID: ref.ID, Catalogo: RDPM, Texto: ref.Texto, Gravidade: ref.Gravidade}
}

// ItemInfracao converts an Art. 29 catalog entry
func ItemInfracao(i models.InfracaoArt29) Item {
	ref := i.Ref()
	return Item{ID: ref.ID, Catalogo: Art29, Texto: ref.Texto}
}

// orderedSet keeps unique keys in insertion order
type orderedSet[V any] struct {
	keys  []string
	items map[string]V
}

func newOrderedSet[V any]() *orderedSet[V] {
	return &orderedSet[V]{items: make(map[string]V)}
}

func (s *orderedSet[V]) add(key string, v V) bool {
	if _, ok := s.items[key]; ok {
		return false
	}
	s.keys = append(s.keys, key)
	s.items[key] = v
	return true
}

func (s *orderedSet[V]) remove(key string) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedSet[V]) has(key string) bool {
	_, ok := s.items[key]
	return ok
}

func (s *orderedSet[V]) len() int { return len(s.keys) }

func (s *orderedSet[V]) values() []V {
	out := make([]V, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

func (s *orderedSet[V]) clone() *orderedSet[V] {
	c := &orderedSet[V]{keys: append([]string(nil), s.keys...), items: make(map[string]V, len(s.items))}
	for k, v := range s.items {
		c.items[k] = v
	}
	return c
}

// Selection is the set of indícios of one officer. Membership is unique by id
// for the reference catalogs and by exact text for categories.
type Selection struct {
	categorias *orderedSet[string]
	refs       map[Catalogo]*orderedSet[Item]
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	s := &Selection{
		categorias: newOrderedSet[string](),
		refs:       make(map[Catalogo]*orderedSet[Item], len(Referencias)),
	}
	for _, c := range Referencias {
		s.refs[c] = newOrderedSet[Item]()
	}
	return s
}

// FromIndicios builds a selection from the wire form, dropping duplicates
func FromIndicios(ind models.Indicios) *Selection {
	s := NewSelection()
	for _, c := range ind.Categorias {
		s.categorias.add(c, c)
	}
	for _, r := range ind.Crimes {
		s.Add(Item{ID: r.ID, Catalogo: Crimes, Texto: r.Texto})
	}
	for _, r := range ind.RDPM {
		s.Add(Item{ID: r.ID, Catalogo: RDPM, Texto: r.Texto, Gravidade: r.Gravidade})
	}
	for _, r := range ind.Art29 {
		s.Add(Item{ID: r.ID, Catalogo: Art29, Texto: r.Texto})
	}
	return s
}

// Indicios returns the wire form of the selection
func (s *Selection) Indicios() models.Indicios {
	ind := models.Indicios{
		Categorias: s.categorias.values(),
		Crimes:     []models.CrimeRef{},
		RDPM:       []models.RDPMRef{},
		Art29:      []models.Art29Ref{},
	}
	for _, it := range s.refs[Crimes].values() {
		ind.Crimes = append(ind.Crimes, models.CrimeRef{ID: it.ID, Texto: it.Texto})
	}
	for _, it := range s.refs[RDPM].values() {
		ind.RDPM = append(ind.RDPM, models.RDPMRef{ID: it.ID, Texto: it.Texto, Gravidade: it.Gravidade})
	}
	for _, it := range s.refs[Art29].values() {
		ind.Art29 = append(ind.Art29, models.Art29Ref{ID: it.ID, Texto: it.Texto})
	}
	return ind
}

// AddCategoria appends a free-text category after trimming it
func (s *Selection) AddCategoria(texto string) error {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return ErrCategoriaVazia
	}
	if !s.categorias.add(texto, texto) {
		return ErrCategoriaDuplicada
	}
	return nil
}

// Add inserts a reference item; it reports false when the id is already present
func (s *Selection) Add(it Item) bool {
	if it.Catalogo == Categorias {
		return s.categorias.add(it.Texto, it.Texto)
	}
	set, ok := s.refs[it.Catalogo]
	if !ok {
		return false
	}
	return set.add(it.ID, it)
}

// Has reports whether key (an id, or the text for categories) is selected
func (s *Selection) Has(c Catalogo, key string) bool {
	if c == Categorias {
		return s.categorias.has(key)
	}
	set, ok := s.refs[c]
	return ok && set.has(key)
}

// Remove drops key from catalog c
func (s *Selection) Remove(c Catalogo, key string) bool {
	if c == Categorias {
		return s.categorias.remove(key)
	}
	set, ok := s.refs[c]
	return ok && set.remove(key)
}

// Items returns the selected items of a reference catalog in insertion order
func (s *Selection) Items(c Catalogo) []Item {
	if set, ok := s.refs[c]; ok {
		return set.values()
	}
	return nil
}

// Merge adds every element of other missing from s. Existing elements keep
// their position; new ones are appended in other's order.
func (s *Selection) Merge(other *Selection) {
	if other == nil {
		return
	}
	for _, c := range other.categorias.values() {
		s.categorias.add(c, c)
	}
	for _, cat := range Referencias {
		for _, it := range other.refs[cat].values() {
			s.refs[cat].add(it.ID, it)
		}
	}
}

// Clone returns an independent copy
func (s *Selection) Clone() *Selection {
	c := &Selection{
		categorias: s.categorias.clone(),
		refs:       make(map[Catalogo]*orderedSet[Item], len(s.refs)),
	}
	for k, v := range s.refs {
		c.refs[k] = v.clone()
	}
	return c
}

// Contadores holds the per-set counts shown on the modal tabs
type Contadores struct {
	Categorias int `json:"categorias"`
	Crimes     int `json:"crimes"`
	RDPM       int `json:"rdpm"`
	Art29      int `json:"art29"`
	Total      int `json:"total"`
}

// Contadores counts the selection
func (s *Selection) Contadores() Contadores {
	c := Contadores{
		Categorias: s.categorias.len(),
		Crimes:     s.refs[Crimes].len(),
		RDPM:       s.refs[RDPM].len(),
		Art29:      s.refs[Art29].len(),
	}
	c.Total = c.Categorias + c.Crimes + c.RDPM + c.Art29
	return c
}

// Merge returns the union of base and added, base elements first
func Merge(base, added models.Indicios) models.Indicios {
	s := FromIndicios(base)
	s.Merge(FromIndicios(added))
	return s.Indicios()
}
