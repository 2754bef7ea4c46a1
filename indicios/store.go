package indicios

import (
	"sync"

	"github.com/corregedoria/procedimentos-api/models"
)

// Store holds the indícios of every officer of the case being edited, keyed by
// pm_envolvido id. The case form owns it and hands it to the controller.
type Store struct {
	mu        sync.RWMutex
	byOfficer map[string]*Selection
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{byOfficer: make(map[string]*Selection)}
}

// Get returns the officer's indícios, if any were recorded
func (s *Store) Get(pmID string) (models.Indicios, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.byOfficer[pmID]
	if !ok {
		return models.Indicios{}, false
	}
	return sel.Indicios(), true
}

// Set replaces the officer's indícios
func (s *Store) Set(pmID string, ind models.Indicios) {
	s.mu.Lock()
	s.byOfficer[pmID] = FromIndicios(ind)
	s.mu.Unlock()
}

// Remove drops one element from the officer's entry without touching the others
func (s *Store) Remove(pmID string, c Catalogo, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.byOfficer[pmID]
	if !ok {
		return false
	}
	return sel.Remove(c, key)
}
