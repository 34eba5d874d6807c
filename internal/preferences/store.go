package preferences

import (
	"sync/atomic"

	"github.com/couchcryptid/fix-display-service/internal/domain"
)

// Store holds the active preference snapshot. Readers never observe a
// partially applied profile.
type Store struct {
	current atomic.Pointer[domain.Preferences]
}

// NewStore returns a Store seeded with initial.
func NewStore(initial domain.Preferences) *Store {
	s := &Store{}
	s.Set(initial)
	return s
}

// Preferences implements domain.PreferencesProvider.
func (s *Store) Preferences() domain.Preferences {
	return *s.current.Load()
}

// Set replaces the active snapshot.
func (s *Store) Set(p domain.Preferences) {
	s.current.Store(&p)
}

// Reload loads the profile at path and swaps it in. On error the previous
// snapshot stays active.
func (s *Store) Reload(path string) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	s.Set(p)
	return nil
}
