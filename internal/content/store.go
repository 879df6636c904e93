package content

import (
	"errors"
	"sync/atomic"

	"github.com/jimmywalsh/portfolio/internal/model"
)

// Source produces a fresh snapshot of the collection.
type Source interface {
	Load() (*model.Site, error)
}

// Store holds the live snapshot. Readers never block; Reload swaps in a
// new snapshot only when loading succeeds.
type Store struct {
	src  Source
	site atomic.Pointer[model.Site]
}

// NewStore loads the first snapshot from src.
func NewStore(src Source) (*Store, error) {
	s := &Store{src: src}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Site returns the current snapshot.
func (s *Store) Site() *model.Site {
	return s.site.Load()
}

// Reload replaces the snapshot. On error the previous snapshot stays live.
func (s *Store) Reload() error {
	site, err := s.src.Load()
	if err != nil {
		return err
	}
	if site == nil {
		return errors.New("content source returned no site")
	}
	s.site.Store(site)
	return nil
}
