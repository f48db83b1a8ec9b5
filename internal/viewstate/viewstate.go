// Package viewstate holds the admin console's overlay visibility flags: an
// explicit finite map from (page, overlay) to a boolean with show and hide
// operations. It carries no business logic and nothing in the core depends
// on it.
package viewstate

import "sync"

type key struct {
	page    string
	overlay string
}

type Store struct {
	mu       sync.RWMutex
	overlays map[key]bool
}

func New() *Store {
	return &Store{overlays: make(map[key]bool)}
}

func (s *Store) Show(page, overlay string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays[key{page, overlay}] = true
}

func (s *Store) Hide(page, overlay string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlays, key{page, overlay})
}

func (s *Store) Visible(page, overlay string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlays[key{page, overlay}]
}

// Snapshot returns the currently visible overlays grouped by page.
func (s *Store) Snapshot() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string)
	for k, visible := range s.overlays {
		if visible {
			out[k.page] = append(out[k.page], k.overlay)
		}
	}
	return out
}
