package viewport

import "sync"

// Store is the viewport shared between the interaction side and the renderer.
// Values are only ever replaced whole, so a Snapshot never mixes fields of two
// edits.
type Store struct {
	mu      sync.Mutex
	current Viewport
}

func NewStore(v Viewport) (*Store, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &Store{current: v}, nil
}

func (s *Store) Snapshot() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update replaces the viewport. Invalid values are rejected and the previous
// viewport is kept.
func (s *Store) Update(v Viewport) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = v
	s.mu.Unlock()
	return nil
}

// Edit applies fn to the current viewport and stores the result as one step.
func (s *Store) Edit(fn func(Viewport) Viewport) (Viewport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.current)
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}
