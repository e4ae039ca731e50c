package ledger

import "sync"

// Store persists the full ledger state. Implementations load and save the
// whole structure; the service serializes access so concurrent requests
// cannot interleave read-modify-write cycles.
type Store interface {
	Load() (Ledger, error)
	Save(Ledger) error
}

// Service owns all reads and writes of the score ledger.
type Service struct {
	mu      sync.Mutex
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{store: store, catalog: catalog}
}

// Catalog returns the active criteria rubric.
func (s *Service) Catalog() Catalog { return s.catalog }

// Students lists the modality's roster names in insertion order.
func (s *Service) Students(modality string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	r, ok := l[modality]
	if !ok {
		return nil, ErrUnknownModality
	}
	return r.Names(), nil
}

// Score reads one student's current total. The second result is false when
// the student has no entry under the modality.
func (s *Service) Score(modality, name string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return 0, false, err
	}
	r, ok := l[modality]
	if !ok {
		return 0, false, ErrUnknownModality
	}
	score, ok := r.Get(name)
	return score, ok, nil
}

// HasModality reports whether m is a valid ledger key.
func (s *Service) HasModality(m string) bool { return IsModality(m) }

// EnsureEntries creates zero-score entries for every name not already
// present under the modality. Existing scores are never touched. Used by
// the team registry to sync members into the ranking system.
func (s *Service) EnsureEntries(modality string, names []string) error {
	if !IsModality(modality) {
		return ErrUnknownModality
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return err
	}
	r := l[modality]
	changed := false
	for _, n := range names {
		if _, ok := r.Get(n); !ok {
			r.Set(n, 0)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.Save(l)
}

// Reset reinitializes every modality to an empty roster. Administrative
// action only; there is no undo.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(NewLedger())
}
