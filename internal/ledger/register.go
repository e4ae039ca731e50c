package ledger

import "strings"

// Register adds one student at score 0. Registering a name already present
// under the modality is a soft failure (ErrAlreadyRegistered) that leaves
// the ledger untouched.
func (s *Service) Register(modality, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return err
	}
	r, ok := l[modality]
	if !ok {
		return ErrUnknownModality
	}
	if _, ok := r.Get(name); ok {
		return ErrAlreadyRegistered
	}
	r.Set(name, 0)
	return s.store.Save(l)
}

// BulkRegister adds every new, non-blank name at score 0 and returns how
// many were created. Blank and duplicate names are skipped silently; only
// the aggregate count is reported.
func (s *Service) BulkRegister(modality string, names []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return 0, err
	}
	r, ok := l[modality]
	if !ok {
		return 0, ErrUnknownModality
	}
	registered := 0
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.Get(n); ok {
			continue
		}
		r.Set(n, 0)
		registered++
	}
	if registered == 0 {
		return 0, nil
	}
	return registered, s.store.Save(l)
}

// Delete removes one student. A missing name is reported as
// ErrUnknownStudent but is not fatal to the caller.
func (s *Service) Delete(modality, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return err
	}
	r, ok := l[modality]
	if !ok {
		return ErrUnknownModality
	}
	if !r.Delete(name) {
		return ErrUnknownStudent
	}
	return s.store.Save(l)
}

// BulkDelete removes every named student that exists and reports the ones
// that do not. Missing names never abort the deletion of the found ones.
func (s *Service) BulkDelete(modality string, names []string) (deleted int, missing []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return 0, nil, err
	}
	r, ok := l[modality]
	if !ok {
		return 0, nil, ErrUnknownModality
	}
	for _, n := range names {
		if r.Delete(n) {
			deleted++
		} else {
			missing = append(missing, n)
		}
	}
	if deleted == 0 {
		return 0, missing, nil
	}
	return deleted, missing, s.store.Save(l)
}
