package ledger

// ApplyPoints awards the selected criteria to a student and persists the
// result. The delta is the sum of the catalog value of each selected
// criterion; variable criteria contribute the caller-supplied amount (0 if
// none was given). Criteria missing from the catalog are skipped without
// error. Awards are additive events: applying the same selection twice adds
// the delta twice.
func (s *Service) ApplyPoints(modality, name string, criteria []string, variable map[string]int) (total, delta int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.store.Load()
	if err != nil {
		return 0, 0, err
	}
	r, ok := l[modality]
	if !ok {
		return 0, 0, ErrUnknownModality
	}
	if _, ok := r.Get(name); !ok {
		return 0, 0, ErrUnknownStudent
	}

	for _, crit := range criteria {
		v, ok := s.catalog[crit]
		if !ok {
			continue
		}
		if v.Variable {
			delta += variable[crit]
		} else {
			delta += v.Points
		}
	}

	total = r.Add(name, delta)
	if err := s.store.Save(l); err != nil {
		return 0, 0, err
	}
	return total, delta, nil
}
