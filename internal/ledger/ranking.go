package ledger

import "sort"

// Row is one line of a ranking view. Positions are 1-based and contiguous;
// tied scores do not share a position.
type Row struct {
	Pos   int    `json:"pos"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RankModality ranks one track by score descending. The sort is stable, so
// students with equal scores keep their registration order. An empty
// modality yields an empty (non-nil) slice.
func (s *Service) RankModality(modality string) ([]Row, error) {
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
	return rank(r.Entries()), nil
}

// RankOverall merges scores by student name across every modality and ranks
// the merged totals. Names are merged by equality, so two distinct students
// sharing a name are reported as one row; the ledger is name-keyed by
// design. Merge order follows the fixed modality order, then insertion
// order within each, which keeps the tie-break deterministic.
func (s *Service) RankOverall() ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	merged := NewRoster()
	for _, m := range Modalities {
		r, ok := l[m]
		if !ok {
			continue
		}
		for _, e := range r.Entries() {
			if cur, ok := merged.Get(e.Name); ok {
				merged.Set(e.Name, cur+e.Score)
			} else {
				merged.Set(e.Name, e.Score)
			}
		}
	}
	return rank(merged.Entries()), nil
}

func rank(entries []Entry) []Row {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, Row{Pos: i + 1, Name: e.Name, Score: e.Score})
	}
	return rows
}
