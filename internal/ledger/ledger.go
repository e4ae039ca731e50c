// Package ledger holds the participation-points core: the per-modality
// score ledger, the criteria catalog, point application and ranking.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Modalities is the fixed set of tracks. It is never extended at runtime.
var Modalities = []string{"Aprendizagem", "Técnico", "Técnico NEM"}

// OverallKey names the cross-modality ranking view. It is never a ledger key.
const OverallKey = "Geral"

// IsModality reports whether m is one of the fixed tracks.
func IsModality(m string) bool {
	for _, mod := range Modalities {
		if mod == m {
			return true
		}
	}
	return false
}

// Entry is one student's row in a roster.
type Entry struct {
	Name  string
	Score int
}

// Roster is an ordered name→score mapping. Insertion order is semantic: it
// is the tie-break for equal scores in rankings, so the JSON codec preserves
// key order instead of relying on map iteration.
type Roster struct {
	names  []string
	scores map[string]int
}

func NewRoster() *Roster {
	return &Roster{scores: map[string]int{}}
}

func (r *Roster) Len() int { return len(r.names) }

func (r *Roster) Get(name string) (int, bool) {
	s, ok := r.scores[name]
	return s, ok
}

// Set inserts name at the end of the roster, or updates its score in place
// if already present.
func (r *Roster) Set(name string, score int) {
	if _, ok := r.scores[name]; !ok {
		r.names = append(r.names, name)
	}
	r.scores[name] = score
}

// Add increments name's score by delta and returns the new total. The entry
// must exist.
func (r *Roster) Add(name string, delta int) int {
	r.scores[name] += delta
	return r.scores[name]
}

// Delete removes name, reporting whether it was present.
func (r *Roster) Delete(name string) bool {
	if _, ok := r.scores[name]; !ok {
		return false
	}
	delete(r.scores, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the student names in insertion order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Entries returns the roster rows in insertion order.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, Entry{Name: n, Score: r.scores[n]})
	}
	return out
}

// MarshalJSON writes the roster as a JSON object with keys in insertion
// order. HTML escaping is disabled so unicode names round-trip verbatim.
func (r *Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSONString(n)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", r.scores[n])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording keys in document order.
func (r *Roster) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}
	*r = *NewRoster()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("roster: bad key %v", keyTok)
		}
		numTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := numTok.(json.Number)
		if !ok {
			return fmt.Errorf("roster: score for %q is not a number", name)
		}
		score, err := num.Int64()
		if err != nil {
			return fmt.Errorf("roster: score for %q: %w", name, err)
		}
		r.Set(name, int(score))
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func encodeJSONString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Ledger maps each modality to its roster.
type Ledger map[string]*Roster

// NewLedger returns a ledger with an empty roster per fixed modality.
func NewLedger() Ledger {
	l := Ledger{}
	for _, m := range Modalities {
		l[m] = NewRoster()
	}
	return l
}

// MarshalJSON writes modalities in their canonical order so saved files are
// diffable run to run.
func (l Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(m string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := encodeJSONString(m)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		rb, err := l[m].MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(rb)
		return nil
	}
	for _, m := range Modalities {
		if _, ok := l[m]; !ok {
			continue
		}
		if err := write(m); err != nil {
			return nil, err
		}
	}
	for m := range l {
		if IsModality(m) {
			continue
		}
		if err := write(m); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *Ledger) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Ledger{}
	for m, rb := range raw {
		r := NewRoster()
		if err := r.UnmarshalJSON(rb); err != nil {
			return fmt.Errorf("modality %q: %w", m, err)
		}
		out[m] = r
	}
	// rosters for fixed modalities always exist, even when absent from disk
	for _, m := range Modalities {
		if _, ok := out[m]; !ok {
			out[m] = NewRoster()
		}
	}
	*l = out
	return nil
}
