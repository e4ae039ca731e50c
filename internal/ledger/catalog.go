package ledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// VariableMarker is the catalog value for criteria whose point amount is
// supplied per award instead of being fixed in the rubric.
const VariableMarker = "variable"

// CriterionValue is either a fixed (possibly negative) point value or the
// variable marker. It serializes as a JSON number or the marker string so
// catalog files round-trip losslessly.
type CriterionValue struct {
	Points   int
	Variable bool
}

func Fixed(points int) CriterionValue { return CriterionValue{Points: points} }
func Variable() CriterionValue        { return CriterionValue{Variable: true} }

func (v CriterionValue) MarshalJSON() ([]byte, error) {
	if v.Variable {
		return json.Marshal(VariableMarker)
	}
	return json.Marshal(v.Points)
}

func (v *CriterionValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != VariableMarker {
			return fmt.Errorf("criterion value: unknown marker %q", s)
		}
		*v = CriterionValue{Variable: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("criterion value: want integer or %q: %w", VariableMarker, err)
	}
	*v = CriterionValue{Points: n}
	return nil
}

// Catalog maps criterion names to their values. It is static configuration:
// loaded once at startup, never mutated at runtime.
type Catalog map[string]CriterionValue

// DefaultCatalog is the Game Tec rubric.
func DefaultCatalog() Catalog {
	return Catalog{
		"Frequência escolar acima de 80%":   Fixed(100),
		"Pontualidade":                      Fixed(50),
		"Participação em atividades extras": Fixed(70),
		"Cumprimento de tarefas escolares":  Fixed(60),
		"Participação em ações":             Fixed(80),
		"Trancamento de matrícula":          Fixed(-100),
		"Competições culturais/esportivas":  Variable(),
		"Realização de diagnóstica SAEP":    Fixed(100),
		"Nota média ou acima no SAEP":       Fixed(100),
		"Frequência abaixo de 75%":          Fixed(-70),
		"Receber advertências":              Fixed(-50),
		"Emprego na indústria":              Fixed(100),
		"Locação de livros":                 Fixed(70),
		"Ações do Psicossocial":             Fixed(70),
		"Curso no Senai Play":               Fixed(50),
	}
}

// LoadCatalog reads a catalog override from a JSON file. An empty path
// returns the default rubric.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return c, nil
}
