package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/game-tec/pointsboard/internal/ledger"
)

// RegisterStudentHandler adds a single student to a modality's roster.
func RegisterStudentHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Modality string `json:"modality"`
			Name     string `json:"name"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.Register(req.Modality, req.Name); err != nil {
			writeError(w, err)
			return
		}
		studentsRegistered.Inc()
		writeJSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(req.Name)})
	}
}

// BulkRegisterHandler imports students from a multipart file (CSV first
// column, or a JSON array of names) or a raw JSON array body. A parse
// failure aborts the whole import and leaves the ledger untouched.
func BulkRegisterHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modality := chi.URLParam(r, "modality")

		var names []string
		var err error
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			f, _, ferr := r.FormFile("file")
			if ferr != nil {
				http.Error(w, "file required", http.StatusBadRequest)
				return
			}
			defer f.Close()
			names, err = parseNames(f)
		} else {
			err = json.NewDecoder(r.Body).Decode(&names)
		}
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity,
				map[string]string{"error": "import failed: " + err.Error()})
			return
		}

		n, err := svc.BulkRegister(modality, names)
		if err != nil {
			writeError(w, err)
			return
		}
		studentsRegistered.Add(float64(n))
		writeJSON(w, http.StatusOK, map[string]int{"registered": n})
	}
}

// parseNames extracts student names from an uploaded file: a JSON array of
// strings, or a CSV whose first column holds the names. A first row whose
// first cell reads "name"/"nome" (any case) is treated as a header and
// skipped; any other first row is data.
func parseNames(r io.Reader) ([]string, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.New("empty file")
	}
	full := io.MultiReader(strings.NewReader(string(buf)), r)

	if buf[0] == '[' {
		var names []string
		if err := json.NewDecoder(full).Decode(&names); err != nil {
			return nil, err
		}
		return names, nil
	}

	cr := csv.NewReader(full)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	var names []string
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		cell := strings.TrimSpace(rec[0])
		if first {
			first = false
			switch strings.ToLower(cell) {
			case "name", "nome":
				continue
			}
		}
		names = append(names, cell)
	}
	return names, nil
}

// ListStudentsHandler returns the modality's roster names in registration
// order.
func ListStudentsHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.Students(chi.URLParam(r, "modality"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, names)
	}
}

// DeleteStudentHandler removes one student from a modality.
func DeleteStudentHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Modality string `json:"modality"`
			Name     string `json:"name"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.Delete(req.Modality, req.Name); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": req.Name})
	}
}

// BulkDeleteHandler removes every selected student that exists; the ones
// that do not are reported as warnings, not failures.
func BulkDeleteHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Modality string   `json:"modality"`
			Names    []string `json:"names"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Names) == 0 {
			http.Error(w, "no students selected", http.StatusBadRequest)
			return
		}
		deleted, missing, err := svc.BulkDelete(req.Modality, req.Names)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"deleted": deleted,
			"missing": missing,
		})
	}
}
