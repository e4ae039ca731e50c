package http

import (
	"net/http"

	"github.com/game-tec/pointsboard/internal/ledger"
)

// ResetHandler wipes every modality back to an empty roster. There is no
// undo; the route exists for end-of-cycle cleanup.
func ResetHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}

// CatalogHandler exposes the active criteria rubric so the frontend can
// render the award form.
func CatalogHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"modalities": ledger.Modalities,
			"criteria":   svc.Catalog(),
		})
	}
}
