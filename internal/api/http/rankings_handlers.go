package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/game-tec/pointsboard/internal/export"
	"github.com/game-tec/pointsboard/internal/ledger"
)

func ranking(svc *ledger.Service, modality string) ([]ledger.Row, error) {
	// "Geral" (and its english alias) is the merged cross-modality view
	if modality == ledger.OverallKey || modality == "overall" {
		return svc.RankOverall()
	}
	return svc.RankModality(modality)
}

// GetRankingHandler returns the ranking rows for one modality, or the
// overall ranking for the Geral pseudo-modality.
func GetRankingHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := ranking(svc, chi.URLParam(r, "modality"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// ExportRankingHandler renders the ranking as a static HTML report and
// serves it as a download.
func ExportRankingHandler(svc *ledger.Service, exportDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modality := chi.URLParam(r, "modality")
		rows, err := ranking(svc, modality)
		if err != nil {
			writeError(w, err)
			return
		}
		path, err := export.WriteHTML(exportDir, modality, rows, time.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="ranking_`+modality+`.html"`)
		http.ServeFile(w, r, path)
	}
}
