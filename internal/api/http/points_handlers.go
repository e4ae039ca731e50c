package http

import (
	"encoding/json"
	"net/http"

	"github.com/game-tec/pointsboard/internal/ledger"
)

// AddPointsHandler applies a criteria selection to a student. Variable
// amounts arrive as JSON numbers and are validated as integers here, before
// the points engine runs.
func AddPointsHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Modality string                 `json:"modality"`
			Student  string                 `json:"student"`
			Criteria []string               `json:"criteria"`
			Variable map[string]json.Number `json:"variable"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		variable := make(map[string]int, len(req.Variable))
		for crit, n := range req.Variable {
			v, err := n.Int64()
			if err != nil {
				http.Error(w, "invalid amount for "+crit, http.StatusBadRequest)
				return
			}
			variable[crit] = int(v)
		}
		total, delta, err := svc.ApplyPoints(req.Modality, req.Student, req.Criteria, variable)
		if err != nil {
			writeError(w, err)
			return
		}
		pointsApplied.Inc()
		writeJSON(w, http.StatusOK, map[string]int{"delta": delta, "total": total})
	}
}
