// Package http exposes the service over a JSON API. Handlers are factories
// taking the services they need and returning http.HandlerFunc.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/game-tec/pointsboard/internal/ledger"
	"github.com/game-tec/pointsboard/internal/teams"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP statuses. Anything unmapped is
// a persistence or programming failure and surfaces as a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrEmptyName),
		errors.Is(err, ledger.ErrUnknownModality),
		errors.Is(err, teams.ErrUnknownModality),
		errors.Is(err, teams.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnknownStudent),
		errors.Is(err, teams.ErrTeamNotFound),
		errors.Is(err, teams.ErrStudentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadyRegistered),
		errors.Is(err, teams.ErrDuplicateEmail),
		errors.Is(err, teams.ErrDuplicateTeamName):
		status = http.StatusConflict
	case errors.Is(err, teams.ErrInvalidAccessCode):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, teams.ErrInvalidCredentials),
		errors.Is(err, teams.ErrAccountDisabled):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}
