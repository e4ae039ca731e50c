package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/game-tec/pointsboard/internal/auth/middleware"
	"github.com/game-tec/pointsboard/internal/teams"
)

// studentView is the wire shape of a student account: everything persisted
// except the credential hash.
type studentView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	TeamID    *string `json:"teamId"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
}

func viewOf(s teams.Student) studentView {
	return studentView{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		TeamID:    s.TeamID,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// TeamRegisterHandler creates a student account, optionally founding or
// joining a team, and returns a session token.
func TeamRegisterHandler(svc *teams.Service, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in teams.RegisterInput
		if !decodeJSON(w, r, &in) {
			return
		}
		student, team, err := svc.Register(in)
		if err != nil {
			writeError(w, err)
			return
		}
		tok, err := a.IssueJWT(student.ID, student.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"student":      viewOf(student),
			"team":         team,
			"access_token": tok,
		})
	}
}

// TeamLoginHandler authenticates a student and returns a session token.
func TeamLoginHandler(svc *teams.Service, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		student, err := svc.Login(req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		tok, err := a.IssueJWT(student.ID, student.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"student":      viewOf(student),
			"access_token": tok,
		})
	}
}

// MeHandler is the student dashboard: account plus team, resolved from the
// session token.
func MeHandler(svc *teams.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.SubjectFromContext(r.Context())
		if id == "" {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		student, team, err := svc.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"student": viewOf(student),
			"team":    team,
		})
	}
}

// TeamRankingHandler lists a team's members with their live ledger scores,
// best first.
func TeamRankingHandler(svc *teams.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := svc.TeamRanking(chi.URLParam(r, "teamID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ranking)
	}
}

// TeamsAdminSummaryHandler aggregates every team for the staff view.
func TeamsAdminSummaryHandler(svc *teams.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sums, err := svc.AdminSummary()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sums)
	}
}
