package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/game-tec/pointsboard/internal/ledger"
	"github.com/game-tec/pointsboard/internal/teams"
)

// LedgerSQL persists the ledger in the scores table. Save replaces the full
// state in one transaction, keeping the whole-state write model of the file
// backend while making it atomic.
type LedgerSQL struct{ db *sql.DB }

func NewLedgerSQL(db *sql.DB) *LedgerSQL { return &LedgerSQL{db: db} }

func (s *LedgerSQL) Load() (ledger.Ledger, error) {
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx,
		`SELECT modality, name, score FROM scores ORDER BY modality, position`)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	defer rows.Close()

	l := ledger.NewLedger()
	for rows.Next() {
		var modality, name string
		var score int
		if err := rows.Scan(&modality, &name, &score); err != nil {
			return nil, err
		}
		r, ok := l[modality]
		if !ok {
			r = ledger.NewRoster()
			l[modality] = r
		}
		r.Set(name, score)
	}
	return l, rows.Err()
}

func (s *LedgerSQL) Save(l ledger.Ledger) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return err
	}
	for modality, r := range l {
		for pos, e := range r.Entries() {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO scores (modality, name, score, position) VALUES ($1,$2,$3,$4)`,
				modality, e.Name, e.Score, pos); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// RegistrySQL persists the team registry across the students, teams,
// team_members and registry_meta tables with the same full-state
// transactional save.
type RegistrySQL struct{ db *sql.DB }

func NewRegistrySQL(db *sql.DB) *RegistrySQL { return &RegistrySQL{db: db} }

func (s *RegistrySQL) Load() (teams.Registry, error) {
	ctx := context.Background()
	reg := teams.NewRegistry()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, password_hash, team_id, is_active, created_at FROM students`)
	if err != nil {
		return teams.Registry{}, fmt.Errorf("load students: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st teams.Student
		var teamID sql.NullString
		var active int
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.PasswordHash, &teamID, &active, &st.CreatedAt); err != nil {
			return teams.Registry{}, err
		}
		if teamID.Valid {
			id := teamID.String
			st.TeamID = &id
		}
		st.IsActive = active != 0
		cp := st
		reg.Students[st.ID] = &cp
	}
	if err := rows.Err(); err != nil {
		return teams.Registry{}, err
	}

	trows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, modality, captain_id, access_code, created_at FROM teams`)
	if err != nil {
		return teams.Registry{}, fmt.Errorf("load teams: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var t teams.Team
		if err := trows.Scan(&t.ID, &t.Name, &t.Description, &t.Modality, &t.CaptainID, &t.AccessCode, &t.CreatedAt); err != nil {
			return teams.Registry{}, err
		}
		cp := t
		reg.Teams[t.ID] = &cp
	}
	if err := trows.Err(); err != nil {
		return teams.Registry{}, err
	}

	mrows, err := s.db.QueryContext(ctx,
		`SELECT team_id, student_id FROM team_members ORDER BY team_id, position`)
	if err != nil {
		return teams.Registry{}, fmt.Errorf("load members: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var teamID, studentID string
		if err := mrows.Scan(&teamID, &studentID); err != nil {
			return teams.Registry{}, err
		}
		if t, ok := reg.Teams[teamID]; ok {
			t.Members = append(t.Members, studentID)
		}
	}
	if err := mrows.Err(); err != nil {
		return teams.Registry{}, err
	}

	var next int
	err = s.db.QueryRowContext(ctx, `SELECT v FROM registry_meta WHERE k='next_id'`).Scan(&next)
	switch {
	case err == sql.ErrNoRows:
		next = 1
	case err != nil:
		return teams.Registry{}, err
	}
	if next > reg.NextID {
		reg.NextID = next
	}
	return reg, nil
}

func (s *RegistrySQL) Save(reg teams.Registry) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"team_members", "teams", "students", "registry_meta"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	for _, st := range reg.Students {
		var teamID sql.NullString
		if st.TeamID != nil {
			teamID = sql.NullString{String: *st.TeamID, Valid: true}
		}
		active := 0
		if st.IsActive {
			active = 1
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO students (id, name, email, password_hash, team_id, is_active, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			st.ID, st.Name, st.Email, st.PasswordHash, teamID, active, st.CreatedAt); err != nil {
			return err
		}
	}
	for _, t := range reg.Teams {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO teams (id, name, description, modality, captain_id, access_code, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			t.ID, t.Name, t.Description, t.Modality, t.CaptainID, t.AccessCode, t.CreatedAt); err != nil {
			return err
		}
		for pos, member := range t.Members {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO team_members (team_id, student_id, position) VALUES ($1,$2,$3)`,
				t.ID, member, pos); err != nil {
				return err
			}
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO registry_meta (k, v) VALUES ('next_id',$1)`, reg.NextID); err != nil {
		return err
	}
	return tx.Commit()
}
