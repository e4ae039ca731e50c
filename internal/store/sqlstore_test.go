package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/game-tec/pointsboard/internal/db"
	"github.com/game-tec/pointsboard/internal/ledger"
	"github.com/game-tec/pointsboard/internal/teams"
)

func openTestDB(t *testing.T) *LedgerSQL {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return &LedgerSQL{db: dbh}
}

func TestLedgerSQLRoundTrip(t *testing.T) {
	s := openTestDB(t)

	l := ledger.NewLedger()
	l["Técnico"].Set("José", -70)
	l["Técnico"].Set("Ana", 10)
	l["Técnico"].Set("Bea", 10)

	if err := s.Save(l); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := back["Técnico"].Names()
	want := []string{"José", "Ana", "Bea"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("insertion order lost: %v", names)
		}
	}
	if score, _ := back["Técnico"].Get("José"); score != -70 {
		t.Fatalf("José = %d", score)
	}

	// second save fully replaces state
	l2 := ledger.NewLedger()
	l2["Aprendizagem"].Set("Caio", 5)
	if err := s.Save(l2); err != nil {
		t.Fatal(err)
	}
	back, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if back["Técnico"].Len() != 0 || back["Aprendizagem"].Len() != 1 {
		t.Fatalf("stale state survived: %v / %v",
			back["Técnico"].Names(), back["Aprendizagem"].Names())
	}
}

func TestRegistrySQLRoundTrip(t *testing.T) {
	ls := openTestDB(t)
	s := &RegistrySQL{db: ls.db}

	reg := teams.NewRegistry()
	teamID := "2"
	reg.Students["1"] = &teams.Student{
		ID: "1", Name: "Ana Souza", Email: "ana@example.com",
		PasswordHash: "$2a$12$x", TeamID: &teamID, IsActive: true,
		CreatedAt: "2025-03-01T12:00:00Z",
	}
	reg.Students["3"] = &teams.Student{
		ID: "3", Name: "Bea Lima", Email: "bea@example.com",
		PasswordHash: "$2a$12$y", TeamID: &teamID, IsActive: false,
		CreatedAt: "2025-03-01T12:05:00Z",
	}
	reg.Teams[teamID] = &teams.Team{
		ID: teamID, Name: "Os Vingadores", Modality: "Técnico",
		CaptainID: "1", AccessCode: "ABCD1234", Members: []string{"1", "3"},
		CreatedAt: "2025-03-01T12:00:00Z",
	}
	reg.NextID = 4

	if err := s.Save(reg); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.NextID != 4 {
		t.Fatalf("nextId = %d", back.NextID)
	}
	tm := back.Teams[teamID]
	if tm == nil || len(tm.Members) != 2 || tm.Members[0] != "1" || tm.Members[1] != "3" {
		t.Fatalf("team = %+v", tm)
	}
	st := back.Students["3"]
	if st == nil || st.IsActive || st.TeamID == nil || *st.TeamID != teamID {
		t.Fatalf("student = %+v", st)
	}
}
