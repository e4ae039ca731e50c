package teams

import (
	"errors"
	"strings"
	"testing"
	"time"
)

/* ---------------- in-memory fakes for Store and Ledger ---------------- */

type fakeStore struct {
	state Registry
	saves int
}

func newFakeStore() *fakeStore { return &fakeStore{state: NewRegistry()} }

func (f *fakeStore) Load() (Registry, error) { return f.state, nil }
func (f *fakeStore) Save(r Registry) error {
	f.state = r
	f.saves++
	return nil
}

type fakeLedger struct {
	scores map[string]map[string]int // modality -> name -> score
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{scores: map[string]map[string]int{
		"Aprendizagem": {}, "Técnico": {}, "Técnico NEM": {},
	}}
}

func (f *fakeLedger) HasModality(m string) bool {
	_, ok := f.scores[m]
	return ok
}

func (f *fakeLedger) EnsureEntries(modality string, names []string) error {
	r, ok := f.scores[modality]
	if !ok {
		return errors.New("unknown modality")
	}
	for _, n := range names {
		if _, ok := r[n]; !ok {
			r[n] = 0
		}
	}
	return nil
}

func (f *fakeLedger) Score(modality, name string) (int, bool, error) {
	s, ok := f.scores[modality][name]
	return s, ok, nil
}

func fixedNow() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func newTestService() (*Service, *fakeStore, *fakeLedger) {
	st := newFakeStore()
	led := newFakeLedger()
	return NewService(st, led, fixedNow), st, led
}

func captain() RegisterInput {
	return RegisterInput{
		Name:     "Ana Souza",
		Email:    "Ana@Example.com",
		Password: "s3cret",
		Action:   ActionCreate,
		TeamName: "Os Vingadores",
		Modality: "Técnico",
	}
}

/* ------------------------------- tests ------------------------------- */

func TestRegisterCreateTeam(t *testing.T) {
	svc, st, led := newTestService()
	student, team, err := svc.Register(captain())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if student.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", student.Email)
	}
	if team == nil || team.CaptainID != student.ID {
		t.Fatalf("student should captain the new team: %+v", team)
	}
	if len(team.Members) != 1 || team.Members[0] != student.ID {
		t.Fatalf("members = %v", team.Members)
	}
	if len(team.AccessCode) != 8 {
		t.Fatalf("access code = %q", team.AccessCode)
	}
	if student.TeamID == nil || *student.TeamID != team.ID {
		t.Fatalf("student.TeamID = %v", student.TeamID)
	}
	if st.state.NextID != 3 {
		t.Fatalf("nextId = %d, want 3 (student + team)", st.state.NextID)
	}
	// registration syncs the member into the ledger at zero
	if score, ok, _ := led.Score("Técnico", "Ana Souza"); !ok || score != 0 {
		t.Fatalf("ledger sync missing: %d %v", score, ok)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	if _, _, err := svc.Register(captain()); err != nil {
		t.Fatal(err)
	}
	in := captain()
	in.TeamName = "Outro Time"
	_, _, err := svc.Register(in)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterDuplicateTeamName(t *testing.T) {
	svc, _, _ := newTestService()
	if _, _, err := svc.Register(captain()); err != nil {
		t.Fatal(err)
	}
	in := captain()
	in.Email = "bea@example.com"
	_, _, err := svc.Register(in)
	if !errors.Is(err, ErrDuplicateTeamName) {
		t.Fatalf("err = %v, want ErrDuplicateTeamName", err)
	}
}

func TestRegisterJoinByAccessCode(t *testing.T) {
	svc, st, led := newTestService()
	_, team, err := svc.Register(captain())
	if err != nil {
		t.Fatal(err)
	}
	joined, jt, err := svc.Register(RegisterInput{
		Name:       "Bea Lima",
		Email:      "bea@example.com",
		Password:   "pw",
		Action:     ActionJoin,
		AccessCode: strings.ToLower(" " + team.AccessCode + " "), // normalized
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if jt.ID != team.ID {
		t.Fatalf("joined team %s, want %s", jt.ID, team.ID)
	}
	if got := st.state.Teams[team.ID].Members; len(got) != 2 || got[1] != joined.ID {
		t.Fatalf("members = %v", got)
	}
	if _, ok, _ := led.Score("Técnico", "Bea Lima"); !ok {
		t.Fatal("joined member not synced into ledger")
	}
}

func TestRegisterInvalidAccessCodeLeavesStateUntouched(t *testing.T) {
	svc, st, led := newTestService()
	_, _, err := svc.Register(RegisterInput{
		Name:       "Bea Lima",
		Email:      "bea@example.com",
		Password:   "pw",
		Action:     ActionJoin,
		AccessCode: "NOPE1234",
	})
	if !errors.Is(err, ErrInvalidAccessCode) {
		t.Fatalf("err = %v, want ErrInvalidAccessCode", err)
	}
	if len(st.state.Students) != 0 || st.state.NextID != 1 || st.saves != 0 {
		t.Fatalf("registry mutated: %+v", st.state)
	}
	if _, ok, _ := led.Score("Técnico", "Bea Lima"); ok {
		t.Fatal("ledger mutated")
	}
}

func TestRegisterWithoutTeam(t *testing.T) {
	svc, _, _ := newTestService()
	student, team, err := svc.Register(RegisterInput{
		Name: "Solo", Email: "solo@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatal(err)
	}
	if team != nil || student.TeamID != nil {
		t.Fatalf("expected no team: %+v %v", team, student.TeamID)
	}
}

func TestAccessCodeCollisionRegenerates(t *testing.T) {
	svc, _, _ := newTestService()
	codes := []string{"SAMECODE", "SAMECODE", "OTHER123"}
	svc.genCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
	_, t1, err := svc.Register(captain())
	if err != nil {
		t.Fatal(err)
	}
	in := captain()
	in.Email = "bea@example.com"
	in.TeamName = "Time Dois"
	_, t2, err := svc.Register(in)
	if err != nil {
		t.Fatal(err)
	}
	if t1.AccessCode != "SAMECODE" || t2.AccessCode != "OTHER123" {
		t.Fatalf("codes = %q %q", t1.AccessCode, t2.AccessCode)
	}
}

func TestGenerateAccessCodeFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		code, err := generateAccessCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 8 {
			t.Fatalf("len(%q) = %d", code, len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(accessCodeAlphabet, c) {
				t.Fatalf("unexpected rune %q in %q", c, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes look constant")
	}
}

func TestLogin(t *testing.T) {
	svc, st, _ := newTestService()
	if _, _, err := svc.Register(captain()); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login("ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
	student, err := svc.Login("  ANA@example.com ", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if student.Name != "Ana Souza" {
		t.Fatalf("student = %+v", student)
	}

	st.state.Students[student.ID].IsActive = false
	if _, err := svc.Login("ana@example.com", "s3cret"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account: %v", err)
	}
}

func TestTeamRankingSortsByLiveScore(t *testing.T) {
	svc, _, led := newTestService()
	_, team, err := svc.Register(captain())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Register(RegisterInput{
		Name: "Bea Lima", Email: "bea@example.com", Password: "pw",
		Action: ActionJoin, AccessCode: team.AccessCode,
	}); err != nil {
		t.Fatal(err)
	}
	led.scores["Técnico"]["Bea Lima"] = 90
	led.scores["Técnico"]["Ana Souza"] = 40

	ranking, err := svc.TeamRanking(team.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranking) != 2 || ranking[0].Name != "Bea Lima" || ranking[1].Points != 40 {
		t.Fatalf("ranking = %+v", ranking)
	}
}

func TestAdminSummary(t *testing.T) {
	svc, _, led := newTestService()
	_, team, err := svc.Register(captain())
	if err != nil {
		t.Fatal(err)
	}
	in := RegisterInput{
		Name: "Bea Lima", Email: "bea@example.com", Password: "pw",
		Action: ActionCreate, TeamName: "Time Dois", Modality: "Aprendizagem",
	}
	if _, _, err := svc.Register(in); err != nil {
		t.Fatal(err)
	}
	led.scores["Aprendizagem"]["Bea Lima"] = 30

	sums, err := svc.AdminSummary()
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 2 {
		t.Fatalf("sums = %+v", sums)
	}
	if sums[0].Name != "Time Dois" || sums[0].TotalPoints != 30 || sums[0].AveragePoints != 30 {
		t.Fatalf("sums[0] = %+v", sums[0])
	}
	if !sums[1].Members[0].IsCaptain {
		t.Fatalf("captain flag missing: %+v", sums[1].Members)
	}
	if sums[1].AccessCode != team.AccessCode {
		t.Fatalf("access code missing from summary")
	}
}

func TestTeamRankingUnknownTeam(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.TeamRanking("404"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("err = %v, want ErrTeamNotFound", err)
	}
}
