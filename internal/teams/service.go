package teams

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Team actions a student may request at registration time.
const (
	ActionCreate = "create"
	ActionJoin   = "join"
)

// Store persists the full registry state.
type Store interface {
	Load() (Registry, error)
	Save(Registry) error
}

// Ledger is the slice of the score ledger the registry needs: modality
// validation, member sync, and live score reads.
type Ledger interface {
	HasModality(m string) bool
	EnsureEntries(modality string, names []string) error
	Score(modality, name string) (int, bool, error)
}

// Service owns all registry reads and writes.
type Service struct {
	mu      sync.Mutex
	store   Store
	ledger  Ledger
	now     func() time.Time
	genCode func() (string, error)
}

func NewService(store Store, ledger Ledger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, ledger: ledger, now: now, genCode: generateAccessCode}
}

// RegisterInput carries a registration request. Action is empty, "create"
// (TeamName, Modality, optionally Description required) or "join"
// (AccessCode required).
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Action      string `json:"action"`
	TeamName    string `json:"teamName"`
	Description string `json:"description"`
	Modality    string `json:"modality"`
	AccessCode  string `json:"accessCode"`
}

// Register creates a student account and, depending on the requested
// action, founds a team with the student as captain or joins an existing
// one by access code. All validation happens before any state is touched,
// so a failed request leaves registry and ledger unchanged.
func (s *Service) Register(in RegisterInput) (Student, *Team, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return Student{}, nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.store.Load()
	if err != nil {
		return Student{}, nil, err
	}
	if reg.studentByEmail(email) != nil {
		return Student{}, nil, ErrDuplicateEmail
	}

	var joined *Team
	var create struct {
		name, description, modality string
	}
	switch in.Action {
	case ActionCreate:
		create.name = strings.TrimSpace(in.TeamName)
		create.description = strings.TrimSpace(in.Description)
		create.modality = in.Modality
		if create.name == "" {
			return Student{}, nil, ErrValidation
		}
		if !s.ledger.HasModality(create.modality) {
			return Student{}, nil, ErrUnknownModality
		}
		if reg.teamByName(create.name) != nil {
			return Student{}, nil, ErrDuplicateTeamName
		}
	case ActionJoin:
		code := strings.ToUpper(strings.TrimSpace(in.AccessCode))
		if code == "" {
			return Student{}, nil, ErrValidation
		}
		joined = reg.teamByAccessCode(code)
		if joined == nil {
			return Student{}, nil, ErrInvalidAccessCode
		}
	case "":
		// registered without a team
	default:
		return Student{}, nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return Student{}, nil, err
	}

	student := &Student{
		ID:           strconv.Itoa(reg.NextID),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	reg.NextID++

	var team *Team
	switch {
	case in.Action == ActionCreate:
		code, err := newAccessCode(reg, s.genCode)
		if err != nil {
			return Student{}, nil, err
		}
		team = &Team{
			ID:          strconv.Itoa(reg.NextID),
			Name:        create.name,
			Description: create.description,
			Modality:    create.modality,
			CaptainID:   student.ID,
			AccessCode:  code,
			Members:     []string{student.ID},
			CreatedAt:   student.CreatedAt,
		}
		reg.NextID++
		reg.Teams[team.ID] = team
	case joined != nil:
		joined.Members = append(joined.Members, student.ID)
		team = joined
	}
	if team != nil {
		id := team.ID
		student.TeamID = &id
	}
	reg.Students[student.ID] = student

	if err := s.store.Save(reg); err != nil {
		return Student{}, nil, err
	}
	if err := s.syncLedger(reg); err != nil {
		return Student{}, nil, err
	}
	return *student, team, nil
}

// syncLedger mirrors every team member into the score ledger at zero
// points. Existing scores are never overwritten.
func (s *Service) syncLedger(reg Registry) error {
	for _, t := range reg.Teams {
		names := make([]string, 0, len(t.Members))
		for _, id := range t.Members {
			if m, ok := reg.Students[id]; ok {
				names = append(names, m.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		if err := s.ledger.EnsureEntries(t.Modality, names); err != nil {
			return err
		}
	}
	return nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(email, password string) (Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Student{}, ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, err := s.store.Load()
	if err != nil {
		return Student{}, err
	}
	st := reg.studentByEmail(email)
	if st == nil {
		return Student{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return Student{}, ErrInvalidCredentials
	}
	if !st.IsActive {
		return Student{}, ErrAccountDisabled
	}
	return *st, nil
}

// Get returns a student and their team, if any.
func (s *Service) Get(studentID string) (Student, *Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, err := s.store.Load()
	if err != nil {
		return Student{}, nil, err
	}
	st, ok := reg.Students[studentID]
	if !ok {
		return Student{}, nil, ErrStudentNotFound
	}
	var team *Team
	if st.TeamID != nil {
		if t, ok := reg.Teams[*st.TeamID]; ok {
			cp := *t
			team = &cp
		}
	}
	return *st, team, nil
}

// MemberRank is one team member with their live ledger score.
type MemberRank struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int    `json:"points"`
}

// TeamRanking resolves each member's current score from the ledger (never
// from a cached total) and returns members sorted by score descending.
// Members without a ledger entry yet count as zero.
func (s *Service) TeamRanking(teamID string) ([]MemberRank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	t, ok := reg.Teams[teamID]
	if !ok {
		return nil, ErrTeamNotFound
	}
	out := make([]MemberRank, 0, len(t.Members))
	for _, id := range t.Members {
		m, ok := reg.Students[id]
		if !ok {
			continue
		}
		points, _, err := s.ledger.Score(t.Modality, m.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, MemberRank{Name: m.Name, Email: m.Email, Points: points})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out, nil
}

// MemberInfo is one member row in the admin team summary.
type MemberInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Points    int    `json:"points"`
	IsCaptain bool   `json:"isCaptain"`
}

// TeamSummary aggregates one team for the admin view.
type TeamSummary struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Modality      string       `json:"modality"`
	AccessCode    string       `json:"accessCode"`
	Members       []MemberInfo `json:"members"`
	MemberCount   int          `json:"memberCount"`
	TotalPoints   int          `json:"totalPoints"`
	AveragePoints float64      `json:"averagePoints"`
	CreatedAt     string       `json:"createdAt"`
}

// AdminSummary builds per-team statistics with live scores, sorted by total
// points descending (team name breaks ties so the order is deterministic).
func (s *Service) AdminSummary() ([]TeamSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]TeamSummary, 0, len(reg.Teams))
	for _, t := range reg.Teams {
		sum := TeamSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Modality:    t.Modality,
			AccessCode:  t.AccessCode,
			CreatedAt:   t.CreatedAt,
		}
		for _, id := range t.Members {
			m, ok := reg.Students[id]
			if !ok {
				continue
			}
			points, _, err := s.ledger.Score(t.Modality, m.Name)
			if err != nil {
				return nil, err
			}
			sum.TotalPoints += points
			sum.Members = append(sum.Members, MemberInfo{
				Name:      m.Name,
				Email:     m.Email,
				Points:    points,
				IsCaptain: id == t.CaptainID,
			})
		}
		sum.MemberCount = len(sum.Members)
		if sum.MemberCount > 0 {
			sum.AveragePoints = float64(sum.TotalPoints) / float64(sum.MemberCount)
		}
		out = append(out, sum)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
