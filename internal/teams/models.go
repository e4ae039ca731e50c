// Package teams implements the self-service team registry: student
// accounts, teams joined by access code, and the sync that mirrors team
// members into the score ledger.
package teams

// Student is an account in the team subsystem. Students are never
// hard-deleted, only deactivated.
type Student struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"passwordHash"`
	TeamID       *string `json:"teamId"`
	IsActive     bool    `json:"isActive"`
	CreatedAt    string  `json:"createdAt"`
}

// Team groups students within one modality. The access code is generated at
// creation and never changes.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Modality    string   `json:"modality"`
	CaptainID   string   `json:"captainId"`
	AccessCode  string   `json:"accessCode"`
	Members     []string `json:"members"`
	CreatedAt   string   `json:"createdAt"`
}

// Registry is the full persisted team-subsystem state. NextID feeds both
// student and team ids so identifiers stay unique across the registry.
type Registry struct {
	Teams    map[string]*Team    `json:"teams"`
	Students map[string]*Student `json:"students"`
	NextID   int                 `json:"nextId"`
}

func NewRegistry() Registry {
	return Registry{
		Teams:    map[string]*Team{},
		Students: map[string]*Student{},
		NextID:   1,
	}
}

func (r Registry) studentByEmail(email string) *Student {
	for _, s := range r.Students {
		if s.Email == email {
			return s
		}
	}
	return nil
}

func (r Registry) teamByName(name string) *Team {
	for _, t := range r.Teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (r Registry) teamByAccessCode(code string) *Team {
	for _, t := range r.Teams {
		if t.AccessCode == code {
			return t
		}
	}
	return nil
}
