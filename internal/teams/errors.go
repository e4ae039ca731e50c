package teams

import "errors"

// Sentinel kinds for registry operations.
var (
	ErrValidation         = errors.New("missing or invalid field")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateTeamName  = errors.New("team name already taken")
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTeamNotFound       = errors.New("team not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrUnknownModality    = errors.New("unknown modality")
)
