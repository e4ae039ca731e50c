package ledger

import "errors"

// Sentinel kinds for ledger operations.
var (
	ErrUnknownModality   = errors.New("unknown modality")
	ErrUnknownStudent    = errors.New("unknown student")
	ErrAlreadyRegistered = errors.New("student already registered")
	ErrEmptyName         = errors.New("empty student name")
)
