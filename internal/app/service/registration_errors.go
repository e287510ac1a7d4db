package service

import (
	"errors"
	"fmt"

	"signup_portal/internal/common"
)

// Register only ever returns one of these. Each wraps a common category so
// common.HTTPStatusFromError maps it to the right status code.
var (
	ErrInvalidEmail    = fmt.Errorf("invalid email: %w", common.ErrValidation)
	ErrInvalidPhone    = fmt.Errorf("invalid phone: %w", common.ErrValidation)
	ErrInvalidPassword = fmt.Errorf("invalid password: %w", common.ErrValidation)
	ErrInvalidRole     = fmt.Errorf("invalid role: %w", common.ErrValidation)
	ErrRoleForbidden   = fmt.Errorf("role not permitted: %w", common.ErrForbidden)
	ErrDuplicateEmail  = fmt.Errorf("duplicate email: %w", common.ErrConflict)
	ErrPersistence     = fmt.Errorf("persistence error: %w", common.ErrInternalServer)
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidEmail
	OutcomeInvalidPhone
	OutcomeInvalidPassword
	OutcomeInvalidRole
	OutcomeRoleForbidden
	OutcomeDuplicateEmail
	OutcomePersistenceError
)

var outcomeInfo = []struct {
	err     error
	name    string
	message string
}{
	OutcomeSuccess:          {nil, "Success", "Signup successful!"},
	OutcomeInvalidEmail:     {ErrInvalidEmail, "InvalidEmail", "Invalid email format!"},
	OutcomeInvalidPhone:     {ErrInvalidPhone, "InvalidPhone", "Invalid phone number! Must be 10 digits."},
	OutcomeInvalidPassword:  {ErrInvalidPassword, "InvalidPassword", "Invalid password! Must be 1 to 72 bytes."},
	OutcomeInvalidRole:      {ErrInvalidRole, "InvalidRole", "Invalid role!"},
	OutcomeRoleForbidden:    {ErrRoleForbidden, "RoleForbidden", "You are not allowed to request this role."},
	OutcomeDuplicateEmail:   {ErrDuplicateEmail, "DuplicateEmail", "Email already exists!"},
	OutcomePersistenceError: {ErrPersistence, "PersistenceError", "Error during signup. Please try again."},
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeInfo) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeInfo[o].name
}

// Message is the user-facing text for the outcome. It never contains
// store diagnostics.
func (o Outcome) Message() string {
	if o < 0 || int(o) >= len(outcomeInfo) {
		return outcomeInfo[OutcomePersistenceError].message
	}
	return outcomeInfo[o].message
}

// OutcomeOf classifies an error returned by Register. Anything outside the
// closed set is treated as a persistence error.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	for o := OutcomeInvalidEmail; int(o) < len(outcomeInfo); o++ {
		if errors.Is(err, outcomeInfo[o].err) {
			return o
		}
	}
	return OutcomePersistenceError
}
