package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"signup_portal/internal/common"
)

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err        error
		want       Outcome
		wantStatus int
	}{
		{nil, OutcomeSuccess, http.StatusOK},
		{ErrInvalidEmail, OutcomeInvalidEmail, http.StatusBadRequest},
		{ErrInvalidPhone, OutcomeInvalidPhone, http.StatusBadRequest},
		{ErrInvalidPassword, OutcomeInvalidPassword, http.StatusBadRequest},
		{ErrInvalidRole, OutcomeInvalidRole, http.StatusBadRequest},
		{ErrRoleForbidden, OutcomeRoleForbidden, http.StatusForbidden},
		{ErrDuplicateEmail, OutcomeDuplicateEmail, http.StatusConflict},
		{ErrPersistence, OutcomePersistenceError, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrDuplicateEmail), OutcomeDuplicateEmail, http.StatusConflict},
		{errors.New("anything else"), OutcomePersistenceError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, OutcomeOf(tt.err))
			assert.Equal(t, tt.wantStatus, common.HTTPStatusFromError(tt.err))
		})
	}
}

func TestOutcomeMessages(t *testing.T) {
	assert.Equal(t, "Invalid email format!", OutcomeInvalidEmail.Message())
	assert.Equal(t, "Invalid phone number! Must be 10 digits.", OutcomeInvalidPhone.Message())
	assert.Equal(t, "Email already exists!", OutcomeDuplicateEmail.Message())
	assert.Equal(t, "Error during signup. Please try again.", OutcomePersistenceError.Message())
	assert.Equal(t, "Error during signup. Please try again.", Outcome(99).Message())
	assert.Equal(t, "Outcome(99)", Outcome(99).String())
}
