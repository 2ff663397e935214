package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("patient", nil), http.StatusNotFound},
		{"validation", Validation("phone is required"), http.StatusBadRequest},
		{"bad request", BadRequest("bad", nil), http.StatusBadRequest},
		{"conflict", Conflict("Username already exists", nil), http.StatusConflict},
		{"unauthorized", InvalidCredentials(nil), http.StatusUnauthorized},
		{"forbidden", Forbidden("insufficient role"), http.StatusForbidden},
		{"internal", Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	base := Conflict("Room number already exists", fmt.Errorf("23505"))
	wrapped := fmt.Errorf("failed to create room: %w", base)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)
	assert.True(t, Is(wrapped, ErrConflict))
	assert.False(t, Is(wrapped, ErrNotFound))

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "patient not found", NotFound("patient", nil).Error())
	assert.Equal(t, "internal server error: boom", Internal(fmt.Errorf("boom")).Error())
	assert.Equal(t, "Invalid credentials", InvalidCredentials(nil).Message)
}
