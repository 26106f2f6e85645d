package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "auth required", err: db.ErrAuthRequired, want: http.StatusUnauthorized},
		{name: "wrapped auth required", err: fmt.Errorf("save: %w", db.ErrAuthRequired), want: http.StatusUnauthorized},
		{name: "interview not found", err: &db.ErrInterviewNotFound{InterviewID: uuid.New()}, want: http.StatusNotFound},
		{name: "invalid section", err: &db.ErrInvalidSection{Section: "education"}, want: http.StatusBadRequest},
		{name: "store unavailable", err: &db.ErrUnavailable{Op: "get resume", Err: errors.New("conn refused")}, want: http.StatusServiceUnavailable},
		{name: "email exists", err: &ErrEmailAlreadyExists{Email: "a@b.c"}, want: http.StatusConflict},
		{name: "invalid credentials", err: &ErrInvalidCredentials{}, want: http.StatusUnauthorized},
		{name: "password mismatch", err: &ErrPasswordMismatch{}, want: http.StatusUnauthorized},
		{name: "user not found", err: &ErrUserNotFound{UserID: uuid.New()}, want: http.StatusNotFound},
		{name: "validation", err: &ErrValidation{Field: "email", Message: "required"}, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("generation failed"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
