package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the API error type, carrying the HTTP status it should map to
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("Invalid credentials", http.StatusBadRequest)
	InActiveUserError      = errors.New("user inactive")
)

// GetUniqueContraintError maps a duplicate-key failure to the 400 the caller
// should see, keeping the field-specific message when it is recognizable.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("Email already in use", http.StatusBadRequest)
	case strings.Contains(msg, "username"):
		return New("Username already in use", http.StatusBadRequest)
	default:
		return New(msg, http.StatusBadRequest)
	}
}
