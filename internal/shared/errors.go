package shared

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")

	// ErrNetwork means no response came back from the API.
	ErrNetwork = errors.New("Tidak ada respons dari server. Cek jaringan.")
	// ErrEmptyResult means a well-formed response did not contain the requested record.
	ErrEmptyResult = errors.New("Data tidak ditemukan.")
	// ErrToggleDeclined is returned when the user answers no to a toggle prompt.
	ErrToggleDeclined = errors.New("toggle declined")
	// ErrInvalidID indicates a malformed or tampered URL id.
	ErrInvalidID = errors.New("ID tidak valid.")
)

// ServerError is a non-success answer from the API.
type ServerError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		if text := http.StatusText(e.Status); text != "" {
			return text
		}
		return fmt.Sprintf("server error %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Server error"
}

func (e *ServerError) Unwrap() error { return e.Err }

// ValidationError lists required fields that were left empty or invalid.
// It is produced locally; the request is never sent.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validasi gagal: " + strings.Join(keys, ", ")
}

// UserMessage renders err as one line suitable for a notification.
// Errors without a user-facing message fall back to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var serverErr *ServerError
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrNetwork):
		return ErrNetwork.Error()
	case errors.Is(err, ErrEmptyResult):
		return ErrEmptyResult.Error()
	case errors.Is(err, ErrInvalidID):
		return ErrInvalidID.Error()
	case errors.Is(err, ErrInvalidValidity):
		return ErrInvalidValidity.Error()
	case errors.Is(err, ErrIdempotencyConflict):
		return ErrIdempotencyConflict.Error()
	case errors.As(err, &validationErr):
		return "Mohon lengkapi semua field yang wajib diisi."
	case errors.As(err, &serverErr) && serverErr.Message != "":
		return serverErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
