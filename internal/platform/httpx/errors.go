package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// StatusOf maps the shared error taxonomy onto an HTTP status. Failures of the
// remote API surface as 502 since the portal itself is healthy.
func StatusOf(err error) int {
	var serverErr *shared.ServerError
	var validationErr *shared.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.Is(err, shared.ErrInvalidValidity), errors.Is(err, shared.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrIdempotencyConflict):
		return http.StatusConflict
	case errors.Is(err, shared.ErrNetwork), errors.As(err, &serverErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a problem response. Unknown errors keep their
// text out of the body.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	p := ProblemDetail{Status: status}
	if status != http.StatusInternalServerError {
		p.Detail = shared.UserMessage(err, "")
	}
	if r != nil {
		p.RequestID = middleware.GetReqID(r.Context())
	}
	Problem(w, p)
}
