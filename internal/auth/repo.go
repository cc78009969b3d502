package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Repository issues sessions for credentials.
type Repository interface {
	Login(ctx context.Context, username, password string) (Session, error)
}

// APIRepository implements Repository against the HR API.
type APIRepository struct {
	client *apiclient.Client
}

// NewRepository constructs an API-backed repository.
func NewRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginPayload struct {
	Token   string   `json:"token"`
	SSO     *SSOData `json:"sso"`
	Profile *Profile `json:"user"`
}

// Login posts credentials to Auth/Login and returns the issued session.
func (r *APIRepository) Login(ctx context.Context, username, password string) (Session, error) {
	ack, err := r.client.WithToken("").Write(ctx, "Auth/Login", loginRequest{Username: username, Password: password}, http.MethodPost)
	if err != nil {
		var se *shared.ServerError
		if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusBadRequest) {
			return Session{}, shared.ErrInvalidCredentials
		}
		return Session{}, err
	}
	payload, err := apiclient.DecodeOne[loginPayload](ack.Envelope)
	if err != nil {
		return Session{}, err
	}
	if payload.Token == "" {
		return Session{}, shared.ErrInvalidCredentials
	}
	sess := Session{Token: payload.Token, SSO: payload.SSO, Profile: payload.Profile}
	if sess.SSO == nil && sess.Profile != nil {
		sess.SSO = &SSOData{Username: sess.Profile.Username, Role: sess.Profile.Role}
	}
	return sess, nil
}

var _ Repository = (*APIRepository)(nil)
