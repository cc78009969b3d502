package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate exchanges credentials for a complete session.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, shared.ErrInvalidCredentials
	}
	sess, err := s.repo.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyResult) {
			return Session{}, shared.ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !sess.Complete() {
		return Session{}, shared.ErrInvalidCredentials
	}
	return sess, nil
}
