package jenisizin

import (
	"context"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

type Service struct {
	client *apiclient.Client
	repo   Repository
}

func NewService(client *apiclient.Client, repo Repository) *Service {
	return &Service{client: client, repo: repo}
}

func (s *Service) List(ctx context.Context, sess auth.Session, q liststate.Query) ([]JenisIzin, error) {
	return s.repo.List(ctx, s.client.WithToken(sess.Token), q)
}

func (s *Service) Get(ctx context.Context, sess auth.Session, id string) (JenisIzin, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return JenisIzin{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, s.client.WithToken(sess.Token), id)
}

func (s *Service) Create(ctx context.Context, sess auth.Session, in Input) error {
	in, err := s.validate(in)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, s.client.WithToken(sess.Token), in, sess.Actor())
}

func (s *Service) Update(ctx context.Context, sess auth.Session, id string, in Input) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return shared.ErrInvalidID
	}
	in, err := s.validate(in)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, s.client.WithToken(sess.Token), id, in, sess.Actor())
}

// SetFlag writes one of the three flag columns; value is "0" or "1".
func (s *Service) SetFlag(ctx context.Context, sess auth.Session, id, column, value string) error {
	if value != "0" && value != "1" {
		return shared.NewValidationError(map[string]string{column: "Tidak valid"})
	}
	return s.repo.SetFlag(ctx, s.client.WithToken(sess.Token), id, column, value)
}
