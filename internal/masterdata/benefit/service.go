package benefit

import (
	"context"
	"errors"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata/listing"
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

// List returns the benefits of one golongan.
func (s *Service) List(ctx context.Context, sess auth.Session, golonganID string) ([]Benefit, error) {
	golonganID = strings.TrimSpace(golonganID)
	if golonganID == "" {
		return nil, shared.ErrInvalidID
	}
	return s.repo.List(ctx, s.client.WithToken(sess.Token), golonganID)
}

func (s *Service) Get(ctx context.Context, sess auth.Session, id string) (Benefit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Benefit{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, s.client.WithToken(sess.Token), id)
}

func (s *Service) Create(ctx context.Context, sess auth.Session, golonganID string, in Input) error {
	golonganID = strings.TrimSpace(golonganID)
	if golonganID == "" {
		return shared.ErrInvalidID
	}
	in, err := validate(in)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, s.client.WithToken(sess.Token), golonganID, in, sess.Actor())
}

func (s *Service) Update(ctx context.Context, sess auth.Session, id string, in Input) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return shared.ErrInvalidID
	}
	in, err := validate(in)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, s.client.WithToken(sess.Token), id, in, sess.Actor())
}

// SetStatus writes the given status.
func (s *Service) SetStatus(ctx context.Context, sess auth.Session, id, status string) error {
	return s.repo.SetStatus(ctx, s.client.WithToken(sess.Token), id, status)
}

var messages = map[string]string{
	"benPlafonObat.required":       "Plafon Obat wajib diisi.",
	"benStatusPernikahan.required": "Status Nikah wajib dipilih.",
	"benStatusPernikahan.oneof":    "Status Nikah wajib dipilih.",
	"benValidDateFrom.required":    "Tanggal Valid wajib diisi.",
	"benValidDateUntil.required":   "Tanggal Sampai wajib diisi.",
	"benValidDateFrom.datetime":    "Format tanggal tidak valid.",
	"benValidDateUntil.datetime":   "Format tanggal tidak valid.",
}

func validate(in Input) (Input, error) {
	in = in.trimmed()
	if err := listing.Validate(in, messages); err != nil {
		return in, err
	}
	from, _ := listing.ParseDate(in.ValidFrom)
	until, _ := listing.ParseDate(in.ValidUntil)
	if err := shared.ValidateValidity(from, until); err != nil {
		if errors.Is(err, shared.ErrInvalidValidity) {
			return in, shared.NewValidationError(map[string]string{"benValidDateUntil": err.Error()})
		}
		return in, err
	}
	return in, nil
}
